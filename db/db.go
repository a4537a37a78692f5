package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ProductsCollection      *mongo.Collection
	SubscriptionsCollection *mongo.Collection
	OrdersCollection        *mongo.Collection
	UserCollection          *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "storedb"
	}

	ProductsCollection = Client.Database(dbName).Collection("products")
	SubscriptionsCollection = Client.Database(dbName).Collection("subscriptions")
	OrdersCollection = Client.Database(dbName).Collection("orders")
	UserCollection = Client.Database(dbName).Collection("users")
}
