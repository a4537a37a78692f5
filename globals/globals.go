package globals

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
)

var JwtSecret = []byte(getSecret())

func getSecret() string {
	_ = godotenv.Load()
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	if os.Getenv("APP_ENV") == "production" {
		log.Fatal("JWT_SECRET must be set in production")
	}
	log.Println("JWT_SECRET not set; using insecure dev key")
	return "your_secret_key"
}

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()
