package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"cwarett/db"
	"cwarett/models"
	"cwarett/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validStatuses = map[string]bool{
	"en_attente": true,
	"en_cours":   true,
	"terminee":   true,
	"annulee":    true,
}

var validPriorities = map[string]bool{
	"basse":   true,
	"normale": true,
	"haute":   true,
	"urgente": true,
}

// CreateOrder records a customer request (contact form or storefront).
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		log.Println("CreateOrder decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order payload")
		return
	}
	if order.Name == "" || order.Phone == "" || order.Service == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	order.OrderID = "ORD" + utils.GenerateRandomDigitString(6)
	if !validStatuses[order.Status] {
		order.Status = "en_attente"
	}
	if !validPriorities[order.Priority] {
		order.Priority = "normale"
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		log.Println("CreateOrder InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order creation failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// GetOrders returns all orders for the admin UI, newest first. Optional
// ?status= filter.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.OrdersCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetOrders Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		log.Println("GetOrders cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading order data")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// EditOrder updates status, priority or contact fields on an order.
func EditOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Status   string `json:"status"`
		Priority string `json:"priority"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.Status != "" {
		if !validStatuses[payload.Status] {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		set["status"] = payload.Status
	}
	if payload.Priority != "" {
		if !validPriorities[payload.Priority] {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid priority")
			return
		}
		set["priority"] = payload.Priority
	}
	if payload.Name != "" {
		set["name"] = payload.Name
	}
	if payload.Email != "" {
		set["email"] = payload.Email
	}
	if payload.Phone != "" {
		set["phone"] = payload.Phone
	}
	if payload.Message != "" {
		set["message"] = payload.Message
	}

	res, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"_id": ps.ByName("orderid")}, bson.M{"$set": set})
	if err != nil {
		log.Println("EditOrder UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

// DeleteOrder removes an order.
func DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.OrdersCollection.DeleteOne(ctx, bson.M{"_id": ps.ByName("orderid")})
	if err != nil {
		log.Println("DeleteOrder DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}
