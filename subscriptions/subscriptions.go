package subscriptions

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

// GetPlans lists a product's plans, newest first. ?active=true keeps only
// sellable plans.
func GetPlans(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"productId": ps.ByName("productid")}
	if r.URL.Query().Get("active") == "true" {
		filter["active"] = true
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.SubscriptionsCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetPlans Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve plans")
		return
	}
	defer cursor.Close(ctx)

	var plans []models.Subscription
	if err := cursor.All(ctx, &plans); err != nil {
		log.Println("GetPlans cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading plan data")
		return
	}
	if plans == nil {
		plans = []models.Subscription{}
	}

	utils.RespondWithJSON(w, http.StatusOK, plans)
}

// CreatePlan adds a plan to a product and refreshes the product's embedded
// plan references.
func CreatePlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	var plan models.Subscription
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if plan.Name == "" || plan.Price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	if err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": productID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	plan.PlanID = utils.GenerateID(14)
	plan.ProductID = productID
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt

	if _, err := db.SubscriptionsCollection.InsertOne(ctx, plan); err != nil {
		log.Println("CreatePlan InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	syncProductPlans(ctx, productID)
	utils.RespondWithJSON(w, http.StatusCreated, plan)
}

// EditPlan updates a plan in place.
func EditPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	planID := ps.ByName("planid")

	var plan models.Subscription
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if plan.Name == "" || plan.Price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	update := bson.M{"$set": bson.M{
		"name":          plan.Name,
		"duration":      plan.Duration,
		"durationType":  plan.DurationType,
		"price":         plan.Price,
		"originalPrice": plan.OriginalPrice,
		"features":      plan.Features,
		"description":   plan.Description,
		"popular":       plan.Popular,
		"promotion":     plan.Promotion,
		"badge":         plan.Badge,
		"active":        plan.Active,
		"maxUsers":      plan.MaxUsers,
		"quality":       plan.Quality,
		"devices":       plan.Devices,
		"updatedAt":     time.Now(),
	}}

	res, err := db.SubscriptionsCollection.UpdateOne(ctx, bson.M{"_id": planID, "productId": productID}, update)
	if err != nil {
		log.Println("EditPlan UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update plan")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}

	syncProductPlans(ctx, productID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

// DeletePlan removes a plan.
func DeletePlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	planID := ps.ByName("planid")

	res, err := db.SubscriptionsCollection.DeleteOne(ctx, bson.M{"_id": planID, "productId": productID})
	if err != nil {
		log.Println("DeletePlan DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete plan")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}

	syncProductPlans(ctx, productID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}

// syncProductPlans rewrites the embedded plan references on the product
// from the active plan documents, so listings and representative prices
// stay honest. Failure is logged; the plan document is the source of truth.
func syncProductPlans(ctx context.Context, productID string) {
	cursor, err := db.SubscriptionsCollection.Find(ctx, bson.M{"productId": productID, "active": true})
	if err != nil {
		log.Println("syncProductPlans Find error:", err)
		return
	}
	defer cursor.Close(ctx)

	var plans []models.Subscription
	if err := cursor.All(ctx, &plans); err != nil {
		log.Println("syncProductPlans cursor.All error:", err)
		return
	}

	refs := make([]models.PlanRef, 0, len(plans))
	for _, p := range plans {
		refs = append(refs, models.PlanRef{Name: p.Name, Price: p.Price, Promotion: p.Promotion})
	}

	_, err = db.ProductsCollection.UpdateOne(ctx, bson.M{"_id": productID},
		bson.M{"$set": bson.M{"subscriptions": refs, "updatedAt": time.Now()}})
	if err != nil {
		log.Println("syncProductPlans UpdateOne error:", err)
	}
}
