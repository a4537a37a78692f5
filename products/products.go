package products

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cwarett/db"
	"cwarett/models"
	"cwarett/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var productUploadPath = "./static/productpic"

// CreateProduct handles the back-office product form (multipart, optional
// image upload).
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	product, ok := productFromForm(w, r)
	if !ok {
		return
	}

	product.ProductID = utils.GenerateID(14)
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// EditProduct updates an existing product from the same form.
func EditProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	if productID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	product, ok := productFromForm(w, r)
	if !ok {
		return
	}

	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"category":    product.Category,
		"price":       product.Price,
		"color":       product.Color,
		"badge":       product.Badge,
		"features":    product.Features,
		"popular":     product.Popular,
		"promotion":   product.Promotion,
		"active":      product.Active,
		"updatedAt":   time.Now(),
	}}
	if product.Image != "" {
		update["$set"].(bson.M)["image"] = product.Image
	}

	res, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"_id": productID}, update)
	if err != nil {
		log.Println("EditProduct UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

// DeleteProduct removes a product and its plans.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		log.Println("DeleteProduct DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if _, err := db.SubscriptionsCollection.DeleteMany(ctx, bson.M{"productId": productID}); err != nil {
		log.Println("DeleteProduct plan cleanup error:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}

// productFromForm reads the shared create/edit form. Writes the HTTP error
// itself and returns ok=false on validation failure.
func productFromForm(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	name := r.FormValue("name")
	if len(name) == 0 || len(name) > 100 {
		utils.RespondWithError(w, http.StatusBadRequest, "Name must be between 1 and 100 characters.")
		return models.Product{}, false
	}

	category := r.FormValue("category")
	if category == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category is required")
		return models.Product{}, false
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid price value. Must be a non-negative number.")
		return models.Product{}, false
	}

	product := models.Product{
		Name:          name,
		Description:   r.FormValue("description"),
		Category:      category,
		Price:         price,
		Color:         r.FormValue("color"),
		Badge:         r.FormValue("badge"),
		Features:      splitFeatures(r.FormValue("features")),
		Subscriptions: []models.PlanRef{},
		Popular:       r.FormValue("popular") == "true",
		Promotion:     r.FormValue("promotion") == "true",
		Active:        r.FormValue("active") != "false",
	}

	file, header, err := r.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		utils.RespondWithError(w, http.StatusBadRequest, "Error retrieving image file: "+err.Error())
		return models.Product{}, false
	}
	if file != nil {
		defer file.Close()
		fileName, err := utils.SaveImage(file, header, productUploadPath)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnsupportedMediaType, err.Error())
			return models.Product{}, false
		}
		product.Image = "/static/productpic/" + fileName
	}

	return product, true
}

// splitFeatures takes a comma-separated string and returns a cleaned []string
func splitFeatures(input string) []string {
	features := []string{}
	for _, part := range strings.Split(input, ",") {
		if f := strings.TrimSpace(part); f != "" {
			features = append(features, f)
		}
	}
	return features
}
