package products

import (
	"context"
	"net/http"
	"time"

	"cwarett/catalog"
	"cwarett/db"
	"cwarett/models"
	"cwarett/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// fetchActive loads the active product collection; listing endpoints treat
// the result as an atomic snapshot.
func fetchActive(ctx context.Context) ([]models.Product, error) {
	cursor, err := db.ProductsCollection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProducts lists active products, filtered and sorted by query params:
// ?category= &minPrice= &maxPrice= &q= &sort=
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	products, err := fetchActive(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}

	q := r.URL.Query()
	sort := catalog.SortKey(q.Get("sort"))
	if sort == "" {
		sort = catalog.SortPopular
	}
	criteria := catalog.FilterCriteria{
		CategorySlug: q.Get("category"),
		MinPrice:     utils.ParseFloatParam(r, "minPrice", 0),
		MaxPrice:     utils.ParseFloatParam(r, "maxPrice", 0),
		Query:        q.Get("q"),
		Sort:         sort,
	}

	utils.RespondWithJSON(w, http.StatusOK, catalog.FilterAndSort(products, criteria))
}

// GetProduct returns one product by id, active or not.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": ps.ByName("productid")}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetCategories derives category descriptors from the active products.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	products, err := fetchActive(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, catalog.DeriveCategories(products))
}
