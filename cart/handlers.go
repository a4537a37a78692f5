package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"cwarett/catalog"
	"cwarett/db"
	"cwarett/models"
	"cwarett/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const sessionCookie = "cart_session"

// Handler exposes the session cart over HTTP.
type Handler struct {
	manager    *Manager
	placeOrder func(ctx context.Context, order models.Order) error
}

func NewHandler(m *Manager) *Handler {
	return &Handler{manager: m, placeOrder: insertOrder}
}

func insertOrder(ctx context.Context, order models.Order) error {
	_, err := db.OrdersCollection.InsertOne(ctx, order)
	return err
}

// session returns the cart session id, minting a cookie on first touch.
func session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// GetCart returns the current snapshot.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c := h.manager.Get(session(w, r))
	utils.RespondWithJSON(w, http.StatusOK, c.Snapshot())
}

// AddToCart resolves the product (and optionally one of its plans) and
// merges it into the cart. Re-adding the same line never duplicates it.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		ProductID string `json:"productId"`
		Plan      string `json:"plan"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddToCart decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "productId is required")
		return
	}

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": payload.ProductID, "active": true}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	line, err := lineFor(product, payload.Plan)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := h.manager.Get(session(w, r))
	c.AddItem(line, payload.Quantity)
	utils.RespondWithJSON(w, http.StatusCreated, c.Snapshot())
}

// lineFor builds the cart line for a product, or a product+plan combination.
func lineFor(product models.Product, plan string) (models.CartLineItem, error) {
	line := models.CartLineItem{
		ID:          product.ProductID,
		Name:        product.Name,
		Description: product.Description,
		Image:       product.Image,
		UnitPrice:   catalog.RepresentativePrice(product),
	}
	if plan == "" {
		return line, nil
	}
	for _, p := range product.Subscriptions {
		if strings.EqualFold(p.Name, plan) {
			line.ID = product.ProductID + ":" + catalog.Slugify(p.Name)
			line.Name = product.Name + " - " + p.Name
			line.Description = product.Description + " - Abonnement " + p.Name
			line.UnitPrice = p.Price
			return line, nil
		}
	}
	return models.CartLineItem{}, fmt.Errorf("unknown plan %q", plan)
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	c := h.manager.Get(session(w, r))
	c.UpdateQuantity(ps.ByName("itemid"), payload.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, c.Snapshot())
}

// RemoveCartItem deletes a line. Unknown ids succeed silently.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c := h.manager.Get(session(w, r))
	c.RemoveItem(ps.ByName("itemid"))
	utils.RespondWithJSON(w, http.StatusOK, c.Snapshot())
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c := h.manager.Get(session(w, r))
	c.Clear()
	utils.RespondWithJSON(w, http.StatusOK, c.Snapshot())
}

// Checkout records an order from the cart contents and empties the cart.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
		Message       string `json:"message"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.Name == "" || payload.Phone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and phone are required")
		return
	}

	c := h.manager.Get(session(w, r))
	snap := c.Snapshot()
	if len(snap.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	order := buildOrder(snap, payload.Name, payload.Email, payload.Phone, payload.Message, payload.PaymentMethod)
	if err := h.placeOrder(ctx, order); err != nil {
		log.Println("Checkout order insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order creation failed")
		return
	}

	// order is durable; the cart resets even if the mirror write fails
	c.Clear()
	utils.RespondWithJSON(w, http.StatusCreated, order)
}

func buildOrder(snap models.CartSnapshot, name, email, phone, message, paymentMethod string) models.Order {
	services := make([]string, 0, len(snap.Items))
	details := make([]string, 0, len(snap.Items))
	for _, it := range snap.Items {
		services = append(services, fmt.Sprintf("%s (x%d)", it.Name, it.Quantity))
		details = append(details, fmt.Sprintf("- %s x%d = %s TND",
			it.Name, it.Quantity, utils.FormatPrice(it.UnitPrice*float64(it.Quantity))))
	}

	now := time.Now()
	return models.Order{
		OrderID: "ORD" + utils.GenerateRandomDigitString(6),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Service: strings.Join(services, ", "),
		Message: fmt.Sprintf("Méthode de paiement: %s\n\n%s\n\nDétails de la commande:\n%s\n\nTotal: %s TND",
			paymentMethod, message, strings.Join(details, "\n"), utils.FormatPrice(snap.Total)),
		Status:    "en_attente",
		Priority:  "normale",
		Items:     snap.Items,
		Total:     utils.RoundPrice(snap.Total),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
