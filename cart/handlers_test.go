package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cwarett/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler(placed *[]models.Order) (*Handler, *Manager) {
	m := NewManager(newMemStore())
	h := &Handler{
		manager: m,
		placeOrder: func(_ context.Context, order models.Order) error {
			*placed = append(*placed, order)
			return nil
		},
	}
	return h, m
}

func testRouter(h *Handler) *httprouter.Router {
	router := httprouter.New()
	router.GET("/api/cart", h.GetCart)
	router.PATCH("/api/cart/item/:itemid", h.UpdateCartItem)
	router.DELETE("/api/cart/item/:itemid", h.RemoveCartItem)
	router.DELETE("/api/cart", h.ClearCart)
	router.POST("/api/cart/checkout", h.Checkout)
	return router
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sess"})
	return req
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) models.CartSnapshot {
	t.Helper()
	var snap models.CartSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	return snap
}

func TestGetCartMintsSessionCookie(t *testing.T) {
	var placed []models.Order
	h, _ := testHandler(&placed)
	router := testRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)

	snap := decodeSnapshot(t, rec)
	assert.Empty(t, snap.Items)
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	var placed []models.Order
	h, m := testHandler(&placed)
	router := testRouter(h)

	m.Get("sess").AddItem(models.CartLineItem{ID: "x", Name: "Netflix", UnitPrice: 9.99}, 1)

	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/cart/item/x",
		strings.NewReader(`{"quantity":4}`)))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 4, snap.Items[0].Quantity)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodDelete, "/api/cart/item/x", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeSnapshot(t, rec).Items)
}

func TestClearCartHandler(t *testing.T) {
	var placed []models.Order
	h, m := testHandler(&placed)
	router := testRouter(h)

	m.Get("sess").AddItem(models.CartLineItem{ID: "x", UnitPrice: 5}, 3)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodDelete, "/api/cart", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	assert.Empty(t, snap.Items)
	assert.Zero(t, snap.ItemCount)
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	var placed []models.Order
	h, m := testHandler(&placed)
	router := testRouter(h)

	m.Get("sess").AddItem(models.CartLineItem{ID: "x", Name: "Netflix Premium", UnitPrice: 9.99}, 3)

	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/cart/checkout",
		strings.NewReader(`{"name":"Ali","phone":"+216 12 345 678","paymentMethod":"d17"}`)))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, placed, 1)

	order := placed[0]
	assert.Equal(t, "Ali", order.Name)
	assert.Equal(t, "en_attente", order.Status)
	assert.Equal(t, "normale", order.Priority)
	assert.Equal(t, "Netflix Premium (x3)", order.Service)
	assert.Contains(t, order.Message, "Total: 29.97 TND")
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 29.97, order.Total, 1e-9)

	assert.Empty(t, m.Get("sess").Snapshot().Items)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	var placed []models.Order
	h, _ := testHandler(&placed)
	router := testRouter(h)

	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/cart/checkout",
		strings.NewReader(`{"name":"Ali","phone":"123"}`)))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, placed)

	// errors come back as JSON, like every other response
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Cart is empty", body["error"])
}

func TestLineForPlanCombination(t *testing.T) {
	product := models.Product{
		ProductID:   "p1",
		Name:        "Netflix",
		Description: "Streaming",
		Price:       15,
		Subscriptions: []models.PlanRef{
			{Name: "3 Mois", Price: 25.5},
			{Name: "1 Mois", Price: 9.99},
		},
	}

	line, err := lineFor(product, "")
	require.NoError(t, err)
	assert.Equal(t, "p1", line.ID)
	assert.InDelta(t, 9.99, line.UnitPrice, 1e-9) // cheapest plan

	line, err = lineFor(product, "3 Mois")
	require.NoError(t, err)
	assert.Equal(t, "p1:3-mois", line.ID)
	assert.Equal(t, "Netflix - 3 Mois", line.Name)
	assert.InDelta(t, 25.5, line.UnitPrice, 1e-9)

	_, err = lineFor(product, "12 Mois")
	assert.Error(t, err)
}
