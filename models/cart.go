package models

import "time"

// CartLineItem represents a single line in a session cart.
type CartLineItem struct {
	ID          string  `json:"id" bson:"id"` // productid, or productid:planslug
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
	UnitPrice   float64 `json:"unitPrice" bson:"unitPrice"`
	Quantity    int     `json:"quantity" bson:"quantity"` // always >= 1
}

// CartSnapshot is the derived view of a cart: items in insertion order,
// count as the sum of quantities, total accumulated at full precision.
type CartSnapshot struct {
	Items     []CartLineItem `json:"items" bson:"items"`
	ItemCount int            `json:"itemCount" bson:"itemCount"`
	Total     float64        `json:"total" bson:"total"`
}

// Order represents a customer order. Contact-form orders carry only the
// name/phone/service/message fields; checkout orders also embed the cart
// lines and the rounded total.
type Order struct {
	OrderID   string         `json:"_id" bson:"_id"`
	Name      string         `json:"name" bson:"name"`
	Email     string         `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string         `json:"phone" bson:"phone"`
	Service   string         `json:"service" bson:"service"`
	Message   string         `json:"message" bson:"message"`
	Status    string         `json:"status" bson:"status"`     // en_attente, en_cours, terminee, annulee
	Priority  string         `json:"priority" bson:"priority"` // basse, normale, haute, urgente
	Items     []CartLineItem `json:"items,omitempty" bson:"items,omitempty"`
	Total     float64        `json:"total,omitempty" bson:"total,omitempty"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}
