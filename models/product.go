package models

import "time"

// PlanRef is the lightweight plan reference embedded in a product document.
// The full plan lives in the subscriptions collection.
type PlanRef struct {
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Promotion bool    `json:"promotion" bson:"promotion"`
}

// Product struct for MongoDB documents
type Product struct {
	ProductID     string    `json:"_id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description" bson:"description"`
	Category      string    `json:"category" bson:"category"`
	Image         string    `json:"image" bson:"image"`
	Color         string    `json:"color,omitempty" bson:"color,omitempty"`
	Price         float64   `json:"price" bson:"price"` // base display price; listing uses the cheapest plan when plans exist
	OriginalPrice float64   `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Features      []string  `json:"features" bson:"features"`
	Subscriptions []PlanRef `json:"subscriptions" bson:"subscriptions"`
	Popular       bool      `json:"popular" bson:"popular"`
	Promotion     bool      `json:"promotion" bson:"promotion"`
	Badge         string    `json:"badge,omitempty" bson:"badge,omitempty"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Subscription is a full plan document, owned by one product.
type Subscription struct {
	PlanID        string    `json:"_id" bson:"_id"`
	ProductID     string    `json:"productId" bson:"productId"`
	Name          string    `json:"name" bson:"name"` // e.g. "Netflix Premium 3 Months"
	Duration      int       `json:"duration" bson:"duration"`
	DurationType  string    `json:"durationType" bson:"durationType"` // days, months, years
	Price         float64   `json:"price" bson:"price"`
	OriginalPrice float64   `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Features      []string  `json:"features" bson:"features"`
	Description   string    `json:"description" bson:"description"`
	Popular       bool      `json:"popular" bson:"popular"`
	Promotion     bool      `json:"promotion" bson:"promotion"`
	Badge         string    `json:"badge,omitempty" bson:"badge,omitempty"`
	Active        bool      `json:"active" bson:"active"`
	MaxUsers      int       `json:"maxUsers,omitempty" bson:"maxUsers,omitempty"`
	Quality       string    `json:"quality,omitempty" bson:"quality,omitempty"` // e.g. "4K", "HD"
	Devices       int       `json:"devices,omitempty" bson:"devices,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Category is a derived descriptor, never stored.
type Category struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}
