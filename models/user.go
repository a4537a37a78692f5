package models

import "time"

// User is a back-office account. Customers never log in; only admins do.
type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Password  string    `json:"-" bson:"password"` // bcrypt hash
	Role      []string  `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	LastLogin time.Time `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
}
