package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role values accepted by the role-update endpoint.
const (
	RoleUser   = "user"
	RoleMember = "member"
)

// User represents a registered traveller. Email is the business key.
type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name,omitempty" bson:"name,omitempty"`
	Email    string             `json:"email" bson:"email" validate:"required"`
	PhotoURL string             `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Role     string             `json:"role" bson:"role"`
}

// UserRole is an entry of the user_role collection; Role is the natural key.
type UserRole struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Role string             `json:"role" bson:"role" validate:"required"`
}
