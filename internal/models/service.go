package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a travel service card shown on the landing page.
type Service struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title" validate:"required"`
	Subtitle  string             `json:"subtitle" bson:"subtitle" validate:"required"`
	IconURL   string             `json:"iconUrl" bson:"iconUrl" validate:"required"`
	Email     string             `json:"email" bson:"email" validate:"required"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
