package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// GuideStatusActive is the status a guide profile starts with.
const GuideStatusActive = 1

// Guide is a local tour guide profile.
type Guide struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" validate:"required"`
	Image         string             `json:"image" bson:"image" validate:"required"`
	FbLink        string             `json:"fb_link" bson:"fb_link" validate:"required"`
	InstagramLink string             `json:"instagram_link" bson:"instagram_link" validate:"required"`
	Status        int                `json:"status" bson:"status"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
}
