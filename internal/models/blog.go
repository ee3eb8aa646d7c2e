package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const BlogStatusPending = "pending"

// Blog is a travel story written by a member.
type Blog struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title" validate:"required"`
	Article   string             `json:"article" bson:"article" validate:"required"`
	Thumbnail string             `json:"thumbnail" bson:"thumbnail" validate:"required"`
	Email     string             `json:"email" bson:"email" validate:"required"`
	Status    string             `json:"status" bson:"status"`
	VideoURL  string             `json:"videoUrl,omitempty" bson:"videoUrl,omitempty"`
}
