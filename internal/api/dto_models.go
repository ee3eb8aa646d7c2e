package api

import "wanderlust-backend/internal/core"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string                `json:"message"`
	Errors  []core.FieldViolation `json:"errors,omitempty"`
}

// MessageResponse carries an informational message, such as a skipped duplicate insert.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse reports a successful insert.
type CreatedResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdatedResponse reports a successful update; ModifiedCount is 0 when the
// document already held the submitted values.
type UpdatedResponse struct {
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

// DeletedResponse reports a successful delete.
type DeletedResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
