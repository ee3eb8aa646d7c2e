package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust-backend/internal/models"
)

// Collection names inside the application database.
const (
	UsersCollection    = "users"
	RolesCollection    = "user_role"
	ServicesCollection = "service"
	PackagesCollection = "package"
	BlogsCollection    = "blog"
	GuidesCollection   = "guide"
	BookingsCollection = "bookingCollection"
	PaymentsCollection = "paymentCollection"
)

var (
	// ErrNotFound is returned when no document matches the given identifier or filter.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// Repository is the set of single-document operations handlers need on one
// collection. T is the Go shape documents are decoded into.
type Repository[T any] interface {
	Create(ctx context.Context, doc *T) (primitive.ObjectID, error)
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
	FindOneBy(ctx context.Context, field, value string) (*T, error)
	// ListBy returns documents whose field equals value, newest first.
	ListBy(ctx context.Context, field, value string) ([]T, error)
	// Search matches term as a case-insensitive substring of any of fields.
	Search(ctx context.Context, term string, fields ...string) ([]T, error)
	// Update applies fields with $set semantics and returns the modified count.
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Store bundles one repository per collection. It is created once at startup
// and handed to the services.
type Store struct {
	Users    Repository[models.User]
	Roles    Repository[models.UserRole]
	Services Repository[models.Service]
	Packages Repository[models.Document]
	Blogs    Repository[models.Blog]
	Guides   Repository[models.Guide]
	Bookings Repository[models.Document]
	Payments Repository[models.Document]
}
