package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust-backend/internal/db"
	"wanderlust-backend/internal/models"
)

// UserService defines the operations on registered users.
type UserService interface {
	Exists(ctx context.Context, email string) (bool, error)
	// RoleOf returns the stored role for email, or models.RoleUser when the
	// user has no record yet.
	RoleOf(ctx context.Context, email string) (string, error)
	// Create inserts user unless one with the same email exists, in which
	// case ErrAlreadyExists is returned and nothing is written.
	Create(ctx context.Context, user models.User) (primitive.ObjectID, error)
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, fields models.Document) (int64, error)
	UpdateRole(ctx context.Context, id, role string) (int64, error)
	Delete(ctx context.Context, id string) error
	// Search returns users whose name, email or role contains query,
	// ignoring case. An empty query matches nothing.
	Search(ctx context.Context, query string) ([]models.User, error)
}

// RoleService defines the operations on the role catalogue.
type RoleService interface {
	Create(ctx context.Context, role models.UserRole) (primitive.ObjectID, error)
	List(ctx context.Context) ([]models.UserRole, error)
	Delete(ctx context.Context, id string) error
}

// ResourceService defines the operations shared by the owned resources
// (services, packages, blogs, guides, bookings and payments).
type ResourceService[T any] interface {
	Create(ctx context.Context, doc T) (primitive.ObjectID, error)
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	// ListOwned returns the documents whose owner field equals email, newest first.
	ListOwned(ctx context.Context, email string) ([]T, error)
	Update(ctx context.Context, id string, fields models.Document) (int64, error)
	SetStatus(ctx context.Context, id string, status interface{}) (int64, error)
	Delete(ctx context.Context, id string) error
}

// Services bundles every service the HTTP layer needs.
type Services struct {
	Users          UserService
	Roles          RoleService
	TravelServices ResourceService[models.Service]
	Packages       ResourceService[models.Document]
	Blogs          ResourceService[models.Blog]
	Guides         ResourceService[models.Guide]
	Bookings       ResourceService[models.Document]
	Payments       ResourceService[models.Document]
}

// NewServices wires the services on top of store. now stamps creation times.
func NewServices(store *db.Store, now func() time.Time) *Services {
	return &Services{
		Users:          NewUserService(store.Users),
		Roles:          NewRoleService(store.Roles),
		TravelServices: NewResourceService(store.Services, ServiceRules(now)),
		Packages:       NewResourceService(store.Packages, PackageRules()),
		Blogs:          NewResourceService(store.Blogs, BlogRules()),
		Guides:         NewResourceService(store.Guides, GuideRules()),
		Bookings:       NewResourceService(store.Bookings, OwnedDocumentRules(models.FieldUserEmail)),
		Payments:       NewResourceService(store.Payments, OwnedDocumentRules(models.FieldUserEmail)),
	}
}

// storeErr translates repository errors into service errors.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, db.ErrDuplicate):
		return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
