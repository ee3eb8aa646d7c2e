package core

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust-backend/internal/db"
	"wanderlust-backend/internal/models"
)

var userSearchFields = []string{"name", "email", "role"}

// userStringFields are the User fields a full update may only set to strings.
// Anything else would make the stored document undecodable.
var userStringFields = []string{"name", models.FieldEmail, "photoURL", "role"}

// userService implements UserService.
type userService struct {
	users db.Repository[models.User]
}

// NewUserService creates a new UserService instance.
func NewUserService(users db.Repository[models.User]) UserService {
	return &userService{users: users}
}

func (s *userService) Exists(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, missingField(models.FieldEmail)
	}
	_, err := s.users.FindOneBy(ctx, models.FieldEmail, email)
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeErr("find user by email", err)
	}
	return true, nil
}

func (s *userService) RoleOf(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindOneBy(ctx, models.FieldEmail, email)
	if errors.Is(err, db.ErrNotFound) {
		return models.RoleUser, nil
	}
	if err != nil {
		return "", storeErr("find user by email", err)
	}
	if user.Role == "" {
		return models.RoleUser, nil
	}
	return user.Role, nil
}

func (s *userService) Create(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	user.ID = primitive.NilObjectID
	if err := validateStruct(&user); err != nil {
		return primitive.NilObjectID, err
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	exists, err := s.Exists(ctx, user.Email)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if exists {
		return primitive.NilObjectID, ErrAlreadyExists
	}

	id, err := s.users.Create(ctx, &user)
	if err != nil {
		// A unique index turns the find-then-insert race into a duplicate key.
		return primitive.NilObjectID, storeErr("insert user", err)
	}
	return id, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, oid)
	if err != nil {
		return nil, storeErr("get user", err)
	}
	return user, nil
}

// Update applies an arbitrary field set. Known User fields must keep their
// string type, and email may not be blanked.
func (s *userService) Update(ctx context.Context, id string, fields models.Document) (int64, error) {
	for _, field := range userStringFields {
		v, ok := fields[field]
		if !ok {
			continue
		}
		str, isString := v.(string)
		if !isString {
			return 0, invalidField(field, "must be a string")
		}
		if field == models.FieldEmail && str == "" {
			return 0, missingField(field)
		}
	}
	return updateFields(ctx, s.users, "user", id, fields)
}

func (s *userService) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	oid, err := ParseID(id)
	if err != nil {
		return 0, err
	}
	if role != models.RoleUser && role != models.RoleMember {
		return 0, ErrInvalidRole
	}
	n, err := s.users.Update(ctx, oid, map[string]interface{}{"role": role})
	if err != nil {
		return 0, storeErr("update user role", err)
	}
	return n, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.users, "user", id)
}

func (s *userService) Search(ctx context.Context, query string) ([]models.User, error) {
	if query == "" {
		return []models.User{}, nil
	}
	users, err := s.users.Search(ctx, query, userSearchFields...)
	if err != nil {
		return nil, storeErr("search users", err)
	}
	return users, nil
}

// updateFields applies a client payload with $set semantics. The _id key is
// never written.
func updateFields[T any](ctx context.Context, repo db.Repository[T], kind, id string, fields models.Document) (int64, error) {
	oid, err := ParseID(id)
	if err != nil {
		return 0, err
	}
	set := fields.WithoutID()
	if len(set) == 0 {
		return 0, ErrEmptyUpdate
	}
	n, err := repo.Update(ctx, oid, set)
	if err != nil {
		return 0, storeErr("update "+kind, err)
	}
	return n, nil
}

func deleteByID[T any](ctx context.Context, repo db.Repository[T], kind, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, oid); err != nil {
		return storeErr("delete "+kind, err)
	}
	return nil
}
