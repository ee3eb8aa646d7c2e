package core

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust-backend/internal/db"
	"wanderlust-backend/internal/models"
)

type roleService struct {
	roles db.Repository[models.UserRole]
}

// NewRoleService creates a new RoleService instance.
func NewRoleService(roles db.Repository[models.UserRole]) RoleService {
	return &roleService{roles: roles}
}

// Create inserts role unless the same role name is already stored.
func (s *roleService) Create(ctx context.Context, role models.UserRole) (primitive.ObjectID, error) {
	role.ID = primitive.NilObjectID
	if err := validateStruct(&role); err != nil {
		return primitive.NilObjectID, err
	}

	_, err := s.roles.FindOneBy(ctx, "role", role.Role)
	switch {
	case err == nil:
		return primitive.NilObjectID, ErrAlreadyExists
	case !errors.Is(err, db.ErrNotFound):
		return primitive.NilObjectID, storeErr("find role", err)
	}

	id, err := s.roles.Create(ctx, &role)
	if err != nil {
		return primitive.NilObjectID, storeErr("insert role", err)
	}
	return id, nil
}

func (s *roleService) List(ctx context.Context) ([]models.UserRole, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, storeErr("list roles", err)
	}
	return roles, nil
}

func (s *roleService) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.roles, "role", id)
}
