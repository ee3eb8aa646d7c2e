package core

import (
	"context"
	"errors"
	"testing"

	"wanderlust-backend/internal/db"
	"wanderlust-backend/internal/models"
)

func TestRoleService(t *testing.T) {
	ctx := context.Background()
	svc := NewRoleService(db.NewMemoryRepository[models.UserRole](db.RolesCollection))

	id, err := svc.Create(ctx, models.UserRole{Role: "guide"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, models.UserRole{Role: "guide"}); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate Create() error = %v, want ErrAlreadyExists", err)
	}
	if _, err := svc.Create(ctx, models.UserRole{}); !errors.Is(err, ErrMissingField) {
		t.Errorf("Create(empty) error = %v, want ErrMissingField", err)
	}

	roles, err := svc.List(ctx)
	if err != nil || len(roles) != 1 {
		t.Fatalf("List() = %v, %v; want one role", roles, err)
	}

	if err := svc.Delete(ctx, id.Hex()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(ctx, id.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(again) error = %v, want ErrNotFound", err)
	}
}
