package db

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust-backend/internal/models"
)

func TestMemoryRepository_CreateAssignsID(t *testing.T) {
	repo := NewMemoryRepository[models.User](UsersCollection)
	ctx := context.Background()

	id, err := repo.Create(ctx, &models.User{Email: "a@x.com", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id.IsZero() {
		t.Fatal("Create() returned a zero id")
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != id || got.Email != "a@x.com" {
		t.Errorf("Get() = %+v, want id %s and email a@x.com", got, id.Hex())
	}
}

func TestMemoryRepository_GetMissing(t *testing.T) {
	repo := NewMemoryRepository[models.Blog](BlogsCollection)
	_, err := repo.Get(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepository_ListByNewestFirst(t *testing.T) {
	repo := NewMemoryRepository[models.Document](BookingsCollection)
	ctx := context.Background()

	for _, spot := range []string{"first", "second", "third"} {
		if _, err := repo.Create(ctx, &models.Document{"userEmail": "a@x.com", "spot": spot}); err != nil {
			t.Fatalf("Create(%s) error = %v", spot, err)
		}
	}
	if _, err := repo.Create(ctx, &models.Document{"userEmail": "b@x.com", "spot": "other"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.ListBy(ctx, models.FieldUserEmail, "a@x.com")
	if err != nil {
		t.Fatalf("ListBy() error = %v", err)
	}
	want := []string{"third", "second", "first"}
	if len(got) != len(want) {
		t.Fatalf("ListBy() returned %d docs, want %d", len(got), len(want))
	}
	for i, doc := range got {
		if doc.String("spot") != want[i] {
			t.Errorf("ListBy()[%d] spot = %q, want %q", i, doc.String("spot"), want[i])
		}
	}
}

func TestMemoryRepository_ListEmptyIsNotNil(t *testing.T) {
	repo := NewMemoryRepository[models.Guide](GuidesCollection)
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", got)
	}
}

func TestMemoryRepository_Search(t *testing.T) {
	repo := NewMemoryRepository[models.User](UsersCollection)
	ctx := context.Background()
	users := []models.User{
		{Name: "Alice Rahman", Email: "alice@x.com", Role: "user"},
		{Name: "Bob", Email: "bob@x.com", Role: "member"},
		{Name: "Carol (a.k.a. C)", Email: "carol@x.com", Role: "user"},
	}
	for i := range users {
		if _, err := repo.Create(ctx, &users[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		term string
		want int
	}{
		{"ALICE", 1},
		{"member", 1},
		{"x.com", 3},
		{"(a.k.a.", 1},
		{"a.c", 0},
		{"nobody", 0},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.term, "name", "email", "role")
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Search(%q) returned %d users, want %d", tt.term, len(got), tt.want)
			}
		})
	}
}

func TestMemoryRepository_UpdateCountsModifications(t *testing.T) {
	repo := NewMemoryRepository[models.Document](PackagesCollection)
	ctx := context.Background()
	id, err := repo.Create(ctx, &models.Document{"email": "a@x.com", "status": "pending"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	n, err := repo.Update(ctx, id, map[string]interface{}{"status": "approved"})
	if err != nil || n != 1 {
		t.Fatalf("Update() = %d, %v; want 1, nil", n, err)
	}
	n, err = repo.Update(ctx, id, map[string]interface{}{"status": "approved"})
	if err != nil || n != 0 {
		t.Fatalf("repeated Update() = %d, %v; want 0, nil", n, err)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.String("status") != "approved" || got.String("email") != "a@x.com" {
		t.Errorf("Get() = %v, want status approved and email kept", *got)
	}

	if _, err := repo.Update(ctx, primitive.NewObjectID(), map[string]interface{}{"status": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := NewMemoryRepository[models.UserRole](RolesCollection)
	ctx := context.Background()
	id, err := repo.Create(ctx, &models.UserRole{Role: "admin"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_UniqueIndexes(t *testing.T) {
	ctx := context.Background()

	indexed := NewMemoryStore(true)
	if _, err := indexed.Users.Create(ctx, &models.User{Email: "a@x.com"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := indexed.Users.Create(ctx, &models.User{Email: "a@x.com"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate Create() error = %v, want ErrDuplicate", err)
	}

	plain := NewMemoryStore(false)
	for i := 0; i < 2; i++ {
		if _, err := plain.Roles.Create(ctx, &models.UserRole{Role: "admin"}); err != nil {
			t.Fatalf("Create() #%d without indexes error = %v", i, err)
		}
	}
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	repo := NewMemoryRepository[models.Service](ServicesCollection)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.List(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("List() error = %v, want context.Canceled", err)
	}
}

func TestSearchFilter(t *testing.T) {
	filter := SearchFilter("a.b", "name", "email")
	clauses, ok := filter["$or"].(bson.A)
	if !ok || len(clauses) != 2 {
		t.Fatalf("SearchFilter() $or = %#v, want two clauses", filter["$or"])
	}
	first := clauses[0].(bson.M)["name"].(bson.M)
	if first["$regex"] != `a\.b` || first["$options"] != "i" {
		t.Errorf("SearchFilter() name clause = %v, want quoted case-insensitive regex", first)
	}
}

func TestNewestFirst(t *testing.T) {
	sort := NewestFirst()
	if len(sort) != 1 || sort[0].Key != "_id" || sort[0].Value != -1 {
		t.Errorf("NewestFirst() = %v, want _id descending", sort)
	}
}
