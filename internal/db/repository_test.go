package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"wanderlust-backend/internal/models"
)

// newTestDatabase connects to the server in MONGO_URI and returns a scratch
// database that is dropped when the test ends.
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping mongo repository tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := Connect(ctx, uri, zap.NewNop())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	database := client.Database(fmt.Sprintf("wanderlust_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = database.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return database
}

func TestMongoRepository_MissingDocuments(t *testing.T) {
	store := NewMongoStore(newTestDatabase(t))
	ctx := context.Background()
	missing := primitive.NewObjectID()

	if _, err := store.Blogs.Get(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if _, err := store.Users.FindOneBy(ctx, models.FieldEmail, "nobody@x.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindOneBy() error = %v, want ErrNotFound", err)
	}
	if _, err := store.Packages.Update(ctx, missing, map[string]interface{}{"status": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if err := store.Roles.Delete(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestMongoRepository_CRUD(t *testing.T) {
	store := NewMongoStore(newTestDatabase(t))
	ctx := context.Background()

	var ids []primitive.ObjectID
	for _, spot := range []string{"first", "second"} {
		id, err := store.Bookings.Create(ctx, &models.Document{"userEmail": "a@x.com", "spot": spot})
		if err != nil {
			t.Fatalf("Create(%s) error = %v", spot, err)
		}
		ids = append(ids, id)
	}
	if _, err := store.Bookings.Create(ctx, &models.Document{"userEmail": "b@x.com", "spot": "other"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	mine, err := store.Bookings.ListBy(ctx, models.FieldUserEmail, "a@x.com")
	if err != nil {
		t.Fatalf("ListBy() error = %v", err)
	}
	if len(mine) != 2 || mine[0].String("spot") != "second" {
		t.Errorf("ListBy() = %v, want second then first", mine)
	}

	n, err := store.Bookings.Update(ctx, ids[0], map[string]interface{}{"spot": "moved"})
	if err != nil || n != 1 {
		t.Fatalf("Update() = %d, %v; want 1, nil", n, err)
	}
	if n, err = store.Bookings.Update(ctx, ids[0], map[string]interface{}{"spot": "moved"}); err != nil || n != 0 {
		t.Errorf("repeated Update() = %d, %v; want 0, nil", n, err)
	}

	found, err := store.Bookings.Search(ctx, "MOV", "spot")
	if err != nil || len(found) != 1 {
		t.Errorf("Search() = %v, %v; want one match", found, err)
	}

	if err := store.Bookings.Delete(ctx, ids[1]); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Bookings.Delete(ctx, ids[1]); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestMongoRepository_UniqueIndexes(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()
	EnsureIndexes(ctx, database, zap.NewNop())
	store := NewMongoStore(database)

	if _, err := store.Users.Create(ctx, &models.User{Email: "dup@x.com"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Users.Create(ctx, &models.User{Email: "dup@x.com"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate Create() error = %v, want ErrDuplicate", err)
	}
}
