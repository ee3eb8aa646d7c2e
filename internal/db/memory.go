package db

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust-backend/internal/models"
)

// memoryRepository keeps documents as bson.M in insertion order. Documents
// are copied through bson on every read and write so callers never share
// state with the store, matching what a round trip through mongo gives.
type memoryRepository[T any] struct {
	name   string
	unique []string

	mu   sync.RWMutex
	docs []bson.M
}

// NewMemoryRepository returns an in-process Repository. Fields listed in
// unique behave like a unique index.
func NewMemoryRepository[T any](name string, unique ...string) Repository[T] {
	return &memoryRepository[T]{name: name, unique: unique}
}

// NewMemoryStore builds a Store whose collections live in process memory.
// With uniqueIndexes the natural keys are enforced like EnsureIndexes does
// for mongo.
func NewMemoryStore(uniqueIndexes bool) *Store {
	key := func(collection string) []string {
		if !uniqueIndexes {
			return nil
		}
		if field, ok := uniqueKeys[collection]; ok {
			return []string{field}
		}
		return nil
	}
	return &Store{
		Users:    NewMemoryRepository[models.User](UsersCollection, key(UsersCollection)...),
		Roles:    NewMemoryRepository[models.UserRole](RolesCollection, key(RolesCollection)...),
		Services: NewMemoryRepository[models.Service](ServicesCollection),
		Packages: NewMemoryRepository[models.Document](PackagesCollection),
		Blogs:    NewMemoryRepository[models.Blog](BlogsCollection),
		Guides:   NewMemoryRepository[models.Guide](GuidesCollection),
		Bookings: NewMemoryRepository[models.Document](BookingsCollection),
		Payments: NewMemoryRepository[models.Document](PaymentsCollection),
	}
}

func (r *memoryRepository[T]) Create(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return primitive.NilObjectID, err
	}
	raw, err := toRaw(*doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", r.name, err)
	}
	id, ok := raw["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		raw["_id"] = id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(id) >= 0 || r.violatesUnique(raw, id) {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", r.name, ErrDuplicate)
	}
	r.docs = append(r.docs, raw)
	return id, nil
}

func (r *memoryRepository[T]) List(ctx context.Context) ([]T, error) {
	return r.collect(ctx, false, func(bson.M) bool { return true })
}

func (r *memoryRepository[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return r.first(ctx, func(doc bson.M) bool { return doc["_id"] == id })
}

func (r *memoryRepository[T]) FindOneBy(ctx context.Context, field, value string) (*T, error) {
	return r.first(ctx, func(doc bson.M) bool { return stringField(doc, field) == value && hasField(doc, field) })
}

func (r *memoryRepository[T]) ListBy(ctx context.Context, field, value string) ([]T, error) {
	return r.collect(ctx, true, func(doc bson.M) bool { return hasField(doc, field) && stringField(doc, field) == value })
}

func (r *memoryRepository[T]) Search(ctx context.Context, term string, fields ...string) ([]T, error) {
	needle := strings.ToLower(term)
	return r.collect(ctx, false, func(doc bson.M) bool {
		for _, field := range fields {
			if s, ok := doc[field].(string); ok && strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
		return false
	})
}

func (r *memoryRepository[T]) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, ok := fields["_id"]; ok {
		return 0, fmt.Errorf("update %s in %s: the _id field is immutable", id.Hex(), r.name)
	}
	set, err := toRaw(fields)
	if err != nil {
		return 0, fmt.Errorf("update %s in %s: %w", id.Hex(), r.name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return 0, fmt.Errorf("update %s in %s: %w", id.Hex(), r.name, ErrNotFound)
	}

	merged := make(bson.M, len(r.docs[i])+len(set))
	for k, v := range r.docs[i] {
		merged[k] = v
	}
	var modified int64
	for k, v := range set {
		if !reflect.DeepEqual(merged[k], v) {
			merged[k] = v
			modified = 1
		}
	}
	if r.violatesUnique(merged, id) {
		return 0, fmt.Errorf("update %s in %s: %w", id.Hex(), r.name, ErrDuplicate)
	}
	r.docs[i] = merged
	return modified, nil
}

func (r *memoryRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete %s from %s: %w", id.Hex(), r.name, ErrNotFound)
	}
	r.docs = append(r.docs[:i], r.docs[i+1:]...)
	return nil
}

func (r *memoryRepository[T]) first(ctx context.Context, match func(bson.M) bool) (*T, error) {
	found, err := r.collect(ctx, false, match)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return &found[0], nil
}

func (r *memoryRepository[T]) collect(ctx context.Context, newestFirst bool, match func(bson.M) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0)
	for n := range r.docs {
		i := n
		if newestFirst {
			i = len(r.docs) - 1 - n
		}
		if !match(r.docs[i]) {
			continue
		}
		var doc T
		if err := fromRaw(r.docs[i], &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.name, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// indexOf must be called with r.mu held.
func (r *memoryRepository[T]) indexOf(id primitive.ObjectID) int {
	for i, doc := range r.docs {
		if doc["_id"] == id {
			return i
		}
	}
	return -1
}

// violatesUnique must be called with r.mu held.
func (r *memoryRepository[T]) violatesUnique(raw bson.M, self primitive.ObjectID) bool {
	for _, field := range r.unique {
		value, ok := raw[field]
		if !ok {
			continue
		}
		for _, doc := range r.docs {
			if doc["_id"] == self {
				continue
			}
			if other, ok := doc[field]; ok && reflect.DeepEqual(other, value) {
				return true
			}
		}
	}
	return false
}

func hasField(doc bson.M, field string) bool {
	_, ok := doc[field]
	return ok
}

func stringField(doc bson.M, field string) string {
	s, _ := doc[field].(string)
	return s
}

func toRaw(v interface{}) (bson.M, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("empty document")
	}
	return raw, nil
}

func fromRaw(raw bson.M, out interface{}) error {
	data, err := bson.Marshal(raw)
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, out)
}
