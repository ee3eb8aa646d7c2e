package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoRepository implements Repository on top of a single mongo collection.
type mongoRepository[T any] struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a Repository backed by coll.
func NewMongoRepository[T any](coll *mongo.Collection) Repository[T] {
	return &mongoRepository[T]{coll: coll}
}

func (r *mongoRepository[T]) Create(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", r.coll.Name(), ErrDuplicate)
		}
		return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", r.coll.Name(), err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: unexpected id type %T", r.coll.Name(), res.InsertedID)
	}
	return id, nil
}

func (r *mongoRepository[T]) List(ctx context.Context) ([]T, error) {
	return r.find(ctx, bson.M{}, options.Find())
}

func (r *mongoRepository[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoRepository[T]) FindOneBy(ctx context.Context, field, value string) (*T, error) {
	return r.findOne(ctx, bson.M{field: value})
}

func (r *mongoRepository[T]) ListBy(ctx context.Context, field, value string) ([]T, error) {
	opts := options.Find().SetSort(NewestFirst())
	return r.find(ctx, bson.M{field: value}, opts)
}

func (r *mongoRepository[T]) Search(ctx context.Context, term string, fields ...string) ([]T, error) {
	if len(fields) == 0 {
		return []T{}, nil
	}
	return r.find(ctx, SearchFilter(term, fields...), options.Find())
}

func (r *mongoRepository[T]) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("update %s in %s: %w", id.Hex(), r.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return 0, fmt.Errorf("update %s in %s: %w", id.Hex(), r.coll.Name(), ErrNotFound)
	}
	return res.ModifiedCount, nil
}

func (r *mongoRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s from %s: %w", id.Hex(), r.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete %s from %s: %w", id.Hex(), r.coll.Name(), ErrNotFound)
	}
	return nil
}

func (r *mongoRepository[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var out T
	if err := r.coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find one in %s: %w", r.coll.Name(), err)
	}
	return &out, nil
}

func (r *mongoRepository[T]) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
	}
	return out, nil
}

// NewestFirst sorts by _id descending; ObjectIDs start with their creation
// time, so this is reverse insertion order.
func NewestFirst() bson.D {
	return bson.D{{Key: "_id", Value: -1}}
}

// SearchFilter builds an $or of case-insensitive regex matches. The term is
// quoted so it is matched literally.
func SearchFilter(term string, fields ...string) bson.M {
	pattern := regexp.QuoteMeta(term)
	clauses := make(bson.A, 0, len(fields))
	for _, field := range fields {
		clauses = append(clauses, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return bson.M{"$or": clauses}
}
