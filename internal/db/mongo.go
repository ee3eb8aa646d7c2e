package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"wanderlust-backend/internal/models"
)

// Connect creates the process-wide mongo client using the Stable API v1.
// A failed ping is logged but not returned: the HTTP listener starts either
// way and requests surface store errors as 500s.
func Connect(ctx context.Context, uri string, logger *zap.Logger) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect: %w", err)
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		logger.Error("MongoDB ping failed, continuing without a verified connection", zap.Error(err))
	} else {
		logger.Info("Pinged your deployment. Successfully connected to MongoDB.")
	}
	return client, nil
}

// NewMongoStore wires one repository per collection of database.
func NewMongoStore(database *mongo.Database) *Store {
	return &Store{
		Users:    NewMongoRepository[models.User](database.Collection(UsersCollection)),
		Roles:    NewMongoRepository[models.UserRole](database.Collection(RolesCollection)),
		Services: NewMongoRepository[models.Service](database.Collection(ServicesCollection)),
		Packages: NewMongoRepository[models.Document](database.Collection(PackagesCollection)),
		Blogs:    NewMongoRepository[models.Blog](database.Collection(BlogsCollection)),
		Guides:   NewMongoRepository[models.Guide](database.Collection(GuidesCollection)),
		Bookings: NewMongoRepository[models.Document](database.Collection(BookingsCollection)),
		Payments: NewMongoRepository[models.Document](database.Collection(PaymentsCollection)),
	}
}

// uniqueKeys lists the natural keys that get a unique index when
// ENSURE_INDEXES is enabled.
var uniqueKeys = map[string]string{
	UsersCollection: "email",
	RolesCollection: "role",
}

// EnsureIndexes creates the natural-key unique indexes. Failures (for example
// pre-existing duplicates) are logged and skipped.
func EnsureIndexes(ctx context.Context, database *mongo.Database, logger *zap.Logger) {
	for collection, field := range uniqueKeys {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(field + "_unique"),
		}
		name, err := database.Collection(collection).Indexes().CreateOne(ctx, model)
		if err != nil {
			logger.Warn("Could not create unique index",
				zap.String("collection", collection),
				zap.String("field", field),
				zap.Error(err))
			continue
		}
		logger.Info("Unique index ensured", zap.String("collection", collection), zap.String("index", name))
	}
}
