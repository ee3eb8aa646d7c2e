package core

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust-backend/internal/db"
	"wanderlust-backend/internal/models"
)

// Rules describe how one resource kind is validated, defaulted and owned.
type Rules[T any] struct {
	// Kind names the resource in wrapped errors.
	Kind string
	// OwnerField holds the owner's email address.
	OwnerField string
	// Prepare validates a new document and fills its defaults. It must
	// clear any identifier supplied by the client.
	Prepare func(doc *T) error
	// Status checks and normalises the value of a status update.
	Status func(value interface{}) (interface{}, error)
}

type resourceService[T any] struct {
	repo  db.Repository[T]
	rules Rules[T]
}

// NewResourceService creates a ResourceService for one collection.
func NewResourceService[T any](repo db.Repository[T], rules Rules[T]) ResourceService[T] {
	if rules.Status == nil {
		rules.Status = anyStatus
	}
	return &resourceService[T]{repo: repo, rules: rules}
}

func (s *resourceService[T]) Create(ctx context.Context, doc T) (primitive.ObjectID, error) {
	if err := s.rules.Prepare(&doc); err != nil {
		return primitive.NilObjectID, err
	}
	id, err := s.repo.Create(ctx, &doc)
	if err != nil {
		return primitive.NilObjectID, storeErr("insert "+s.rules.Kind, err)
	}
	return id, nil
}

func (s *resourceService[T]) List(ctx context.Context) ([]T, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeErr("list "+s.rules.Kind, err)
	}
	return docs, nil
}

func (s *resourceService[T]) Get(ctx context.Context, id string) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	doc, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, storeErr("get "+s.rules.Kind, err)
	}
	return doc, nil
}

func (s *resourceService[T]) ListOwned(ctx context.Context, email string) ([]T, error) {
	if email == "" {
		return nil, missingField(s.rules.OwnerField)
	}
	docs, err := s.repo.ListBy(ctx, s.rules.OwnerField, email)
	if err != nil {
		return nil, storeErr("list own "+s.rules.Kind, err)
	}
	return docs, nil
}

func (s *resourceService[T]) Update(ctx context.Context, id string, fields models.Document) (int64, error) {
	return updateFields(ctx, s.repo, s.rules.Kind, id, fields)
}

func (s *resourceService[T]) SetStatus(ctx context.Context, id string, status interface{}) (int64, error) {
	oid, err := ParseID(id)
	if err != nil {
		return 0, err
	}
	value, err := s.rules.Status(status)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.Update(ctx, oid, map[string]interface{}{models.FieldStatus: value})
	if err != nil {
		return 0, storeErr("update "+s.rules.Kind+" status", err)
	}
	return n, nil
}

func (s *resourceService[T]) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.repo, s.rules.Kind, id)
}

// ServiceRules stamps createdAt with now on insert.
func ServiceRules(now func() time.Time) Rules[models.Service] {
	return Rules[models.Service]{
		Kind:       "service",
		OwnerField: models.FieldEmail,
		Prepare: func(s *models.Service) error {
			s.ID = primitive.NilObjectID
			if err := validateStruct(s); err != nil {
				return err
			}
			s.CreatedAt = now().UTC()
			return nil
		},
	}
}

// PackageRules accepts any payload with an owner email; status starts as pending.
func PackageRules() Rules[models.Document] {
	return Rules[models.Document]{
		Kind:       "package",
		OwnerField: models.FieldEmail,
		Prepare: func(doc *models.Document) error {
			*doc = doc.WithoutID()
			if doc.String(models.FieldEmail) == "" {
				return missingField(models.FieldEmail)
			}
			if (*doc)[models.FieldStatus] == nil {
				(*doc)[models.FieldStatus] = models.PackageStatusPending
			}
			return nil
		},
	}
}

// BlogRules requires the article fields; status starts as pending and must stay a string.
func BlogRules() Rules[models.Blog] {
	return Rules[models.Blog]{
		Kind:       "blog",
		OwnerField: models.FieldEmail,
		Prepare: func(b *models.Blog) error {
			b.ID = primitive.NilObjectID
			if err := validateStruct(b); err != nil {
				return err
			}
			if b.Status == "" {
				b.Status = models.BlogStatusPending
			}
			return nil
		},
		Status: stringStatus,
	}
}

// GuideRules requires the profile links; status is an integer starting at 1.
func GuideRules() Rules[models.Guide] {
	return Rules[models.Guide]{
		Kind:       "guide",
		OwnerField: models.FieldEmail,
		Prepare: func(g *models.Guide) error {
			g.ID = primitive.NilObjectID
			if err := validateStruct(g); err != nil {
				return err
			}
			if g.Status == 0 {
				g.Status = models.GuideStatusActive
			}
			return nil
		},
		Status: intStatus,
	}
}

// OwnedDocumentRules accepts any payload that names its owner in ownerField.
func OwnedDocumentRules(ownerField string) Rules[models.Document] {
	return Rules[models.Document]{
		Kind:       "document",
		OwnerField: ownerField,
		Prepare: func(doc *models.Document) error {
			*doc = doc.WithoutID()
			if doc.String(ownerField) == "" {
				return missingField(ownerField)
			}
			return nil
		},
	}
}

func anyStatus(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, missingField(models.FieldStatus)
	}
	return v, nil
}

func stringStatus(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, missingField(models.FieldStatus)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil, invalidField(models.FieldStatus, "must be a non-empty string")
	}
	return s, nil
}

// intStatus accepts JSON numbers with no fractional part.
func intStatus(v interface{}) (interface{}, error) {
	switch n := v.(type) {
	case nil:
		return nil, missingField(models.FieldStatus)
	case int:
		return n, nil
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt32 && n <= math.MaxInt32 {
			return int(n), nil
		}
	}
	return nil, invalidField(models.FieldStatus, "must be an integer")
}
