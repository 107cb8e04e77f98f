// Package store is the persistence boundary of the API. Controllers only see Collection[T];
// the document (MongoDB) and relational (gorm) backends translate the backend-neutral Filter
// and Fields values into their native query languages.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a lookup, update or delete matches no document.
var ErrNotFound = errors.New("document not found")

// DuplicateKeyError is a unique constraint violation. Field is the logical (JSON) field name.
type DuplicateKeyError struct {
	Field string
	Value interface{}
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return "duplicate key"
	}
	return fmt.Sprintf("duplicate key: %s %v", e.Field, e.Value)
}

// IDField is the logical name of every document's identifier.
const IDField = "_id"

// Document is implemented by every persisted entity (through models.Base).
type Document interface {
	DocumentID() string
	SetDocumentID(id string)
	// Touch stamps UpdatedAt, and CreatedAt as well when created is true.
	Touch(now time.Time, created bool)
	// UniqueKeys returns the logical field names carrying a unique constraint and their values.
	UniqueKeys() map[string]interface{}
}

// Op is a comparison operator of a filter Condition.
type Op int

const (
	OpEq Op = iota
	OpGte
	OpLte
	// OpContainsFold is a case-insensitive literal substring match on strings.
	OpContainsFold
)

// Condition constrains one logical field.
type Condition struct {
	Field string
	Op    Op
	Value interface{}
}

// Filter is a conjunction of conditions. An empty filter matches every document.
type Filter []Condition

// Eq is a small helper for single equality filters.
func Eq(field string, value interface{}) Filter {
	return Filter{{Field: field, Op: OpEq, Value: value}}
}

// Fields is a set of logical field names and values to write.
type Fields map[string]interface{}

// FindOptions controls ordering and windowing of Find.
type FindOptions struct {
	Skip      int64
	Limit     int64
	SortField string
	SortAsc   bool
}

// Collection is the store contract used by controllers. Every method is a single atomic call.
type Collection[T any] interface {
	Find(ctx context.Context, filter Filter, opts FindOptions) ([]T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	FindByID(ctx context.Context, id string) (*T, error)
	FindOne(ctx context.Context, filter Filter) (*T, error)
	// Insert assigns an identifier (when empty) and timestamps before writing.
	Insert(ctx context.Context, doc *T) error
	// UpdateByID applies set to the document and returns the updated version.
	UpdateByID(ctx context.Context, id string, set Fields) (*T, error)
	// UpsertOne updates the first document matching filter, or inserts a new one built from set.
	UpsertOne(ctx context.Context, filter Filter, set Fields) (*T, error)
	DeleteByID(ctx context.Context, id string) (*T, error)
	DeleteOne(ctx context.Context, filter Filter) (*T, error)
}
