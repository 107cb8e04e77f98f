package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// SQLCollection is the gorm backed Collection. Logical field names (camelCase) are mapped to
// columns through the connection's naming strategy.
type SQLCollection[T any, PT interface {
	*T
	Document
}] struct {
	db     *gorm.DB
	schema *schema.Schema
}

// NewSQLCollection parses T's schema once so that field lookups do not touch reflection again.
// The *gorm.DB should be opened with TranslateError enabled.
func NewSQLCollection[T any, PT interface {
	*T
	Document
}](db *gorm.DB) (*SQLCollection[T, PT], error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return &SQLCollection[T, PT]{db: db, schema: stmt.Schema}, nil
}

func (c *SQLCollection[T, PT]) Find(ctx context.Context, filter Filter, opts FindOptions) ([]T, error) {
	q := c.where(c.db.WithContext(ctx).Model(new(T)), filter)

	if opts.SortField != "" {
		if col, ok := c.column(opts.SortField); ok {
			q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: !opts.SortAsc})
		}
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: c.pk()}, Desc: !opts.SortAsc})

	if opts.Limit > 0 {
		q = q.Limit(int(opts.Limit))
	}
	if opts.Skip > 0 {
		q = q.Offset(int(opts.Skip))
	}

	var docs []T
	if err := q.Find(&docs).Error; err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []T{}
	}
	return docs, nil
}

func (c *SQLCollection[T, PT]) Count(ctx context.Context, filter Filter) (int64, error) {
	var total int64
	err := c.where(c.db.WithContext(ctx).Model(new(T)), filter).Count(&total).Error
	return total, err
}

func (c *SQLCollection[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T
	if err := c.db.WithContext(ctx).Where(c.pkEq(id)).Take(&doc).Error; err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

func (c *SQLCollection[T, PT]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var doc T
	q := c.where(c.db.WithContext(ctx).Model(new(T)), filter).
		Order(clause.OrderByColumn{Column: clause.Column{Name: c.pk()}})
	if err := q.Take(&doc).Error; err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

func (c *SQLCollection[T, PT]) Insert(ctx context.Context, doc *T) error {
	pt := PT(doc)
	if pt.DocumentID() == "" {
		pt.SetDocumentID(primitive.NewObjectID().Hex())
	}
	pt.Touch(time.Now().UTC(), true)
	keys := pt.UniqueKeys()

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := c.checkUnique(tx, keys, pt.DocumentID()); err != nil {
			return err
		}
		if err := tx.Create(doc).Error; err != nil {
			return duplicated(err, keys)
		}
		return nil
	})
}

func (c *SQLCollection[T, PT]) UpdateByID(ctx context.Context, id string, set Fields) (*T, error) {
	var updated *T
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current T
		if err := tx.Where(c.pkEq(id)).Take(&current).Error; err != nil {
			return notFound(err)
		}
		doc, err := c.update(tx, id, set)
		updated = doc
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *SQLCollection[T, PT]) UpsertOne(ctx context.Context, filter Filter, set Fields) (*T, error) {
	var result *T
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current T
		err := c.where(tx.Model(new(T)), filter).
			Order(clause.OrderByColumn{Column: clause.Column{Name: c.pk()}}).
			Take(&current).Error
		switch {
		case err == nil:
			doc, err := c.update(tx, PT(&current).DocumentID(), set)
			result = doc
			return err
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		id := primitive.NewObjectID().Hex()
		values, err := c.columns(set)
		if err != nil {
			return err
		}
		if err := c.checkUnique(tx, c.uniqueIn(set), ""); err != nil {
			return err
		}
		now := time.Now().UTC()
		values[c.pk()] = id
		values[c.mustColumn("createdAt")] = now
		values[c.mustColumn("updatedAt")] = now
		if err := tx.Model(new(T)).Create(values).Error; err != nil {
			return duplicated(err, c.uniqueIn(set))
		}

		var inserted T
		if err := tx.Where(c.pkEq(id)).Take(&inserted).Error; err != nil {
			return err
		}
		result = &inserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *SQLCollection[T, PT]) DeleteByID(ctx context.Context, id string) (*T, error) {
	var doc T
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(c.pkEq(id)).Take(&doc).Error; err != nil {
			return notFound(err)
		}
		return tx.Where(c.pkEq(id)).Delete(new(T)).Error
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *SQLCollection[T, PT]) DeleteOne(ctx context.Context, filter Filter) (*T, error) {
	var doc T
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := c.where(tx.Model(new(T)), filter).
			Order(clause.OrderByColumn{Column: clause.Column{Name: c.pk()}}).
			Take(&doc).Error
		if err != nil {
			return notFound(err)
		}
		return tx.Where(c.pkEq(PT(&doc).DocumentID())).Delete(new(T)).Error
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// update writes set (plus updatedAt) to the row and reads it back, inside tx.
func (c *SQLCollection[T, PT]) update(tx *gorm.DB, id string, set Fields) (*T, error) {
	values, err := c.columns(set)
	if err != nil {
		return nil, err
	}
	if err := c.checkUnique(tx, c.uniqueIn(set), id); err != nil {
		return nil, err
	}
	values[c.mustColumn("updatedAt")] = time.Now().UTC()

	if err := tx.Model(new(T)).Where(c.pkEq(id)).Updates(values).Error; err != nil {
		return nil, duplicated(err, c.uniqueIn(set))
	}

	var doc T
	if err := tx.Where(c.pkEq(id)).Take(&doc).Error; err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

// where appends filter as WHERE expressions. A condition on a field T does not have matches
// nothing, the same way a document store treats a missing field.
func (c *SQLCollection[T, PT]) where(q *gorm.DB, filter Filter) *gorm.DB {
	if len(filter) == 0 {
		return q
	}
	exprs := make([]clause.Expression, 0, len(filter))
	for _, cond := range filter {
		col, ok := c.column(cond.Field)
		if !ok {
			exprs = append(exprs, clause.Expr{SQL: "1 = 0"})
			continue
		}
		column := clause.Column{Name: col}
		switch cond.Op {
		case OpEq:
			exprs = append(exprs, clause.Eq{Column: column, Value: cond.Value})
		case OpGte:
			exprs = append(exprs, clause.Gte{Column: column, Value: cond.Value})
		case OpLte:
			exprs = append(exprs, clause.Lte{Column: column, Value: cond.Value})
		case OpContainsFold:
			pattern := "%" + escapeLike(strings.ToLower(fmt.Sprint(cond.Value))) + "%"
			exprs = append(exprs, clause.Expr{
				SQL:  "LOWER(?) LIKE ? ESCAPE '!'",
				Vars: []interface{}{column, pattern},
			})
		}
	}
	return q.Clauses(clause.Where{Exprs: exprs})
}

func (c *SQLCollection[T, PT]) checkUnique(tx *gorm.DB, keys map[string]interface{}, selfID string) error {
	for _, field := range sortedKeys(keys) {
		col, ok := c.column(field)
		if !ok {
			continue
		}
		value := keys[field]
		q := tx.Model(new(T)).Where(clause.Eq{Column: clause.Column{Name: col}, Value: value})
		if selfID != "" {
			q = q.Where(clause.Neq{Column: clause.Column{Name: c.pk()}, Value: selfID})
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return &DuplicateKeyError{Field: field, Value: value}
		}
	}
	return nil
}

// uniqueIn returns the unique keys of T that set writes to.
func (c *SQLCollection[T, PT]) uniqueIn(set Fields) map[string]interface{} {
	keys := make(map[string]interface{})
	for field := range PT(new(T)).UniqueKeys() {
		if v, ok := set[field]; ok {
			keys[field] = v
		}
	}
	return keys
}

func (c *SQLCollection[T, PT]) columns(set Fields) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(set)+1)
	for field, v := range set {
		col, ok := c.column(field)
		if !ok {
			return nil, fmt.Errorf("unknown field %q for %s", field, c.schema.Name)
		}
		values[col] = v
	}
	return values, nil
}

func (c *SQLCollection[T, PT]) column(field string) (string, bool) {
	if field == IDField {
		return c.pk(), true
	}
	f := c.schema.LookUpField(c.db.NamingStrategy.ColumnName("", field))
	if f == nil {
		f = c.schema.LookUpField(field)
	}
	if f == nil || f.DBName == "" {
		return "", false
	}
	return f.DBName, true
}

func (c *SQLCollection[T, PT]) mustColumn(field string) string {
	col, ok := c.column(field)
	if !ok {
		panic(fmt.Sprintf("store: %s has no %s column", c.schema.Name, field))
	}
	return col
}

func (c *SQLCollection[T, PT]) pk() string {
	return c.schema.PrioritizedPrimaryField.DBName
}

func (c *SQLCollection[T, PT]) pkEq(id string) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: c.pk()}, Value: id}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// duplicated classifies a driver level unique violation against the keys being written.
func duplicated(err error, keys map[string]interface{}) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	dup := &DuplicateKeyError{}
	if fields := sortedKeys(keys); len(fields) > 0 {
		dup.Field = fields[0]
		dup.Value = keys[fields[0]]
	}
	return dup
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
