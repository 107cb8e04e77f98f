package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection is the MongoDB backed Collection. Logical field names are used as-is as
// document keys, so the bson tags of T must match its json tags.
type MongoCollection[T any, PT interface {
	*T
	Document
}] struct {
	coll *mongo.Collection
}

func NewMongoCollection[T any, PT interface {
	*T
	Document
}](db *mongo.Database, name string) *MongoCollection[T, PT] {
	return &MongoCollection[T, PT]{coll: db.Collection(name)}
}

// EnsureIndexes creates a unique index for every unique key T declares.
func (c *MongoCollection[T, PT]) EnsureIndexes(ctx context.Context) error {
	keys := sortedKeys(PT(new(T)).UniqueKeys())
	if len(keys) == 0 {
		return nil
	}
	models := make([]mongo.IndexModel, 0, len(keys))
	for _, key := range keys {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}
	if _, err := c.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes on %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *MongoCollection[T, PT]) Find(ctx context.Context, filter Filter, opts FindOptions) ([]T, error) {
	dir := -1
	if opts.SortAsc {
		dir = 1
	}
	sort := bson.D{}
	if opts.SortField != "" && opts.SortField != IDField {
		sort = append(sort, bson.E{Key: opts.SortField, Value: dir})
	}
	sort = append(sort, bson.E{Key: IDField, Value: dir})

	findOpts := options.Find().SetSort(sort)
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cur, err := c.coll.Find(ctx, toBSON(filter), findOpts)
	if err != nil {
		return nil, err
	}
	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *MongoCollection[T, PT]) Count(ctx context.Context, filter Filter) (int64, error) {
	return c.coll.CountDocuments(ctx, toBSON(filter))
}

func (c *MongoCollection[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	return c.decode(c.coll.FindOne(ctx, bson.M{IDField: id}))
}

func (c *MongoCollection[T, PT]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	return c.decode(c.coll.FindOne(ctx, toBSON(filter), options.FindOne().SetSort(bson.D{{Key: IDField, Value: 1}})))
}

func (c *MongoCollection[T, PT]) Insert(ctx context.Context, doc *T) error {
	pt := PT(doc)
	if pt.DocumentID() == "" {
		pt.SetDocumentID(primitive.NewObjectID().Hex())
	}
	pt.Touch(time.Now().UTC(), true)

	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return duplicateKey(err, pt.UniqueKeys())
	}
	return nil
}

func (c *MongoCollection[T, PT]) UpdateByID(ctx context.Context, id string, set Fields) (*T, error) {
	update := bson.M{"$set": withUpdatedAt(set)}
	res := c.coll.FindOneAndUpdate(ctx, bson.M{IDField: id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	doc, err := c.decode(res)
	if err != nil {
		return nil, duplicateKey(err, c.uniqueIn(set))
	}
	return doc, nil
}

func (c *MongoCollection[T, PT]) UpsertOne(ctx context.Context, filter Filter, set Fields) (*T, error) {
	update := bson.M{
		"$set": withUpdatedAt(set),
		"$setOnInsert": bson.M{
			IDField:     primitive.NewObjectID().Hex(),
			"createdAt": time.Now().UTC(),
		},
	}
	res := c.coll.FindOneAndUpdate(ctx, toBSON(filter), update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After))
	doc, err := c.decode(res)
	if err != nil {
		return nil, duplicateKey(err, c.uniqueIn(set))
	}
	return doc, nil
}

func (c *MongoCollection[T, PT]) DeleteByID(ctx context.Context, id string) (*T, error) {
	return c.decode(c.coll.FindOneAndDelete(ctx, bson.M{IDField: id}))
}

func (c *MongoCollection[T, PT]) DeleteOne(ctx context.Context, filter Filter) (*T, error) {
	return c.decode(c.coll.FindOneAndDelete(ctx, toBSON(filter),
		options.FindOneAndDelete().SetSort(bson.D{{Key: IDField, Value: 1}})))
}

type singleResult interface {
	Decode(v interface{}) error
}

func (c *MongoCollection[T, PT]) decode(res singleResult) (*T, error) {
	var doc T
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c *MongoCollection[T, PT]) uniqueIn(set Fields) map[string]interface{} {
	keys := make(map[string]interface{})
	for field := range PT(new(T)).UniqueKeys() {
		if v, ok := set[field]; ok {
			keys[field] = v
		}
	}
	return keys
}

func withUpdatedAt(set Fields) bson.M {
	m := bson.M{}
	for k, v := range set {
		m[k] = v
	}
	m["updatedAt"] = time.Now().UTC()
	return m
}

func toBSON(filter Filter) bson.M {
	if len(filter) == 0 {
		return bson.M{}
	}
	and := make(bson.A, 0, len(filter))
	for _, cond := range filter {
		var expr bson.M
		switch cond.Op {
		case OpEq:
			expr = bson.M{"$eq": cond.Value}
		case OpGte:
			expr = bson.M{"$gte": cond.Value}
		case OpLte:
			expr = bson.M{"$lte": cond.Value}
		case OpContainsFold:
			expr = bson.M{"$regex": regexp.QuoteMeta(fmt.Sprint(cond.Value)), "$options": "i"}
		default:
			continue
		}
		and = append(and, bson.M{cond.Field: expr})
	}
	switch len(and) {
	case 0:
		return bson.M{}
	case 1:
		return and[0].(bson.M)
	}
	return bson.M{"$and": and}
}

// duplicateKey turns an E11000 error into a DuplicateKeyError. The offending field is read
// from the server's keyValue document, falling back to the keys being written.
func duplicateKey(err error, keys map[string]interface{}) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	dup := &DuplicateKeyError{}
	if kv, ok := duplicateKeyValue(err); ok {
		if elems, err := kv.Elements(); err == nil && len(elems) > 0 {
			dup.Field = elems[0].Key()
			val := elems[0].Value()
			if s, ok := val.StringValueOK(); ok {
				dup.Value = s
			} else {
				dup.Value = val.String()
			}
		}
	}
	if dup.Field == "" {
		if fields := sortedKeys(keys); len(fields) > 0 {
			dup.Field = fields[0]
			dup.Value = keys[fields[0]]
		}
	}
	return dup
}

func duplicateKeyValue(err error) (bson.Raw, bool) {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if kv, ok := e.Raw.Lookup("keyValue").DocumentOK(); ok {
				return kv, true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		if kv, ok := ce.Raw.Lookup("keyValue").DocumentOK(); ok {
			return kv, true
		}
	}
	return nil, false
}
