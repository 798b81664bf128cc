// Package propertytypestore provides access to the property_types collection.
//
// A property type carries a name and description per locale plus a
// locale-independent enabled flag. vi.name is the business key and is
// enforced unique by a partial index.
package propertytypestore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the MongoDB collection for property types.
const CollectionName = "property_types"

// Locales lists the locale blocks in response order.
var Locales = []string{"vi", "en", "ko"}

// Store provides access to the property_types collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new property type store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Normalize guarantees the three locale blocks exist as objects and that
// status is present, defaulting to true for legacy documents written before
// the flag existed.
func Normalize(doc bson.M) bson.M {
	if doc == nil {
		doc = bson.M{}
	}
	for _, l := range Locales {
		doc[l] = asMap(doc[l])
	}
	if _, ok := doc["status"]; !ok {
		doc["status"] = true
	}
	return doc
}

func asMap(v any) bson.M {
	switch m := v.(type) {
	case bson.M:
		return m
	case map[string]any:
		return bson.M(m)
	case bson.D:
		return m.Map()
	default:
		return bson.M{}
	}
}

func toResponse(doc bson.M) bson.M {
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		delete(doc, "_id")
		doc["id"] = oid.Hex()
	}
	return Normalize(doc)
}

// List returns all property types, normalized.
func (s *Store) List(ctx context.Context) ([]bson.M, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]bson.M, 0, len(docs))
	for _, d := range docs {
		out = append(out, toResponse(d))
	}
	return out, nil
}

// GetByID returns the normalized document, or mongo.ErrNoDocuments when the
// id is unknown or malformed.
func (s *Store) GetByID(ctx context.Context, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var doc bson.M
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, err
	}
	return toResponse(doc), nil
}

// NameExists reports whether a property type with the given vi.name exists.
func (s *Store) NameExists(ctx context.Context, name string) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"vi.name": name})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the document and returns the generated id. A duplicate
// vi.name surfaces as a driver duplicate-key error.
func (s *Store) Create(ctx context.Context, doc bson.M) (string, error) {
	res, err := s.c.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// IsDuplicateKey reports whether err is the store's unique-index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// Merge applies a partial update: locale blocks shallow-merge via dotted
// paths, status is replaced when present. Returns the updated, normalized
// document, or mongo.ErrNoDocuments when the id is unknown. An empty patch
// is the caller's problem; Merge treats it as a read.
func (s *Store) Merge(ctx context.Context, id string, patch bson.M) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	set := bson.M{}
	for _, l := range Locales {
		if raw, ok := patch[l]; ok {
			for k, v := range asMap(raw) {
				set[l+"."+k] = v
			}
		}
	}
	if v, ok := patch["status"]; ok {
		set["status"] = v
	}
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, id)
}

// Delete removes the document, or mongo.ErrNoDocuments when absent.
func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
