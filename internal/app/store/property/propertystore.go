// Package propertystore provides access to the properties collection.
//
// A property document carries three locale blocks (vi, en, ko) with the
// language-specific listing fields, plus locale-independent fields (images,
// propertyType, businessType, status). Documents are handled as bson.M
// rather than rigid structs: the admin panel has grown fields over time and
// older documents are missing locale blocks or optional sub-fields, so the
// store normalizes every document it returns (see Normalize).
package propertystore

import (
	"context"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the MongoDB collection for properties.
const CollectionName = "properties"

// Locales lists the locale blocks every property document carries,
// in response order.
var Locales = []string{"vi", "en", "ko"}

// Store provides access to the properties collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new property store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

/* ------------------------------ normalization ----------------------------- */

// Normalize shapes a raw stored document into the response form the API
// guarantees: vi/en/ko always present as objects, floors and direction
// present (null when unset) inside each, images always an array (non-array
// stored values become empty), propertyType/businessType null when absent,
// status defaulted to "active". All other stored sub-fields pass through
// untouched. Normalizing an already-normalized document is a no-op.
func Normalize(doc bson.M) bson.M {
	if doc == nil {
		doc = bson.M{}
	}
	for _, l := range Locales {
		doc[l] = normalizeLocale(doc[l])
	}
	doc["images"] = asArray(doc["images"])
	if _, ok := doc["propertyType"]; !ok {
		doc["propertyType"] = nil
	}
	if _, ok := doc["businessType"]; !ok {
		doc["businessType"] = nil
	}
	if s, ok := doc["status"].(string); !ok || s == "" {
		doc["status"] = "active"
	}
	return doc
}

func normalizeLocale(v any) bson.M {
	block := asMap(v)
	if _, ok := block["floors"]; !ok {
		block["floors"] = nil
	}
	if _, ok := block["direction"]; !ok {
		block["direction"] = nil
	}
	return block
}

// asMap coerces the decoded forms a sub-document can take (bson.M from the
// driver, bson.D from some decode paths, map[string]any from JSON bodies)
// into bson.M. Anything else becomes an empty object.
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

func asArray(v any) bson.A {
	switch a := v.(type) {
	case bson.A:
		return a
	case []any:
		return bson.A(a)
	case []string:
		out := make(bson.A, len(a))
		for i, s := range a {
			out[i] = s
		}
		return out
	default:
		return bson.A{}
	}
}

// toResponse moves the Mongo _id into an "id" hex field and normalizes.
func toResponse(doc bson.M) bson.M {
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		delete(doc, "_id")
		doc["id"] = oid.Hex()
	}
	return Normalize(doc)
}

/* --------------------------------- search --------------------------------- */

// SearchQuery holds the optional filters of GET /api/property.
// PropertyType, BusinessType and the price range are pushed down to the
// store query; Address and Keyword are substring filters applied in memory
// across all three locales after normalization.
type SearchQuery struct {
	PropertyType string
	BusinessType string
	PriceFrom    *float64
	PriceTo      *float64
	Address      string
	Keyword      string
}

// Search runs the search pipeline: pushdown fetch, normalize, then the
// in-memory address and keyword filters AND'ed in that order. An inverted
// price range (from > to) short-circuits to an empty result without
// querying the store. Result order is whatever the store returns.
func (s *Store) Search(ctx context.Context, q SearchQuery) ([]bson.M, error) {
	if q.PriceFrom != nil && q.PriceTo != nil && *q.PriceFrom > *q.PriceTo {
		return []bson.M{}, nil
	}

	filter := bson.M{}
	if q.PropertyType != "" {
		filter["propertyType"] = q.PropertyType
	}
	if q.BusinessType != "" {
		filter["businessType"] = q.BusinessType
	}
	price := bson.M{}
	if q.PriceFrom != nil {
		price["$gte"] = *q.PriceFrom
	}
	if q.PriceTo != nil {
		price["$lte"] = *q.PriceTo
	}
	if len(price) > 0 {
		filter["vi.price"] = price
	}

	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	results := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		p := toResponse(doc)
		if q.Address != "" && !matchesAddress(p, q.Address) {
			continue
		}
		if q.Keyword != "" && !matchesKeyword(p, q.Keyword) {
			continue
		}
		results = append(results, p)
	}
	return results, nil
}

// matchesAddress reports whether any locale's address contains needle,
// case-insensitively (text.Fold handles Vietnamese and Korean casing).
func matchesAddress(doc bson.M, needle string) bool {
	fn := text.Fold(needle)
	for _, l := range Locales {
		if addr, ok := asMap(doc[l])["address"].(string); ok {
			if contains(addr, fn) {
				return true
			}
		}
	}
	return false
}

// matchesKeyword reports whether any locale's name or description contains
// needle, case-insensitively.
func matchesKeyword(doc bson.M, needle string) bool {
	fn := text.Fold(needle)
	for _, l := range Locales {
		block := asMap(doc[l])
		if name, ok := block["name"].(string); ok && contains(name, fn) {
			return true
		}
		if desc, ok := block["description"].(string); ok && contains(desc, fn) {
			return true
		}
	}
	return false
}

func contains(haystack, foldedNeedle string) bool {
	return foldedNeedle != "" && strings.Contains(text.Fold(haystack), foldedNeedle)
}

/* ---------------------------------- CRUD ---------------------------------- */

// GetByID returns the normalized response document, or mongo.ErrNoDocuments
// when the id is unknown or not a valid ObjectID.
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

// CodeExists reports whether a property with the given vi.code exists.
func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"vi.code": code})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the document and returns the generated id.
// A duplicate vi.code surfaces as a driver duplicate-key error; callers
// translate it with IsDuplicateKey.
func (s *Store) Create(ctx context.Context, doc bson.M) (string, error) {
	res, err := s.c.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// IsDuplicateKey reports whether err is the store's unique-index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// Merge applies a partial update: each locale block present in patch is
// shallow-merged onto the stored block via dotted $set paths (new fields
// overlay, absent fields survive); images, propertyType, businessType and
// status are replaced wholesale when present. Returns the updated,
// normalized document, or mongo.ErrNoDocuments when the id is unknown.
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
	for _, k := range []string{"images", "propertyType", "businessType", "status"} {
		if v, ok := patch[k]; ok {
			set[k] = v
		}
	}
	if len(set) == 0 {
		// Nothing recognizable to change; still report not-found over no-op
		// for unknown ids.
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

// SetStatus flips the active/hidden flag without touching anything else.
func (s *Store) SetStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
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
