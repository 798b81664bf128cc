// Package localedocstore implements the one-document-per-language pattern
// shared by the history, mission, vision, infor and office resources. The
// language code is the document _id, so "at most one document per language"
// is enforced by the store itself rather than an application-level check.
package localedocstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to one per-language collection.
type Store struct {
	c *mongo.Collection
}

// New creates a store over the named collection.
func New(db *mongo.Database, collection string) *Store {
	return &Store{c: db.Collection(collection)}
}

func toResponse(doc bson.M) bson.M {
	if lang, ok := doc["_id"].(string); ok {
		delete(doc, "_id")
		doc["lang"] = lang
	}
	return doc
}

// Get returns the document for lang, or mongo.ErrNoDocuments.
func (s *Store) Get(ctx context.Context, lang string) (bson.M, error) {
	var doc bson.M
	if err := s.c.FindOne(ctx, bson.M{"_id": lang}).Decode(&doc); err != nil {
		return nil, err
	}
	return toResponse(doc), nil
}

// Exists reports whether a document for lang is present.
func (s *Store) Exists(ctx context.Context, lang string) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"_id": lang})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the document for lang. Inserting an already-present
// language surfaces as a driver duplicate-key error on _id.
func (s *Store) Create(ctx context.Context, lang string, fields bson.M) error {
	doc := bson.M{"_id": lang}
	for k, v := range fields {
		doc[k] = v
	}
	_, err := s.c.InsertOne(ctx, doc)
	return err
}

// IsDuplicateKey reports whether err is the _id collision of Create.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// Update $sets the given fields on the document for lang and returns the
// updated document, or mongo.ErrNoDocuments when absent.
func (s *Store) Update(ctx context.Context, lang string, set bson.M) (bson.M, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": lang}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return s.Get(ctx, lang)
}

// Delete removes the document for lang, or mongo.ErrNoDocuments when absent.
func (s *Store) Delete(ctx context.Context, lang string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": lang})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
