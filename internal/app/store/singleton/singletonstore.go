// Package singletonstore implements the one-document-per-collection pattern
// shared by the settings, social, contact and main-office-map resources. The
// document lives under a fixed _id, so creation of a second instance is
// rejected by the store itself.
package singletonstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to one singleton collection.
type Store struct {
	c  *mongo.Collection
	id string
}

// New creates a store over the named collection using docID as the fixed
// document id ("main" for every current resource).
func New(db *mongo.Database, collection, docID string) *Store {
	return &Store{c: db.Collection(collection), id: docID}
}

// Get returns the singleton, or mongo.ErrNoDocuments.
func (s *Store) Get(ctx context.Context) (bson.M, error) {
	var doc bson.M
	if err := s.c.FindOne(ctx, bson.M{"_id": s.id}).Decode(&doc); err != nil {
		return nil, err
	}
	delete(doc, "_id")
	return doc, nil
}

// Exists reports whether the singleton is present.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"_id": s.id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the singleton. A second create surfaces as a driver
// duplicate-key error on _id.
func (s *Store) Create(ctx context.Context, fields bson.M) error {
	doc := bson.M{"_id": s.id}
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

// Update $sets the given fields and returns the updated document, or
// mongo.ErrNoDocuments when the singleton does not exist.
func (s *Store) Update(ctx context.Context, set bson.M) (bson.M, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": s.id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return s.Get(ctx)
}

// Delete removes the singleton, or mongo.ErrNoDocuments when absent.
func (s *Store) Delete(ctx context.Context) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": s.id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
