// Package newsstore provides access to the news collection.
package newsstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for news articles.
const CollectionName = "news"

// Article is a news post. Content carries sanitized HTML.
type Article struct {
	ID      string    `bson:"-" json:"id"`
	Title   string    `bson:"title" json:"title"`
	Summary string    `bson:"summary" json:"summary"`
	Content string    `bson:"content" json:"content"`
	Author  string    `bson:"author" json:"author"`
	Date    time.Time `bson:"date" json:"date"`
}

type storedArticle struct {
	OID     primitive.ObjectID `bson:"_id,omitempty"`
	Article `bson:",inline"`
}

// Store provides access to the news collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new news store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// List returns articles newest-first. A non-empty titlePrefix narrows the
// result to titles starting with it, as an index-friendly range on the
// title field.
func (s *Store) List(ctx context.Context, titlePrefix string) ([]Article, error) {
	filter := bson.M{}
	if titlePrefix != "" {
		// Range scan over [prefix, prefix+U+F8FF]; same window the admin
		// panel has always queried with.
		filter["title"] = bson.M{
			"$gte": titlePrefix,
			"$lte": titlePrefix + "",
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	articles := []Article{}
	for cur.Next(ctx) {
		var raw storedArticle
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		a := raw.Article
		a.ID = raw.OID.Hex()
		articles = append(articles, a)
	}
	return articles, cur.Err()
}

// Latest returns the most recent article by date, or mongo.ErrNoDocuments
// when the collection is empty.
func (s *Store) Latest(ctx context.Context) (*Article, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})
	var raw storedArticle
	if err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&raw); err != nil {
		return nil, err
	}
	a := raw.Article
	a.ID = raw.OID.Hex()
	return &a, nil
}

// GetByID returns the article, or mongo.ErrNoDocuments for unknown or
// malformed ids.
func (s *Store) GetByID(ctx context.Context, id string) (*Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var raw storedArticle
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw); err != nil {
		return nil, err
	}
	a := raw.Article
	a.ID = raw.OID.Hex()
	return &a, nil
}

// Create inserts the article and returns the generated id.
func (s *Store) Create(ctx context.Context, a *Article) (string, error) {
	res, err := s.c.InsertOne(ctx, storedArticle{Article: *a})
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	a.ID = oid.Hex()
	return a.ID, nil
}

// Update $sets the given fields and returns the updated article, or
// mongo.ErrNoDocuments when the id is unknown.
func (s *Store) Update(ctx context.Context, id string, set bson.M) (*Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
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

// Delete removes the article and returns it, or mongo.ErrNoDocuments when
// absent.
func (s *Store) Delete(ctx context.Context, id string) (*Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var raw storedArticle
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&raw); err != nil {
		return nil, err
	}
	a := raw.Article
	a.ID = raw.OID.Hex()
	return &a, nil
}
