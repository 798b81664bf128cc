// Package contactmsgstore provides access to the contact_messages
// collection, the append-only inbox of messages sent through the public
// contact form. Messages are never updated or deleted through the API.
package contactmsgstore

import (
	"context"
	"time"

	"github.com/huynhland/cms/internal/app/store/storeutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for contact messages.
const CollectionName = "contact_messages"

// Message is an inbound contact-form message. Email and Subject are
// optional and stored as null when the sender omits them.
type Message struct {
	ID        string    `bson:"-" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	Email     *string   `bson:"email" json:"email"`
	Subject   *string   `bson:"subject" json:"subject"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Store provides access to the contact_messages collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new contact message store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Append stores the message with a server-side timestamp and returns the
// generated id.
func (s *Store) Append(ctx context.Context, msg *Message) (string, error) {
	msg.CreatedAt = time.Now().UTC()
	res, err := s.c.InsertOne(ctx, msg)
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	msg.ID = oid.Hex()
	return msg.ID, nil
}

// List returns messages newest-first, optionally windowed.
func (s *Store) List(ctx context.Context, page storeutil.Page) ([]Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if page.Enabled() {
		skip, limit := page.Window()
		opts.SetSkip(skip).SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	msgs := []Message{}
	for cur.Next(ctx) {
		var raw struct {
			OID     primitive.ObjectID `bson:"_id"`
			Message `bson:",inline"`
		}
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		m := raw.Message
		m.ID = raw.OID.Hex()
		msgs = append(msgs, m)
	}
	return msgs, cur.Err()
}
