// Package userstore provides access to the users collection.
//
// Emails are unique case-insensitively: the folded form is stored in
// email_ci and carries the unique index, while email keeps the casing the
// admin typed. Password hashes never leave this package's stored form; the
// User type has no password field to serialize.
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/huynhland/cms/internal/app/system/authutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the MongoDB collection for admin users.
const CollectionName = "users"

// User is an admin-panel account as exposed by the API.
type User struct {
	ID        string    `bson:"-" json:"id"`
	FullName  string    `bson:"fullName" json:"fullName"`
	Email     string    `bson:"email" json:"email"`
	Role      string    `bson:"role" json:"role"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type storedUser struct {
	OID          primitive.ObjectID `bson:"_id,omitempty"`
	User         `bson:",inline"`
	EmailCI      string `bson:"email_ci"`
	PasswordHash string `bson:"passwordHash"`
}

// Store provides access to the users collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new user store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// EmailExists reports whether an account with the given email exists,
// compared case-insensitively.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"email_ci": text.Fold(email)})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create hashes the password and inserts the account. A duplicate email
// surfaces as a driver duplicate-key error on email_ci.
func (s *Store) Create(ctx context.Context, u *User, password string) (string, error) {
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return "", err
	}
	u.CreatedAt = time.Now().UTC()
	doc := storedUser{
		User:         *u,
		EmailCI:      text.Fold(u.Email),
		PasswordHash: hash,
	}
	res, err := s.c.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	u.ID = oid.Hex()
	return u.ID, nil
}

// IsDuplicateKey reports whether err is the email uniqueness violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// List returns all accounts, newest first.
func (s *Store) List(ctx context.Context) ([]User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []User{}
	for cur.Next(ctx) {
		var raw storedUser
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		u := raw.User
		u.ID = raw.OID.Hex()
		users = append(users, u)
	}
	return users, cur.Err()
}

// GetByID returns the account, or mongo.ErrNoDocuments for unknown or
// malformed ids.
func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var raw storedUser
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw); err != nil {
		return nil, err
	}
	u := raw.User
	u.ID = raw.OID.Hex()
	return &u, nil
}

// ErrInvalidCredentials is returned by CheckPassword on a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CheckPassword verifies a candidate password against the account with the
// given email. Returns mongo.ErrNoDocuments for unknown emails and
// ErrInvalidCredentials for wrong passwords.
func (s *Store) CheckPassword(ctx context.Context, email, password string) (*User, error) {
	var raw storedUser
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&raw)
	if err != nil {
		return nil, err
	}
	if !authutil.CheckPassword(raw.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	u := raw.User
	u.ID = raw.OID.Hex()
	return &u, nil
}

// Update applies a partial patch. Changing email also refreshes email_ci;
// a "password" entry is hashed into passwordHash. Other keys pass through
// as $set fields. Returns the updated account, or mongo.ErrNoDocuments.
func (s *Store) Update(ctx context.Context, id string, patch bson.M) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	set := bson.M{}
	for k, v := range patch {
		switch k {
		case "email":
			email, _ := v.(string)
			set["email"] = email
			set["email_ci"] = text.Fold(email)
		case "password":
			pw, _ := v.(string)
			hash, err := authutil.HashPassword(pw)
			if err != nil {
				return nil, err
			}
			set["passwordHash"] = hash
		default:
			set[k] = v
		}
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

// Delete removes the account, or mongo.ErrNoDocuments when absent.
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
