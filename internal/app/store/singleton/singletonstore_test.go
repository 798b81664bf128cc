package singletonstore

import (
	"testing"

	"github.com/huynhland/cms/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, "contact", "main")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	t.Run("get before create", func(t *testing.T) {
		if _, err := store.Get(ctx); err != mongo.ErrNoDocuments {
			t.Errorf("err = %v, want ErrNoDocuments", err)
		}
	})

	fields := bson.M{"hotline": "0909000111", "email": "lienhe@example.vn", "workingHours": "8h-17h"}
	if err := store.Create(ctx, fields); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("second create rejected", func(t *testing.T) {
		err := store.Create(ctx, fields)
		if !IsDuplicateKey(err) {
			t.Errorf("err = %v, want duplicate-key", err)
		}
	})

	t.Run("get strips _id", func(t *testing.T) {
		got, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if _, ok := got["_id"]; ok {
			t.Error("_id leaked into response")
		}
		if got["hotline"] != "0909000111" {
			t.Errorf("hotline = %v", got["hotline"])
		}
	})

	t.Run("update merges", func(t *testing.T) {
		got, err := store.Update(ctx, bson.M{"hotline": "0909000222"})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if got["hotline"] != "0909000222" {
			t.Errorf("hotline = %v", got["hotline"])
		}
		if got["email"] != "lienhe@example.vn" {
			t.Errorf("email lost: %v", got["email"])
		}
	})

	t.Run("delete then update fails", func(t *testing.T) {
		if err := store.Delete(ctx); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := store.Update(ctx, bson.M{"hotline": "x"}); err != mongo.ErrNoDocuments {
			t.Errorf("err = %v, want ErrNoDocuments", err)
		}
		if err := store.Delete(ctx); err != mongo.ErrNoDocuments {
			t.Errorf("second delete err = %v, want ErrNoDocuments", err)
		}
	})
}
