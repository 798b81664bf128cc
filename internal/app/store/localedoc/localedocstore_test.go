package localedocstore

import (
	"testing"

	"github.com/huynhland/cms/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, "histories")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fields := bson.M{"title": "Lịch sử", "content": "<p>Thành lập 2010</p>"}

	if err := store.Create(ctx, "vi", fields); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("exists per language", func(t *testing.T) {
		exists, err := store.Exists(ctx, "vi")
		if err != nil {
			t.Fatalf("Exists: %v", err)
		}
		if !exists {
			t.Error("vi should exist")
		}
		exists, err = store.Exists(ctx, "en")
		if err != nil {
			t.Fatalf("Exists: %v", err)
		}
		if exists {
			t.Error("en should not exist")
		}
	})

	t.Run("second create same language rejected", func(t *testing.T) {
		err := store.Create(ctx, "vi", fields)
		if !IsDuplicateKey(err) {
			t.Errorf("err = %v, want duplicate-key", err)
		}
	})

	t.Run("other language independent", func(t *testing.T) {
		if err := store.Create(ctx, "ko", bson.M{"title": "역사", "content": "..."}); err != nil {
			t.Fatalf("Create ko: %v", err)
		}
	})

	t.Run("get exposes lang not _id", func(t *testing.T) {
		got, err := store.Get(ctx, "vi")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got["lang"] != "vi" {
			t.Errorf("lang = %v, want vi", got["lang"])
		}
		if _, ok := got["_id"]; ok {
			t.Error("_id leaked into response")
		}
		if got["title"] != "Lịch sử" {
			t.Errorf("title = %v", got["title"])
		}
	})

	t.Run("update missing language", func(t *testing.T) {
		if _, err := store.Update(ctx, "en", bson.M{"title": "x"}); err != mongo.ErrNoDocuments {
			t.Errorf("err = %v, want ErrNoDocuments", err)
		}
	})

	t.Run("update merges fields", func(t *testing.T) {
		got, err := store.Update(ctx, "vi", bson.M{"title": "Lịch sử công ty"})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if got["title"] != "Lịch sử công ty" {
			t.Errorf("title = %v", got["title"])
		}
		if got["content"] != "<p>Thành lập 2010</p>" {
			t.Errorf("content lost: %v", got["content"])
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := store.Delete(ctx, "ko"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := store.Delete(ctx, "ko"); err != mongo.ErrNoDocuments {
			t.Errorf("second delete err = %v, want ErrNoDocuments", err)
		}
	})
}
