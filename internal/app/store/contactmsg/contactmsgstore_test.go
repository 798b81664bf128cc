package contactmsgstore

import (
	"testing"
	"time"

	"github.com/huynhland/cms/internal/app/store/storeutil"
	"github.com/huynhland/cms/internal/testutil"
)

func TestStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	email := "khach@example.vn"
	names := []string{"Anh Tuấn", "Chị Hoa", "Mr. Kim"}
	for _, name := range names {
		msg := &Message{Name: name, Phone: "0909000111", Message: "Tôi muốn xem nhà."}
		if name == "Chị Hoa" {
			msg.Email = &email
		}
		id, err := store.Append(ctx, msg)
		if err != nil {
			t.Fatalf("Append(%s): %v", name, err)
		}
		if id == "" {
			t.Fatal("Append returned empty id")
		}
		if msg.CreatedAt.IsZero() {
			t.Fatal("Append did not stamp createdAt")
		}
		// createdAt has millisecond resolution in the store; keep inserts
		// distinguishable for the ordering assertion.
		time.Sleep(5 * time.Millisecond)
	}

	t.Run("list newest first", func(t *testing.T) {
		got, err := store.List(ctx, storeutil.Page{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		if got[0].Name != "Mr. Kim" || got[2].Name != "Anh Tuấn" {
			t.Errorf("order = [%s %s %s], want newest first", got[0].Name, got[1].Name, got[2].Name)
		}
		if got[0].Email != nil {
			t.Errorf("omitted email = %v, want nil", *got[0].Email)
		}
		if got[1].Email == nil || *got[1].Email != email {
			t.Errorf("email = %v, want %s", got[1].Email, email)
		}
	})

	t.Run("list windowed", func(t *testing.T) {
		got, err := store.List(ctx, storeutil.Page{Limit: 2, Page: 2})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Anh Tuấn" {
			t.Errorf("page 2 of 2 = %v", got)
		}
	})
}
