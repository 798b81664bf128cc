package singleton

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huynhland/cms/internal/testutil"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, res Resource) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return Routes(NewHandler(db, res, zap.NewNop()), "", zap.NewNop())
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestContactLifecycle(t *testing.T) {
	router := newTestRouter(t, Contact)

	body := map[string]any{
		"hotline": "0909000111", "email": "lienhe@example.vn", "workingHours": "8h-17h",
	}

	t.Run("get before create", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if got := decode(t, rec); got["message"] != "Contact not found." {
			t.Errorf("message = %v", got["message"])
		}
	})

	t.Run("missing field", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/", map[string]any{"hotline": "0909000111"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := decode(t, rec); got["message"] != "Missing hotline, email, or workingHours." {
			t.Errorf("message = %v", got["message"])
		}
	})

	t.Run("create", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		doc := decode(t, rec)["contact"].(map[string]any)
		if doc["hotline"] != "0909000111" {
			t.Errorf("doc = %v", doc)
		}
	})

	t.Run("second create rejected", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := decode(t, rec); got["message"] != "Contact already exists." {
			t.Errorf("message = %v", got["message"])
		}
	})

	t.Run("partial update", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/", map[string]any{"hotline": "0909000222"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		doc := decode(t, rec)["contact"].(map[string]any)
		if doc["hotline"] != "0909000222" || doc["email"] != "lienhe@example.vn" {
			t.Errorf("doc = %v", doc)
		}
	})

	t.Run("delete then update fails", func(t *testing.T) {
		rec := do(t, router, http.MethodDelete, "/", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		rec = do(t, router, http.MethodPut, "/", map[string]any{"hotline": "x"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("update after delete status = %d, want 404", rec.Code)
		}
	})
}

func TestSocialMissingMsg(t *testing.T) {
	router := newTestRouter(t, Social)

	rec := do(t, router, http.MethodPost, "/", map[string]any{"facebook": "https://fb.com/x"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decode(t, rec); got["message"] != "Missing facebook or youtube." {
		t.Errorf("message = %v", got["message"])
	}
}

func TestMainOfficeMapKeepsIframe(t *testing.T) {
	router := newTestRouter(t, MainOfficeMap)

	iframe := `<iframe src="https://www.google.com/maps/embed?pb=..."></iframe>`
	rec := do(t, router, http.MethodPost, "/", map[string]any{
		"address": "12 Lê Lợi, Quận 1", "iframe": iframe,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	doc := decode(t, rec)["mainOfficeMap"].(map[string]any)
	if doc["iframe"] != iframe {
		t.Errorf("iframe altered: %v", doc["iframe"])
	}
}

func TestSettingsFields(t *testing.T) {
	router := newTestRouter(t, Settings)

	rec := do(t, router, http.MethodPost, "/", map[string]any{
		"color": "#0a6", "companyName": "Huỳnh Land", "slogan": "Đất lành", "hashtag": "#huynhland",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	doc := decode(t, rec)["settings"].(map[string]any)
	if doc["companyName"] != "Huỳnh Land" {
		t.Errorf("doc = %v", doc)
	}
}
