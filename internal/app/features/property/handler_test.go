package property

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huynhland/cms/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())
	return Routes(h, "", zap.NewNop()), db
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

func localeBlock(code string) map[string]any {
	return map[string]any{
		"name":     "Nhà " + code,
		"address":  "12 Lê Lợi, Quận 1",
		"code":     code,
		"price":    2500000000,
		"area":     "80m2",
		"landArea": "100m2",
	}
}

func createBody(code string) map[string]any {
	return map[string]any{
		"vi":           localeBlock(code),
		"en":           localeBlock(code),
		"ko":           localeBlock(code),
		"propertyType": "house",
		"businessType": "sell",
	}
}

func TestCreate(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("valid create", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/", createBody("HL-001"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		got := decode(t, rec)
		if got["message"] != "Property created." {
			t.Errorf("message = %v", got["message"])
		}
		if got["id"] == "" || got["id"] == nil {
			t.Error("missing id")
		}
		property := got["property"].(map[string]any)
		if property["status"] != "active" {
			t.Errorf("status = %v, want active default", property["status"])
		}
		if _, ok := property["images"].([]any); !ok {
			t.Errorf("images = %T, want array", property["images"])
		}
		vi := property["vi"].(map[string]any)
		if _, ok := vi["floors"]; !ok {
			t.Error("vi.floors not defaulted")
		}
	})

	t.Run("duplicate code", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/", createBody("HL-001"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := decode(t, rec); got["message"] != "Property code already exists." {
			t.Errorf("message = %v", got["message"])
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		body := createBody("HL-002")
		delete(body["vi"].(map[string]any), "price")
		rec := do(t, router, http.MethodPost, "/", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := decode(t, rec); got["message"] != "Missing required fields." {
			t.Errorf("message = %v", got["message"])
		}
	})

	t.Run("missing locale block", func(t *testing.T) {
		body := createBody("HL-003")
		delete(body, "ko")
		rec := do(t, router, http.MethodPost, "/", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("description sanitized", func(t *testing.T) {
		body := createBody("HL-004")
		body["vi"].(map[string]any)["description"] = `<p>Đẹp</p><script>alert(1)</script>`
		rec := do(t, router, http.MethodPost, "/", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		got := decode(t, rec)
		desc := got["property"].(map[string]any)["vi"].(map[string]any)["description"].(string)
		if desc != "<p>Đẹp</p>" {
			t.Errorf("description = %q", desc)
		}
	})
}

func TestGetAndList(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/", createBody("HL-010"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed: %d %s", rec.Code, rec.Body.String())
	}
	id := decode(t, rec)["id"].(string)

	body := createBody("HL-011")
	body["businessType"] = "rent"
	body["vi"].(map[string]any)["price"] = 900000000
	if rec := do(t, router, http.MethodPost, "/", body); rec.Code != http.StatusCreated {
		t.Fatalf("seed: %d %s", rec.Code, rec.Body.String())
	}

	t.Run("detail", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/"+id, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		got := decode(t, rec)
		if got["property"].(map[string]any)["id"] != id {
			t.Errorf("id mismatch: %v", got["property"])
		}
	})

	t.Run("detail not found", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/ffffffffffffffffffffffff", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if got := decode(t, rec); got["message"] != "Property not found." {
			t.Errorf("message = %v", got["message"])
		}
	})

	t.Run("list all", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		got := decode(t, rec)
		if n := len(got["properties"].([]any)); n != 2 {
			t.Errorf("len = %d, want 2", n)
		}
	})

	t.Run("business type filter", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/?businessType=rent", nil)
		got := decode(t, rec)
		list := got["properties"].([]any)
		if len(list) != 1 {
			t.Fatalf("len = %d, want 1", len(list))
		}
	})

	t.Run("inverted price range", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/?priceFrom=100&priceTo=50", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		got := decode(t, rec)
		if n := len(got["properties"].([]any)); n != 0 {
			t.Errorf("len = %d, want 0", n)
		}
	})

	t.Run("invalid price", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/?priceFrom=abc", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("keyword filter folds case", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/?keyword=NHÀ+HL-010", nil)
		got := decode(t, rec)
		list := got["properties"].([]any)
		if len(list) != 1 {
			t.Fatalf("len = %d, want 1: %s", len(list), rec.Body.String())
		}
	})
}

func TestUpdateStatusDelete(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/", createBody("HL-020"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed: %d %s", rec.Code, rec.Body.String())
	}
	id := decode(t, rec)["id"].(string)

	t.Run("partial merge keeps siblings", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/"+id, map[string]any{
			"vi": map[string]any{"price": 3000000000},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		got := decode(t, rec)
		vi := got["property"].(map[string]any)["vi"].(map[string]any)
		if vi["price"] != float64(3000000000) {
			t.Errorf("price = %v", vi["price"])
		}
		if vi["name"] != "Nhà HL-020" {
			t.Errorf("name lost: %v", vi["name"])
		}
	})

	t.Run("update unknown id", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/ffffffffffffffffffffffff", map[string]any{
			"vi": map[string]any{"price": 1},
		})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("empty update body", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/"+id, map[string]any{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := decode(t, rec); got["message"] != "Missing fields to update." {
			t.Errorf("message = %v", got["message"])
		}
	})

	t.Run("status toggle", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/"+id+"/status", map[string]any{"status": "hidden"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if got := decode(t, rec); got["status"] != "hidden" {
			t.Errorf("status = %v", got["status"])
		}
	})

	t.Run("status rejects other values", func(t *testing.T) {
		for _, bad := range []string{"", "archived", "ACTIVE"} {
			rec := do(t, router, http.MethodPut, "/"+id+"/status", map[string]any{"status": bad})
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status(%q) = %d, want 400", bad, rec.Code)
			}
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := do(t, router, http.MethodDelete, "/"+id, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		rec = do(t, router, http.MethodDelete, "/"+id, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("second delete status = %d, want 404", rec.Code)
		}
	})
}

func TestAdminKeyGuard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())
	router := Routes(h, "topsecret", zap.NewNop())

	t.Run("reads stay public", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("mutation without key rejected", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/", createBody("HL-030"))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("mutation with key accepted", func(t *testing.T) {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(createBody("HL-031")); err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", "topsecret"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})
}
