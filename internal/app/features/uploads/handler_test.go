package uploads

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocal(storage.LocalConfig{
		BasePath: dir,
		BaseURL:  "http://localhost:8080/files",
	})
	if err != nil {
		t.Fatalf("storage.NewLocal: %v", err)
	}
	return Routes(NewHandler(store, zap.NewNop()), "", zap.NewNop()), dir
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	router, dir := newTestRouter(t)

	t.Run("stores file and returns url", func(t *testing.T) {
		body, contentType := multipartBody(t, "file", "villa.jpg", []byte("jpegdata"))
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var out map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		url := out["url"]
		if !strings.HasPrefix(url, "http://localhost:8080/files/uploads/") {
			t.Errorf("url = %q", url)
		}
		if !strings.HasSuffix(url, ".jpg") {
			t.Errorf("url lost the extension: %q", url)
		}

		// The object actually landed under uploads/YYYY/MM/.
		matches, err := filepath.Glob(filepath.Join(dir, "uploads", "*", "*", "*.jpg"))
		if err != nil || len(matches) != 1 {
			t.Fatalf("stored files = %v (err %v)", matches, err)
		}
		data, err := os.ReadFile(matches[0])
		if err != nil {
			t.Fatalf("read stored file: %v", err)
		}
		if string(data) != "jpegdata" {
			t.Errorf("stored content = %q", data)
		}
	})

	t.Run("missing file field", func(t *testing.T) {
		body, contentType := multipartBody(t, "attachment", "x.png", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		var out map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out["message"] != "No file uploaded." {
			t.Errorf("message = %q", out["message"])
		}
	})

	t.Run("not multipart at all", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}
