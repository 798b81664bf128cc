package jsonutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusNotFound, "Property not found.")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "Property not found." {
		t.Errorf("message = %q", body["message"])
	}
	if _, ok := body["error"]; ok {
		t.Error("4xx body should not carry an error field")
	}
}

func TestServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	ServerError(rec, errors.New("connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "Server error" {
		t.Errorf("message = %q, want Server error", body["message"])
	}
	if body["error"] != "connection reset" {
		t.Errorf("error = %q, want the underlying message", body["error"])
	}
}

func TestDecode(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Land"}`))
	var v struct {
		Name string `json:"name"`
	}
	if err := Decode(req, &v); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if v.Name != "Land" {
		t.Errorf("Name = %q, want Land", v.Name)
	}

	bad := httptest.NewRequest("POST", "/", strings.NewReader("{"))
	if err := Decode(bad, &v); err == nil {
		t.Error("Decode() should fail on malformed JSON")
	}
}
