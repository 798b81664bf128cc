// Package jsonutil provides helper functions for JSON API responses.
//
// The CMS API has a fixed response shape: success bodies wrap the resource
// under a named key ({"property": ...}), validation and not-found failures
// are {"message": ...}, and upstream failures are
// {"message": "Server error", "error": <underlying>}. Use these helpers in
// handlers so every route answers with the same envelope and Content-Type.
package jsonutil

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// OK writes a 200 OK JSON response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created JSON response.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Fail writes {"message": message} with the given status code.
// Use for validation (400), conflict (400), and not-found (404) responses.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// BadRequest writes a 400 {"message": ...} response.
func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

// NotFound writes a 404 {"message": ...} response.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message)
}

// ServerError writes the 500 envelope with the underlying error attached:
// {"message": "Server error", "error": err.Error()}.
func ServerError(w http.ResponseWriter, err error) {
	JSON(w, http.StatusInternalServerError, map[string]string{
		"message": "Server error",
		"error":   err.Error(),
	})
}

// Decode reads and decodes JSON from the request body into v.
// Returns an error that can be passed to BadRequest if decoding fails.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
