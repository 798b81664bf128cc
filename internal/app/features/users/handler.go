// Package users implements the /api/users endpoints: admin-panel account
// management. Every route sits behind the admin API key.
package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	userstore "github.com/huynhland/cms/internal/app/store/users"
	"github.com/huynhland/cms/internal/app/system/authutil"
	"github.com/huynhland/cms/internal/app/system/jsonutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles user API requests.
type Handler struct {
	store  *userstore.Store
	logger *zap.Logger
}

// NewHandler creates a new users handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{store: userstore.New(db), logger: logger}
}

// ListHandler handles GET /.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("user list failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"users": list})
}

// GetHandler handles GET /{id}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	u, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "User not found.")
			return
		}
		h.logger.Error("user get failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"user": u})
}

// CreateHandler handles POST /.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Status   string `json:"status"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Missing required fields.")
		return
	}
	if strings.TrimSpace(in.FullName) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		in.Password == "" {
		jsonutil.BadRequest(w, "Missing required fields.")
		return
	}
	if err := authutil.ValidatePassword(in.Password); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	exists, err := h.store.EmailExists(r.Context(), in.Email)
	if err != nil {
		jsonutil.ServerError(w, err)
		return
	}
	if exists {
		jsonutil.BadRequest(w, "Email already exists.")
		return
	}

	if in.Role == "" {
		in.Role = "editor"
	}
	if in.Status == "" {
		in.Status = "active"
	}
	u := &userstore.User{
		FullName: in.FullName,
		Email:    in.Email,
		Role:     in.Role,
		Status:   in.Status,
	}
	id, err := h.store.Create(r.Context(), u, in.Password)
	if err != nil {
		if userstore.IsDuplicateKey(err) {
			jsonutil.BadRequest(w, "Email already exists.")
			return
		}
		h.logger.Error("user create failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}

	h.logger.Info("user created", zap.String("id", id))
	jsonutil.Created(w, map[string]any{
		"message": "User created.",
		"id":      id,
		"user":    u,
	})
}

// UpdateHandler handles PUT /{id}: partial update of fullName, email,
// password, role and status.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]any
	if err := jsonutil.Decode(r, &body); err != nil {
		jsonutil.BadRequest(w, "Missing fields to update.")
		return
	}

	patch := bson.M{}
	for _, f := range []string{"fullName", "email", "password", "role", "status"} {
		v, present := body[f]
		if !present {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		patch[f] = v
	}
	if len(patch) == 0 {
		jsonutil.BadRequest(w, "Missing fields to update.")
		return
	}
	if pw, ok := patch["password"].(string); ok {
		if err := authutil.ValidatePassword(pw); err != nil {
			jsonutil.BadRequest(w, err.Error())
			return
		}
	}

	u, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "User not found.")
			return
		}
		if userstore.IsDuplicateKey(err) {
			jsonutil.BadRequest(w, "Email already exists.")
			return
		}
		h.logger.Error("user update failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{
		"message": "User updated.",
		"user":    u,
	})
}

// DeleteHandler handles DELETE /{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "User not found.")
			return
		}
		h.logger.Error("user delete failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"message": "User deleted."})
}
