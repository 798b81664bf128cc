// Package propertytype implements the /api/property-type endpoints.
package propertytype

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	propertytypestore "github.com/huynhland/cms/internal/app/store/propertytype"
	"github.com/huynhland/cms/internal/app/system/jsonutil"
	"github.com/huynhland/cms/internal/app/system/lang"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles property type API requests.
type Handler struct {
	store  *propertytypestore.Store
	logger *zap.Logger
}

// NewHandler creates a new property type handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{store: propertytypestore.New(db), logger: logger}
}

// ListHandler handles GET /.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	types, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("property type list failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"propertyTypes": types})
}

// GetHandler handles GET /{id}?lang=: a single-locale projection.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	code, ok := lang.FromRequest(r)
	if !ok {
		jsonutil.BadRequest(w, "Invalid language.")
		return
	}

	id := chi.URLParam(r, "id")
	doc, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Property type not found.")
			return
		}
		h.logger.Error("property type get failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}

	block, _ := doc[code].(bson.M)
	if len(block) == 0 {
		jsonutil.NotFound(w, "Property type not found in this language.")
		return
	}
	jsonutil.OK(w, map[string]any{
		"propertyType": bson.M{
			"id":          doc["id"],
			"lang":        code,
			"name":        block["name"],
			"description": block["description"],
			"status":      doc["status"],
		},
	})
}

// CreateHandler handles POST /. Name and description are required in every
// locale.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var body bson.M
	if err := jsonutil.Decode(r, &body); err != nil {
		jsonutil.BadRequest(w, "Missing required fields.")
		return
	}

	name, ok := validateCreate(body)
	if !ok {
		jsonutil.BadRequest(w, "Missing required fields.")
		return
	}

	exists, err := h.store.NameExists(r.Context(), name)
	if err != nil {
		h.logger.Error("property type name check failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	if exists {
		jsonutil.BadRequest(w, "Property type with this Vietnamese name already exists.")
		return
	}

	doc := propertytypestore.Normalize(body)
	id, err := h.store.Create(r.Context(), doc)
	if err != nil {
		if propertytypestore.IsDuplicateKey(err) {
			jsonutil.BadRequest(w, "Property type with this Vietnamese name already exists.")
			return
		}
		h.logger.Error("property type create failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}

	h.logger.Info("property type created", zap.String("id", id), zap.String("name", name))
	created, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.Created(w, map[string]any{
		"message":      "Property type created.",
		"id":           id,
		"propertyType": created,
	})
}

func validateCreate(body bson.M) (viName string, ok bool) {
	for _, l := range []string{"vi", "en", "ko"} {
		block, isMap := body[l].(map[string]any)
		if !isMap {
			return "", false
		}
		for _, f := range []string{"name", "description"} {
			s, _ := block[f].(string)
			if strings.TrimSpace(s) == "" {
				return "", false
			}
		}
	}
	if _, present := body["status"]; !present {
		return "", false
	}
	viName, _ = body["vi"].(map[string]any)["name"].(string)
	return viName, true
}

// UpdateHandler handles PUT /{id}: dotted-path field updates per locale plus
// the status flag.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch bson.M
	if err := jsonutil.Decode(r, &patch); err != nil || len(patch) == 0 {
		jsonutil.BadRequest(w, "Missing fields to update.")
		return
	}

	updated, err := h.store.Merge(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Property type not found.")
			return
		}
		h.logger.Error("property type update failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{
		"message":      "Property type updated.",
		"propertyType": updated,
	})
}

// DeleteHandler handles DELETE /{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Property type not found.")
			return
		}
		h.logger.Error("property type delete failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"message": "Property type deleted."})
}
