// Package property implements the /api/property endpoints: the searchable
// multilingual listing resource of the CMS.
package property

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	propertystore "github.com/huynhland/cms/internal/app/store/property"
	"github.com/huynhland/cms/internal/app/system/htmlsanitize"
	"github.com/huynhland/cms/internal/app/system/jsonutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// requiredLocaleFields must be non-empty in every locale block of a create
// request.
var requiredLocaleFields = []string{"name", "address", "code", "price", "area", "landArea"}

// Handler handles property API requests.
type Handler struct {
	store  *propertystore.Store
	logger *zap.Logger
}

// NewHandler creates a new property handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{store: propertystore.New(db), logger: logger}
}

// ListHandler handles GET /. Optional filters: propertyType, businessType,
// priceFrom, priceTo, address, keyword.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := propertystore.SearchQuery{
		PropertyType: strings.TrimSpace(r.URL.Query().Get("propertyType")),
		BusinessType: strings.TrimSpace(r.URL.Query().Get("businessType")),
		Address:      strings.TrimSpace(r.URL.Query().Get("address")),
		Keyword:      strings.TrimSpace(r.URL.Query().Get("keyword")),
	}

	var ok bool
	if q.PriceFrom, ok = parsePrice(r, "priceFrom"); !ok {
		jsonutil.BadRequest(w, "Invalid price.")
		return
	}
	if q.PriceTo, ok = parsePrice(r, "priceTo"); !ok {
		jsonutil.BadRequest(w, "Invalid price.")
		return
	}

	properties, err := h.store.Search(r.Context(), q)
	if err != nil {
		h.logger.Error("property search failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"properties": properties})
}

func parsePrice(r *http.Request, param string) (*float64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(param))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// GetHandler handles GET /{id}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	property, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Property not found.")
			return
		}
		h.logger.Error("property get failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"property": property})
}

// CreateHandler handles POST /. All three locale blocks are required, each
// with the full required field set; vi.code must be unique.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var body bson.M
	if err := jsonutil.Decode(r, &body); err != nil {
		jsonutil.BadRequest(w, "Missing required fields.")
		return
	}

	code, ok := validateCreate(body)
	if !ok {
		jsonutil.BadRequest(w, "Missing required fields.")
		return
	}

	exists, err := h.store.CodeExists(r.Context(), code)
	if err != nil {
		h.logger.Error("property code check failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	if exists {
		jsonutil.BadRequest(w, "Property code already exists.")
		return
	}

	doc := propertystore.Normalize(sanitizeDescriptions(body))
	id, err := h.store.Create(r.Context(), doc)
	if err != nil {
		// The unique index is the real enforcement; the pre-check above just
		// lost a race.
		if propertystore.IsDuplicateKey(err) {
			jsonutil.BadRequest(w, "Property code already exists.")
			return
		}
		h.logger.Error("property create failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}

	property, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("property readback failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}

	h.logger.Info("property created", zap.String("id", id), zap.String("code", code))
	jsonutil.Created(w, map[string]any{
		"message":  "Property created.",
		"id":       id,
		"property": property,
	})
}

// validateCreate checks the required locale fields and returns vi.code.
func validateCreate(body bson.M) (code string, ok bool) {
	for _, l := range []string{"vi", "en", "ko"} {
		block, isMap := body[l].(map[string]any)
		if !isMap {
			return "", false
		}
		for _, f := range requiredLocaleFields {
			v, present := block[f]
			if !present || v == nil {
				return "", false
			}
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				return "", false
			}
		}
	}
	vi := body["vi"].(map[string]any)
	code, _ = vi["code"].(string)
	return code, code != ""
}

// sanitizeDescriptions runs the locale description fields through the HTML
// sanitizer; the admin panel submits rich text there.
func sanitizeDescriptions(body bson.M) bson.M {
	for _, l := range []string{"vi", "en", "ko"} {
		block, ok := body[l].(map[string]any)
		if !ok {
			continue
		}
		if desc, ok := block["description"].(string); ok {
			block["description"] = htmlsanitize.Sanitize(desc)
		}
	}
	return body
}

// UpdateHandler handles PUT /{id}: partial merge of locale blocks, wholesale
// replacement of the locale-independent fields.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch bson.M
	if err := jsonutil.Decode(r, &patch); err != nil || len(patch) == 0 {
		jsonutil.BadRequest(w, "Missing fields to update.")
		return
	}
	if status, ok := patch["status"].(string); ok && !validStatus(status) {
		jsonutil.BadRequest(w, "Invalid status.")
		return
	}

	property, err := h.store.Merge(r.Context(), id, sanitizeDescriptions(patch))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Property not found.")
			return
		}
		h.logger.Error("property update failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{
		"message":  "Property updated.",
		"property": property,
	})
}

// StatusHandler handles PUT /{id}/status.
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Status string `json:"status"`
	}
	if err := jsonutil.Decode(r, &body); err != nil || !validStatus(body.Status) {
		jsonutil.BadRequest(w, "Invalid status.")
		return
	}

	if err := h.store.SetStatus(r.Context(), id, body.Status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Property not found.")
			return
		}
		h.logger.Error("property status update failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{
		"message": "Property status updated.",
		"status":  body.Status,
	})
}

func validStatus(s string) bool {
	return s == "active" || s == "hidden"
}

// DeleteHandler handles DELETE /{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Property not found.")
			return
		}
		h.logger.Error("property delete failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"message": "Property deleted."})
}
