// Package localedoc implements the per-language singleton resources:
// history, mission, vision, infor and office. Each keeps at most one
// document per language, addressed by the lang query parameter. The five
// routers share this one implementation and differ only in their Resource
// description.
package localedoc

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	localedocstore "github.com/huynhland/cms/internal/app/store/localedoc"
	"github.com/huynhland/cms/internal/app/system/htmlsanitize"
	"github.com/huynhland/cms/internal/app/system/jsonutil"
	"github.com/huynhland/cms/internal/app/system/lang"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Resource describes one per-language singleton.
type Resource struct {
	// Noun as used in messages, capitalized ("History").
	Noun string
	// JSONKey wraps the document in responses ("history").
	JSONKey string
	// Collection is the MongoDB collection name ("histories").
	Collection string
	// Fields the resource stores; anything else in a body is ignored.
	Fields []string
	// Required fields on create; update needs at least one field present.
	Required []string
	// Sanitized names the fields run through the HTML sanitizer.
	Sanitized []string
}

// MissingMsg is the 400 message for an incomplete create body.
func (res Resource) MissingMsg() string {
	if len(res.Required) == 2 {
		return fmt.Sprintf("Missing %s or %s.", res.Required[0], res.Required[1])
	}
	return fmt.Sprintf("Missing %s, or %s.",
		strings.Join(res.Required[:len(res.Required)-1], ", "),
		res.Required[len(res.Required)-1])
}

// Handler handles one per-language singleton resource.
type Handler struct {
	res    Resource
	store  *localedocstore.Store
	logger *zap.Logger
}

// NewHandler creates a handler for the described resource.
func NewHandler(db *mongo.Database, res Resource, logger *zap.Logger) *Handler {
	return &Handler{
		res:    res,
		store:  localedocstore.New(db, res.Collection),
		logger: logger,
	}
}

// GetHandler handles GET /?lang=.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	code, ok := lang.FromRequest(r)
	if !ok {
		jsonutil.BadRequest(w, "Invalid language.")
		return
	}

	doc, err := h.store.Get(r.Context(), code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, h.notFoundMsg())
			return
		}
		h.logger.Error("get failed", zap.String("resource", h.res.JSONKey), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{h.res.JSONKey: doc})
}

// CreateHandler handles POST /?lang=. Fails when the language already has a
// document; the _id insert is the actual guarantee, the Exists pre-check
// just words the 400 nicely.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	code, ok := lang.FromRequest(r)
	if !ok {
		jsonutil.BadRequest(w, "Invalid language.")
		return
	}

	fields, ok := h.readFields(r, true)
	if !ok {
		jsonutil.BadRequest(w, h.res.MissingMsg())
		return
	}

	exists, err := h.store.Exists(r.Context(), code)
	if err != nil {
		jsonutil.ServerError(w, err)
		return
	}
	if exists {
		jsonutil.BadRequest(w, fmt.Sprintf("%s already exists for this language.", h.res.Noun))
		return
	}

	if err := h.store.Create(r.Context(), code, fields); err != nil {
		if localedocstore.IsDuplicateKey(err) {
			jsonutil.BadRequest(w, fmt.Sprintf("%s already exists for this language.", h.res.Noun))
			return
		}
		h.logger.Error("create failed", zap.String("resource", h.res.JSONKey), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}

	doc, err := h.store.Get(r.Context(), code)
	if err != nil {
		jsonutil.ServerError(w, err)
		return
	}
	h.logger.Info("created", zap.String("resource", h.res.JSONKey), zap.String("lang", code))
	jsonutil.Created(w, map[string]any{
		"message":     fmt.Sprintf("%s created.", h.res.Noun),
		h.res.JSONKey: doc,
	})
}

// UpdateHandler handles PUT /?lang=.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	code, ok := lang.FromRequest(r)
	if !ok {
		jsonutil.BadRequest(w, "Invalid language.")
		return
	}

	fields, ok := h.readFields(r, false)
	if !ok || len(fields) == 0 {
		jsonutil.BadRequest(w, "Missing fields to update.")
		return
	}

	doc, err := h.store.Update(r.Context(), code, fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, h.notFoundMsg())
			return
		}
		h.logger.Error("update failed", zap.String("resource", h.res.JSONKey), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{
		"message":     fmt.Sprintf("%s updated.", h.res.Noun),
		h.res.JSONKey: doc,
	})
}

// DeleteHandler handles DELETE /?lang=.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	code, ok := lang.FromRequest(r)
	if !ok {
		jsonutil.BadRequest(w, "Invalid language.")
		return
	}

	if err := h.store.Delete(r.Context(), code); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, h.notFoundMsg())
			return
		}
		h.logger.Error("delete failed", zap.String("resource", h.res.JSONKey), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{
		"message": fmt.Sprintf("%s deleted.", h.res.Noun),
	})
}

func (h *Handler) notFoundMsg() string {
	return fmt.Sprintf("No %s found for this language.", strings.ToLower(h.res.Noun))
}

// readFields decodes the body and keeps the resource's known fields,
// sanitizing the rich-text ones. With requireAll set, every required field
// must be present and non-empty.
func (h *Handler) readFields(r *http.Request, requireAll bool) (bson.M, bool) {
	var body map[string]any
	if err := jsonutil.Decode(r, &body); err != nil {
		return nil, false
	}

	fields := bson.M{}
	for _, f := range h.res.Fields {
		v, present := body[f]
		if !present {
			continue
		}
		if s, isStr := v.(string); isStr {
			if strings.TrimSpace(s) == "" {
				continue
			}
			if h.sanitized(f) {
				v = htmlsanitize.Sanitize(s)
			}
		}
		fields[f] = v
	}

	if requireAll {
		for _, f := range h.res.Required {
			if _, present := fields[f]; !present {
				return nil, false
			}
		}
	}
	return fields, true
}

func (h *Handler) sanitized(field string) bool {
	for _, f := range h.res.Sanitized {
		if f == field {
			return true
		}
	}
	return false
}
