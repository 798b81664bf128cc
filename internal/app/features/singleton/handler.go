// Package singleton implements the one-instance configuration resources:
// site settings, social links, contact details and the main office map.
// Each keeps exactly one document under a fixed id; create fails once it
// exists, update and delete fail while it does not.
package singleton

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	singletonstore "github.com/huynhland/cms/internal/app/store/singleton"
	"github.com/huynhland/cms/internal/app/system/jsonutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DocID is the fixed document id every singleton lives under.
const DocID = "main"

// Resource describes one singleton.
type Resource struct {
	// Noun as used in messages ("Settings").
	Noun string
	// JSONKey wraps the document in responses ("settings").
	JSONKey string
	// Collection is the MongoDB collection name.
	Collection string
	// Fields the resource stores; create requires all of them.
	Fields []string
}

// MissingMsg is the 400 message for an incomplete create body.
func (res Resource) MissingMsg() string {
	if len(res.Fields) == 2 {
		return fmt.Sprintf("Missing %s or %s.", res.Fields[0], res.Fields[1])
	}
	return fmt.Sprintf("Missing %s, or %s.",
		strings.Join(res.Fields[:len(res.Fields)-1], ", "),
		res.Fields[len(res.Fields)-1])
}

// Handler handles one singleton resource.
type Handler struct {
	res    Resource
	store  *singletonstore.Store
	logger *zap.Logger
}

// NewHandler creates a handler for the described resource.
func NewHandler(db *mongo.Database, res Resource, logger *zap.Logger) *Handler {
	return &Handler{
		res:    res,
		store:  singletonstore.New(db, res.Collection, DocID),
		logger: logger,
	}
}

// GetHandler handles GET /.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Get(r.Context())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, fmt.Sprintf("%s not found.", h.res.Noun))
			return
		}
		h.logger.Error("get failed", zap.String("resource", h.res.JSONKey), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{h.res.JSONKey: doc})
}

// CreateHandler handles POST /.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	fields, ok := h.readFields(r, true)
	if !ok {
		jsonutil.BadRequest(w, h.res.MissingMsg())
		return
	}

	exists, err := h.store.Exists(r.Context())
	if err != nil {
		jsonutil.ServerError(w, err)
		return
	}
	if exists {
		jsonutil.BadRequest(w, fmt.Sprintf("%s already exists.", h.res.Noun))
		return
	}

	if err := h.store.Create(r.Context(), fields); err != nil {
		if singletonstore.IsDuplicateKey(err) {
			jsonutil.BadRequest(w, fmt.Sprintf("%s already exists.", h.res.Noun))
			return
		}
		h.logger.Error("create failed", zap.String("resource", h.res.JSONKey), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}

	doc, err := h.store.Get(r.Context())
	if err != nil {
		jsonutil.ServerError(w, err)
		return
	}
	h.logger.Info("created", zap.String("resource", h.res.JSONKey))
	jsonutil.Created(w, map[string]any{
		"message":     fmt.Sprintf("%s created.", h.res.Noun),
		h.res.JSONKey: doc,
	})
}

// UpdateHandler handles PUT /.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	fields, ok := h.readFields(r, false)
	if !ok || len(fields) == 0 {
		jsonutil.BadRequest(w, "Missing fields to update.")
		return
	}

	doc, err := h.store.Update(r.Context(), fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, fmt.Sprintf("%s not found.", h.res.Noun))
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

// DeleteHandler handles DELETE /.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context()); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, fmt.Sprintf("%s not found.", h.res.Noun))
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
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		fields[f] = v
	}

	if requireAll {
		for _, f := range h.res.Fields {
			if _, present := fields[f]; !present {
				return nil, false
			}
		}
	}
	return fields, true
}
