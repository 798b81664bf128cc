// Package news implements the /api/news endpoints.
package news

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	newsstore "github.com/huynhland/cms/internal/app/store/news"
	"github.com/huynhland/cms/internal/app/system/htmlsanitize"
	"github.com/huynhland/cms/internal/app/system/jsonutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles news API requests.
type Handler struct {
	store  *newsstore.Store
	logger *zap.Logger
}

// NewHandler creates a new news handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{store: newsstore.New(db), logger: logger}
}

// ListHandler handles GET /?title=: all articles newest-first, optionally
// narrowed to a title prefix.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := h.store.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("title")))
	if err != nil {
		h.logger.Error("news list failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"news": articles})
}

// LatestHandler handles GET /latest.
func (h *Handler) LatestHandler(w http.ResponseWriter, r *http.Request) {
	article, err := h.store.Latest(r.Context())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "News not found.")
			return
		}
		h.logger.Error("news latest failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"news": article})
}

// GetHandler handles GET /{id}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	article, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "News not found.")
			return
		}
		h.logger.Error("news get failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"news": article})
}

type newsInput struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Date    string `json:"date"`
}

// CreateHandler handles POST /. Title and content are required; date
// accepts RFC 3339 and defaults to now.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in newsInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Missing required fields.")
		return
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		jsonutil.BadRequest(w, "Missing required fields.")
		return
	}

	date := time.Now().UTC()
	if in.Date != "" {
		parsed, err := time.Parse(time.RFC3339, in.Date)
		if err != nil {
			jsonutil.BadRequest(w, "Invalid date.")
			return
		}
		date = parsed
	}

	article := &newsstore.Article{
		Title:   in.Title,
		Summary: in.Summary,
		Content: htmlsanitize.Sanitize(in.Content),
		Author:  in.Author,
		Date:    date,
	}
	id, err := h.store.Create(r.Context(), article)
	if err != nil {
		h.logger.Error("news create failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}

	h.logger.Info("news created", zap.String("id", id), zap.String("title", in.Title))
	jsonutil.Created(w, map[string]any{
		"message": "News created.",
		"id":      id,
		"news":    article,
	})
}

// UpdateHandler handles PUT /{id}: partial field update.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in newsInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Missing fields to update.")
		return
	}

	set := bson.M{}
	if strings.TrimSpace(in.Title) != "" {
		set["title"] = in.Title
	}
	if strings.TrimSpace(in.Summary) != "" {
		set["summary"] = in.Summary
	}
	if strings.TrimSpace(in.Content) != "" {
		set["content"] = htmlsanitize.Sanitize(in.Content)
	}
	if strings.TrimSpace(in.Author) != "" {
		set["author"] = in.Author
	}
	if in.Date != "" {
		parsed, err := time.Parse(time.RFC3339, in.Date)
		if err != nil {
			jsonutil.BadRequest(w, "Invalid date.")
			return
		}
		set["date"] = parsed
	}
	if len(set) == 0 {
		jsonutil.BadRequest(w, "Missing fields to update.")
		return
	}

	article, err := h.store.Update(r.Context(), id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "News not found.")
			return
		}
		h.logger.Error("news update failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{
		"message": "News updated.",
		"news":    article,
	})
}

// DeleteHandler handles DELETE /{id}; the response echoes the removed
// article.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	article, err := h.store.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "News not found.")
			return
		}
		h.logger.Error("news delete failed", zap.String("id", id), zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{
		"message": "News deleted.",
		"news":    article,
	})
}
