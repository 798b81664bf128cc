// Package contactmsg implements the /api/contact-message endpoints: the
// public contact form intake and the admin inbox.
package contactmsg

import (
	"net/http"
	"strconv"
	"strings"

	contactmsgstore "github.com/huynhland/cms/internal/app/store/contactmsg"
	"github.com/huynhland/cms/internal/app/store/storeutil"
	"github.com/huynhland/cms/internal/app/system/jsonutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles contact message API requests.
type Handler struct {
	store  *contactmsgstore.Store
	logger *zap.Logger
}

// NewHandler creates a new contact message handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{store: contactmsgstore.New(db), logger: logger}
}

// CreateHandler handles POST /: the public contact form. Name, phone and
// message are required; email and subject stay null when omitted.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name    string  `json:"name"`
		Phone   string  `json:"phone"`
		Email   *string `json:"email"`
		Subject *string `json:"subject"`
		Message string  `json:"message"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Missing required fields.")
		return
	}
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Phone) == "" ||
		strings.TrimSpace(in.Message) == "" {
		jsonutil.BadRequest(w, "Missing required fields.")
		return
	}

	msg := &contactmsgstore.Message{
		Name:    in.Name,
		Phone:   in.Phone,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
	id, err := h.store.Append(r.Context(), msg)
	if err != nil {
		h.logger.Error("contact message append failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}

	h.logger.Info("contact message received", zap.String("id", id))
	jsonutil.Created(w, map[string]any{
		"message": "Message sent.",
		"id":      id,
	})
}

// ListHandler handles GET /: the inbox, newest first. Optional limit and
// page parameters window the result; both default to the full set.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	page := storeutil.Page{
		Limit: intParam(r, "limit"),
		Page:  intParam(r, "page"),
	}

	msgs, err := h.store.List(r.Context(), page)
	if err != nil {
		h.logger.Error("contact message list failed", zap.Error(err))
		jsonutil.ServerError(w, err)
		return
	}
	jsonutil.OK(w, map[string]any{"contactMessages": msgs})
}

func intParam(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
