// Package uploads implements the /api/uploads endpoint: the bridge between
// the admin panel's image picker and the file storage provider. The handler
// only hands back a publicly embeddable URL; attaching it to a document
// field (property images, news content) is the caller's job.
package uploads

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"github.com/huynhland/cms/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// maxUploadSize caps an upload at 32 MB.
const maxUploadSize = 32 << 20

// Handler handles upload API requests.
type Handler struct {
	fileStorage storage.Store
	logger      *zap.Logger
}

// NewHandler creates a new uploads handler.
func NewHandler(fileStorage storage.Store, logger *zap.Logger) *Handler {
	return &Handler{fileStorage: fileStorage, logger: logger}
}

// UploadHandler handles POST /: a single multipart "file" field. The object
// lands under uploads/YYYY/MM/ with a timestamp-and-uuid name so concurrent
// uploads of the same filename never collide.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonutil.BadRequest(w, "No file uploaded.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.BadRequest(w, "No file uploaded.")
		return
	}
	defer file.Close()

	now := time.Now().UTC()
	ext := filepath.Ext(header.Filename)
	path := fmt.Sprintf("uploads/%04d/%02d/%d_%s%s",
		now.Year(), now.Month(), now.UnixMilli(), uuid.New().String()[:8], ext)

	contentType := header.Header.Get("Content-Type")
	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.fileStorage.Put(r.Context(), path, file, opts); err != nil {
		h.logger.Error("upload failed",
			zap.String("path", path),
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		jsonutil.JSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Upload failed",
			"error":   err.Error(),
		})
		return
	}

	h.logger.Info("file uploaded",
		zap.String("path", path),
		zap.Int64("size", header.Size),
		zap.String("content_type", contentType),
	)
	jsonutil.OK(w, map[string]string{"url": h.fileStorage.URL(path)})
}
