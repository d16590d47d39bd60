// internal/app/features/media/media.go
package media

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	"github.com/bnomad/website/internal/app/system/formutil"
	"github.com/bnomad/website/internal/app/system/normalize"
	"github.com/bnomad/website/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// maxUploadSize is the hard cap for a single image upload.
	maxUploadSize = 5 << 20 // 5 MiB

	// recentLimit caps the in-memory list shown on the media page.
	recentLimit = 20
)

// Upload records a completed upload for display on the media page.
// The list is in-memory only; the files themselves live in storage.
type Upload struct {
	ID          string
	Name        string
	Path        string
	URL         string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}

// Handler provides the admin media upload page.
type Handler struct {
	files  storage.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger

	mu     sync.Mutex
	recent []Upload
}

// NewHandler creates a new media Handler.
func NewHandler(files storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		files:  files,
		errLog: errLog,
		logger: logger,
	}
}

// VM is the view model for the media page.
type VM struct {
	formutil.Base
	Uploads  []Upload
	Uploaded *Upload
	MaxSize  string
}

// Routes returns a chi.Router with the media routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	r.Post("/upload", h.Upload)
	return r
}

// Index renders the upload form and recent uploads.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	vm := h.newVM(r)
	templates.Render(w, r, "media/index", vm)
}

// Upload validates and stores an image. Size and content type are
// checked before anything reaches storage.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+4096)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.renderError(w, r, "The file is too large. Images must be 5 MB or smaller.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderError(w, r, "Please choose an image to upload.")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		h.renderError(w, r, "The file is too large. Images must be 5 MB or smaller.")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		h.renderError(w, r, "Only image files can be uploaded.")
		return
	}

	name := normalize.Filename(header.Filename)
	if name == "" {
		h.renderError(w, r, "The file name is not usable.")
		return
	}
	path := fmt.Sprintf("media/%d-%s", time.Now().UnixMilli(), name)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.files.Put(ctx, path, file, opts); err != nil {
		h.errLog.Log(r, "failed to store upload", err)
		h.renderError(w, r, "The upload failed. Please try again.")
		return
	}

	up := Upload{
		ID:          uuid.New().String(),
		Name:        header.Filename,
		Path:        path,
		URL:         h.files.URL(path),
		ContentType: contentType,
		Size:        header.Size,
		UploadedAt:  time.Now().UTC(),
	}
	h.remember(up)
	h.logger.Info("media uploaded",
		zap.String("path", path),
		zap.Int64("size", header.Size),
		zap.String("content_type", contentType))

	vm := h.newVM(r)
	vm.Uploaded = &up
	templates.Render(w, r, "media/index", vm)
}

func (h *Handler) remember(up Upload) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recent = append([]Upload{up}, h.recent...)
	if len(h.recent) > recentLimit {
		h.recent = h.recent[:recentLimit]
	}
}

// Recent returns a copy of the uploads remembered this process.
func (h *Handler) Recent() []Upload {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Upload, len(h.recent))
	copy(out, h.recent)
	return out
}

func (h *Handler) newVM(r *http.Request) VM {
	return VM{
		Base:    formutil.NewBase(r, "Media"),
		Uploads: h.Recent(),
		MaxSize: "5 MB",
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, msg string) {
	vm := h.newVM(r)
	vm.SetError(msg)
	templates.Render(w, r, "media/index", vm)
}
