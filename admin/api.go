package admin

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/vibecircle/journal/contentapi"
	publishcmd "github.com/vibecircle/journal/internal/commands/publish"
	"github.com/vibecircle/journal/internal/logging"
	"github.com/vibecircle/journal/internal/schema"
	"github.com/vibecircle/journal/pkg/interfaces"
	"github.com/vibecircle/journal/posts"
)

// SecretHeader is the shared-secret header that gates write endpoints.
const SecretHeader = "x-admin-secret"

const maxUploadBytes = 32 << 20

// API serves the journal's HTTP surface: public read endpoints and the
// secret-gated write endpoints used by the admin form.
type API struct {
	basePath  string
	secret    string
	publisher *Publisher
	reads     *posts.Service
	logger    interfaces.Logger
}

// APIOption mutates the API configuration.
type APIOption func(*API)

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) APIOption {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithSecret sets the shared admin secret. Write endpoints reject every
// request until a non-empty secret is configured.
func WithSecret(secret string) APIOption {
	return func(api *API) {
		api.secret = secret
	}
}

// WithPublisher wires the write-path publisher.
func WithPublisher(p *Publisher) APIOption {
	return func(api *API) {
		api.publisher = p
	}
}

// WithReadService wires the read service.
func WithReadService(svc *posts.Service) APIOption {
	return func(api *API) {
		api.reads = svc
	}
}

// WithAPILogger attaches a logger.
func WithAPILogger(logger interfaces.Logger) APIOption {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// NewAPI constructs an API instance.
func NewAPI(opts ...APIOption) *API {
	api := &API{
		basePath: "/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// Register attaches all endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("admin: mux is required")
	}
	base := "/" + strings.Trim(api.basePath, "/")

	if api.reads != nil {
		mux.HandleFunc("GET "+base+"/posts", api.handleListPosts)
		mux.HandleFunc("GET "+base+"/posts/{slug}", api.handleGetPost)
		mux.HandleFunc("GET "+base+"/categories/{category}/posts", api.handleListByCategory)
		mux.HandleFunc("GET "+base+"/authors", api.handleListAuthors)
		mux.HandleFunc("GET "+base+"/authors/{name}/posts", api.handleListByAuthor)
	}
	if api.publisher != nil {
		mux.HandleFunc("POST "+base+"/admin/posts", api.handleCreatePost)
		mux.HandleFunc("POST "+base+"/admin/authors", api.handleSaveAuthor)
	}
	return nil
}

func (api *API) authorized(r *http.Request) bool {
	return api.secret != "" && r.Header.Get(SecretHeader) == api.secret
}

func (api *API) handleListPosts(w http.ResponseWriter, r *http.Request) {
	list, err := api.reads.List(r.Context())
	if err != nil {
		api.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"posts":   list,
		"authors": posts.AuthorsFromPosts(list),
	})
}

func (api *API) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := api.reads.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		api.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (api *API) handleListByCategory(w http.ResponseWriter, r *http.Request) {
	list, err := api.reads.ListByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		api.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": list})
}

func (api *API) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := api.reads.Authors(r.Context())
	if err != nil {
		api.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authors": authors})
}

func (api *API) handleListByAuthor(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	list, err := api.reads.ListByAuthor(r.Context(), name)
	if err != nil {
		api.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": list})
}

func (api *API) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if !api.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form data"})
		return
	}

	cmd := publishcmd.CreatePostCommand{
		Title:          strings.TrimSpace(r.FormValue("title")),
		Subtitle:       strings.TrimSpace(r.FormValue("subtitle")),
		Body:           r.FormValue("body"),
		Tags:           splitTags(r.FormValue("tags")),
		AuthorName:     strings.TrimSpace(r.FormValue("authorName")),
		AuthorRole:     strings.TrimSpace(r.FormValue("authorRole")),
		AuthorAvatar:   strings.TrimSpace(r.FormValue("authorAvatar")),
		AuthorBio:      strings.TrimSpace(r.FormValue("authorBio")),
		Category:       strings.TrimSpace(r.FormValue("category")),
		CategoryColor:  strings.TrimSpace(r.FormValue("categoryColor")),
		Emoji:          strings.TrimSpace(r.FormValue("emoji")),
		Featured:       r.FormValue("featured") == "true",
		ThumbGradStart: strings.TrimSpace(r.FormValue("thumbGradStart")),
		ThumbGradEnd:   strings.TrimSpace(r.FormValue("thumbGradEnd")),
		PublishedAt:    strings.TrimSpace(r.FormValue("publishedAt")),
	}
	if err := cmd.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	ctx := r.Context()
	var err error
	if cmd.AuthorPhotoAsset, err = api.uploadFormFile(r, "authorPhoto"); err != nil {
		api.writeUploadError(w, "authorPhoto", err)
		return
	}
	if cmd.CoverAsset, err = api.uploadFormFile(r, "coverImage"); err != nil {
		api.writeUploadError(w, "coverImage", err)
		return
	}
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["bodyImages"] {
			asset, err := api.uploadHeader(ctx, header)
			if err != nil {
				api.writeUploadError(w, "bodyImages", err)
				return
			}
			if asset != nil {
				cmd.BodyImageAssets = append(cmd.BodyImageAssets, *asset)
			}
		}
	}

	id, err := api.publisher.CreatePost(ctx, cmd)
	if err != nil {
		api.writeWriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (api *API) handleSaveAuthor(w http.ResponseWriter, r *http.Request) {
	if !api.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form data"})
		return
	}

	cmd := publishcmd.SaveAuthorCommand{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Role:        strings.TrimSpace(r.FormValue("role")),
		AvatarEmoji: strings.TrimSpace(r.FormValue("avatarEmoji")),
		Bio:         strings.TrimSpace(r.FormValue("bio")),
	}
	if err := cmd.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	var err error
	if cmd.PhotoAsset, err = api.uploadFormFile(r, "photo"); err != nil {
		api.writeUploadError(w, "photo", err)
		return
	}

	id, created, err := api.publisher.SaveAuthor(r.Context(), cmd)
	if err != nil {
		api.writeWriteError(w, err)
		return
	}
	if created {
		writeJSON(w, http.StatusCreated, map[string]any{"id": id, "created": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "updated": true})
}

// uploadFormFile uploads a single optional file field, returning nil when
// the field is absent or empty.
func (api *API) uploadFormFile(r *http.Request, field string) (*contentapi.AssetDocument, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	return api.uploadHeader(r.Context(), headers[0])
}

// uploadHeader uploads one multipart file. Zero-length files are skipped
// because the content service rejects empty asset payloads.
func (api *API) uploadHeader(ctx context.Context, header *multipart.FileHeader) (*contentapi.AssetDocument, error) {
	if header == nil || header.Size == 0 {
		return nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("admin: open %q: %w", header.Filename, err)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return api.publisher.UploadImage(ctx, header.Filename, contentType, file)
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (api *API) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, posts.ErrPostNotFound), errors.Is(err, posts.ErrAuthorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, posts.ErrSourceUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "source_unavailable", Message: err.Error()})
	default:
		api.logger.Error("read request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
	}
}

func (api *API) writeWriteError(w http.ResponseWriter, err error) {
	var docErr *schema.DocumentError
	if errors.As(err, &docErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_document", Message: docErr.Error()})
		return
	}
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		writeValidationError(w, validationErrs)
		return
	}
	api.logger.Error("write request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "write_failed", Message: err.Error()})
}

func (api *API) writeUploadError(w http.ResponseWriter, field string, err error) {
	api.logger.Error("asset upload failed", "field", field, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "upload_failed",
		Message: fmt.Sprintf("failed to upload %s", field),
	})
}
