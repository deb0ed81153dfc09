package link

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sundayezeilo/linkstore/internal/auth"
	"github.com/sundayezeilo/linkstore/internal/errx"
	"github.com/sundayezeilo/linkstore/internal/httpx"
	"github.com/sundayezeilo/linkstore/internal/optional"
)

const deletedMessage = "Link deleted successfully"

// CreateLinkRequest is the JSON body for POST /api/v1/links.
type CreateLinkRequest struct {
	OriginalURL string `json:"original_url"`
}

// UpdateLinkRequest is the JSON body for PATCH and PUT /api/v1/links/{id}.
// Only original_url is applied. Read-only fields such as id, owner_id and
// shorted_url may be present and are ignored, so a fetched link can be sent back.
type UpdateLinkRequest struct {
	OriginalURL optional.Value[string] `json:"original_url"`
}

// LinkResponse is the JSON representation of a Link.
type LinkResponse struct {
	ID          int64  `json:"id"`
	OriginalURL string `json:"original_url"`
	ShortedURL  string `json:"shorted_url"`
	OwnerID     int64  `json:"owner_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ListLinksResponse is the JSON body for GET /api/v1/links.
type ListLinksResponse struct {
	Data  []LinkResponse `json:"data"`
	Count int64          `json:"count"`
}

// Handler provides HTTP handlers for the link service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// HandlerConfig holds configuration for the handler.
type HandlerConfig struct {
	Service Service
	Logger  *slog.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		service: cfg.Service,
		logger:  logger,
	}
}

// ListLinks handles GET /api/v1/links?skip=&limit=.
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	p, ok := h.principal(w, r, logger)
	if !ok {
		return
	}

	skip, err := httpx.QueryInt(r, "skip", 0)
	if err != nil {
		logger.WarnContext(ctx, "invalid query parameter", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}
	limit, err := httpx.QueryInt(r, "limit", DefaultListLimit)
	if err != nil {
		logger.WarnContext(ctx, "invalid query parameter", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	result, err := h.service.List(ctx, p, ListParams{Offset: skip, Limit: limit})
	if err != nil {
		h.handleError(ctx, w, logger, err)
		return
	}

	resp := ListLinksResponse{
		Data:  make([]LinkResponse, 0, len(result.Items)),
		Count: result.Count,
	}
	for _, l := range result.Items {
		resp.Data = append(resp.Data, toLinkResponse(l))
	}

	logger.DebugContext(ctx, "links listed",
		"principal_id", p.ID,
		"returned", len(resp.Data),
		"count", result.Count,
	)

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// GetLink handles GET /api/v1/links/{id}.
func (h *Handler) GetLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	p, ok := h.principal(w, r, logger)
	if !ok {
		return
	}
	id, ok := h.linkID(w, r, logger)
	if !ok {
		return
	}

	link, err := h.service.Get(ctx, p, id)
	if err != nil {
		h.handleError(ctx, w, logger, err, "link_id", id)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toLinkResponse(link))
}

// CreateLink handles POST /api/v1/links.
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	p, ok := h.principal(w, r, logger)
	if !ok {
		return
	}

	req, err := httpx.DecodeJSON[CreateLinkRequest](r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	if err := validateURLFormat(req.OriginalURL); err != nil {
		logger.WarnContext(ctx, "request validation failed",
			"error", err.Error(),
			"original_url", req.OriginalURL,
		)
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", err.Error(), nil)
		return
	}

	link, err := h.service.Create(ctx, p, CreateParams{OriginalURL: req.OriginalURL})
	if err != nil {
		h.handleError(ctx, w, logger, err)
		return
	}

	logger.InfoContext(ctx, "link created successfully",
		"link_id", link.ID,
		"principal_id", p.ID,
		"shorted_url", link.ShortedURL,
	)

	httpx.WriteJSON(w, http.StatusCreated, toLinkResponse(link))
}

// UpdateLink handles PATCH and PUT /api/v1/links/{id}. Both apply only the
// fields present in the body.
func (h *Handler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	p, ok := h.principal(w, r, logger)
	if !ok {
		return
	}
	id, ok := h.linkID(w, r, logger)
	if !ok {
		return
	}

	req, err := httpx.DecodeJSONLenient[UpdateLinkRequest](r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "error", err.Error(), "link_id", id)
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	if v, ok := req.OriginalURL.Get(); ok {
		if err := validateURLFormat(v); err != nil {
			logger.WarnContext(ctx, "request validation failed",
				"error", err.Error(),
				"link_id", id,
				"original_url", v,
			)
			httpx.WriteError(w, http.StatusBadRequest, "validation_failed", err.Error(), nil)
			return
		}
	}

	link, err := h.service.Update(ctx, p, id, Patch{OriginalURL: req.OriginalURL})
	if err != nil {
		h.handleError(ctx, w, logger, err, "link_id", id)
		return
	}

	logger.InfoContext(ctx, "link updated successfully",
		"link_id", link.ID,
		"principal_id", p.ID,
	)

	httpx.WriteJSON(w, http.StatusOK, toLinkResponse(link))
}

// DeleteLink handles DELETE /api/v1/links/{id}.
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	p, ok := h.principal(w, r, logger)
	if !ok {
		return
	}
	id, ok := h.linkID(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, p, id); err != nil {
		h.handleError(ctx, w, logger, err, "link_id", id)
		return
	}

	logger.InfoContext(ctx, "link deleted successfully",
		"link_id", id,
		"principal_id", p.ID,
	)

	httpx.WriteMessage(w, http.StatusOK, deletedMessage)
}

func (h *Handler) requestLogger(r *http.Request) *slog.Logger {
	return h.logger.With(
		"request_id", httpx.GetRequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
}

func (h *Handler) principal(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (auth.Principal, bool) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		logger.WarnContext(r.Context(), "request reached handler without a principal")
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return auth.Principal{}, false
	}
	return p, true
}

func (h *Handler) linkID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	id, err := httpx.PathInt64(r, "id")
	if err != nil {
		logger.WarnContext(r.Context(), "invalid link id", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return 0, false
	}
	return id, true
}

// handleError logs err with its kind and op and writes the mapped response.
func (h *Handler) handleError(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, err error, attrs ...any) {
	kind := errx.KindOf(err)
	status := httpx.ErrorKindToStatus(kind)

	logAttrs := append([]any{
		"error", err.Error(),
		"error_kind", kind,
		"operation", errx.OpOf(err),
	}, attrs...)

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "link request failed", logAttrs...)
	} else {
		logger.WarnContext(ctx, "link request rejected", logAttrs...)
	}

	httpx.WriteKindError(w, err, errorMessage(kind, err))
}

func errorMessage(kind errx.Kind, err error) string {
	switch kind {
	case errx.NotFound:
		return "Link not found"
	case errx.Forbidden:
		return "Not enough permissions"
	case errx.Invalid:
		return rootMessage(err)
	case errx.Conflict:
		return "Link conflicts with an existing record"
	case errx.Unavailable:
		return "Unable to process the request at this time. Please try again."
	default:
		return "An unexpected error occurred"
	}
}

// rootMessage returns the message of the innermost error below the errx
// wrappers, which is the human-readable validation failure.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func toLinkResponse(l Link) LinkResponse {
	return LinkResponse{
		ID:          l.ID,
		OriginalURL: l.OriginalURL,
		ShortedURL:  l.ShortedURL,
		OwnerID:     l.OwnerID,
		CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   l.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// validateURLFormat checks that rawURL is an absolute http(s) URL. Emptiness
// and length are left to the service.
func validateURLFormat(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return nil
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid url format")
	}
	if parsedURL.Scheme == "" {
		return errors.New("url must include scheme (http or https)")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("url scheme must be http or https")
	}
	if parsedURL.Host == "" {
		return errors.New("url must include host")
	}
	return nil
}
