package comments

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/arcadia-tracker/arcadia/internal/ownership"
	"github.com/arcadia-tracker/arcadia/internal/platform/httpx"
	"github.com/arcadia-tracker/arcadia/internal/shared"
)

// Handler serves torrent request comment endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers routes under /api/torrent-requests.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Put("/comments", h.edit)
	r.Get("/{id}/comments", h.thread)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.ActorFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrMissingActor)
		return
	}
	var form EditedComment
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	comment, err := h.service.Edit(r.Context(), actor, form)
	if err != nil {
		if errors.Is(err, ownership.ErrStoreUnavailable) {
			h.logger.Error("edit comment failed", slog.Any("error", err), slog.Int64("id", form.ID))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, comment)
}

func (h *Handler) thread(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid torrent request ID", "")
		return
	}
	thread, err := h.service.Thread(r.Context(), id)
	if err != nil {
		h.logger.Error("list comments failed", slog.Any("error", err), slog.Int64("torrent_request_id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, thread)
}
