package artists

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

// Handler serves the artist endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers artist routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Put("/", h.edit)
	r.Get("/{id}", h.show)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.ActorFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrMissingActor)
		return
	}
	var form EditedArtist
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	artist, err := h.service.Edit(r.Context(), actor, form)
	if err != nil {
		h.logError("edit artist failed", err, form.ID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, artist)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid artist ID", "")
		return
	}
	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logError("get artist failed", err, id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) logError(msg string, err error, id int64) {
	if errors.Is(err, ownership.ErrNotFound) || errors.Is(err, ownership.ErrInsufficientPrivileges) || errors.Is(err, httpx.ErrValidation) {
		return
	}
	h.logger.Error(msg, slog.Any("error", err), slog.Int64("id", id))
}
