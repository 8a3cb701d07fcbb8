// Package handler wires the person REST endpoints. Handlers stay thin:
// decode, delegate to the service, translate errors through httputil.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"peoplebook/internal/person/models"
	"peoplebook/pkg/domain"
	dErrors "peoplebook/pkg/domain-errors"
	"peoplebook/pkg/platform/httputil"
	"peoplebook/pkg/requestcontext"
)

// Service defines the person operations the HTTP layer needs.
type Service interface {
	List(ctx context.Context) ([]*models.Person, error)
	Get(ctx context.Context, id domain.PersonID) (*models.Person, error)
	Create(ctx context.Context, f models.Fields) (*models.Person, error)
	Update(ctx context.Context, id domain.PersonID, patch models.Patch) (*models.Person, error)
	Delete(ctx context.Context, id domain.PersonID) error
}

// Handler exposes the person collection over REST.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a person handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the liveness probe and the /api/users resource.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleHealth)
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

// HandleHealth answers the liveness probe. Not part of the functional
// surface; load balancers and humans poke it.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Server is running!",
		"timestamp": requestcontext.Now(r.Context()),
	})
}

// HandleList handles GET /api/users.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	people, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, people)
}

// HandleGet handles GET /api/users/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.personID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleCreate handles POST /api/users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[createUserRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.service.Create(ctx, req.toFields())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "user created",
		"request_id", requestID,
		"user_id", p.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, p)
}

// HandleUpdate handles PUT /api/users/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	id, ok := h.personID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[updateUserRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.service.Update(ctx, id, req.toPatch())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "user updated",
		"request_id", requestID,
		"user_id", p.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /api/users/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.personID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "user deleted",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", id,
	)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "User deleted successfully",
	})
}

// personID parses the {id} route parameter. A malformed identifier cannot
// name any record, so it is answered as not found rather than bad request.
func (h *Handler) personID(w http.ResponseWriter, r *http.Request) (domain.PersonID, bool) {
	id, err := domain.ParsePersonID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "User not found"))
		return domain.PersonID{}, false
	}
	return id, true
}
