// AngelaMos | 2026
// handler.go

package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/contacts-api/internal/core"
	"github.com/carterperez-dev/contacts-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/contacts", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{contactID}", h.Get)
		r.Put("/{contactID}", h.Update)
		r.Delete("/{contactID}", h.Delete)
		r.Patch("/{contactID}/favorite", h.SetFavorite)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserID(r.Context())
	if owner == "" {
		core.Unauthorized(w, "")
		return
	}

	contacts, err := h.service.List(r.Context(), owner)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContactResponseList(contacts))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserID(r.Context())
	if owner == "" {
		core.Unauthorized(w, "")
		return
	}

	contactID := chi.URLParam(r, "contactID")

	contact, err := h.service.Get(r.Context(), contactID, owner)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContactResponse(contact))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserID(r.Context())
	if owner == "" {
		core.Unauthorized(w, "")
		return
	}

	var req CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	contact, err := h.service.Create(r.Context(), owner, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToContactResponse(contact))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserID(r.Context())
	if owner == "" {
		core.Unauthorized(w, "")
		return
	}

	contactID := chi.URLParam(r, "contactID")

	var req UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if req.Empty() {
		core.BadRequest(w, "Body must have at least one field")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	contact, err := h.service.Update(r.Context(), contactID, owner, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "Body must have at least one field")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContactResponse(contact))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserID(r.Context())
	if owner == "" {
		core.Unauthorized(w, "")
		return
	}

	contactID := chi.URLParam(r, "contactID")

	contact, err := h.service.Delete(r.Context(), contactID, owner)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContactResponse(contact))
}

func (h *Handler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserID(r.Context())
	if owner == "" {
		core.Unauthorized(w, "")
		return
	}

	contactID := chi.URLParam(r, "contactID")

	var req UpdateFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	contact, err := h.service.SetFavorite(
		r.Context(),
		contactID,
		owner,
		*req.Favorite,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContactResponse(contact))
}
