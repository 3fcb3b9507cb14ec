package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openpetition/petition-api/internal/model"
	"github.com/openpetition/petition-api/internal/repository"
)

// PetitionHandler implements the owner-scoped petition CRUD endpoints.
// Every operation resolves the caller's identity from the context and
// passes it down to the repository, so a petition id belonging to another
// user is answered with 404 rather than the foreign record.
type PetitionHandler struct {
	Petitions *repository.PetitionRepo
}

func NewPetitionHandler(p *repository.PetitionRepo) *PetitionHandler {
	if p == nil {
		panic("nil repository passed to NewPetitionHandler")
	}
	return &PetitionHandler{Petitions: p}
}

type petitionReq struct {
	PetitionName string `json:"petition_name"`
	PetitionText string `json:"petition_text"`
	Image        string `json:"image"`
}

// validate enforces the field constraints: name at least 3 characters,
// text between 3 and 1000 characters.
func (r *petitionReq) validate() string {
	r.PetitionName = strings.TrimSpace(r.PetitionName)
	r.PetitionText = strings.TrimSpace(r.PetitionText)
	if len(r.PetitionName) < 3 {
		return "petition_name must be at least 3 characters"
	}
	if len(r.PetitionText) < 3 || len(r.PetitionText) > 1000 {
		return "petition_text must be between 3 and 1000 characters"
	}
	return ""
}

// List handles GET /v1/petitions and returns the caller's petitions.
func (h *PetitionHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Petitions.ListByOwner(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Petition{}
	}
	return c.JSON(http.StatusOK, items)
}

// GetByID handles GET /v1/petitions/:id.
func (h *PetitionHandler) GetByID(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Petitions.GetByIDAndOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPetitionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "petition not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /v1/petitions.
func (h *PetitionHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req petitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}
	p := &model.Petition{
		UserID:       userID,
		PetitionName: req.PetitionName,
		PetitionText: req.PetitionText,
		Image:        req.Image,
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Petitions.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create petition"})
	}
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /v1/petitions/:id.
func (h *PetitionHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req petitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Petitions.Update(ctx, id, userID, req.PetitionName, req.PetitionText, req.Image); err != nil {
		if errors.Is(err, repository.ErrPetitionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "petition not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/petitions/:id. A second delete of the same id
// answers 404, matching the load-then-authorize contract.
func (h *PetitionHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Petitions.DeleteByIDAndOwner(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrPetitionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "petition not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// reqCtx bounds a handler's database work with the request context plus a
// timeout. The cancel func releases the session on every exit path.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
