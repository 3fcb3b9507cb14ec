package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openpetition/petition-api/internal/model"
	"github.com/openpetition/petition-api/internal/repository"
)

// AdminHandler implements the moderation endpoints. The routes are gated
// by RequireRole("Admin") in the router; the handlers themselves see the
// full table without owner predicates.
type AdminHandler struct {
	Petitions  *repository.PetitionRepo
	Signatures *repository.SignatureRepo
}

func NewAdminHandler(p *repository.PetitionRepo, s *repository.SignatureRepo) *AdminHandler {
	if p == nil || s == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Petitions: p, Signatures: s}
}

// ListPetitions handles GET /v1/admin/petitions across all owners.
func (h *AdminHandler) ListPetitions(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Petitions.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Petition{}
	}
	return c.JSON(http.StatusOK, items)
}

// ListSignatures handles GET /v1/admin/signatures across all signers.
func (h *AdminHandler) ListSignatures(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Signatures.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Signature{}
	}
	return c.JSON(http.StatusOK, items)
}

// DeletePetition handles DELETE /v1/admin/petitions/:id for any owner.
func (h *AdminHandler) DeletePetition(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Petitions.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPetitionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "petition not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusAccepted)
}

// DeleteSignature handles DELETE /v1/admin/signatures/:id for any signer.
func (h *AdminHandler) DeleteSignature(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Signatures.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSignatureNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "signature not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusAccepted)
}
