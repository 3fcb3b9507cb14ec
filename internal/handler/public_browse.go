package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openpetition/petition-api/internal/model"
	"github.com/openpetition/petition-api/internal/repository"
)

// PublicHandler exposes unauthenticated, read-only browse endpoints so
// guests can find petitions to sign. Responses use the PetitionSummary
// projection, which withholds owner ids and adds signature counts. These
// routes sit behind the Redis response cache.
type PublicHandler struct {
	Petitions *repository.PetitionRepo
}

func NewPublicHandler(p *repository.PetitionRepo) *PublicHandler {
	if p == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Petitions: p}
}

// BrowsePetitions handles GET /v1/browse/petitions.
func (h *PublicHandler) BrowsePetitions(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Petitions.ListPublic(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.PetitionSummary{}
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// BrowsePetition handles GET /v1/browse/petitions/:id.
func (h *PublicHandler) BrowsePetition(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	item, err := h.Petitions.GetPublic(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPetitionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "petition not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, item)
}
