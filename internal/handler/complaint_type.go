package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openpetition/petition-api/internal/model"
	"github.com/openpetition/petition-api/internal/repository"
)

// ComplaintTypeHandler implements CRUD for the complaint type dictionary.
type ComplaintTypeHandler struct {
	Types *repository.ComplaintTypeRepo
}

func NewComplaintTypeHandler(r *repository.ComplaintTypeRepo) *ComplaintTypeHandler {
	if r == nil {
		panic("nil repository passed to NewComplaintTypeHandler")
	}
	return &ComplaintTypeHandler{Types: r}
}

type complaintTypeReq struct {
	ComplaintType int64  `json:"complaint_type"`
	Dictionary    string `json:"dictionary"`
}

func (r *complaintTypeReq) validate() string {
	r.Dictionary = strings.TrimSpace(r.Dictionary)
	if r.Dictionary == "" {
		return "dictionary is required"
	}
	return ""
}

// List handles GET /v1/complaint_types.
func (h *ComplaintTypeHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Types.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.ComplaintType{}
	}
	return c.JSON(http.StatusOK, items)
}

// GetByID handles GET /v1/complaint_types/:id.
func (h *ComplaintTypeHandler) GetByID(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	item, err := h.Types.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrComplaintTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /v1/complaint_types.
func (h *ComplaintTypeHandler) Create(c echo.Context) error {
	var req complaintTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}
	item := &model.ComplaintType{ComplaintType: req.ComplaintType, Dictionary: req.Dictionary}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Types.Create(ctx, item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create complaint type"})
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /v1/complaint_types/:id.
func (h *ComplaintTypeHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req complaintTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	item := &model.ComplaintType{ComplaintType: req.ComplaintType, Dictionary: req.Dictionary}
	if err := h.Types.Update(ctx, id, item); err != nil {
		if errors.Is(err, repository.ErrComplaintTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/complaint_types/:id.
func (h *ComplaintTypeHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Types.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrComplaintTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
