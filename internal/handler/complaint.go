package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openpetition/petition-api/internal/model"
	"github.com/openpetition/petition-api/internal/repository"
)

// ComplaintHandler implements the complaint endpoints. Complaints are not
// owner-scoped: any authenticated user can list and read them.
type ComplaintHandler struct {
	Complaints *repository.ComplaintRepo
}

func NewComplaintHandler(r *repository.ComplaintRepo) *ComplaintHandler {
	if r == nil {
		panic("nil repository passed to NewComplaintHandler")
	}
	return &ComplaintHandler{Complaints: r}
}

type complaintReq struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	City          string `json:"city"`
	State         string `json:"state"`
	ComplaintType int64  `json:"complaint_type"`
	ComplaintText string `json:"complaint_text"`
}

func (r *complaintReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if len(r.Name) < 3 {
		return "name must be at least 3 characters"
	}
	if len(r.Email) < 5 {
		return "email must be at least 5 characters"
	}
	return ""
}

func (r *complaintReq) toModel() *model.Complaint {
	return &model.Complaint{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		City:          r.City,
		State:         r.State,
		ComplaintType: r.ComplaintType,
		ComplaintText: r.ComplaintText,
	}
}

// List handles GET /v1/complaints.
func (h *ComplaintHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Complaints.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Complaint{}
	}
	return c.JSON(http.StatusOK, items)
}

// GetByID handles GET /v1/complaints/:id.
func (h *ComplaintHandler) GetByID(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	item, err := h.Complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /v1/complaints.
func (h *ComplaintHandler) Create(c echo.Context) error {
	var req complaintReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}
	item := req.toModel()
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Complaints.Create(ctx, item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create complaint"})
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /v1/complaints/:id.
func (h *ComplaintHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req complaintReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Complaints.Update(ctx, id, req.toModel()); err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/complaints/:id.
func (h *ComplaintHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Complaints.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
