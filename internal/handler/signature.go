package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openpetition/petition-api/internal/config"
	"github.com/openpetition/petition-api/internal/middleware"
	"github.com/openpetition/petition-api/internal/model"
	"github.com/openpetition/petition-api/internal/queue"
	"github.com/openpetition/petition-api/internal/repository"
	queue_publisher "github.com/openpetition/petition-api/internal/service"
)

// SignatureHandler implements the signature endpoints. Creation is public
// (a petition is signed by guests, not accounts); reads, updates and
// deletes are scoped to the signing user; the validation transition is a
// separate authenticated endpoint that also emits a domain event.
type SignatureHandler struct {
	Cfg        config.Config
	Signatures *repository.SignatureRepo
	Petitions  *repository.PetitionRepo
}

func NewSignatureHandler(cfg config.Config, s *repository.SignatureRepo, p *repository.PetitionRepo) *SignatureHandler {
	if s == nil || p == nil {
		panic("nil repository passed to NewSignatureHandler")
	}
	return &SignatureHandler{Cfg: cfg, Signatures: s, Petitions: p}
}

type signatureReq struct {
	PetitionID     uint64 `json:"petition_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	City           string `json:"city"`
	State          string `json:"state"`
	ShowSignature  bool   `json:"show_signature"`
	CanBeContacted bool   `json:"can_be_contacted"`
}

// validate enforces the contact field constraints shared by create and
// update: name at least 3 characters, email at least 5.
func (r *signatureReq) validate() string {
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

// Create handles POST /v1/signatures. The endpoint is public: anyone can
// sign a petition. When the submitter happens to carry a valid token the
// signer's user id is attached so the signature shows up under their
// account; invalid or absent tokens simply leave it anonymous.
func (h *SignatureHandler) Create(c echo.Context) error {
	var req signatureReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.PetitionID == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "petition_id is required"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Petitions.GetPublic(ctx, req.PetitionID); err != nil {
		if errors.Is(err, repository.ErrPetitionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "petition not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	s := &model.Signature{
		PetitionID:     req.PetitionID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		City:           req.City,
		State:          req.State,
		ShowSignature:  req.ShowSignature,
		CanBeContacted: req.CanBeContacted,
	}
	if p, ok := middleware.OptionalPrincipal(c, h.Cfg.JWTSecret, h.Cfg.JWTAlgorithm); ok {
		uid := p.UserID
		s.UserID = &uid
	}
	if err := h.Signatures.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create signature"})
	}
	return c.JSON(http.StatusCreated, s)
}

// List handles GET /v1/signatures and returns the caller's signatures.
func (h *SignatureHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Signatures.ListBySigner(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Signature{}
	}
	return c.JSON(http.StatusOK, items)
}

// GetByID handles GET /v1/signatures/:id.
func (h *SignatureHandler) GetByID(c echo.Context) error {
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
	s, err := h.Signatures.GetByIDAndSigner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSignatureNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "signature not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, s)
}

// Update handles PUT /v1/signatures/:id for the signing user. The
// validated flag cannot be changed here.
func (h *SignatureHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req signatureReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	// petition_id is immutable on update; only contact fields are checked.
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}
	s := &model.Signature{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		City:           req.City,
		State:          req.State,
		ShowSignature:  req.ShowSignature,
		CanBeContacted: req.CanBeContacted,
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Signatures.Update(ctx, id, userID, s); err != nil {
		if errors.Is(err, repository.ErrSignatureNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "signature not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/signatures/:id for the signing user.
func (h *SignatureHandler) Delete(c echo.Context) error {
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
	if err := h.Signatures.DeleteByIDAndSigner(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrSignatureNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "signature not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Validate handles GET and PUT /v1/signatures/validate/:id. It flips the
// validated flag to true and answers with the new flag value. Re-validating
// an already validated signature is harmless. The route requires an
// authenticated caller; it previously accepted anonymous GETs, which let
// anyone flip the flag by crawling ids.
func (h *SignatureHandler) Validate(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	s, err := h.Signatures.Validate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSignatureNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "signature not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validate failed"})
	}

	// Emit the domain event best-effort: a broker outage must not fail
	// the validation itself.
	ev := queue.SignatureValidatedEvent{
		SignatureID: s.ID,
		PetitionID:  s.PetitionID,
		SignerName:  s.Name,
		City:        s.City,
		State:       s.State,
		ValidatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if p, err := h.Petitions.GetPublic(ctx, s.PetitionID); err == nil {
		ev.PetitionName = p.PetitionName
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishSignatureValidated(ctx, ev)
	}()

	return c.JSON(http.StatusOK, echo.Map{"validated_signature": s.ValidatedSignature})
}
