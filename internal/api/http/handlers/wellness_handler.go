package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nutrisense/internal/api/dto"
	"github.com/spec-kit/nutrisense/internal/auth"
	"github.com/spec-kit/nutrisense/internal/domain"
	"github.com/spec-kit/nutrisense/internal/service"
	apperrors "github.com/spec-kit/nutrisense/pkg/util"
)

// WellnessHandler exposes the daily wellness endpoints.
type WellnessHandler struct {
	wellness *service.WellnessService
}

// NewWellnessHandler constructs handler.
func NewWellnessHandler(wellness *service.WellnessService) *WellnessHandler {
	return &WellnessHandler{wellness: wellness}
}

// Submit handles POST /api/wellness.
func (h *WellnessHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ToDomainError(auth.ErrUnauthenticated)
	}

	var req domain.WellnessInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	record, err := h.wellness.Score(c.UserContext(), principal.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(dto.WellnessFromDomain(record))
}

// History handles GET /api/wellness/history.
func (h *WellnessHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ToDomainError(auth.ErrUnauthenticated)
	}

	records, err := h.wellness.History(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.WellnessHistoryFromDomain(records))
}
