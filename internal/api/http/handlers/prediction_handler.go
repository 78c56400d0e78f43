package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nutrisense/internal/api/dto"
	"github.com/spec-kit/nutrisense/internal/auth"
	"github.com/spec-kit/nutrisense/internal/domain"
	"github.com/spec-kit/nutrisense/internal/service"
	apperrors "github.com/spec-kit/nutrisense/pkg/util"
)

// PredictionHandler exposes the growth/diet prediction endpoints.
type PredictionHandler struct {
	predictions *service.PredictionService
}

// NewPredictionHandler constructs handler.
func NewPredictionHandler(predictions *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictions: predictions}
}

// Predict handles POST /api/predict.
func (h *PredictionHandler) Predict(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ToDomainError(auth.ErrUnauthenticated)
	}

	var req domain.PredictionInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	record, err := h.predictions.Predict(c.UserContext(), principal.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(record.Output)
}

// History handles GET /api/history.
func (h *PredictionHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ToDomainError(auth.ErrUnauthenticated)
	}

	records, err := h.predictions.History(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.PredictionHistoryFromDomain(records))
}
