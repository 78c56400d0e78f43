package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/nutrisense/internal/domain"
	"github.com/spec-kit/nutrisense/internal/repository"
	"github.com/spec-kit/nutrisense/internal/scoring"
	apperrors "github.com/spec-kit/nutrisense/pkg/util"
)

const maxChildAgeMonths = 144

// PredictionService scores child growth and diet samples and keeps the history.
type PredictionService struct {
	growth  scoring.GrowthClassifier
	food    scoring.FoodClassifier
	history repository.PredictionHistoryRepository
}

// NewPredictionService builds the service.
func NewPredictionService(models scoring.Models, history repository.PredictionHistoryRepository) *PredictionService {
	return &PredictionService{growth: models.Growth, food: models.Food, history: history}
}

// Predict classifies the sample, attaches a recommendation and stores the pair.
func (s *PredictionService) Predict(ctx context.Context, userID string, in domain.PredictionInput) (*domain.PredictionRecord, error) {
	if err := validatePrediction(in); err != nil {
		return nil, err
	}

	status, err := s.growth.ClassifyGrowth(in.AgeMonths, in.Gender, in.HeightCM)
	if err != nil {
		return nil, fmt.Errorf("growth model: %w", err)
	}
	category, err := s.food.ClassifyFood(in.FoodText)
	if err != nil {
		return nil, fmt.Errorf("food model: %w", err)
	}

	record := &domain.PredictionRecord{
		UserID: userID,
		Input:  in,
		Output: domain.PredictionOutput{
			NutritionStatus: status,
			FoodCategory:    category,
			Recommendation:  scoring.NutritionRecommendation(status, category),
		},
	}
	if err := s.history.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("save prediction: %w", err)
	}
	return record, nil
}

// History lists the user's predictions, newest first.
func (s *PredictionService) History(ctx context.Context, userID string) ([]domain.PredictionRecord, error) {
	return s.history.ListByUser(ctx, userID)
}

func validatePrediction(in domain.PredictionInput) error {
	details := map[string]any{}
	if in.AgeMonths < 0 || in.AgeMonths > maxChildAgeMonths {
		details["age"] = fmt.Sprintf("must be between 0 and %d months", maxChildAgeMonths)
	}
	if strings.TrimSpace(in.Gender) == "" {
		details["gender"] = "required"
	}
	if in.HeightCM <= 0 {
		details["height"] = "must be positive"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid prediction input", details)
	}
	return nil
}
