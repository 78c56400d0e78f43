package service

import (
	"context"
	"fmt"

	"github.com/spec-kit/nutrisense/internal/domain"
	"github.com/spec-kit/nutrisense/internal/repository"
	"github.com/spec-kit/nutrisense/internal/scoring"
	apperrors "github.com/spec-kit/nutrisense/pkg/util"
)

// WellnessService scores daily wellness diaries and keeps the history.
type WellnessService struct {
	regressor  scoring.WellnessRegressor
	classifier scoring.WellnessClassifier
	history    repository.WellnessHistoryRepository
}

// NewWellnessService builds the service.
func NewWellnessService(models scoring.Models, history repository.WellnessHistoryRepository) *WellnessService {
	return &WellnessService{
		regressor:  models.WellnessScore,
		classifier: models.WellnessCategory,
		history:    history,
	}
}

// Score runs both wellness models over the diary entry and stores the result.
func (s *WellnessService) Score(ctx context.Context, userID string, in domain.WellnessInput) (*domain.WellnessRecord, error) {
	if err := validateWellness(in); err != nil {
		return nil, err
	}

	features := scoring.BuildWellnessFeatures(in)
	score, err := s.regressor.Score(features)
	if err != nil {
		return nil, fmt.Errorf("wellness score model: %w", err)
	}
	label, err := s.classifier.Classify(features)
	if err != nil {
		return nil, fmt.Errorf("wellness classifier: %w", err)
	}

	record := &domain.WellnessRecord{
		UserID: userID,
		Input:  in,
		Output: domain.WellnessOutput{
			Score:           score,
			Prediction:      label,
			Recommendations: scoring.WellnessRecommendations(score, label),
		},
	}
	if err := s.history.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("save wellness entry: %w", err)
	}
	return record, nil
}

// History lists the user's wellness entries, newest first.
func (s *WellnessService) History(ctx context.Context, userID string) ([]domain.WellnessRecord, error) {
	return s.history.ListByUser(ctx, userID)
}

func validateWellness(in domain.WellnessInput) error {
	details := map[string]any{}
	if in.Age < 0 {
		details["age"] = "must not be negative"
	}
	if in.HeightCM <= 0 {
		details["height_cm"] = "must be positive"
	}
	if in.SleepHours < 0 || in.SleepHours > 24 {
		details["sleep_hours"] = "must be between 0 and 24"
	}
	if in.ExerciseHours < 0 || in.ExerciseHours > 24 {
		details["exercise_hours"] = "must be between 0 and 24"
	}
	if in.WaterIntakeLiters < 0 {
		details["water_intake_liters"] = "must not be negative"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid wellness input", details)
	}
	return nil
}
