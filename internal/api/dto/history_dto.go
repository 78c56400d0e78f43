package dto

import (
	"time"

	"github.com/spec-kit/nutrisense/internal/domain"
)

// PredictionHistoryItem is one stored prediction.
type PredictionHistoryItem struct {
	ID        string                  `json:"id"`
	CreatedAt time.Time               `json:"created_at"`
	Input     domain.PredictionInput  `json:"input"`
	Output    domain.PredictionOutput `json:"output"`
}

// PredictionHistoryList wraps the user's predictions.
type PredictionHistoryList struct {
	Items []PredictionHistoryItem `json:"items"`
}

// WellnessResponse is returned after scoring a diary entry.
type WellnessResponse struct {
	Score           float64   `json:"wellness_score"`
	Prediction      string    `json:"prediction"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}

// WellnessHistoryItem is one stored wellness entry.
type WellnessHistoryItem struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Score           float64   `json:"wellness_score"`
	Prediction      string    `json:"prediction"`
	Recommendations []string  `json:"recommendations"`
}

// WellnessHistoryList wraps the user's wellness entries.
type WellnessHistoryList struct {
	Items []WellnessHistoryItem `json:"items"`
}

// PredictionHistoryFromDomain maps stored predictions.
func PredictionHistoryFromDomain(records []domain.PredictionRecord) PredictionHistoryList {
	items := make([]PredictionHistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, PredictionHistoryItem{ID: r.ID, CreatedAt: r.CreatedAt, Input: r.Input, Output: r.Output})
	}
	return PredictionHistoryList{Items: items}
}

// WellnessFromDomain maps a scored entry.
func WellnessFromDomain(r *domain.WellnessRecord) WellnessResponse {
	return WellnessResponse{
		Score:           r.Output.Score,
		Prediction:      r.Output.Prediction,
		Recommendations: r.Output.Recommendations,
		CreatedAt:       r.CreatedAt,
	}
}

// WellnessHistoryFromDomain maps stored wellness entries.
func WellnessHistoryFromDomain(records []domain.WellnessRecord) WellnessHistoryList {
	items := make([]WellnessHistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, WellnessHistoryItem{
			ID:              r.ID,
			CreatedAt:       r.CreatedAt,
			Score:           r.Output.Score,
			Prediction:      r.Output.Prediction,
			Recommendations: r.Output.Recommendations,
		})
	}
	return WellnessHistoryList{Items: items}
}
