package domain

import "time"

// PredictionInput is a child growth and diet sample.
type PredictionInput struct {
	AgeMonths int     `json:"age"`
	Gender    string  `json:"gender"`
	HeightCM  float64 `json:"height"`
	FoodText  string  `json:"food_text"`
}

// PredictionOutput is the scored result for a PredictionInput.
type PredictionOutput struct {
	NutritionStatus string `json:"nutrition_status"`
	FoodCategory    string `json:"food_category"`
	Recommendation  string `json:"recommendation"`
}

// PredictionRecord is a persisted prediction request/response pair.
type PredictionRecord struct {
	ID        string
	UserID    string
	Input     PredictionInput
	Output    PredictionOutput
	CreatedAt time.Time
}

// WellnessInput is a daily wellness diary entry.
type WellnessInput struct {
	Age               int     `json:"age"`
	HeightCM          float64 `json:"height_cm"`
	Disease           string  `json:"disease"`
	Breakfast         string  `json:"breakfast"`
	Lunch             string  `json:"lunch"`
	Dinner            string  `json:"dinner"`
	Snacks            string  `json:"snacks"`
	SleepHours        float64 `json:"sleep_hours"`
	ExerciseHours     float64 `json:"exercise_hours"`
	WaterIntakeLiters float64 `json:"water_intake_liters"`
	Mood              string  `json:"mood"`
}

// WellnessOutput is the scored result for a WellnessInput.
type WellnessOutput struct {
	Score           float64  `json:"wellness_score"`
	Prediction      string   `json:"prediction"`
	Recommendations []string `json:"recommendations"`
}

// WellnessRecord is a persisted wellness request/response pair.
type WellnessRecord struct {
	ID        string
	UserID    string
	Input     WellnessInput
	Output    WellnessOutput
	CreatedAt time.Time
}
