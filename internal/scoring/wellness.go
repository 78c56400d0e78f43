package scoring

import (
	"math"
	"strings"

	"github.com/spec-kit/nutrisense/internal/domain"
)

var moodValues = map[string]float64{
	"happy":    2,
	"neutral":  1,
	"sad":      0,
	"stressed": -1,
	"angry":    -2,
}

// BuildWellnessFeatures converts a diary entry into the model feature vector.
func BuildWellnessFeatures(in domain.WellnessInput) WellnessFeatures {
	food := FoodScore(in.Breakfast) + FoodScore(in.Lunch) + FoodScore(in.Dinner) + FoodScore(in.Snacks)

	// only an explicit "none" counts as healthy; a blank answer is treated as unknown
	disease := 1.0
	if strings.EqualFold(strings.TrimSpace(in.Disease), "none") {
		disease = 0
	}

	return WellnessFeatures{
		Age:               float64(in.Age),
		HeightCM:          in.HeightCM,
		DiseaseFlag:       disease,
		FoodScore:         float64(food),
		SleepHours:        in.SleepHours,
		ExerciseHours:     in.ExerciseHours,
		WaterIntakeLiters: in.WaterIntakeLiters,
		Mood:              moodValues[strings.ToLower(strings.TrimSpace(in.Mood))],
	}
}

// LinearWellnessModel is a hand-weighted score over lifestyle features.
type LinearWellnessModel struct{}

// Score returns a value in [0, 100].
func (LinearWellnessModel) Score(f WellnessFeatures) (float64, error) {
	score := 30.0
	score += 20 * math.Min(f.SleepHours, 8) / 8
	if f.SleepHours > 10 {
		score -= 5
	}
	score += 15 * math.Min(f.ExerciseHours, 1.5) / 1.5
	score += 15 * math.Min(f.WaterIntakeLiters, 2.5) / 2.5
	score += clamp(f.FoodScore*2.5, -20, 15)
	score += f.Mood * 2.5
	score -= 10 * f.DiseaseFlag
	return math.Round(clamp(score, 0, 100)*10) / 10, nil
}

// Classify labels the score band: Poor below 50, Moderate below 75, otherwise Good.
func (m LinearWellnessModel) Classify(f WellnessFeatures) (string, error) {
	score, err := m.Score(f)
	if err != nil {
		return "", err
	}
	switch {
	case score < 50:
		return WellnessPoor, nil
	case score < 75:
		return WellnessModerate, nil
	default:
		return WellnessGood, nil
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
