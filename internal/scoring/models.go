// Package scoring defines the contracts of the nutrition and wellness models and
// ships baseline implementations used when no trained model is plugged in.
package scoring

// Nutrition status labels.
const (
	StatusStunted = "Stunted"
	StatusNormal  = "Normal"
	StatusTall    = "Tall"
)

// Food category labels.
const (
	FoodHealthy  = "Healthy"
	FoodBalanced = "Balanced"
	FoodJunk     = "Junk"
)

// Wellness labels.
const (
	WellnessPoor     = "Poor"
	WellnessModerate = "Moderate"
	WellnessGood     = "Good"
)

// GrowthClassifier labels a child's height for age and gender.
type GrowthClassifier interface {
	ClassifyGrowth(ageMonths int, gender string, heightCM float64) (string, error)
}

// FoodClassifier labels a free-text description of what a child eats.
type FoodClassifier interface {
	ClassifyFood(text string) (string, error)
}

// WellnessRegressor predicts a 0..100 wellness score from a feature vector.
type WellnessRegressor interface {
	Score(features WellnessFeatures) (float64, error)
}

// WellnessClassifier predicts a wellness label from a feature vector.
type WellnessClassifier interface {
	Classify(features WellnessFeatures) (string, error)
}

// WellnessFeatures is the model input derived from a diary entry.
type WellnessFeatures struct {
	Age               float64
	HeightCM          float64
	DiseaseFlag       float64
	FoodScore         float64
	SleepHours        float64
	ExerciseHours     float64
	WaterIntakeLiters float64
	Mood              float64
}

// Vector returns the features in model column order.
func (f WellnessFeatures) Vector() []float64 {
	return []float64{
		f.Age,
		f.HeightCM,
		f.DiseaseFlag,
		f.FoodScore,
		f.SleepHours,
		f.ExerciseHours,
		f.WaterIntakeLiters,
		f.Mood,
	}
}

// Models bundles every model the services need.
type Models struct {
	Growth           GrowthClassifier
	Food             FoodClassifier
	WellnessScore    WellnessRegressor
	WellnessCategory WellnessClassifier
}

// BaselineModels returns the built-in heuristic models.
func BaselineModels() Models {
	wellness := LinearWellnessModel{}
	return Models{
		Growth:           HeightForAgeClassifier{},
		Food:             KeywordFoodClassifier{},
		WellnessScore:    wellness,
		WellnessCategory: wellness,
	}
}
