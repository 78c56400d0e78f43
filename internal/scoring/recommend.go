package scoring

import "strings"

type nutritionKey struct {
	status   string
	category string
}

var nutritionRules = map[nutritionKey]string{
	{"stunted", "healthy"}:  "Add calorie-dense foods like ghee, bananas, peanut butter along with healthy diet.",
	{"stunted", "balanced"}: "Increase protein intake: add eggs, dals, paneer, soya, milk 2 times a day.",
	{"stunted", "junk"}:     "Avoid junk. Replace with protein-rich foods like eggs, lentils, milk & sprouts.",
	{"normal", "healthy"}:   "Maintain current diet, add seasonal fruits & nuts for micronutrients.",
	{"normal", "balanced"}:  "Good diet. Add more fiber (fruits/vegetables) for long-term health.",
	{"normal", "junk"}:      "Reduce junk. Replace with home-made snacks like upma, poha, fruit salad.",
	{"tall", "healthy"}:     "Maintain height growth by including calcium foods like milk, ragi & paneer.",
	{"tall", "balanced"}:    "Balanced diet is good. Ensure physical activity + good sleep.",
	{"tall", "junk"}:        "Junk food may affect metabolism. Replace with coconut water, fruits, boiled corn.",
}

// GeneralNutritionTip is returned for label pairs without a specific rule.
const GeneralNutritionTip = "General Tip: Ensure 3 meals + 2 healthy snacks daily, include fruits, protein & hydration."

// NutritionRecommendation maps a (status, category) pair to advice. Labels are case-insensitive.
func NutritionRecommendation(status, category string) string {
	key := nutritionKey{strings.ToLower(status), strings.ToLower(category)}
	if rec, ok := nutritionRules[key]; ok {
		return rec
	}
	return GeneralNutritionTip
}

// WellnessRecommendations returns advice for a score band plus label-specific extras.
func WellnessRecommendations(score float64, label string) []string {
	var recs []string
	switch {
	case score < 50:
		recs = append(recs,
			"Improve sleep and aim for 7-8 hours daily.",
			"Increase water intake and reduce junk food.",
			"Add fruits/vegetables to meals regularly.",
		)
	case score < 75:
		recs = append(recs,
			"Maintain balanced meals and drink more water.",
			"Try light exercise daily.",
		)
	default:
		recs = append(recs,
			"Great wellness score! Maintain current routine.",
			"Continue hydration and good sleep habits.",
		)
	}

	switch label {
	case WellnessPoor:
		recs = append(recs, "Consider a pediatric checkup if wellness stays low.")
	case WellnessModerate:
		recs = append(recs, "Monitor lifestyle habits for the next week.")
	}
	return recs
}
