package scoring

import "strings"

var (
	healthyFoods = []string{
		"banana", "milk", "oats", "dal", "roti", "sabzi",
		"fruit salad", "egg", "sprouts", "khichdi", "curd",
	}
	unhealthyFoods = []string{
		"chips", "pizza", "burger", "fries", "chocolate",
		"ice cream", "noodles", "samosa", "pakoda",
	}
)

// KeywordFoodClassifier labels food text by counting known healthy and junk items.
type KeywordFoodClassifier struct{}

// ClassifyFood returns Healthy, Balanced or Junk.
func (KeywordFoodClassifier) ClassifyFood(text string) (string, error) {
	healthy, junk := countFoods(text)
	switch {
	case junk > healthy:
		return FoodJunk, nil
	case junk == 0 && healthy >= 2:
		return FoodHealthy, nil
	default:
		return FoodBalanced, nil
	}
}

// FoodScore is +2 per healthy item and -2 per junk item mentioned in text.
func FoodScore(text string) int {
	healthy, junk := countFoods(text)
	return 2*healthy - 2*junk
}

func countFoods(text string) (healthy, junk int) {
	content := strings.ToLower(text)
	for _, food := range healthyFoods {
		if strings.Contains(content, food) {
			healthy++
		}
	}
	for _, food := range unhealthyFoods {
		if strings.Contains(content, food) {
			junk++
		}
	}
	return healthy, junk
}
