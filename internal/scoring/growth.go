package scoring

import (
	"fmt"
	"strings"
)

type heightPoint struct {
	month  int
	median float64
}

// Approximate WHO height-for-age medians (cm).
var (
	boysMedians = []heightPoint{
		{0, 49.9}, {6, 67.6}, {12, 75.7}, {24, 87.1}, {36, 96.1}, {48, 103.3},
		{60, 110.0}, {72, 116.0}, {96, 127.3}, {120, 137.8}, {144, 149.1},
	}
	girlsMedians = []heightPoint{
		{0, 49.1}, {6, 65.7}, {12, 74.0}, {24, 85.7}, {36, 95.1}, {48, 102.7},
		{60, 109.4}, {72, 115.1}, {96, 126.6}, {120, 138.6}, {144, 151.2},
	}
)

const (
	stuntedRatio = 0.93
	tallRatio    = 1.07
	maxAgeMonths = 144
)

// HeightForAgeClassifier compares height to an interpolated median for age.
type HeightForAgeClassifier struct{}

// ClassifyGrowth returns Stunted, Normal or Tall.
func (HeightForAgeClassifier) ClassifyGrowth(ageMonths int, gender string, heightCM float64) (string, error) {
	if ageMonths < 0 || ageMonths > maxAgeMonths {
		return "", fmt.Errorf("age %d months out of range 0..%d", ageMonths, maxAgeMonths)
	}
	if heightCM <= 0 {
		return "", fmt.Errorf("height must be positive, got %.1f", heightCM)
	}

	median := interpolateMedian(mediansFor(gender), ageMonths)
	ratio := heightCM / median
	switch {
	case ratio < stuntedRatio:
		return StatusStunted, nil
	case ratio > tallRatio:
		return StatusTall, nil
	default:
		return StatusNormal, nil
	}
}

func mediansFor(gender string) []heightPoint {
	if strings.EqualFold(strings.TrimSpace(gender), "male") {
		return boysMedians
	}
	return girlsMedians
}

func interpolateMedian(points []heightPoint, month int) float64 {
	for i := 1; i < len(points); i++ {
		lo, hi := points[i-1], points[i]
		if month <= hi.month {
			frac := float64(month-lo.month) / float64(hi.month-lo.month)
			return lo.median + frac*(hi.median-lo.median)
		}
	}
	return points[len(points)-1].median
}
