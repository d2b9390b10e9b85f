package ats

// Grade maps an overall score to a letter.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

type band struct {
	min   float64
	label string
}

var compatibilityBands = []band{
	{90, "Exceptional - 95%+ chance of passing ATS filters"},
	{85, "Excellent - 85%+ chance of passing most ATS systems"},
	{75, "Very Good - 75%+ chance, strong candidate"},
	{65, "Good - 65%+ chance, likely to pass standard filters"},
	{55, "Fair - 55%+ chance, may pass some systems"},
	{45, "Below Average - 45%+ chance, needs improvement"},
	{35, "Poor - 35%+ chance, significant work needed"},
}

const criticalCompatibility = "Critical - <35% chance, major revisions required"

// Compatibility returns the pass-likelihood label of an overall score.
func Compatibility(score float64) string {
	for _, b := range compatibilityBands {
		if score >= b.min {
			return b.label
		}
	}
	return criticalCompatibility
}
