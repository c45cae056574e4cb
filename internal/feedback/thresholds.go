package feedback

// Thresholds are the per-area sub-score bars. A sub-score below its bar is a
// rejection reason and a weakness; one at or above Strength is a strength.
type Thresholds struct {
	SkillMatch   float64 `json:"skill_match" validate:"gte=0,lte=100"`
	Experience   float64 `json:"experience" validate:"gte=0,lte=100"`
	Education    float64 `json:"education" validate:"gte=0,lte=100"`
	KeywordMatch float64 `json:"keyword_match" validate:"gte=0,lte=100"`
	Format       float64 `json:"format" validate:"gte=0,lte=100"`
	Strength     float64 `json:"strength" validate:"gte=0,lte=100"`
}

// DefaultThresholds returns the documented bars.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SkillMatch:   60,
		Experience:   60,
		Education:    60,
		KeywordMatch: 50,
		Format:       80,
		Strength:     80,
	}
}
