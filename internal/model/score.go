package model

// Score band thresholds. Bands are inclusive at their lower bound, so a
// score of exactly 90 is excellent and exactly 70 is good.
const (
	// ExcellentThreshold is the minimum score for BandExcellent.
	ExcellentThreshold = 90

	// GoodThreshold is the minimum score for BandGood.
	GoodThreshold = 70
)

// ScoreBand is the qualitative tier derived from the numeric accessibility
// score. It is the report-facing summary of "how good is this page".
type ScoreBand int

const (
	// BandNeedsImprovement covers scores below GoodThreshold.
	BandNeedsImprovement ScoreBand = iota

	// BandGood covers scores from GoodThreshold up to ExcellentThreshold.
	BandGood

	// BandExcellent covers scores of ExcellentThreshold and above.
	BandExcellent
)

// BandForScore returns the band for a score.
func BandForScore(score int) ScoreBand {
	switch {
	case score >= ExcellentThreshold:
		return BandExcellent
	case score >= GoodThreshold:
		return BandGood
	default:
		return BandNeedsImprovement
	}
}

// String returns the report-facing slug for the band.
func (b ScoreBand) String() string {
	switch b {
	case BandExcellent:
		return "excellent"
	case BandGood:
		return "good"
	default:
		return "needs-improvement"
	}
}

// Tier is the display tier used to choose a color for a score. The same two
// thresholds that split bands split tiers, so band and tier never disagree.
type Tier int

const (
	// TierLow renders in the alert color.
	TierLow Tier = iota

	// TierMid renders in the caution color.
	TierMid

	// TierHigh renders in the positive color.
	TierHigh
)

// Tier returns the display tier for the band.
func (b ScoreBand) Tier() Tier {
	switch b {
	case BandExcellent:
		return TierHigh
	case BandGood:
		return TierMid
	default:
		return TierLow
	}
}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMid:
		return "mid"
	default:
		return "low"
	}
}
