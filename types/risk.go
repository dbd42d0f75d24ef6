package types

// RiskBand is the categorical risk classification derived from a numeric
// risk score
type RiskBand string

const (
	RiskLow    RiskBand = "Low"
	RiskMedium RiskBand = "Medium"
	RiskHigh   RiskBand = "High"
)

// Band thresholds: High iff score >= 70, Medium iff 30 <= score < 70
const (
	HighRiskThreshold   = 70.0
	MediumRiskThreshold = 30.0
)

// BandForScore returns the risk band for a score in [0,100]
func BandForScore(score float64) RiskBand {
	switch {
	case score >= HighRiskThreshold:
		return RiskHigh
	case score >= MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// AtLeast reports whether b is the same band as min or a more severe one
func (b RiskBand) AtLeast(min RiskBand) bool {
	return b.ordinal() >= min.ordinal()
}

func (b RiskBand) ordinal() int {
	switch b {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}
