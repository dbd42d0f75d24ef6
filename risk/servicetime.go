package risk

import (
	"math/rand"

	"github.com/kaborder/crossingsim/types"
)

const (
	highRiskServiceMultiplier   = 2.5
	mediumRiskServiceMultiplier = 1.5

	// backlog pressure speeds up service of non-high-risk units
	heavyBacklogThreshold  = 8
	heavyBacklogMultiplier = 0.6
	lightBacklogThreshold  = 4
	lightBacklogMultiplier = 0.8

	serviceJitterMin = 0.85
	serviceJitterMax = 1.15

	// MinServiceSeconds is the floor of any assigned service duration
	MinServiceSeconds = 2.0
)

// ServiceTime returns the dynamic service duration in seconds for a unit
// being admitted to a stage server. base is the lane's base service time
// for the stage, queueLength the number of other units waiting for the same
// stage in the same lane at admission time.
//
// High-risk units are always inspected thoroughly: the backlog discount
// never applies to them.
func ServiceTime(base float64, band types.RiskBand, queueLength int, rng *rand.Rand) float64 {
	multiplier := 1.0
	switch band {
	case types.RiskHigh:
		multiplier *= highRiskServiceMultiplier
	case types.RiskMedium:
		multiplier *= mediumRiskServiceMultiplier
	}

	if band != types.RiskHigh {
		if queueLength > heavyBacklogThreshold {
			multiplier *= heavyBacklogMultiplier
		} else if queueLength > lightBacklogThreshold {
			multiplier *= lightBacklogMultiplier
		}
	}

	jitter := serviceJitterMin + rng.Float64()*(serviceJitterMax-serviceJitterMin)

	duration := base * multiplier * jitter
	if duration < MinServiceSeconds {
		return MinServiceSeconds
	}
	return duration
}
