// Package risk implements the two scoring engines used by the crossing
// simulation: the border risk engine classifying vehicles as they arrive,
// and the customs risk engine classifying declarations. Both produce a
// score in [0,100] mapped to a band through the shared thresholds in the
// types package.
package risk

import (
	"math/rand"

	"github.com/kaborder/crossingsim/types"
)

// BorderFeatures are the per-vehicle inputs of the border risk engine
type BorderFeatures struct {
	WatchlistHit bool
	DocAnomaly   bool
	BioMismatch  bool
	RouteRisk    float64 // in [0, 0.7]
	GoodsFlag    bool
}

// Border risk engine weights
const (
	borderWatchlistWeight  = 40.0
	borderDocAnomalyWeight = 20.0
	borderBioWeight        = 15.0
	borderRouteWeight      = 10.0
	borderGoodsWeight      = 10.0
	borderJitterWeight     = 5.0
)

// BorderScore computes the border risk score and band for a vehicle.
// The score includes a uniform jitter term of up to borderJitterWeight
// points, drawn from rng, so two identical feature sets may differ by at
// most that amount.
func BorderScore(f BorderFeatures, rng *rand.Rand) (float64, types.RiskBand) {
	score := borderWatchlistWeight*boolWeight(f.WatchlistHit) +
		borderDocAnomalyWeight*boolWeight(f.DocAnomaly) +
		borderBioWeight*boolWeight(f.BioMismatch) +
		borderRouteWeight*f.RouteRisk +
		borderGoodsWeight*boolWeight(f.GoodsFlag) +
		borderJitterWeight*rng.Float64()

	score = clampScore(score)
	return score, types.BandForScore(score)
}

func boolWeight(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
