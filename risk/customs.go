package risk

import (
	"math"

	"github.com/kaborder/crossingsim/types"
)

// CustomsFeatures are the per-declaration inputs of the customs risk engine
type CustomsFeatures struct {
	AEO         int     // trust level: 0 = none, 1 = AEO-S, 2 = AEO-F
	HSRisk      float64 // commodity risk in [0,1]
	OriginRisk  float64 // origin jurisdiction risk in [0,1]
	UndervalPct float64 // suspected undervaluation percentage in [0,100]
	PNRHit      bool
	DocMismatch bool
	Watchlist   bool
	History     float64 // trader compliance history in [0,1]
}

// Customs risk engine weights. The AEO weight is negative: trusted traders
// are discounted.
const (
	customsPNRWeight      = 35.0
	customsWatchWeight    = 25.0
	customsDocWeight      = 15.0
	customsHSWeight       = 10.0
	customsOriginWeight   = 5.0
	customsUndervalWeight = 5.0
	customsHistoryWeight  = 5.0
	customsAEOWeight      = -10.0

	// undervaluation saturates at this percentage
	undervalSaturationPct = 30.0
)

// Human-readable selectivity reasons. Appended independently of the score
// weights whenever the corresponding feature trips.
const (
	ReasonPNRHit         = "PNR Intelligence Hit"
	ReasonWatchlist      = "Trader Watchlist"
	ReasonDocMismatch    = "Doc Discrepancy"
	ReasonHighRiskGoods  = "High Risk Commodity"
	ReasonHighRiskSource = "High Risk Origin"
	ReasonUndervaluation = "Potential Undervaluation"
)

// CustomsResult is the full outcome of a customs risk evaluation
type CustomsResult struct {
	Score   float64
	Band    types.RiskBand
	Channel types.Channel
	Reasons []string
}

// CustomsScore evaluates the customs risk engine. Unlike the border engine
// it is fully deterministic given its inputs.
//
// Channel assignment, first match wins: RED if the band is High or there is
// a PNR or watchlist hit; YELLOW if the band is Medium, documents mismatch
// or the commodity risk exceeds 0.5; otherwise GREEN.
func CustomsScore(f CustomsFeatures) CustomsResult {
	score := customsPNRWeight*boolWeight(f.PNRHit) +
		customsWatchWeight*boolWeight(f.Watchlist) +
		customsDocWeight*boolWeight(f.DocMismatch) +
		customsHSWeight*f.HSRisk +
		customsOriginWeight*f.OriginRisk +
		customsUndervalWeight*math.Min(1, math.Max(0, f.UndervalPct/undervalSaturationPct)) +
		customsHistoryWeight*f.History +
		customsAEOWeight*float64(f.AEO)

	reasons := []string{}
	if f.PNRHit {
		reasons = append(reasons, ReasonPNRHit)
	}
	if f.Watchlist {
		reasons = append(reasons, ReasonWatchlist)
	}
	if f.DocMismatch {
		reasons = append(reasons, ReasonDocMismatch)
	}
	if f.HSRisk > 0.5 {
		reasons = append(reasons, ReasonHighRiskGoods)
	}
	if f.OriginRisk > 0.5 {
		reasons = append(reasons, ReasonHighRiskSource)
	}
	if f.UndervalPct > undervalSaturationPct {
		reasons = append(reasons, ReasonUndervaluation)
	}

	score = clampScore(score)
	band := types.BandForScore(score)

	channel := types.ChannelGreen
	switch {
	case band == types.RiskHigh || f.PNRHit || f.Watchlist:
		channel = types.ChannelRed
	case band == types.RiskMedium || f.DocMismatch || f.HSRisk > 0.5:
		channel = types.ChannelYellow
	}

	return CustomsResult{
		Score:   score,
		Band:    band,
		Channel: channel,
		Reasons: reasons,
	}
}
