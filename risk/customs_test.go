package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaborder/crossingsim/types"
)

func TestCustomsScoreDeterministic(t *testing.T) {
	f := CustomsFeatures{
		PNRHit:      true,
		DocMismatch: true,
		HSRisk:      0.7,
		OriginRisk:  0.6,
		UndervalPct: 45,
		History:     0.4,
	}
	first := CustomsScore(f)
	second := CustomsScore(f)
	assert.Equal(t, first, second)
}

func TestCustomsScoreWeights(t *testing.T) {
	// 35 + 15 + 10*0.7 + 5*0.6 + 5*1 + 5*0.4 = 67
	result := CustomsScore(CustomsFeatures{
		PNRHit:      true,
		DocMismatch: true,
		HSRisk:      0.7,
		OriginRisk:  0.6,
		UndervalPct: 45,
		History:     0.4,
	})
	assert.InDelta(t, 67.0, result.Score, 1e-9)
	assert.Equal(t, types.RiskMedium, result.Band)
}

func TestCustomsScoreAEODiscountClampsAtZero(t *testing.T) {
	// 10*0.7 + 5*0.6 + 5*0.1 - 20 < 0
	result := CustomsScore(CustomsFeatures{
		AEO:        2,
		HSRisk:     0.7,
		OriginRisk: 0.6,
		History:    0.1,
	})
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, types.RiskLow, result.Band)
	// commodity risk above 0.5 still routes to YELLOW
	assert.Equal(t, types.ChannelYellow, result.Channel)
}

func TestCustomsScoreUndervaluationSaturates(t *testing.T) {
	at30 := CustomsScore(CustomsFeatures{UndervalPct: 30})
	at90 := CustomsScore(CustomsFeatures{UndervalPct: 90})
	assert.Equal(t, at30.Score, at90.Score)
	assert.Contains(t, at90.Reasons, ReasonUndervaluation)
	assert.NotContains(t, at30.Reasons, ReasonUndervaluation)
}

func TestCustomsChannelAssignment(t *testing.T) {
	// PNR hit forces RED regardless of band
	red := CustomsScore(CustomsFeatures{AEO: 2, PNRHit: true})
	assert.Equal(t, types.ChannelRed, red.Channel)
	assert.NotEqual(t, types.RiskHigh, red.Band)

	// watchlist forces RED too
	assert.Equal(t, types.ChannelRed, CustomsScore(CustomsFeatures{AEO: 2, Watchlist: true}).Channel)

	// doc mismatch alone is YELLOW
	yellow := CustomsScore(CustomsFeatures{DocMismatch: true})
	assert.Equal(t, types.ChannelYellow, yellow.Channel)

	// nothing tripped is GREEN
	green := CustomsScore(CustomsFeatures{HSRisk: 0.2, OriginRisk: 0.2})
	assert.Equal(t, types.ChannelGreen, green.Channel)
	assert.Empty(t, green.Reasons)
}

func TestCustomsReasons(t *testing.T) {
	result := CustomsScore(CustomsFeatures{
		PNRHit:      true,
		Watchlist:   true,
		DocMismatch: true,
		HSRisk:      0.6,
		OriginRisk:  0.6,
		UndervalPct: 50,
	})
	assert.Equal(t, []string{
		ReasonPNRHit,
		ReasonWatchlist,
		ReasonDocMismatch,
		ReasonHighRiskGoods,
		ReasonHighRiskSource,
		ReasonUndervaluation,
	}, result.Reasons)
}
