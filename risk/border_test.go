package risk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaborder/crossingsim/types"
)

func TestBorderScoreRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		f := BorderFeatures{
			WatchlistHit: rng.Float64() < 0.5,
			DocAnomaly:   rng.Float64() < 0.5,
			BioMismatch:  rng.Float64() < 0.5,
			RouteRisk:    rng.Float64() * 0.7,
			GoodsFlag:    rng.Float64() < 0.5,
		}
		score, band := BorderScore(f, rng)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
		assert.Equal(t, types.BandForScore(score), band)
	}
}

func TestBorderScoreJitterBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	f := BorderFeatures{WatchlistHit: true, DocAnomaly: true}
	for i := 0; i < 100; i++ {
		score, _ := BorderScore(f, rng)
		assert.GreaterOrEqual(t, score, 60.0)
		assert.Less(t, score, 65.0)
	}
}

func TestBorderScoreAllFeaturesIsHigh(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	score, band := BorderScore(BorderFeatures{
		WatchlistHit: true,
		DocAnomaly:   true,
		BioMismatch:  true,
		RouteRisk:    0.7,
		GoodsFlag:    true,
	}, rng)
	// 40+20+15+7+10 = 92 before jitter
	assert.GreaterOrEqual(t, score, 92.0)
	assert.Equal(t, types.RiskHigh, band)
}

func TestBorderScoreNoFeaturesIsLow(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	score, band := BorderScore(BorderFeatures{}, rng)
	assert.Less(t, score, 5.0)
	assert.Equal(t, types.RiskLow, band)
}
