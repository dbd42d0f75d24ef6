package risk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaborder/crossingsim/types"
)

func TestServiceTimeFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		assert.Equal(t, MinServiceSeconds, ServiceTime(0.5, types.RiskLow, 0, rng))
	}
}

func TestServiceTimeHighRiskIgnoresBacklog(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	// 60 * 2.5 * jitter with jitter in [0.85, 1.15)
	for i := 0; i < 100; i++ {
		d := ServiceTime(60, types.RiskHigh, 20, rng)
		assert.GreaterOrEqual(t, d, 60*2.5*0.85)
		assert.Less(t, d, 60*2.5*1.15)
	}
}

func TestServiceTimeBacklogDiscounts(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		// medium risk with a heavy backlog: 1.5 * 0.6 = 0.9
		d := ServiceTime(60, types.RiskMedium, 9, rng)
		assert.GreaterOrEqual(t, d, 60*0.9*0.85)
		assert.Less(t, d, 60*0.9*1.15)

		// low risk with a light backlog: 0.8
		d = ServiceTime(60, types.RiskLow, 5, rng)
		assert.GreaterOrEqual(t, d, 60*0.8*0.85)
		assert.Less(t, d, 60*0.8*1.15)
	}
}

func TestServiceTimeNoDiscountAtThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 100; i++ {
		// thresholds are strict: a queue of exactly 4 gets no discount
		d := ServiceTime(60, types.RiskLow, 4, rng)
		assert.GreaterOrEqual(t, d, 60*0.85)
	}
}
