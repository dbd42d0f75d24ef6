package compute

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kaborder/crossingsim/types"
)

func TestBoothUsage(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	spans := []ServiceSpan{
		{LaneID: "l1", Stage: types.StageBorder, Start: base.Add(10 * time.Second), End: base.Add(25 * time.Second)},
		{LaneID: "l1", Stage: types.StageBorder, Start: base.Add(40 * time.Second), End: base.Add(55 * time.Second)},
	}

	usage := BoothUsage(spans, base, base.Add(60*time.Second))
	assert.InDelta(t, 0.5, usage, 1e-9)
}

func TestBoothUsageClipsToWindow(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	spans := []ServiceSpan{
		// starts before the window, ends inside it
		{Start: base.Add(-30 * time.Second), End: base.Add(30 * time.Second)},
	}
	usage := BoothUsage(spans, base, base.Add(60*time.Second))
	assert.InDelta(t, 0.5, usage, 1e-9)
}

func TestBoothUsageOngoingSpan(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	spans := []ServiceSpan{
		// zero End means still in progress
		{Start: base.Add(45 * time.Second)},
	}
	usage := BoothUsage(spans, base, base.Add(60*time.Second))
	assert.InDelta(t, 0.25, usage, 1e-9)
}

func TestBoothUsageCappedAtOne(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	spans := []ServiceSpan{
		{Start: base, End: base.Add(60 * time.Second)},
		{Start: base, End: base.Add(60 * time.Second)},
	}
	assert.Equal(t, 1.0, BoothUsage(spans, base, base.Add(60*time.Second)))
}

func TestBoothUsageEmptyWindow(t *testing.T) {
	base := time.Now()
	assert.Equal(t, 0.0, BoothUsage(nil, base, base))
}

func TestClearanceStats(t *testing.T) {
	stats := NewClearanceStats()
	assert.Equal(t, 0.0, stats.AverageClearSeconds("BCP_VERMILLION"))
	assert.Equal(t, 0, stats.Clearances("BCP_VERMILLION"))

	stats.RegisterClearance("BCP_VERMILLION", 100*time.Second)
	stats.RegisterClearance("BCP_VERMILLION", 200*time.Second)
	stats.RegisterClearance("BCP_INDIGO", 50*time.Second)

	assert.InDelta(t, 150.0, stats.AverageClearSeconds("BCP_VERMILLION"), 1e-9)
	assert.Equal(t, 2, stats.Clearances("BCP_VERMILLION"))
	assert.InDelta(t, 50.0, stats.AverageClearSeconds("BCP_INDIGO"), 1e-9)
}
