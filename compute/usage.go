package compute

import (
	"time"

	"github.com/SaidinWoT/timespan"

	"github.com/kaborder/crossingsim/types"
)

// ServiceSpan is one completed (or ongoing) occupancy of a stage server
type ServiceSpan struct {
	LaneID string
	Stage  types.Stage
	Start  time.Time
	End    time.Time // zero while the occupancy is still in progress
}

// BoothUsage returns the fraction of the window during which the stage
// server was busy, given the recorded service spans of one lane and stage.
// Spans still in progress are counted up to the end of the window.
func BoothUsage(spans []ServiceSpan, windowStart, windowEnd time.Time) float64 {
	if !windowEnd.After(windowStart) {
		return 0
	}
	window := timespan.New(windowStart, windowEnd.Sub(windowStart))

	var busy time.Duration
	for _, span := range spans {
		end := span.End
		if end.IsZero() {
			end = windowEnd
		}
		if !end.After(span.Start) {
			continue
		}
		s := timespan.New(span.Start, end.Sub(span.Start))
		d, intersects := window.Intersection(s)
		if intersects {
			busy += d.Duration()
		}
	}

	usage := busy.Seconds() / windowEnd.Sub(windowStart).Seconds()
	if usage > 1 {
		return 1
	}
	return usage
}
