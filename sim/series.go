package sim

import (
	"time"

	altmath "github.com/pkg/math"
)

// SeriesLength is how many samples each time series retains
const SeriesLength = 60

// QueueSample is one sample of queue depth and active service count for the
// selected crossing point
type QueueSample struct {
	Time      time.Time `msgpack:"time" json:"time"`
	Waiting   int       `msgpack:"waiting" json:"waiting"`
	InControl int       `msgpack:"inControl" json:"inControl"`
}

// RevenueSample is one sample of cumulative collected revenue
type RevenueSample struct {
	Time   time.Time `msgpack:"time" json:"time"`
	Amount float64   `msgpack:"amount" json:"amount"`
}

// ThroughputSample is one sample of vehicles cleared per tick, tagged by
// lane direction
type ThroughputSample struct {
	Time  time.Time `msgpack:"time" json:"time"`
	Entry int       `msgpack:"entry" json:"entry"`
	Exit  int       `msgpack:"exit" json:"exit"`
}

func appendBounded[T any](series []T, sample T, max int) []T {
	series = append(series, sample)
	return series[altmath.Max(0, len(series)-max):]
}
