// Package compute derives statistics from the live simulation: rolling
// clearance times per crossing point and booth utilization over a sampling
// window.
package compute

import (
	"sync"
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
)

// clearance times are averaged over this many recent clearances
const clearanceWindow = 50

// ClearanceStats keeps a rolling average of total processing time (arrival
// to customs completion) per crossing point. The simulation engine feeds it
// from within the tick; readers may query it at any time.
type ClearanceStats struct {
	mu       sync.Mutex
	averages map[string]*movingaverage.MovingAverage
	counts   map[string]int
}

// NewClearanceStats returns a new, initialized ClearanceStats
func NewClearanceStats() *ClearanceStats {
	return &ClearanceStats{
		averages: make(map[string]*movingaverage.MovingAverage),
		counts:   make(map[string]int),
	}
}

// RegisterClearance records that a vehicle cleared the named crossing point
// after spending total time processing
func (s *ClearanceStats) RegisterClearance(crossingPointID string, total time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	avg, present := s.averages[crossingPointID]
	if !present {
		avg = movingaverage.New(clearanceWindow)
		s.averages[crossingPointID] = avg
	}
	avg.Add(total.Seconds())
	s.counts[crossingPointID]++
}

// AverageClearSeconds returns the rolling average processing time in
// seconds for the named crossing point, or 0 if nothing has cleared yet
func (s *ClearanceStats) AverageClearSeconds(crossingPointID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	avg, present := s.averages[crossingPointID]
	if !present {
		return 0
	}
	return avg.Avg()
}

// Clearances returns how many vehicles have been recorded for the named
// crossing point
func (s *ClearanceStats) Clearances(crossingPointID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[crossingPointID]
}
