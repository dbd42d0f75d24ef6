package sim

import (
	"fmt"
	"sort"
	"time"

	"github.com/ulule/deepcopier"

	"github.com/kaborder/crossingsim/compute"
	"github.com/kaborder/crossingsim/types"
)

// usage is computed over the most recent minute of service spans
const usageWindow = 60 * time.Second

// LaneSnapshot is the point-in-time state of one lane
type LaneSnapshot struct {
	Lane           types.Lane     `msgpack:"lane" json:"lane"`
	WaitingBorder  int            `msgpack:"waitingBorder" json:"waitingBorder"`
	WaitingCustoms int            `msgpack:"waitingCustoms" json:"waitingCustoms"`
	InBorder       *types.Vehicle `msgpack:"inBorder,omitempty" json:"inBorder,omitempty"`
	InCustoms      *types.Vehicle `msgpack:"inCustoms,omitempty" json:"inCustoms,omitempty"`
	BorderUsage    float64        `msgpack:"borderUsage" json:"borderUsage"`
	CustomsUsage   float64        `msgpack:"customsUsage" json:"customsUsage"`
}

// Snapshot is the point-in-time state of one crossing point, with the
// dashboard series attached
type Snapshot struct {
	CrossingPoint types.CrossingPoint `msgpack:"crossingPoint" json:"crossingPoint"`
	At            time.Time           `msgpack:"at" json:"at"`
	Lanes         []LaneSnapshot      `msgpack:"lanes" json:"lanes"`

	Waiting   []*types.Vehicle `msgpack:"waiting" json:"waiting"`
	InControl []*types.Vehicle `msgpack:"inControl" json:"inControl"`
	Cleared   []*types.Vehicle `msgpack:"cleared" json:"cleared"`

	AvgWaitSeconds  float64                `msgpack:"avgWaitSeconds" json:"avgWaitSeconds"`
	AvgClearSeconds float64                `msgpack:"avgClearSeconds" json:"avgClearSeconds"`
	RiskCounts      map[types.RiskBand]int `msgpack:"riskCounts" json:"riskCounts"`
	Counters        Counters               `msgpack:"counters" json:"counters"`

	QueueSeries      []QueueSample      `msgpack:"queueSeries" json:"queueSeries"`
	RevenueSeries    []RevenueSample    `msgpack:"revenueSeries" json:"revenueSeries"`
	ThroughputSeries []ThroughputSample `msgpack:"throughputSeries" json:"throughputSeries"`
}

// PerformanceRow is one crossing point's line in the network overview
type PerformanceRow struct {
	CrossingPoint  types.CrossingPoint `msgpack:"crossingPoint" json:"crossingPoint"`
	Waiting        int                 `msgpack:"waiting" json:"waiting"`
	Active         int                 `msgpack:"active" json:"active"`
	Cleared        int                 `msgpack:"cleared" json:"cleared"`
	HighRisk       int                 `msgpack:"highRisk" json:"highRisk"`
	AvgWaitSeconds float64             `msgpack:"avgWaitSeconds" json:"avgWaitSeconds"`
	OpenLanes      int                 `msgpack:"openLanes" json:"openLanes"`
}

// CrossingPoints returns the configured crossing points
func (e *Engine) CrossingPoints() []types.CrossingPoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	cps := make([]types.CrossingPoint, len(e.crossingPoints))
	for i, cp := range e.crossingPoints {
		cps[i] = *cp
	}
	return cps
}

// Lanes returns the lane configuration, in topology order
func (e *Engine) Lanes() []types.Lane {
	e.mu.Lock()
	defer e.mu.Unlock()
	lanes := make([]types.Lane, 0, len(e.laneOrder))
	for _, laneID := range e.laneOrder {
		lanes = append(lanes, *e.lanes[laneID].lane)
	}
	return lanes
}

// Snapshot returns the full state of one crossing point. Vehicles are
// copied; callers may not mutate engine state through the result.
func (e *Engine) Snapshot(cpID string) (*Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cp, present := e.cpByID[cpID]
	if !present {
		return nil, fmt.Errorf("engine: unknown crossing point %s", cpID)
	}
	now := e.now()

	s := &Snapshot{
		CrossingPoint:    *cp,
		At:               now,
		RiskCounts:       map[types.RiskBand]int{},
		Counters:         *e.counters[cpID],
		QueueSeries:      append([]QueueSample{}, e.queueSeries...),
		RevenueSeries:    append([]RevenueSample{}, e.revenueSeries...),
		ThroughputSeries: append([]ThroughputSample{}, e.throughputSeries...),
	}
	if e.clearances != nil {
		s.AvgClearSeconds = e.clearances.AverageClearSeconds(cpID)
	}

	for _, laneID := range e.laneOrder {
		ls := e.lanes[laneID]
		if ls.lane.CrossingPointID != cpID {
			continue
		}
		spans := ls.spans
		if ls.inBorder != nil && !ls.inBorder.StartBorder.IsZero() {
			spans = append(spans, compute.ServiceSpan{
				LaneID: laneID, Stage: types.StageBorder, Start: ls.inBorder.StartBorder,
			})
		}
		if ls.inCustoms != nil && !ls.inCustoms.StartCustoms.IsZero() {
			spans = append(spans, compute.ServiceSpan{
				LaneID: laneID, Stage: types.StageCustoms, Start: ls.inCustoms.StartCustoms,
			})
		}
		s.Lanes = append(s.Lanes, LaneSnapshot{
			Lane:           *ls.lane,
			WaitingBorder:  len(ls.waitingBorder),
			WaitingCustoms: len(ls.waitingCustoms),
			InBorder:       copyVehicle(ls.inBorder),
			InCustoms:      copyVehicle(ls.inCustoms),
			BorderUsage:    stageUsage(spans, types.StageBorder, now),
			CustomsUsage:   stageUsage(spans, types.StageCustoms, now),
		})
	}

	var totalWait time.Duration
	for _, v := range e.vehicles {
		if v.CrossingPointID != cpID {
			continue
		}
		s.RiskCounts[v.Risk]++
		switch {
		case v.Waiting():
			s.Waiting = append(s.Waiting, copyVehicle(v))
			totalWait += v.WaitDuration(now)
		case v.InControl():
			s.InControl = append(s.InControl, copyVehicle(v))
		case v.Status == types.StatusCleared:
			s.Cleared = append(s.Cleared, copyVehicle(v))
		}
	}
	sortByArrival(s.Waiting)
	sortByArrival(s.InControl)
	sortByArrival(s.Cleared)
	if len(s.Waiting) > 0 {
		s.AvgWaitSeconds = totalWait.Seconds() / float64(len(s.Waiting))
	}
	return s, nil
}

// Declarations returns the declarations matching the filter, most recent
// first unless the filter asks for descending risk order
func (e *Engine) Declarations(filter *types.DeclarationFilter) []*types.Declaration {
	e.mu.Lock()
	defer e.mu.Unlock()

	matched := []*types.Declaration{}
	// the ledger is kept newest first
	for _, d := range e.declarations {
		if filter == nil || filter.Matches(d) {
			matched = append(matched, d)
		}
	}
	if filter != nil && filter.SortRisk {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].RiskScore > matched[j].RiskScore
		})
	}
	return matched
}

// Alerts returns the alert feed, newest first
func (e *Engine) Alerts() []*types.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*types.Alert{}, e.alerts...)
}

// NetworkPerformance returns the per-crossing-point overview rows
func (e *Engine) NetworkPerformance() []PerformanceRow {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	rows := make([]PerformanceRow, 0, len(e.crossingPoints))
	for _, cp := range e.crossingPoints {
		row := PerformanceRow{CrossingPoint: *cp}
		c := e.counters[cp.ID]
		row.Cleared = c.Cleared
		row.HighRisk = c.HighRisk

		var totalWait time.Duration
		for _, v := range e.vehicles {
			if v.CrossingPointID != cp.ID {
				continue
			}
			if v.Waiting() {
				row.Waiting++
				totalWait += v.WaitDuration(now)
			} else if v.InControl() {
				row.Active++
			}
		}
		if row.Waiting > 0 {
			row.AvgWaitSeconds = totalWait.Seconds() / float64(row.Waiting)
		}
		for _, laneID := range e.laneOrder {
			ls := e.lanes[laneID]
			if ls.lane.CrossingPointID == cp.ID && ls.lane.IsOpen {
				row.OpenLanes++
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func stageUsage(spans []compute.ServiceSpan, stage types.Stage, now time.Time) float64 {
	filtered := []compute.ServiceSpan{}
	for _, span := range spans {
		if span.Stage == stage {
			filtered = append(filtered, span)
		}
	}
	return compute.BoothUsage(filtered, now.Add(-usageWindow), now)
}

func copyVehicle(v *types.Vehicle) *types.Vehicle {
	if v == nil {
		return nil
	}
	c := &types.Vehicle{}
	if err := deepcopier.Copy(v).To(c); err != nil {
		clone := *v
		return &clone
	}
	return c
}

func sortByArrival(vehicles []*types.Vehicle) {
	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].ArrivalTime.Before(vehicles[j].ArrivalTime)
	})
}
