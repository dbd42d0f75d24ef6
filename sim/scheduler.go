package sim

import (
	"time"

	altmath "github.com/pkg/math"

	"github.com/kaborder/crossingsim/compute"
	"github.com/kaborder/crossingsim/risk"
	"github.com/kaborder/crossingsim/types"
)

const maxServiceSpans = 64

// laneState tracks the vehicles currently assigned to one lane. Each stage
// has a single service position and a FIFO queue ordered by arrival.
type laneState struct {
	lane *types.Lane

	waitingBorder  []*types.Vehicle
	waitingCustoms []*types.Vehicle
	inBorder       *types.Vehicle
	inCustoms      *types.Vehicle

	spans []compute.ServiceSpan
}

// tickTotals accumulates the clearance side effects of a single tick
type tickTotals struct {
	revenue float64
	entry   int
	exit    int
	cleared []*types.Vehicle
}

// advanceLane runs one scheduling step for a lane: finish any unit whose
// assigned service time has elapsed, then admit the next waiting unit into
// the free position. Closed lanes still complete the units they hold but
// admit nothing new.
func (e *Engine) advanceLane(ls *laneState, now time.Time, totals *tickTotals) {
	e.advanceCustoms(ls, now, totals)
	e.advanceBorder(ls, now)
}

func (e *Engine) advanceCustoms(ls *laneState, now time.Time, totals *tickTotals) {
	if v := ls.inCustoms; v != nil {
		if !v.StartCustoms.IsZero() && now.Sub(v.StartCustoms).Seconds() >= v.AssignedCustomsDuration {
			v.Status = types.StatusCleared
			ls.inCustoms = nil
			ls.recordSpan(types.StageCustoms, v.StartCustoms, now)
			e.settleClearance(ls.lane, v, now, totals)
		}
		return
	}
	if !ls.lane.IsOpen || len(ls.waitingCustoms) == 0 {
		return
	}
	next := ls.waitingCustoms[0]
	ls.waitingCustoms = ls.waitingCustoms[1:]
	next.Status = types.StatusInCustoms
	next.StartCustoms = now
	next.AssignedCustomsDuration = risk.ServiceTime(ls.lane.CustomsServiceTime, next.Risk, len(ls.waitingCustoms), e.rng)
	ls.inCustoms = next
}

func (e *Engine) advanceBorder(ls *laneState, now time.Time) {
	if v := ls.inBorder; v != nil {
		if !v.StartBorder.IsZero() && now.Sub(v.StartBorder).Seconds() >= v.AssignedBorderDuration {
			start := v.StartBorder
			v.Status = types.StatusWaitingCustoms
			v.StartBorder = time.Time{}
			ls.inBorder = nil
			ls.waitingCustoms = append(ls.waitingCustoms, v)
			ls.recordSpan(types.StageBorder, start, now)
		}
		return
	}
	if !ls.lane.IsOpen || len(ls.waitingBorder) == 0 {
		return
	}
	next := ls.waitingBorder[0]
	ls.waitingBorder = ls.waitingBorder[1:]
	next.Status = types.StatusInBorder
	next.StartBorder = now
	next.AssignedBorderDuration = risk.ServiceTime(ls.lane.BorderServiceTime, next.Risk, len(ls.waitingBorder), e.rng)
	ls.inBorder = next
}

// settleClearance applies the side effects of a customs completion: per-CP
// counters, throughput by direction, revenue sampling and the clearance time
// moving average.
func (e *Engine) settleClearance(lane *types.Lane, v *types.Vehicle, now time.Time, totals *tickTotals) {
	c := e.counters[lane.CrossingPointID]
	c.Cleared++
	switch lane.Direction {
	case types.DirectionEntry:
		totals.entry++
	case types.DirectionExit:
		totals.exit++
	}
	switch v.Class {
	case types.ClassTruck:
		totals.revenue += float64(e.rng.Intn(4500) + 200)
	case types.ClassCar:
		if e.rng.Float64() < 0.1 {
			totals.revenue += float64(e.rng.Intn(500))
		}
	}
	totals.cleared = append(totals.cleared, v)
	if e.clearances != nil {
		e.clearances.RegisterClearance(lane.CrossingPointID, now.Sub(v.ArrivalTime))
	}
}

func (ls *laneState) recordSpan(stage types.Stage, start, end time.Time) {
	ls.spans = append(ls.spans, compute.ServiceSpan{
		LaneID: ls.lane.ID,
		Stage:  stage,
		Start:  start,
		End:    end,
	})
	ls.spans = ls.spans[altmath.Max(0, len(ls.spans)-maxServiceSpans):]
}
