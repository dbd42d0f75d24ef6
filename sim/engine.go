package sim

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/kaborder/crossingsim/compute"
	"github.com/kaborder/crossingsim/risk"
	"github.com/kaborder/crossingsim/types"
)

const (
	// DefaultTickPeriod is the simulated clock resolution
	DefaultTickPeriod = 1 * time.Second
	// RetentionWindow is how long cleared vehicles stay visible
	RetentionWindow = 15 * time.Second
	// MaxAlerts bounds the alert feed, newest first
	MaxAlerts = 50

	arrivalProb             = 0.15
	truckDeclarationProb    = 0.85
	personalDeclarationProb = 0.10
	standaloneDeclProb      = 0.05
	customsSelectionProb    = 0.40
)

// Counters are the monotonic per-crossing-point totals
type Counters struct {
	Cleared  int `msgpack:"cleared" json:"cleared"`
	HighRisk int `msgpack:"highRisk" json:"highRisk"`
}

// Config configures a simulation Engine
type Config struct {
	Log *log.Logger

	// RNG drives every random draw of the simulation. If nil a
	// time-seeded source is used.
	RNG *rand.Rand

	// Now is the engine clock. If nil, time.Now is used. Tests inject a
	// settable clock here.
	Now func() time.Time

	CrossingPoints []*types.CrossingPoint
	Lanes          []*types.Lane

	// Clearances receives per-clearance timing samples. Optional.
	Clearances *compute.ClearanceStats
}

// Engine is the tick-driven border crossing simulation. All state behind
// the mutex is owned by the engine; accessors hand out copies.
type Engine struct {
	mu  sync.Mutex
	log *log.Logger
	rng *rand.Rand
	now func() time.Time

	crossingPoints []*types.CrossingPoint
	cpByID         map[string]*types.CrossingPoint
	laneOrder      []string
	lanes          map[string]*laneState

	vehicles     map[string]*types.Vehicle
	declarations []*types.Declaration
	alerts       []*types.Alert
	counters     map[string]*Counters
	clearances   *compute.ClearanceStats

	selectedCP       string
	queueSeries      []QueueSample
	revenueSeries    []RevenueSample
	throughputSeries []ThroughputSample

	ticker   *time.Ticker
	stopChan chan struct{}
	running  bool
}

// New creates an Engine over the given topology
func New(cfg Config) (*Engine, error) {
	if len(cfg.CrossingPoints) == 0 {
		return nil, errors.New("engine: no crossing points configured")
	}
	if cfg.Log == nil {
		cfg.Log = log.New(log.Writer(), "", log.Ldate|log.Ltime)
	}
	if cfg.RNG == nil {
		cfg.RNG = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	e := &Engine{
		log:            cfg.Log,
		rng:            cfg.RNG,
		now:            cfg.Now,
		crossingPoints: cfg.CrossingPoints,
		cpByID:         make(map[string]*types.CrossingPoint),
		lanes:          make(map[string]*laneState),
		vehicles:       make(map[string]*types.Vehicle),
		counters:       make(map[string]*Counters),
		clearances:     cfg.Clearances,
		stopChan:       make(chan struct{}),
	}
	for _, cp := range cfg.CrossingPoints {
		e.cpByID[cp.ID] = cp
		e.counters[cp.ID] = &Counters{}
	}
	for _, lane := range cfg.Lanes {
		if _, present := e.cpByID[lane.CrossingPointID]; !present {
			return nil, fmt.Errorf("engine: lane %s references unknown crossing point %s", lane.ID, lane.CrossingPointID)
		}
		if _, present := e.lanes[lane.ID]; present {
			return nil, fmt.Errorf("engine: duplicate lane %s", lane.ID)
		}
		e.lanes[lane.ID] = &laneState{lane: lane}
		e.laneOrder = append(e.laneOrder, lane.ID)
	}
	e.selectedCP = cfg.CrossingPoints[0].ID
	return e, nil
}

// Begin starts the tick loop with the given period
func (e *Engine) Begin(period time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	e.running = true
	e.ticker = time.NewTicker(period)
	e.log.Println("Simulation started")
	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.Tick()
			case <-e.stopChan:
				return
			}
		}
	}()
}

// End stops the tick loop
func (e *Engine) End() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.ticker.Stop()
	e.mu.Unlock()

	// outside the lock, as the loop goroutine may be mid-Tick
	e.stopChan <- struct{}{}
	e.log.Println("Simulation stopped")
}

// Tick advances the simulation by one step: new arrivals and declarations
// are generated, every lane's two-stage scheduler runs, cleared vehicles
// past the retention window are purged, and the dashboard series are
// sampled.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	newAlerts := []*types.Alert{}
	newDeclarations := []*types.Declaration{}

	for _, laneID := range e.laneOrder {
		ls := e.lanes[laneID]
		if !ls.lane.IsOpen || e.rng.Float64() >= arrivalProb {
			continue
		}
		cp := e.cpByID[ls.lane.CrossingPointID]
		v := GenerateVehicle(e.rng, ls.lane, cp, now)
		e.vehicles[v.ID] = v
		ls.waitingBorder = append(ls.waitingBorder, v)

		if v.Risk == types.RiskHigh {
			e.counters[cp.ID].HighRisk++
		}
		if a := e.arrivalAlert(v, cp, now); a != nil {
			newAlerts = append(newAlerts, a)
		}

		if v.Class == types.ClassTruck {
			if e.rng.Float64() < truckDeclarationProb {
				newDeclarations = append(newDeclarations, GenerateDeclaration(e.rng, v, now))
			}
		} else {
			// the declaration and alert draws are independent; a personal
			// vehicle can trip both in the same tick
			if e.rng.Float64() < personalDeclarationProb {
				newDeclarations = append(newDeclarations, GenerateDeclaration(e.rng, v, now))
			}
			if v.Risk.AtLeast(types.RiskMedium) && e.rng.Float64() < customsSelectionProb {
				issue := randomItem(e.rng, customsIssues)
				severity := types.SeverityMedium
				if v.Risk == types.RiskHigh {
					severity = types.SeverityHigh
				}
				newAlerts = append(newAlerts, e.newAlert(now, types.AlertCustoms, issue.title,
					fmt.Sprintf("Vehicle %s (%s): %s", v.Plate, cpShortName(cp), issue.message), severity))
			}
		}
	}

	if e.rng.Float64() < standaloneDeclProb {
		d := GenerateDeclaration(e.rng, nil, now)
		newDeclarations = append(newDeclarations, d)
		if d.RiskBand == types.RiskHigh {
			newAlerts = append(newAlerts, e.newAlert(now, types.AlertCustoms, "High Risk Cargo",
				fmt.Sprintf("MRN %s: %s", d.MRN, strings.Join(d.RiskReasons, ", ")), types.SeverityMedium))
		}
	}

	totals := &tickTotals{}
	for _, laneID := range e.laneOrder {
		e.advanceLane(e.lanes[laneID], now, totals)
	}

	for id, v := range e.vehicles {
		if v.Status == types.StatusCleared && !v.StartCustoms.IsZero() &&
			now.Sub(v.StartCustoms) > RetentionWindow {
			delete(e.vehicles, id)
		}
	}

	if len(newDeclarations) > 0 {
		e.declarations = append(newDeclarations, e.declarations...)
	}
	if len(newAlerts) > 0 {
		e.alerts = append(newAlerts, e.alerts...)
		if len(e.alerts) > MaxAlerts {
			e.alerts = e.alerts[:MaxAlerts]
		}
	}

	e.sampleSeries(now, totals)
}

// arrivalAlert raises the security alert for a freshly generated vehicle,
// if its features warrant one. Document anomalies take precedence over
// watchlist hits.
func (e *Engine) arrivalAlert(v *types.Vehicle, cp *types.CrossingPoint, now time.Time) *types.Alert {
	switch {
	case v.DocAnomaly:
		return e.newAlert(now, types.AlertSecurity, "Document Verification Alert",
			fmt.Sprintf("Vehicle %s (%s): %s", v.Plate, cpShortName(cp), randomItem(e.rng, borderDocumentIssues)),
			types.SeverityHigh)
	case v.WatchlistHit:
		return e.newAlert(now, types.AlertSecurity, "Intelligence Hit",
			fmt.Sprintf("Vehicle %s (%s): subject flagged on national watchlist.", v.Plate, cpShortName(cp)),
			types.SeverityHigh)
	}
	return nil
}

func (e *Engine) newAlert(now time.Time, t types.AlertType, title, message string, severity types.AlertSeverity) *types.Alert {
	return &types.Alert{
		ID:        types.NewAlertID(),
		Timestamp: now,
		Type:      t,
		Title:     title,
		Message:   message,
		Severity:  severity,
	}
}

// sampleSeries appends one sample to each bounded dashboard series. Queue
// depth tracks the selected crossing point; revenue is cumulative across
// the whole network.
func (e *Engine) sampleSeries(now time.Time, totals *tickTotals) {
	waiting, inControl := 0, 0
	for _, laneID := range e.laneOrder {
		ls := e.lanes[laneID]
		if ls.lane.CrossingPointID != e.selectedCP {
			continue
		}
		waiting += len(ls.waitingBorder) + len(ls.waitingCustoms)
		if ls.inBorder != nil {
			inControl++
		}
		if ls.inCustoms != nil {
			inControl++
		}
	}
	e.queueSeries = appendBounded(e.queueSeries, QueueSample{
		Time: now, Waiting: waiting, InControl: inControl,
	}, SeriesLength)

	total := totals.revenue
	if len(e.revenueSeries) > 0 {
		total += e.revenueSeries[len(e.revenueSeries)-1].Amount
	}
	e.revenueSeries = appendBounded(e.revenueSeries, RevenueSample{
		Time: now, Amount: round2(total),
	}, SeriesLength)

	e.throughputSeries = appendBounded(e.throughputSeries, ThroughputSample{
		Time: now, Entry: totals.entry, Exit: totals.exit,
	}, SeriesLength)
}

// SubmitDeclaration validates and registers a manually lodged declaration.
// Manual lodgings carry no intelligence features; the customs risk engine
// scores them on commodity, origin and a neutral compliance history.
func (e *Engine) SubmitDeclaration(in types.DeclarationInput) (*types.Declaration, error) {
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()

	aeo := in.AEO
	if aeo == "" {
		aeo = types.AEONone
	}
	flow := in.Flow
	if flow == "" {
		flow = types.FlowImport
	}

	hsRisk, known := HSRisk[in.HSCode]
	if !known {
		hsRisk = defaultHSRisk
	}
	originRisk, known := OriginRisk[in.OriginCountry]
	if !known {
		originRisk = defaultHSRisk // manual lodgings default both features low
	}

	result := risk.CustomsScore(risk.CustomsFeatures{
		AEO:        aeo.Level(),
		HSRisk:     hsRisk,
		OriginRisk: originRisk,
		History:    manualDeclarationHistory,
	})

	duties := round2(in.Value * (dutyBaseRate + dutyHSRiskRate*hsRisk))
	d := &types.Declaration{
		ID:                 fmt.Sprintf("D_MANUAL_%d", now.UnixMilli()),
		MRN:                in.MRN,
		TraderName:         in.TraderName,
		AEO:                aeo,
		Flow:               flow,
		HSCode:             in.HSCode,
		GoodsDesc:          in.GoodsDesc,
		OriginCountry:      in.OriginCountry,
		DestinationCountry: in.DestinationCountry,
		Value:              in.Value,
		Weight:             in.Weight,
		Duties:             duties,
		VAT:                round2((in.Value + duties) * vatRate),
		RiskScore:          result.Score,
		RiskBand:           result.Band,
		RiskReasons:        result.Reasons,
		Channel:            result.Channel,
		Status:             types.DeclarationSubmitted,
		VehiclePlate:       in.VehiclePlate,
		VehicleClass:       types.ClassTruck,
		SubmittedAt:        now,
	}
	e.declarations = append([]*types.Declaration{d}, e.declarations...)
	e.log.Println("Manual declaration lodged:", d.MRN, "channel", d.Channel)
	return d, nil
}

// SetLaneOpen opens or closes a lane. Closing a lane stops admissions only;
// vehicles already in service run to completion.
func (e *Engine) SetLaneOpen(laneID string, open bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ls, present := e.lanes[laneID]
	if !present {
		return fmt.Errorf("engine: unknown lane %s", laneID)
	}
	ls.lane.IsOpen = open
	return nil
}

// SelectCrossingPoint switches the crossing point the queue-depth series
// samples
func (e *Engine) SelectCrossingPoint(cpID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, present := e.cpByID[cpID]; !present {
		return fmt.Errorf("engine: unknown crossing point %s", cpID)
	}
	e.selectedCP = cpID
	return nil
}

// SelectedCrossingPoint returns the ID of the crossing point currently
// driving the queue-depth series
func (e *Engine) SelectedCrossingPoint() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedCP
}

func cpShortName(cp *types.CrossingPoint) string {
	if i := strings.Index(cp.ID, "_"); i >= 0 {
		return cp.ID[i+1:]
	}
	return cp.ID
}
