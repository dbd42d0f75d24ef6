package resource

import (
	"net/http"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/kaborder/crossingsim/report"
	"github.com/kaborder/crossingsim/sim"
	"github.com/kaborder/crossingsim/types"
	"github.com/yarf-framework/yarf"
)

// Report composites resource
type Report struct {
	resource
	generator *report.Generator
	cache     *cache.Cache
}

// WithEngine associates a simulation engine with this resource
func (r *Report) WithEngine(engine *sim.Engine) *Report {
	r.engine = engine
	return r
}

// WithGenerator associates a report generator with this resource. Reports
// are cached for a minute per crossing point to keep API usage bounded.
func (r *Report) WithGenerator(generator *report.Generator) *Report {
	r.generator = generator
	r.cache = cache.New(1*time.Minute, 5*time.Minute)
	return r
}

type apiReport struct {
	CrossingPoint string    `msgpack:"crossingPoint" json:"crossingPoint"`
	Report        string    `msgpack:"report" json:"report"`
	GeneratedAt   time.Time `msgpack:"generatedAt" json:"generatedAt"`
}

// Get serves HTTP GET requests on this resource
func (r *Report) Get(c *yarf.Context) error {
	cpID := c.Param("id")
	if cached, present := r.cache.Get(cpID); present {
		RenderData(c, cached.(apiReport))
		return nil
	}

	snapshot, err := r.engine.Snapshot(cpID)
	if err != nil {
		return &yarf.CustomError{
			HTTPCode:  http.StatusNotFound,
			ErrorMsg:  "Crossing point not found",
			ErrorBody: err.Error(),
		}
	}

	situation := report.Situation{
		CrossingPointName: snapshot.CrossingPoint.Name,
		At:                snapshot.At,
		Waiting:           len(snapshot.Waiting),
		InControl:         len(snapshot.InControl),
		Cleared:           snapshot.Counters.Cleared,
		AvgWait:           time.Duration(snapshot.AvgWaitSeconds * float64(time.Second)),
	}
	for _, v := range append(snapshot.Waiting, snapshot.InControl...) {
		if v.Risk == types.RiskHigh {
			situation.HighRisk = append(situation.HighRisk, report.SituationVehicle{
				Plate:   v.Plate,
				Class:   string(v.Class),
				Subtype: v.Subtype,
				Score:   v.RiskScore,
			})
		}
	}
	for i, a := range r.engine.Alerts() {
		if i >= 5 {
			break
		}
		situation.Alerts = append(situation.Alerts, report.SituationAlert{
			Severity: string(a.Severity),
			Title:    a.Title,
			Message:  a.Message,
		})
	}

	result := apiReport{
		CrossingPoint: cpID,
		Report:        r.generator.Report(c.Request.Context(), situation),
		GeneratedAt:   time.Now(),
	}
	r.cache.Set(cpID, result, cache.DefaultExpiration)
	RenderData(c, result)
	return nil
}
