package resource

import (
	"net/http"

	"github.com/kaborder/crossingsim/sim"
	"github.com/yarf-framework/yarf"
)

// Crossing composites resource
type Crossing struct {
	resource
}

// WithEngine associates a simulation engine with this resource
func (r *Crossing) WithEngine(engine *sim.Engine) *Crossing {
	r.engine = engine
	return r
}

// Get serves HTTP GET requests on this resource. Without an ID it lists the
// crossing points; with one it returns the full snapshot.
func (r *Crossing) Get(c *yarf.Context) error {
	if c.Param("id") == "" {
		RenderData(c, r.engine.CrossingPoints())
		return nil
	}

	snapshot, err := r.engine.Snapshot(c.Param("id"))
	if err != nil {
		return &yarf.CustomError{
			HTTPCode:  http.StatusNotFound,
			ErrorMsg:  "Crossing point not found",
			ErrorBody: err.Error(),
		}
	}
	RenderData(c, snapshot)
	return nil
}

// Post selects the crossing point driving the queue-depth series
func (r *Crossing) Post(c *yarf.Context) error {
	if err := r.engine.SelectCrossingPoint(c.Param("id")); err != nil {
		return &yarf.CustomError{
			HTTPCode:  http.StatusNotFound,
			ErrorMsg:  "Crossing point not found",
			ErrorBody: err.Error(),
		}
	}
	RenderData(c, struct {
		Selected string `msgpack:"selected" json:"selected"`
	}{r.engine.SelectedCrossingPoint()})
	return nil
}
