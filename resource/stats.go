package resource

import (
	"github.com/kaborder/crossingsim/sim"
	"github.com/yarf-framework/yarf"
)

// Stats composites resource
type Stats struct {
	resource
}

// WithEngine associates a simulation engine with this resource
func (r *Stats) WithEngine(engine *sim.Engine) *Stats {
	r.engine = engine
	return r
}

type apiStats struct {
	Selected string               `msgpack:"selected" json:"selected"`
	Network  []sim.PerformanceRow `msgpack:"network" json:"network"`
}

// Get serves HTTP GET requests on this resource
func (r *Stats) Get(c *yarf.Context) error {
	RenderData(c, apiStats{
		Selected: r.engine.SelectedCrossingPoint(),
		Network:  r.engine.NetworkPerformance(),
	})
	return nil
}
