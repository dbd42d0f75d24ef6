package resource

import (
	"github.com/kaborder/crossingsim/sim"
	"github.com/yarf-framework/yarf"
)

// Alert composites resource
type Alert struct {
	resource
}

// WithEngine associates a simulation engine with this resource
func (r *Alert) WithEngine(engine *sim.Engine) *Alert {
	r.engine = engine
	return r
}

// Get serves HTTP GET requests on this resource, newest alerts first
func (r *Alert) Get(c *yarf.Context) error {
	RenderData(c, r.engine.Alerts())
	return nil
}
