package resource

import (
	"github.com/kaborder/crossingsim/sim"
	"github.com/yarf-framework/yarf"
)

// Meta composites resource
type Meta struct {
	resource
}

// apiMeta contains information about this API endpoint
type apiMeta struct {
	// Whether this API is still supported
	Supported bool `msgpack:"supported" json:"supported"`

	// Whether this endpoint is up
	Up bool `msgpack:"up" json:"up"`

	// The simulated clock resolution, in seconds
	TickSeconds float64 `msgpack:"tickSeconds" json:"tickSeconds"`
}

// WithEngine associates a simulation engine with this resource
func (r *Meta) WithEngine(engine *sim.Engine) *Meta {
	r.engine = engine
	return r
}

// Get serves HTTP GET requests on this resource
func (r *Meta) Get(c *yarf.Context) error {
	RenderData(c, apiMeta{
		Supported:   true,
		Up:          true,
		TickSeconds: sim.DefaultTickPeriod.Seconds(),
	})
	return nil
}
