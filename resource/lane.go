package resource

import (
	"net/http"

	"github.com/kaborder/crossingsim/sim"
	"github.com/yarf-framework/yarf"
)

// Lane composites resource
type Lane struct {
	resource
}

// WithEngine associates a simulation engine with this resource
func (r *Lane) WithEngine(engine *sim.Engine) *Lane {
	r.engine = engine
	return r
}

// Get serves HTTP GET requests on this resource
func (r *Lane) Get(c *yarf.Context) error {
	lanes := r.engine.Lanes()
	if cpID := c.Request.URL.Query().Get("crossingPoint"); cpID != "" {
		filtered := lanes[:0]
		for _, lane := range lanes {
			if lane.CrossingPointID == cpID {
				filtered = append(filtered, lane)
			}
		}
		lanes = filtered
	}
	RenderData(c, lanes)
	return nil
}

type laneUpdate struct {
	IsOpen bool `msgpack:"isOpen" json:"isOpen"`
}

// Put opens or closes the lane given by the id parameter
func (r *Lane) Put(c *yarf.Context) error {
	var update laneUpdate
	if err := r.DecodeRequest(c, &update); err != nil {
		return err
	}

	if err := r.engine.SetLaneOpen(c.Param("id"), update.IsOpen); err != nil {
		return &yarf.CustomError{
			HTTPCode:  http.StatusNotFound,
			ErrorMsg:  "Lane not found",
			ErrorBody: err.Error(),
		}
	}

	for _, lane := range r.engine.Lanes() {
		if lane.ID == c.Param("id") {
			RenderData(c, lane)
			return nil
		}
	}
	return nil
}
