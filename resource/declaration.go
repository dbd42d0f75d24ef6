package resource

import (
	"errors"
	"net/http"

	"github.com/kaborder/crossingsim/sim"
	"github.com/kaborder/crossingsim/types"
	"github.com/yarf-framework/yarf"
)

// Declaration composites resource
type Declaration struct {
	resource
}

// WithEngine associates a simulation engine with this resource
func (r *Declaration) WithEngine(engine *sim.Engine) *Declaration {
	r.engine = engine
	return r
}

// Get serves HTTP GET requests on this resource, applying the query string
// as a declaration filter
func (r *Declaration) Get(c *yarf.Context) error {
	q := c.Request.URL.Query()
	filter := &types.DeclarationFilter{
		Trader:      q.Get("trader"),
		Origin:      q.Get("origin"),
		Destination: q.Get("destination"),
		HSCode:      q.Get("hsCode"),
		Goods:       q.Get("goods"),
		Class:       types.VehicleClass(q.Get("class")),
		MinBand:     types.RiskBand(q.Get("minBand")),
		RedOnly:     q.Get("redOnly") == "true",
		SortRisk:    q.Get("sortRisk") == "true",
	}
	RenderData(c, r.engine.Declarations(filter))
	return nil
}

type validationFailure struct {
	Message string            `msgpack:"message" json:"message"`
	Fields  map[string]string `msgpack:"fields" json:"fields"`
}

// Post lodges a manual declaration. Invalid input yields a 400 with the
// per-field messages.
func (r *Declaration) Post(c *yarf.Context) error {
	var input types.DeclarationInput
	if err := r.DecodeRequest(c, &input); err != nil {
		return err
	}

	decl, err := r.engine.SubmitDeclaration(input)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			c.Response.WriteHeader(http.StatusBadRequest)
			RenderData(c, validationFailure{
				Message: "Declaration rejected",
				Fields:  verr.Fields,
			})
			return nil
		}
		return err
	}

	c.Response.WriteHeader(http.StatusCreated)
	RenderData(c, decl)
	return nil
}
