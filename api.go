package main

import (
	"github.com/kaborder/crossingsim/resource"
	"github.com/yarf-framework/yarf"
)

func APIserver() {
	y := yarf.New()

	v1 := yarf.RouteGroup("/v1")

	v1.Add("/crossings", new(resource.Crossing).WithEngine(engine))
	v1.Add("/crossings/:id", new(resource.Crossing).WithEngine(engine))

	v1.Add("/lanes", new(resource.Lane).WithEngine(engine))
	v1.Add("/lanes/:id", new(resource.Lane).WithEngine(engine))

	v1.Add("/declarations", new(resource.Declaration).WithEngine(engine))

	v1.Add("/alerts", new(resource.Alert).WithEngine(engine))

	v1.Add("/stats", new(resource.Stats).WithEngine(engine))

	v1.Add("/report/:id", new(resource.Report).
		WithEngine(engine).
		WithGenerator(reportGenerator))

	v1.Add("/meta", new(resource.Meta).WithEngine(engine))

	y.AddGroup(v1)

	resource.RegisterTelemetryChannel(APIrequestTelemetry)

	y.Logger = webLog
	y.Start(":12000")
}
