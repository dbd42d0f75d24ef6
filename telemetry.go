package main

import (
	"time"

	statsd "gopkg.in/alexcesaro/statsd.v2"
)

// APIrequestTelemetry is a channel where something should be sent whenever an API
// request is served
var APIrequestTelemetry = make(chan interface{}, 10)

// StatsSender is meant to be called as a goroutine that handles sending telemetry
// to a statsd (or compatible) server
func StatsSender() {
	statsdAddress, present := secrets.Get("statsdAddress")
	statsdPrefix, present2 := secrets.Get("statsdPrefix")
	if !present || !present2 {
		return
	}

	c, err := statsd.New(statsd.Address(statsdAddress), statsd.Prefix(statsdPrefix))
	if err != nil {
		// If nothing is listening on the target port, an error is returned and
		// the returned client does nothing but is still usable. So we can
		// just log the error and go on.
		mainLog.Println(err)
	}
	defer c.Close()

	ticker := time.NewTicker(1 * time.Minute)

	for {
		select {
		case <-ticker.C:
			for _, row := range engine.NetworkPerformance() {
				c.Gauge("waiting_"+row.CrossingPoint.ID, row.Waiting)
				c.Gauge("active_"+row.CrossingPoint.ID, row.Active)
				c.Gauge("cleared_"+row.CrossingPoint.ID, row.Cleared)
				c.Gauge("high_risk_"+row.CrossingPoint.ID, row.HighRisk)
				c.Gauge("avg_clear_seconds_"+row.CrossingPoint.ID,
					clearanceStats.AverageClearSeconds(row.CrossingPoint.ID))
			}
		case <-APIrequestTelemetry:
			c.Increment("apicalls")
		}
	}
}
