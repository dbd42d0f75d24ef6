package main

import (
	"log"
	"os"
	"time"

	"github.com/gbl08ma/keybox"

	"github.com/kaborder/crossingsim/compute"
	"github.com/kaborder/crossingsim/report"
	"github.com/kaborder/crossingsim/sim"
)

var (
	secrets *keybox.Keybox
	mainLog = log.New(os.Stdout, "", log.Ldate|log.Ltime)
	simLog  = log.New(os.Stdout, "sim ", log.Ldate|log.Ltime)
	webLog  = log.New(os.Stdout, "web ", log.Ldate|log.Ltime)

	engine          *sim.Engine
	clearanceStats  *compute.ClearanceStats
	reportGenerator *report.Generator

	// GitCommit is provided by govvv at compile-time
	GitCommit = "???"
	// BuildDate is provided by govvv at compile-time
	BuildDate = "???"
)

func main() {
	var err error
	mainLog.Println("Server starting, opening keybox...")
	secrets, err = keybox.Open(SecretsPath)
	if err != nil {
		mainLog.Fatalln(err)
	}
	mainLog.Println("Keybox opened")

	geminiKey, present := secrets.Get("geminiAPIKey")
	if !present {
		mainLog.Println("Gemini API key not present in keybox, reports will be degraded")
	}
	reportGenerator = report.NewGenerator(geminiKey, mainLog)

	clearanceStats = compute.NewClearanceStats()
	engine, err = sim.New(sim.Config{
		Log:            simLog,
		CrossingPoints: sim.DefaultCrossingPoints(),
		Lanes:          sim.DefaultLanes(),
		Clearances:     clearanceStats,
	})
	if err != nil {
		mainLog.Fatalln(err)
	}

	engine.Begin(sim.DefaultTickPeriod)
	defer engine.End()

	go StatsSender()
	go APIserver()

	for {
		if DEBUG {
			printNetworkSummary()
		}
		time.Sleep(1 * time.Minute)
	}
}

func printNetworkSummary() {
	for _, row := range engine.NetworkPerformance() {
		mainLog.Printf("%s: %d waiting, %d active, %d cleared (%d high risk), avg wait %.0fs",
			row.CrossingPoint.ID, row.Waiting, row.Active, row.Cleared, row.HighRisk, row.AvgWaitSeconds)
	}
}
