// Package sim contains the border crossing simulation engine: the static
// topology, the vehicle and declaration generators, the per-lane two-stage
// checkpoint scheduler and the tick-driven clock that binds them together.
package sim

import "github.com/kaborder/crossingsim/types"

// Trader is a known economic operator appearing on generated declarations
type Trader struct {
	EORI    string
	Name    string
	AEO     types.AEOTier
	History float64
}

// Traders known to the customs system. History is the compliance history
// feature fed to the customs risk engine.
var Traders = []Trader{
	{EORI: "KA0001", Name: "Alpha Trade Corp", AEO: types.AEOF, History: 0.0},
	{EORI: "KA0002", Name: "Borderline Logistics", AEO: types.AEOS, History: 0.1},
	{EORI: "KA0003", Name: "Nistru Demo Cargo", AEO: types.AEONone, History: 0.4},
	{EORI: "KA0004", Name: "Delta Freight Union", AEO: types.AEOS, History: 0.2},
	{EORI: "KA0005", Name: "Echo Supplies Ltd", AEO: types.AEONone, History: 0.1},
	{EORI: "KA0006", Name: "Foxtrot Imports", AEO: types.AEOF, History: 0.05},
}

// HSRisk maps harmonized-system chapter codes to commodity risk in [0,1]
var HSRisk = map[string]float64{
	"2203": 0.2, // beverages
	"2402": 0.7, // tobacco
	"2710": 0.6, // fuels
	"3004": 0.4, // pharma
	"6403": 0.3, // footwear
	"8517": 0.5, // phones
	"8703": 0.2, // vehicles
	"0102": 0.1, // live animals
}

// OriginRisk maps jurisdiction codes to origin risk in [0,1]
var OriginRisk = map[string]float64{
	"KA": 0.3, "NB": 0.4, "ZT": 0.6, "XY": 0.2, "QR": 0.5,
}

// HS codes that can trip PNR intelligence hits and that are excise-liable
var (
	PNRSensitiveHSCodes = []string{"2402", "2710"}
	ExciseHSCodes       = []string{"2402", "2710"}
)

// GoodsTypes are the cargo categories carried by generated trucks
var GoodsTypes = []string{
	"General cargo",
	"Electronics",
	"Food products",
	"Textiles",
	"Pharmaceuticals",
	"Chemicals",
	"Agricultural goods",
	"Machinery Parts",
	"Construction Mat.",
}

// Vehicle subtype tables per class
var (
	TruckSubtypes = []string{
		"Tautliner",
		"Refrigerated (Reefer)",
		"Oil Tanker",
		"Livestock Carrier",
		"Flatbed",
		"Container Carrier",
		"Box Truck",
		"Dump Truck",
	}

	CarSubtypes = []string{
		"Sedan",
		"SUV",
		"Estate",
		"Hatchback",
		"Minivan",
		"Luxury Saloon",
	}

	BusSubtypes = []string{
		"Tour Coach",
		"Intercity Bus",
		"Minibus",
		"Shuttle",
	}
)

// PlatePrefixes are the registration prefixes of the home jurisdiction and
// its neighbors
var PlatePrefixes = []string{"KA", "NB", "ZT", "XY", "QR"}

// RoutingCountries are third jurisdictions beyond the immediate neighbors,
// used for transit routing
var RoutingCountries = []string{
	"Germany", "France", "Poland", "Turkey", "Ukraine", "Italy", "Austria", "Romania",
}

// Catalogues of alert message text raised during generation

var borderDocumentIssues = []string{
	"False Passport: MRZ Checksum Failure",
	"False Identity Card: UV Hologram missing",
	"Counterfeit Driving License detected",
	"Imposter detected: Facial biometrics mismatch",
	"Forged Visa / Residence Permit",
}

type customsIssue struct {
	title   string
	message string
}

var customsIssues = []customsIssue{
	{"Smuggling / Excise Goods", "Concealed Cigarettes (>50 cartons) found in chassis."},
	{"Smuggling / Excise Goods", "Undeclared Alcohol (>50L) found in luggage."},
	{"Cash Control", "Undeclared Cash > 10,000 EUR detected by K9 unit."},
	{"Commercial Fraud", "Undeclared commercial electronics (phones/laptops)."},
}
