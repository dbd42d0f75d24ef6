package types

import (
	"regexp"
	"strings"
	"time"

	"github.com/thoas/go-funk"
)

// AEOTier is the authorized-economic-operator trust tier of a trader
type AEOTier string

const (
	AEONone AEOTier = "NONE"
	AEOS    AEOTier = "S"
	AEOF    AEOTier = "F"
)

// Level returns the numeric trust level used by the customs risk engine
// (0 = none, 1 = AEO-S, 2 = AEO-F)
func (t AEOTier) Level() int {
	switch t {
	case AEOS:
		return 1
	case AEOF:
		return 2
	default:
		return 0
	}
}

// Flow is the customs movement type of a declaration
type Flow string

const (
	FlowImport  Flow = "IMPORT"
	FlowExport  Flow = "EXPORT"
	FlowTransit Flow = "TRANSIT"
)

// Channel is the customs selectivity triage outcome controlling inspection
// intensity
type Channel string

const (
	ChannelGreen  Channel = "GREEN"
	ChannelYellow Channel = "YELLOW"
	ChannelRed    Channel = "RED"
)

// DeclarationStatus is the workflow state of a declaration. The simulation
// only produces SUBMITTED; the remaining states belong to downstream
// enforcement workflows.
type DeclarationStatus string

const (
	DeclarationSubmitted  DeclarationStatus = "SUBMITTED"
	DeclarationReleased   DeclarationStatus = "RELEASED"
	DeclarationInspection DeclarationStatus = "INSPECTION"
	DeclarationHeld       DeclarationStatus = "HELD"
	DeclarationSeized     DeclarationStatus = "SEIZED"
)

// Declaration is a customs declaration, optionally linked to a vehicle by
// identity or plate. The link is advisory: a declaration can precede or
// outlive its vehicle. Declarations are append-only and never mutated once
// created.
type Declaration struct {
	ID         string  `msgpack:"id" json:"id"`
	MRN        string  `msgpack:"mrn" json:"mrn"`
	TraderName string  `msgpack:"traderName" json:"traderName"`
	AEO        AEOTier `msgpack:"aeo" json:"aeo"`
	Flow       Flow    `msgpack:"flow" json:"flow"`
	HSCode     string  `msgpack:"hsCode" json:"hsCode"`
	GoodsDesc  string  `msgpack:"goodsDesc" json:"goodsDesc"`

	OriginCountry      string `msgpack:"originCountry" json:"originCountry"`
	DestinationCountry string `msgpack:"destinationCountry" json:"destinationCountry"`

	Value  float64 `msgpack:"value" json:"value"`
	Weight float64 `msgpack:"weight" json:"weight"` // kg
	Duties float64 `msgpack:"duties" json:"duties"`
	VAT    float64 `msgpack:"vat" json:"vat"`
	Excise float64 `msgpack:"excise" json:"excise"`

	RiskScore   float64  `msgpack:"riskScore" json:"riskScore"`
	RiskBand    RiskBand `msgpack:"riskBand" json:"riskBand"`
	RiskReasons []string `msgpack:"riskReasons" json:"riskReasons"`
	Channel     Channel  `msgpack:"channel" json:"channel"`

	Status          DeclarationStatus `msgpack:"status" json:"status"`
	LinkedVehicleID string            `msgpack:"linkedVehicle,omitempty" json:"linkedVehicle,omitempty"`
	VehiclePlate    string            `msgpack:"vehiclePlate,omitempty" json:"vehiclePlate,omitempty"`
	VehicleClass    VehicleClass      `msgpack:"vehicleClass,omitempty" json:"vehicleClass,omitempty"`
	SubmittedAt     time.Time         `msgpack:"submittedAt" json:"submittedAt"`
}

// DeclarationInput is the externally supplied payload of the manual
// declaration command. It is validated before anything is created.
type DeclarationInput struct {
	MRN                string  `msgpack:"mrn" json:"mrn"`
	TraderName         string  `msgpack:"traderName" json:"traderName"`
	AEO                AEOTier `msgpack:"aeo" json:"aeo"`
	Flow               Flow    `msgpack:"flow" json:"flow"`
	HSCode             string  `msgpack:"hsCode" json:"hsCode"`
	GoodsDesc          string  `msgpack:"goodsDesc" json:"goodsDesc"`
	OriginCountry      string  `msgpack:"originCountry" json:"originCountry"`
	DestinationCountry string  `msgpack:"destinationCountry" json:"destinationCountry"`
	Value              float64 `msgpack:"value" json:"value"`
	Weight             float64 `msgpack:"weight" json:"weight"`
	VehiclePlate       string  `msgpack:"vehiclePlate,omitempty" json:"vehiclePlate,omitempty"`
}

var (
	mrnPattern    = regexp.MustCompile(`^KA\d{6}$`)
	hsCodePattern = regexp.MustCompile(`^\d{4,10}$`)

	validFlows = []string{string(FlowImport), string(FlowExport), string(FlowTransit)}
	validAEO   = []string{string(AEONone), string(AEOS), string(AEOF)}
)

// ValidationError carries the per-field messages of a rejected
// DeclarationInput
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := []string{}
	for f := range e.Fields {
		fields = append(fields, f)
	}
	return "declaration validation failed on " + strings.Join(fields, ", ")
}

// Validate checks the input against the manual submission rules and returns
// a ValidationError with a field -> message map if anything is wrong
func (in *DeclarationInput) Validate() *ValidationError {
	errs := make(map[string]string)

	switch {
	case in.MRN == "":
		errs["mrn"] = "MRN is required"
	case !mrnPattern.MatchString(in.MRN):
		errs["mrn"] = "Format: KA + 6 digits"
	}

	if len(strings.TrimSpace(in.TraderName)) < 2 {
		errs["traderName"] = "Name too short (min 2)"
	}

	switch {
	case in.HSCode == "":
		errs["hsCode"] = "Required"
	case !hsCodePattern.MatchString(in.HSCode):
		errs["hsCode"] = "4-10 digits required"
	}

	if in.OriginCountry == "" {
		errs["originCountry"] = "Required"
	}
	if in.DestinationCountry == "" {
		errs["destinationCountry"] = "Required"
	}
	if len(in.GoodsDesc) < 3 {
		errs["goodsDesc"] = "Description required"
	}

	switch {
	case in.Value <= 0:
		errs["value"] = "Must be > 0"
	case in.Value > 100000000:
		errs["value"] = "Max limit 100M"
	}

	switch {
	case in.Weight <= 0:
		errs["weight"] = "Must be > 0"
	case in.Weight > 100000:
		errs["weight"] = "Max limit 100T"
	}

	if in.Flow != "" && !funk.ContainsString(validFlows, string(in.Flow)) {
		errs["flow"] = "Invalid Selection"
	}
	if in.AEO != "" && !funk.ContainsString(validAEO, string(in.AEO)) {
		errs["aeo"] = "Invalid Selection"
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// DeclarationFilter is the predicate contract of the declarations query.
// Substring matches are case-insensitive; empty fields match everything.
type DeclarationFilter struct {
	Trader      string
	Origin      string
	Destination string
	HSCode      string
	Goods       string

	Class    VehicleClass // empty matches all classes
	MinBand  RiskBand     // empty means no threshold
	RedOnly  bool
	SortRisk bool // sort result by descending risk score
}

// Matches evaluates the filter against a single declaration
func (f *DeclarationFilter) Matches(d *Declaration) bool {
	if f.Trader != "" && !containsFold(d.TraderName, f.Trader) {
		return false
	}
	if f.Origin != "" && !containsFold(d.OriginCountry, f.Origin) {
		return false
	}
	if f.Destination != "" && !containsFold(d.DestinationCountry, f.Destination) {
		return false
	}
	if f.HSCode != "" && !strings.Contains(d.HSCode, f.HSCode) {
		return false
	}
	if f.Goods != "" && !containsFold(d.GoodsDesc, f.Goods) {
		return false
	}
	if f.Class != "" && d.VehicleClass != f.Class {
		return false
	}
	if f.MinBand != "" && !d.RiskBand.AtLeast(f.MinBand) {
		return false
	}
	if f.RedOnly && d.Channel != ChannelRed {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
