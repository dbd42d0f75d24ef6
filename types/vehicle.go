package types

import (
	"time"
)

// VehicleStatus is a vehicle's position in the two-stage control pipeline.
// The lifecycle is strictly linear:
// waiting_border -> in_border -> waiting_customs -> in_customs -> cleared
type VehicleStatus string

const (
	StatusWaitingBorder  VehicleStatus = "waiting_border"
	StatusInBorder       VehicleStatus = "in_border"
	StatusWaitingCustoms VehicleStatus = "waiting_customs"
	StatusInCustoms      VehicleStatus = "in_customs"
	StatusCleared        VehicleStatus = "cleared"
)

// ScannerStatus is the state of the document scanner for a vehicle
type ScannerStatus string

const (
	ScannerReady    ScannerStatus = "Ready"
	ScannerScanning ScannerStatus = "Scanning"
	ScannerError    ScannerStatus = "Error"
)

// BiometricResult is the outcome of one biometric modality check
type BiometricResult string

const (
	BiometricVerified BiometricResult = "Verified"
	BiometricPending  BiometricResult = "Pending"
	BiometricFailed   BiometricResult = "Failed"
)

// BiometricDetail is the result and confidence score of a single modality
type BiometricDetail struct {
	Status     BiometricResult `msgpack:"status" json:"status"`
	Confidence int             `msgpack:"confidence" json:"confidence"`
}

// BiometricSet holds the three modality results checked at the border booth
type BiometricSet struct {
	Face         BiometricDetail `msgpack:"face" json:"face"`
	Iris         BiometricDetail `msgpack:"iris" json:"iris"`
	Fingerprints BiometricDetail `msgpack:"fingerprints" json:"fingerprints"`
}

// AnyFailed reports whether any modality failed to match
func (b BiometricSet) AnyFailed() bool {
	return b.Face.Status == BiometricFailed ||
		b.Iris.Status == BiometricFailed ||
		b.Fingerprints.Status == BiometricFailed
}

// Vehicle is the principal mobile entity moving through a crossing point.
// A vehicle never changes lane or crossing point after creation.
type Vehicle struct {
	ID              string       `msgpack:"id" json:"id"`
	CrossingPointID string       `msgpack:"crossingPoint" json:"crossingPoint"`
	LaneID          string       `msgpack:"lane" json:"lane"`
	Plate           string       `msgpack:"plate" json:"plate"`
	Class           VehicleClass `msgpack:"class" json:"class"`
	Subtype         string       `msgpack:"subtype" json:"subtype"`
	GoodsType       string       `msgpack:"goodsType" json:"goodsType"`
	Operator        string       `msgpack:"operator" json:"operator"`

	Origin      string `msgpack:"origin" json:"origin"`
	Destination string `msgpack:"destination" json:"destination"`

	// Risk features drawn at generation time
	WatchlistHit bool    `msgpack:"watchlistHit" json:"watchlistHit"`
	DocAnomaly   bool    `msgpack:"docAnomaly" json:"docAnomaly"`
	BioMismatch  bool    `msgpack:"bioMismatch" json:"bioMismatch"`
	RouteRisk    float64 `msgpack:"routeRisk" json:"routeRisk"`

	Risk      RiskBand `msgpack:"risk" json:"risk"`
	RiskScore float64  `msgpack:"riskScore" json:"riskScore"`

	Status      VehicleStatus `msgpack:"status" json:"status"`
	ArrivalTime time.Time     `msgpack:"arrivalTime" json:"arrivalTime"`

	// Stage occupancy timestamps. Zero means the stage has not started.
	// StartBorder is reset when the border stage completes; StartCustoms is
	// retained after clearance, as the retention window is keyed on it.
	StartBorder  time.Time `msgpack:"startBorder" json:"startBorder"`
	StartCustoms time.Time `msgpack:"startCustoms" json:"startCustoms"`

	// Assigned service durations in seconds, sampled once on admission to
	// each stage and fixed for that occupancy
	AssignedBorderDuration  float64 `msgpack:"assignedBorderDuration" json:"assignedBorderDuration"`
	AssignedCustomsDuration float64 `msgpack:"assignedCustomsDuration" json:"assignedCustomsDuration"`

	DocStatus  ScannerStatus `msgpack:"docStatus" json:"docStatus"`
	Biometrics BiometricSet  `msgpack:"biometrics" json:"biometrics"`
}

// Waiting reports whether the vehicle is queued for either stage
func (v *Vehicle) Waiting() bool {
	return v.Status == StatusWaitingBorder || v.Status == StatusWaitingCustoms
}

// InControl reports whether the vehicle currently occupies a stage server
func (v *Vehicle) InControl() bool {
	return v.Status == StatusInBorder || v.Status == StatusInCustoms
}

// WaitDuration returns how long the vehicle has been at the crossing point
func (v *Vehicle) WaitDuration(now time.Time) time.Duration {
	return now.Sub(v.ArrivalTime)
}
