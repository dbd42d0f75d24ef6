package types

// Direction indicates which way traffic flows through a lane
type Direction string

const (
	// DirectionEntry is traffic entering the home jurisdiction
	DirectionEntry Direction = "entry"
	// DirectionExit is traffic leaving the home jurisdiction
	DirectionExit Direction = "exit"
)

// VehicleClass is the class of vehicle a lane serves
type VehicleClass string

const (
	ClassCar   VehicleClass = "car"
	ClassBus   VehicleClass = "bus"
	ClassTruck VehicleClass = "truck"
)

// Stage is one of the two sequential service points a vehicle passes through
type Stage string

const (
	StageBorder  Stage = "border"
	StageCustoms Stage = "customs"
)

// Lane is a single-direction, single-class channel with its own two-stage
// server (border control booth followed by customs inspection booth).
// Configuration is immutable; IsOpen may be toggled at runtime and the
// scheduler refuses to admit new arrivals on closed lanes.
type Lane struct {
	ID              string       `msgpack:"id" json:"id"`
	CrossingPointID string       `msgpack:"crossingPoint" json:"crossingPoint"`
	Name            string       `msgpack:"name" json:"name"`
	Direction       Direction    `msgpack:"direction" json:"direction"`
	Class           VehicleClass `msgpack:"class" json:"class"`
	IsOpen          bool         `msgpack:"isOpen" json:"isOpen"`

	// Base service times in seconds for each stage, before the dynamic
	// risk/backlog multipliers are applied.
	BorderServiceTime  float64 `msgpack:"borderServiceTime" json:"borderServiceTime"`
	CustomsServiceTime float64 `msgpack:"customsServiceTime" json:"customsServiceTime"`
}
