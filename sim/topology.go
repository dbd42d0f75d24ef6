package sim

import (
	"fmt"

	"github.com/kaborder/crossingsim/types"
)

// Base service times in seconds per vehicle class and stage
var (
	borderBaseSeconds = map[types.VehicleClass]float64{
		types.ClassCar:   15,
		types.ClassBus:   40,
		types.ClassTruck: 25,
	}
	customsBaseSeconds = map[types.VehicleClass]float64{
		types.ClassCar:   10,
		types.ClassBus:   30,
		types.ClassTruck: 60,
	}
)

// DefaultCrossingPoints returns the crossing points of the reference
// topology
func DefaultCrossingPoints() []*types.CrossingPoint {
	return []*types.CrossingPoint{
		{ID: "BCP_VERMILLION", Name: "Port of Vermillion (North)", CountryA: "Republic of KA", CountryB: "State NB"},
		{ID: "BCP_INDIGO", Name: "Indigo Pass (East)", CountryA: "Republic of KA", CountryB: "State ZT"},
		{ID: "BCP_CRIMSON", Name: "Crimson Bridge (South)", CountryA: "Republic of KA", CountryB: "State XY"},
		{ID: "BCP_AZURE", Name: "Azure Terminal (West)", CountryA: "Republic of KA", CountryB: "State QR"},
		{ID: "BCP_GOLDEN", Name: "Golden Gate (North-East)", CountryA: "Republic of KA", CountryB: "State NB"},
		{ID: "BCP_SILVER", Name: "Silver Line Crossing (South-West)", CountryA: "Republic of KA", CountryB: "State XY"},
	}
}

// DefaultLanes returns the lane configuration of the reference topology:
// a symmetrical entry/exit layout per crossing point, with vehicle classes
// distributed across lane indices.
func DefaultLanes() []*types.Lane {
	lanes := []*types.Lane{}

	addLanes := func(cpID string, entryCount, exitCount int, namePrefix string) {
		makeLane := func(i int, direction types.Direction) *types.Lane {
			class := types.ClassCar
			switch i % 4 {
			case 1:
				class = types.ClassTruck
			case 3:
				class = types.ClassBus
			}

			dirTag := "EN"
			if direction == types.DirectionExit {
				dirTag = "EX"
			}

			return &types.Lane{
				ID:                 fmt.Sprintf("%s_%s_%d", cpID, direction, i),
				CrossingPointID:    cpID,
				Name:               fmt.Sprintf("%s-%s%d", namePrefix, dirTag, i+1),
				Direction:          direction,
				Class:              class,
				IsOpen:             true,
				BorderServiceTime:  borderBaseSeconds[class],
				CustomsServiceTime: customsBaseSeconds[class],
			}
		}

		for i := 0; i < entryCount; i++ {
			lanes = append(lanes, makeLane(i, types.DirectionEntry))
		}
		for i := 0; i < exitCount; i++ {
			lanes = append(lanes, makeLane(i, types.DirectionExit))
		}
	}

	addLanes("BCP_VERMILLION", 4, 4, "VER")
	addLanes("BCP_INDIGO", 3, 3, "IND")
	addLanes("BCP_CRIMSON", 5, 5, "CRI")
	addLanes("BCP_AZURE", 3, 3, "AZU")
	addLanes("BCP_GOLDEN", 2, 2, "GLD")
	addLanes("BCP_SILVER", 4, 4, "SIL")

	return lanes
}
