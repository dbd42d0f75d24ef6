package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thoas/go-funk"

	"github.com/kaborder/crossingsim/types"
)

func testLane(class types.VehicleClass, direction types.Direction) *types.Lane {
	return &types.Lane{
		ID:                 "BCP_VERMILLION_entry_1",
		CrossingPointID:    "BCP_VERMILLION",
		Direction:          direction,
		Class:              class,
		IsOpen:             true,
		BorderServiceTime:  borderBaseSeconds[class],
		CustomsServiceTime: customsBaseSeconds[class],
	}
}

func testCP() *types.CrossingPoint {
	return &types.CrossingPoint{
		ID: "BCP_VERMILLION", Name: "Port of Vermillion (North)",
		CountryA: "Republic of KA", CountryB: "State NB",
	}
}

func TestGenerateVehicleFields(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		v := GenerateVehicle(rng, testLane(types.ClassTruck, types.DirectionEntry), testCP(), now)

		assert.Equal(t, types.StatusWaitingBorder, v.Status)
		assert.Equal(t, now, v.ArrivalTime)
		assert.Equal(t, types.ClassTruck, v.Class)
		assert.GreaterOrEqual(t, v.RouteRisk, 0.0)
		assert.LessOrEqual(t, v.RouteRisk, 0.7)
		assert.GreaterOrEqual(t, v.RiskScore, 0.0)
		assert.LessOrEqual(t, v.RiskScore, 100.0)
		assert.Equal(t, types.BandForScore(v.RiskScore), v.Risk)
		assert.True(t, v.StartBorder.IsZero())
		assert.True(t, v.StartCustoms.IsZero())
		assert.Contains(t, TruckSubtypes, v.Subtype)
		assert.Equal(t, v.BioMismatch, v.Biometrics.AnyFailed())
	}
}

func TestGenerateVehicleRouting(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	now := time.Now()
	cp := testCP()

	sawTransit := false
	for i := 0; i < 200; i++ {
		v := GenerateVehicle(rng, testLane(types.ClassCar, types.DirectionEntry), cp, now)
		// entry traffic always heads to the home jurisdiction
		assert.Equal(t, cp.CountryA, v.Destination)
		if v.Origin != cp.CountryB {
			assert.Contains(t, RoutingCountries, v.Origin)
			sawTransit = true
		}
	}
	assert.True(t, sawTransit)

	for i := 0; i < 200; i++ {
		v := GenerateVehicle(rng, testLane(types.ClassCar, types.DirectionExit), cp, now)
		assert.Equal(t, cp.CountryA, v.Origin)
		if v.Destination != cp.CountryB {
			assert.Contains(t, RoutingCountries, v.Destination)
		}
	}
}

func TestGenerateVehicleGoodsFlagOnlyTrucks(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	now := time.Now()
	for i := 0; i < 300; i++ {
		v := GenerateVehicle(rng, testLane(types.ClassCar, types.DirectionEntry), testCP(), now)
		assert.Equal(t, "Personal Effects", v.GoodsType)
		assert.Equal(t, "Private", v.Operator)
	}
}

func TestGenerateDeclarationFiscal(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	now := time.Now()

	for i := 0; i < 500; i++ {
		d := GenerateDeclaration(rng, nil, now)

		require.Regexp(t, `^KA\d{6}$`, d.MRN)
		assert.GreaterOrEqual(t, d.Value, 2000.0)
		assert.Less(t, d.Value, 80000.0)
		assert.GreaterOrEqual(t, d.Weight, 1000.0)
		assert.Less(t, d.Weight, 24000.0)

		hsRisk := HSRisk[d.HSCode]
		assert.InDelta(t, round2(d.Value*(0.03+0.07*hsRisk)), d.Duties, 1e-9)
		assert.InDelta(t, round2((d.Value+d.Duties)*0.19), d.VAT, 1e-9)

		if funk.ContainsString(ExciseHSCodes, d.HSCode) {
			assert.InDelta(t, round2(d.Value*0.12), d.Excise, 1e-9)
		} else {
			assert.Zero(t, d.Excise)
		}

		assert.Equal(t, types.DeclarationSubmitted, d.Status)
		assert.Empty(t, d.LinkedVehicleID)
	}
}

func TestGenerateDeclarationPNROnlySensitiveCodes(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	now := time.Now()
	for i := 0; i < 500; i++ {
		d := GenerateDeclaration(rng, nil, now)
		if funk.ContainsString(d.RiskReasons, "PNR Intelligence Hit") {
			assert.Contains(t, PNRSensitiveHSCodes, d.HSCode)
		}
	}
}

func TestGenerateDeclarationLinkedTruckUsesOperator(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	now := time.Now()

	for i := 0; i < 100; i++ {
		v := GenerateVehicle(rng, testLane(types.ClassTruck, types.DirectionEntry), testCP(), now)
		d := GenerateDeclaration(rng, v, now)

		assert.Equal(t, v.ID, d.LinkedVehicleID)
		assert.Equal(t, v.Plate, d.VehiclePlate)
		assert.Equal(t, v.Operator, d.TraderName)
		assert.Equal(t, v.Origin, d.OriginCountry)
		assert.Equal(t, v.Destination, d.DestinationCountry)
		assert.Equal(t, v.GoodsType, d.GoodsDesc)
		assert.Equal(t, types.ClassTruck, d.VehicleClass)

		// the AEO tier on the declaration must match the operating trader
		for _, trader := range Traders {
			if trader.Name == v.Operator {
				assert.Equal(t, trader.AEO, d.AEO)
			}
		}
	}
}

func TestGenerateDeclarationLinkedPersonalIsAnonymous(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	now := time.Now()
	for i := 0; i < 100; i++ {
		v := GenerateVehicle(rng, testLane(types.ClassCar, types.DirectionEntry), testCP(), now)
		d := GenerateDeclaration(rng, v, now)
		assert.Equal(t, "Individual / Private", d.TraderName)
		assert.Equal(t, types.ClassCar, d.VehicleClass)
	}
}

func TestDefaultTopology(t *testing.T) {
	cps := DefaultCrossingPoints()
	lanes := DefaultLanes()
	assert.Len(t, cps, 6)

	cpIDs := map[string]bool{}
	for _, cp := range cps {
		cpIDs[cp.ID] = true
	}
	for _, lane := range lanes {
		assert.True(t, cpIDs[lane.CrossingPointID], "lane %s references unknown crossing point", lane.ID)
		assert.True(t, lane.IsOpen)
		assert.Greater(t, lane.BorderServiceTime, 0.0)
		assert.Greater(t, lane.CustomsServiceTime, 0.0)
	}
}
