package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/thoas/go-funk"

	"github.com/kaborder/crossingsim/risk"
	"github.com/kaborder/crossingsim/types"
)

// Arrival and feature probabilities of the generators
const (
	maxRouteRisk             = 0.7
	watchlistProbHighRoute   = 0.10
	watchlistProbLowRoute    = 0.03
	docAnomalyProb           = 0.08
	goodsFlagProb            = 0.15
	bioFailProbHighRoute     = 0.15
	bioFailProbLowRoute      = 0.02
	bioPendingProb           = 0.05
	scannerDegradedProb      = 0.2
	transitSubstitutionProb  = 0.3
	pnrHitProb               = 0.2
	declDocMismatchProb      = 0.1
	declWatchlistProb        = 0.05
	maxUndervaluationPct     = 60.0
	declarationValueMin      = 2000.0
	declarationValueMax      = 80000.0
	declarationWeightMinKg   = 1000
	declarationWeightMaxKg   = 24000
	dutyBaseRate             = 0.03
	dutyHSRiskRate           = 0.07
	vatRate                  = 0.19
	exciseRate               = 0.12
	defaultHSRisk            = 0.2
	defaultOriginRisk        = 0.3
	manualDeclarationHistory = 0.1
)

// stable key orders so a seeded generator run is reproducible
var (
	hsCodes     = sortedKeys(HSRisk)
	originCodes = sortedKeys(OriginRisk)
)

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func randomItem[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

const plateLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomPlate(rng *rand.Rand) string {
	prefix := randomItem(rng, PlatePrefixes)
	mid := rng.Intn(90) + 10
	suffix := string(plateLetters[rng.Intn(len(plateLetters))]) +
		string(plateLetters[rng.Intn(len(plateLetters))])
	return fmt.Sprintf("%s-%d-%s", prefix, mid, suffix)
}

func generateBiometricDetail(rng *rand.Rand, failProb float64) types.BiometricDetail {
	r := rng.Float64()
	if r < failProb {
		return types.BiometricDetail{Status: types.BiometricFailed, Confidence: rng.Intn(30) + 10}
	}
	if r < failProb+bioPendingProb {
		return types.BiometricDetail{Status: types.BiometricPending, Confidence: 0}
	}
	return types.BiometricDetail{Status: types.BiometricVerified, Confidence: rng.Intn(15) + 85}
}

// GenerateVehicle produces a new vehicle arriving on the given lane. The
// route risk is drawn first; risky routes raise the probability of
// watchlist hits and biometric failures.
func GenerateVehicle(rng *rand.Rand, lane *types.Lane, cp *types.CrossingPoint, now time.Time) *types.Vehicle {
	routeRisk := round2(rng.Float64() * maxRouteRisk)

	watchlistProb := watchlistProbLowRoute
	bioFailProb := bioFailProbLowRoute
	if routeRisk > 0.5 {
		watchlistProb = watchlistProbHighRoute
		bioFailProb = bioFailProbHighRoute
	}

	watchlistHit := rng.Float64() < watchlistProb
	docAnomaly := rng.Float64() < docAnomalyProb
	goodsFlag := lane.Class == types.ClassTruck && rng.Float64() < goodsFlagProb

	bio := types.BiometricSet{
		Face:         generateBiometricDetail(rng, bioFailProb),
		Iris:         generateBiometricDetail(rng, bioFailProb),
		Fingerprints: generateBiometricDetail(rng, bioFailProb),
	}
	bioMismatch := bio.AnyFailed()

	score, band := risk.BorderScore(risk.BorderFeatures{
		WatchlistHit: watchlistHit,
		DocAnomaly:   docAnomaly,
		BioMismatch:  bioMismatch,
		RouteRisk:    routeRisk,
		GoodsFlag:    goodsFlag,
	}, rng)

	subtype := "Car"
	operator := "Private"
	goodsType := "Personal Effects"
	switch lane.Class {
	case types.ClassTruck:
		subtype = randomItem(rng, TruckSubtypes)
		operator = randomItem(rng, Traders).Name
		goodsType = randomItem(rng, GoodsTypes)
	case types.ClassBus:
		subtype = randomItem(rng, BusSubtypes)
		goodsType = "Passengers & Luggage"
	default:
		subtype = randomItem(rng, CarSubtypes)
	}

	// Entry lanes come from the neighbor towards home; exit lanes the
	// reverse. The outward leg occasionally routes through a third
	// transit jurisdiction instead.
	isEntry := lane.Direction == types.DirectionEntry
	origin, destination := cp.CountryB, cp.CountryA
	if !isEntry {
		origin, destination = cp.CountryA, cp.CountryB
	}
	if rng.Float64() < transitSubstitutionProb {
		transit := randomItem(rng, RoutingCountries)
		if isEntry {
			origin = transit
		} else {
			destination = transit
		}
	}

	docStatus := types.ScannerReady
	if rng.Float64() < scannerDegradedProb {
		docStatus = randomItem(rng, []types.ScannerStatus{
			types.ScannerReady, types.ScannerScanning, types.ScannerError,
		})
	}

	return &types.Vehicle{
		ID:              types.NewVehicleID(),
		CrossingPointID: cp.ID,
		LaneID:          lane.ID,
		Plate:           randomPlate(rng),
		Class:           lane.Class,
		Subtype:         subtype,
		GoodsType:       goodsType,
		Operator:        operator,
		Origin:          origin,
		Destination:     destination,
		WatchlistHit:    watchlistHit,
		DocAnomaly:      docAnomaly,
		BioMismatch:     bioMismatch,
		RouteRisk:       routeRisk,
		Risk:            band,
		RiskScore:       score,
		Status:          types.StatusWaitingBorder,
		ArrivalTime:     now,
		DocStatus:       docStatus,
		Biometrics:      bio,
	}
}

// GenerateDeclaration produces a declaration, optionally linked to a
// vehicle. Truck-linked declarations use the vehicle's operating trader so
// the AEO tier and compliance history match the company on the vehicle.
func GenerateDeclaration(rng *rand.Rand, linked *types.Vehicle, now time.Time) *types.Declaration {
	trader := randomItem(rng, Traders)
	if linked != nil && linked.Class == types.ClassTruck {
		for _, t := range Traders {
			if t.Name == linked.Operator {
				trader = t
				break
			}
		}
	}

	hsCode := randomItem(rng, hsCodes)
	value := round2(rng.Float64()*(declarationValueMax-declarationValueMin) + declarationValueMin)
	weight := float64(rng.Intn(declarationWeightMaxKg-declarationWeightMinKg) + declarationWeightMinKg)

	origin := randomItem(rng, originCodes)
	destination := randomItem(rng, RoutingCountries)
	if linked != nil {
		origin = linked.Origin
		destination = linked.Destination
	}

	hsRisk := HSRisk[hsCode]
	originRisk, known := OriginRisk[origin]
	if !known {
		originRisk = defaultOriginRisk
	}

	result := risk.CustomsScore(risk.CustomsFeatures{
		AEO:         trader.AEO.Level(),
		HSRisk:      hsRisk,
		OriginRisk:  originRisk,
		UndervalPct: rng.Float64() * maxUndervaluationPct,
		PNRHit:      funk.ContainsString(PNRSensitiveHSCodes, hsCode) && rng.Float64() < pnrHitProb,
		DocMismatch: rng.Float64() < declDocMismatchProb,
		Watchlist:   rng.Float64() < declWatchlistProb,
		History:     trader.History,
	})

	duties := round2(value * (dutyBaseRate + dutyHSRiskRate*hsRisk))
	vat := round2((value + duties) * vatRate)
	excise := 0.0
	if funk.ContainsString(ExciseHSCodes, hsCode) {
		excise = round2(value * exciseRate)
	}

	class := types.VehicleClass("")
	if linked != nil {
		class = linked.Class
	} else {
		// unlinked declarations are mostly commercial truck movements
		class = randomItem(rng, []types.VehicleClass{
			types.ClassTruck, types.ClassTruck, types.ClassTruck,
			types.ClassCar, types.ClassBus,
		})
	}

	traderName := trader.Name
	if linked != nil && (linked.Class == types.ClassCar || linked.Class == types.ClassBus) {
		traderName = "Individual / Private"
	}

	goodsDesc := fmt.Sprintf("%s (HS %s)", randomItem(rng, GoodsTypes), hsCode)
	if linked != nil {
		goodsDesc = linked.GoodsType
	}

	decl := &types.Declaration{
		ID:                 types.NewDeclarationID(),
		MRN:                fmt.Sprintf("KA%d", rng.Intn(899999)+100000),
		TraderName:         traderName,
		AEO:                trader.AEO,
		Flow:               randomItem(rng, []types.Flow{types.FlowImport, types.FlowExport, types.FlowTransit}),
		HSCode:             hsCode,
		GoodsDesc:          goodsDesc,
		OriginCountry:      origin,
		DestinationCountry: destination,
		Value:              value,
		Weight:             weight,
		Duties:             duties,
		VAT:                vat,
		Excise:             excise,
		RiskScore:          result.Score,
		RiskBand:           result.Band,
		RiskReasons:        result.Reasons,
		Channel:            result.Channel,
		Status:             types.DeclarationSubmitted,
		VehicleClass:       class,
		SubmittedAt:        now,
	}
	if linked != nil {
		decl.LinkedVehicleID = linked.ID
		decl.VehiclePlate = linked.Plate
	}
	return decl
}
