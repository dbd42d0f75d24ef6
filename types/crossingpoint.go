package types

// CrossingPoint is a border crossing facility grouping multiple lanes.
// CountryA is the home jurisdiction, CountryB the adjoining one.
// CrossingPoints are immutable after topology load.
type CrossingPoint struct {
	ID       string `msgpack:"id" json:"id"`
	Name     string `msgpack:"name" json:"name"`
	CountryA string `msgpack:"countryA" json:"countryA"`
	CountryB string `msgpack:"countryB" json:"countryB"`
}
