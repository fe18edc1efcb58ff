package data

// Range is a closed interval used for continuous uniform draws.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// IntRange is a closed interval used for integer uniform draws.
type IntRange struct {
	Min int
	Max int
}

func (r IntRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// Region is one administrative region eligible for synthetic placement.
// Coordinates are drawn from the rectangular box, not the true boundary.
type Region struct {
	Name       string
	LatMin     float64
	LatMax     float64
	LonMin     float64
	LonMax     float64
	SubRegions []string
}

// HasSubRegion reports whether name is one of the region's sub-regions.
func (r Region) HasSubRegion(name string) bool {
	for _, s := range r.SubRegions {
		if s == name {
			return true
		}
	}
	return false
}

// Technology is a mobile network generation with its relative selection
// weight and the ranges its metrics are drawn from.
type Technology struct {
	Name     string
	Weight   int
	Download Range    // Mbps
	Upload   Range    // Mbps
	Latency  Range    // ms
	Signal   IntRange // dBm
}

const defaultOperator = "Mobilis"

func defaultRegions() []Region {
	return []Region{
		{
			Name:       "Alger",
			LatMin:     36.6,
			LatMax:     36.8,
			LonMin:     2.9,
			LonMax:     3.2,
			SubRegions: []string{"Alger-Centre", "Bab Ezzouar", "Kouba", "Hydra"},
		},
		{
			Name:       "Oran",
			LatMin:     35.6,
			LatMax:     35.8,
			LonMin:     -0.7,
			LonMax:     -0.5,
			SubRegions: []string{"Oran", "Es Senia", "Bir El Djir"},
		},
		{
			Name:       "Constantine",
			LatMin:     36.2,
			LatMax:     36.4,
			LonMin:     6.5,
			LonMax:     6.7,
			SubRegions: []string{"Constantine", "El Khroub", "Hamma Bouziane"},
		},
		{
			Name:       "Ouargla",
			LatMin:     31.9,
			LatMax:     32.1,
			LonMin:     5.2,
			LonMax:     5.4,
			SubRegions: []string{"Ouargla", "Hassi Messaoud"},
		},
	}
}

// Weights are relative: 3G and 5G each get a fifth, 4G the rest.
func defaultTechnologies() []Technology {
	return []Technology{
		{
			Name:     "3G",
			Weight:   20,
			Download: Range{0.5, 15.0},
			Upload:   Range{0.1, 5.0},
			Latency:  Range{60, 200},
			Signal:   IntRange{-110, -80},
		},
		{
			Name:     "4G",
			Weight:   60,
			Download: Range{10.0, 100.0},
			Upload:   Range{5.0, 40.0},
			Latency:  Range{30, 80},
			Signal:   IntRange{-100, -70},
		},
		{
			Name:     "5G",
			Weight:   20,
			Download: Range{100.0, 800.0},
			Upload:   Range{40.0, 100.0},
			Latency:  Range{10, 30},
			Signal:   IntRange{-90, -60},
		},
	}
}

func defaultDevices() []string { return []string{"Android", "iOS"} }
