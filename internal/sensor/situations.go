package sensor

// Situation is an expected concentration range around a litter box.
type Situation struct {
	Label string
	Low   float64
	High  float64
}

// Situations lists typical ranges from worst to cleanest.
var Situations = []Situation{
	{"Multi-cat / poor ventilation", 50, 120},
	{"Several days uncleaned", 15, 55},
	{"24 h after use (one cat)", 10, 15},
	{"Right after urination (open box)", 5, 9},
	{"Air around the box", 3, 4},
	{"Clean litter (baseline)", 0, 2},
}

// DetectionTarget is the band the urination trigger is tuned for.
var DetectionTarget = Situation{"Urination detection target", 5, 15}
