package core

// detect.go implements the rule-based label behind the detection form. It is
// a demonstration heuristic, not a model: only four of the form fields
// influence the result.

// DetectionLabel is the outcome of a detection run.
type DetectionLabel string

const (
	LabelConfirmed     DetectionLabel = "CONFIRMED"
	LabelCandidate     DetectionLabel = "CANDIDATE"
	LabelRefuted       DetectionLabel = "REFUTED"
	LabelFalsePositive DetectionLabel = "FALSE POSITIVE"
)

// DetectionInput mirrors the detection form.
type DetectionInput struct {
	NumStars              int     `json:"num_stars" form:"num_stars"`
	NumPlanets            int     `json:"num_planets" form:"num_planets"`
	DiscFacility          string  `json:"disc_facility" form:"disc_facility"`
	OrbitalPeriod         float64 `json:"orbital_period" form:"orbital_period"`
	PlanetRadius          float64 `json:"planet_radius" form:"planet_radius"`
	StellarSpectralType   float64 `json:"st_spectype" form:"st_spectype"`
	StellarTemp           float64 `json:"stellar_temp" form:"stellar_temp"`
	StellarRadius         float64 `json:"stellar_radius" form:"stellar_radius"`
	StellarMass           float64 `json:"stellar_mass" form:"stellar_mass"`
	StellarSurfaceGravity float64 `json:"stellar_surface_gravity" form:"stellar_surface_gravity"`
	RightAscension        float64 `json:"right_ascension" form:"right_ascension"`
	Declination           float64 `json:"declination" form:"declination"`
	SystemDistance        float64 `json:"system_distance" form:"system_distance"`
	VMag                  float64 `json:"sy_vmag" form:"sy_vmag"`
	KMag                  float64 `json:"sy_kmag" form:"sy_kmag"`
}

// DefaultDetectionInput returns the values the form starts with.
func DefaultDetectionInput() DetectionInput {
	return DetectionInput{
		NumStars:              1,
		NumPlanets:            1,
		DiscFacility:          "K2",
		OrbitalPeriod:         10,
		PlanetRadius:          1,
		StellarSpectralType:   0,
		StellarTemp:           5000,
		StellarRadius:         1,
		StellarMass:           1,
		StellarSurfaceGravity: 4.5,
		RightAscension:        0,
		Declination:           0,
		SystemDistance:        100,
		VMag:                  10,
		KMag:                  9,
	}
}

// Detection is the result shown to the user.
type Detection struct {
	Label DetectionLabel `json:"label"`
	// Rule names the condition that produced the label.
	Rule  string         `json:"rule"`
	Input DetectionInput `json:"input"`
}

// Detect applies the rules in order; the first match wins.
func Detect(in DetectionInput) Detection {
	d := Detection{Label: LabelCandidate, Rule: "no rule matched", Input: in}

	switch {
	case in.OrbitalPeriod > 50 && in.PlanetRadius > 2 && in.StellarTemp > 4000:
		d.Label = LabelConfirmed
		d.Rule = "long period, large radius, warm host"
	case in.OrbitalPeriod < 1 || in.PlanetRadius < 0.5:
		d.Label = LabelRefuted
		d.Rule = "period under one day or radius under 0.5"
	case in.StellarTemp < 3000 || in.StellarRadius > 5:
		d.Label = LabelFalsePositive
		d.Rule = "cool or giant host star"
	}
	return d
}
