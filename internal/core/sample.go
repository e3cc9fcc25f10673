package core

// sampleRecords is the built-in data set shown when neither the live source
// nor a stored snapshot can be loaded. Distances are in parsecs and radius
// and mass in Earth units, like the archive columns.
var sampleRecords = []Record{
	{
		Name: "Kepler-452 b", HostStar: "Kepler-452", DiscoveryMethod: "Transit", DiscoveryYear: 2015,
		OrbitalPeriodDays: 384.8, RadiusEarth: 1.6, MassEarth: 5.0, StellarTempK: 5757, Distance: 551.7,
	},
	{
		Name: "Proxima Cen b", HostStar: "Proxima Cen", DiscoveryMethod: "Radial Velocity", DiscoveryYear: 2016,
		OrbitalPeriodDays: 11.2, RadiusEarth: 1.1, MassEarth: 1.27, StellarTempK: 3050, Distance: 1.3,
	},
	{
		Name: "TRAPPIST-1 e", HostStar: "TRAPPIST-1", DiscoveryMethod: "Transit", DiscoveryYear: 2017,
		OrbitalPeriodDays: 6.1, RadiusEarth: 0.92, MassEarth: 0.69, StellarTempK: 2566, Distance: 12.4,
	},
	{
		Name: "HD 209458 b", HostStar: "HD 209458", DiscoveryMethod: "Radial Velocity", DiscoveryYear: 1999,
		OrbitalPeriodDays: 3.5, RadiusEarth: 15.1, MassEarth: 219, StellarTempK: 6065, Distance: 48.3,
	},
}

// SampleRecords returns a fresh copy of the built-in fallback records.
func SampleRecords() []Record {
	out := make([]Record, len(sampleRecords))
	for i, r := range sampleRecords {
		r.Disposition = DispositionConfirmed
		r.PlanetType = Classify(r.RadiusEarth, r.MassEarth)
		r.Known = Presence{
			DiscoveryYear: true,
			OrbitalPeriod: true,
			Radius:        true,
			Mass:          true,
			StellarTemp:   true,
			Distance:      true,
		}
		out[i] = r
	}
	return out
}
