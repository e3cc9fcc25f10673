package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/exoarchive/internal/core"
)

func newClassifyCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <radius> <mass>",
		Short: "Classify a planet from its radius and mass",
		Long: `Classify applies the archive's planet type thresholds to a radius in Earth
radii and a mass in Earth masses.`,
		Example: `  exoctl classify 1.2 3.5`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			radius, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return &core.ParamError{Name: "radius", Value: args[0]}
			}
			mass, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return &core.ParamError{Name: "mass", Value: args[1]}
			}

			pt := core.Classify(radius, mass)
			if rt.format == FormatTable {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), pt)
				return nil
			}
			return renderKeyValues(cmd.OutOrStdout(), rt.format, [][2]string{
				{"radius", args[0]},
				{"mass", args[1]},
				{"planet_type", string(pt)},
			}, map[string]any{"radius": radius, "mass": mass, "planet_type": pt})
		},
	}
}

func newDetectCommand(rt *runtime) *cobra.Command {
	in := core.DefaultDetectionInput()

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Run the detection rules on a candidate",
		Long: `Detect labels a candidate CONFIRMED, CANDIDATE, REFUTED or FALSE POSITIVE
from its observed parameters. Unset flags keep the web form's defaults.
Only the orbital period, planet radius, stellar temperature and stellar
radius influence the label.`,
		Example: `  exoctl detect --orbital-period 120 --planet-radius 3 --stellar-temp 5500`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := core.Detect(in)
			if rt.format == FormatTable {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", d.Label, d.Rule)
				return nil
			}
			return renderKeyValues(cmd.OutOrStdout(), rt.format, [][2]string{
				{"label", string(d.Label)},
				{"rule", d.Rule},
			}, d)
		},
	}

	f := cmd.Flags()
	f.IntVar(&in.NumStars, "num-stars", in.NumStars, "Number of stars in the system")
	f.IntVar(&in.NumPlanets, "num-planets", in.NumPlanets, "Number of planets in the system")
	f.StringVar(&in.DiscFacility, "disc-facility", in.DiscFacility, "Discovery facility")
	f.Float64Var(&in.OrbitalPeriod, "orbital-period", in.OrbitalPeriod, "Orbital period in days")
	f.Float64Var(&in.PlanetRadius, "planet-radius", in.PlanetRadius, "Planet radius in Earth radii")
	f.Float64Var(&in.StellarSpectralType, "st-spectype", in.StellarSpectralType, "Stellar spectral type code")
	f.Float64Var(&in.StellarTemp, "stellar-temp", in.StellarTemp, "Stellar effective temperature in K")
	f.Float64Var(&in.StellarRadius, "stellar-radius", in.StellarRadius, "Stellar radius in solar radii")
	f.Float64Var(&in.StellarMass, "stellar-mass", in.StellarMass, "Stellar mass in solar masses")
	f.Float64Var(&in.StellarSurfaceGravity, "stellar-surface-gravity", in.StellarSurfaceGravity, "Stellar surface gravity (log g)")
	f.Float64Var(&in.RightAscension, "right-ascension", in.RightAscension, "Right ascension in degrees")
	f.Float64Var(&in.Declination, "declination", in.Declination, "Declination in degrees")
	f.Float64Var(&in.SystemDistance, "system-distance", in.SystemDistance, "Distance in parsecs")
	f.Float64Var(&in.VMag, "sy-vmag", in.VMag, "V band magnitude")
	f.Float64Var(&in.KMag, "sy-kmag", in.KMag, "Ks band magnitude")

	return cmd
}
