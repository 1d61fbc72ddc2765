package cmd

import (
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wcsim/macgen/internal/common/config"
	"github.com/wcsim/macgen/internal/common/sweeperrors"
	"github.com/wcsim/macgen/internal/macgen"
	"github.com/wcsim/macgen/internal/macgen/options"
)

func generateCmd() *cobra.Command {
	return generateCmdWithApp(macgen.New())
}

// Takes a caller-supplied app struct; useful for testing.
func generateCmdWithApp(app *macgen.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a macro file for every combination of the sweep options and run or queue each one.",
		Long: `Write a macro file for every combination of the sweep options and run or queue each one.

List options take comma-separated values. Files are named after the values that
distinguish them, e.g. wcsim_500e-_SuperK_Stacking_Only_PMTCollEff_on_SKI_NHits_fails0_NHits25_200_DarkNoiseM1R4.2W1500.mac`,
		Args: cobra.NoArgs,
		// Usage is printed for invalid options only, not for failed jobs.
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			app.Out = cmd.OutOrStdout()
			if err := initParams(cmd, app.Params); err != nil {
				if sweeperrors.IsInvalidArgument(err) {
					_ = cmd.Usage()
				}
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Cancel running jobs on SIGINT/SIGTERM.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			_, err := app.Generate(ctx)
			if sweeperrors.IsInvalidArgument(err) {
				_ = cmd.Usage()
			}
			return err
		},
	}
	addSweepFlags(cmd.Flags())
	return cmd
}

func addSweepFlags(f *pflag.FlagSet) {
	d := options.Defaults()
	choices := func(name string) string {
		return strings.Join(options.Choices(name), ", ")
	}

	// Geometry
	f.String("wcGeom", d.Geometry.String(), "Water tank geometry. Choices: "+choices(options.GeometryChoices))
	f.String("hkWaterTankLength", d.TankLength.String(), "Water tank length of HyperK geometries (mm)")

	// PMT
	f.String("pmtQEMethod", d.PMTQEMethod.String(), "How the QE is applied. Choices: "+choices(options.PMTQEMethodChoices))
	f.String("pmtCollEff", d.PMTCollEff.String(), "Turn the PMT collection efficiency on or off. Choices: "+choices(options.PMTCollEffChoices))

	// Digitization and triggering
	f.String("daqDigitizer", d.Digitizer.String(), "Digitizer class. Choices: "+choices(options.DigitizerChoices))
	f.String("daqTrigger", d.Trigger.String(), "Trigger class. Choices: "+choices(options.TriggerChoices))
	f.String("daqSaveFailuresMode", d.SaveFailuresMode.String(), "Save failed triggers mode. 0: only events passing the trigger. 1: only events failing it. 2: both")
	f.String("daqSaveFailuresTime", d.SaveFailuresTime.String(), "Trigger time given to events failing the trigger, for modes 1 and 2 (ns)")
	f.String("daqNHitsThreshold", d.NHitsThreshold.String(), "NHits trigger threshold (hits)")
	f.String("daqNHitsWindow", d.NHitsWindow.String(), "NHits trigger window (ns)")
	f.Bool("daqNHitsIgnoreNoise", d.NHitsIgnoreNoise, "Adjust the NHits and LocalNHits thresholds for the dark noise rate")
	f.String("daqLocalNHitsNeighbours", d.LocalNHitsNeighbours.String(), "LocalNHits trigger neighbours (PMTs)")
	f.String("daqLocalNHitsThreshold", d.LocalNHitsThreshold.String(), "LocalNHits trigger threshold (hits)")
	f.String("daqLocalNHitsWindow", d.LocalNHitsWindow.String(), "LocalNHits trigger window (ns)")

	// Dark noise
	f.String("darkNoiseRate", d.DarkNoiseRate.String(), "Dark noise rate (kHz)")
	f.String("darkNoiseConvert", d.DarkNoiseConvert.String(), "Factor converting the dark noise rate before digitization to the rate after it")
	f.Int("darkNoiseMode", d.DarkNoiseMode, "0: apply noise in a fixed time window. 1: apply noise around hits. Exactly one")
	f.String("darkNoiseWindow", d.DarkNoiseWindow.String(), "Mode 0: noise time range as low:high (ns). Mode 1: window around each hit (ns)")

	// Particle gun
	f.Bool("savePi0", d.SavePi0, "Save pi0 information")
	f.String("gunParticle", d.GunParticle, "Particle gun particle, exactly one. Choices: "+choices(options.ParticleChoices))
	f.String("gunEnergy", d.GunEnergy.String(), "Particle gun energy (MeV)")
	f.String("gunPosition", d.GunPosition.String(), "Particle gun position. Either a comma-separated 3 vector or exactly one of "+choices(options.PositionChoices))
	f.String("gunDirection", d.GunDirection.String(), "Particle gun direction. Either a comma-separated 3 vector or exactly one of "+choices(options.DirectionChoices))
	f.Int("nEvents", d.NEvents, "Number of events per macro file")

	// Job handling
	f.String("batchMode", d.BatchMode, "Where to run the jobs. Choices: "+choices(options.BatchModeChoices))
	f.Bool("onlyCreateFiles", d.OnlyCreateFiles, "Create all the files but don't run anything")
	f.String("outputDir", d.OutputDir, "Directory that macro files are written to and jobs run in")
	f.String("wcsimDir", d.WCSimDir, "WCSim installation holding the macro templates and executable (default $WCSIMDIR)")
	f.String("g4System", d.G4System, "Geant4 platform directory of the WCSim executable (default $G4SYSTEM)")
}

// initParams loads the sweep options for cmd. Explicit flags take precedence, followed by the
// WCSIMDIR and G4SYSTEM environment variables, the config file and finally flag defaults.
func initParams(cmd *cobra.Command, params *macgen.Params) error {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := v.BindEnv("wcsimDir", "WCSIMDIR"); err != nil {
		return err
	}
	if err := v.BindEnv("g4System", "G4SYSTEM"); err != nil {
		return err
	}

	var cfgFile string
	if f := cmd.Flags().Lookup("config"); f != nil {
		cfgFile = f.Value.String()
	}
	if err := config.LoadConfigFile(v, cfgFile, defaultConfigName); err != nil {
		return err
	}

	o, err := options.Load(v)
	if err != nil {
		return err
	}
	params.Sweep = o
	return nil
}
