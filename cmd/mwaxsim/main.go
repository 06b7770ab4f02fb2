// Command mwaxsim writes a synthetic observation: a manifest plus one .npy
// correlation cube per coarse channel, ready for mwaxstats.
package main

import (
	"fmt"
	"os"

	"github.com/MWATelescope/mwaxstats"
	"github.com/MWATelescope/mwaxstats/internal/appsetup"
	"github.com/MWATelescope/mwaxstats/obsdata"
	"github.com/spf13/cobra"
)

var githash = "githash not computed"
var buildDate = "build date not computed"

var (
	outputDir   string
	showVersion bool
	verbose     bool
	cfg         obsdata.SimConfig
)

var rootCmd = &cobra.Command{
	Use:   "mwaxsim [flags]",
	Short: "Write a synthetic MWAX observation for testing mwaxstats",
	Long: `mwaxsim writes <obsid>.yaml and <obsid>_chNNN.npy cubes to the output
directory. Autos have power (tile+1)*(timestep+1) in XX and twice that in YY;
cross-correlations have a phase slope across the fine channels that grows
with tile separation.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVar(&showVersion, "version", false, "print version and quit")
	flags.StringVarP(&outputDir, "output-dir", "o", ".", "directory for the manifest and cubes")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	flags.IntVar(&cfg.ObsID, "obsid", 1317706936, "observation ID")
	flags.BoolVar(&cfg.Calibrator, "calibrator", true, "mark the observation as a calibrator")
	flags.IntVarP(&cfg.Tiles, "tiles", "n", 128, "number of tiles")
	flags.IntVarP(&cfg.FineChans, "fine-chans", "f", 64, "fine channels per coarse channel")
	flags.IntVarP(&cfg.Timesteps, "timesteps", "t", 2, "time steps per cube")
	flags.IntVar(&cfg.Pols, "pols", 4, "polarizations per sample (2 or 4)")
	flags.IntSliceVarP(&cfg.RecChans, "channels", "c", []int{109}, "receiver channel numbers")
}

func run(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Print(appsetup.VersionText("mwaxsim"))
		return nil
	}
	if verbose {
		mwaxstats.Verbosity = mwaxstats.LevelDebug
	}
	if err := os.MkdirAll(outputDir, 0775); err != nil {
		return err
	}
	path, err := obsdata.Simulate(outputDir, cfg)
	if err != nil {
		return err
	}
	mwaxstats.Infof("Wrote %s (%d tiles, %d fine chans, %d coarse chans)", path, cfg.Tiles, cfg.FineChans, len(cfg.RecChans))
	return nil
}

func main() {
	appsetup.SetBuildInfo("mwaxsim", githash, buildDate)
	if err := rootCmd.Execute(); err != nil {
		mwaxstats.ProblemLogger.Printf("mwaxsim: %v", err)
		os.Exit(1)
	}
}
