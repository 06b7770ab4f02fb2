// Command mwaxstats writes autos and fringes statistics files for every coarse
// channel listed in an observation manifest.
//
// Exit status is 0 when every channel succeeded, 1 when the run could not
// start, and 2 when some channels failed while others wrote their files.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/MWATelescope/mwaxstats"
	"github.com/MWATelescope/mwaxstats/internal/appsetup"
	"github.com/MWATelescope/mwaxstats/internal/statsdb"
	"github.com/MWATelescope/mwaxstats/obsdata"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var githash = "githash not computed"
var buildDate = "build date not computed"

const (
	exitFatal   = 1
	exitPartial = 2
)

var (
	outputDir   string
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "mwaxstats [flags] MANIFEST.yaml",
	Short: "Write autos and fringes statistics for an observation",
	Long: `mwaxstats reads an observation manifest and, for each listed coarse
channel, the last time step of its correlation cube. It writes one autos file
(power in dB per tile) and one fringes file (phase in degrees per baseline)
per channel into the output directory.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVar(&showVersion, "version", false, "print version and quit")
	flags.StringVarP(&outputDir, "output-dir", "o", ".", "directory for the statistics files")
	flags.BoolP("verbose", "v", false, "log debug messages")
	flags.Bool("trace", false, "log trace messages")
	flags.String("logdir", "", "directory for updates.log and problems.log")
	flags.IntP("workers", "j", 0, "coarse channels processed at once (0 = number of CPUs)")
	flags.Float64("memory-limit-gb", 0, "memory available for cubes (0 = 90% of physical memory)")
	flags.Bool("calibrator-only-fringes", true, "write fringes only for calibrator observations")
	flags.String("metrics-textfile", "", "write Prometheus metrics to this file when done")

	for key, flag := range map[string]string{
		"verbose":                 "verbose",
		"trace":                   "trace",
		"logdir":                  "logdir",
		"workers":                 "workers",
		"memory_limit_gb":         "memory-limit-gb",
		"fringes.calibrator_only": "calibrator-only-fringes",
		"metrics.textfile":        "metrics-textfile",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Print(appsetup.VersionText("mwaxstats"))
		return nil
	}
	if len(args) != 1 {
		return errors.New("an observation manifest is required")
	}
	v := viper.GetViper()
	if err := appsetup.SetupViper(v); err != nil {
		return err
	}
	mwaxstats.Verbosity = appsetup.Verbosity(v)
	if err := appsetup.StartLoggers(v.GetString("logdir")); err != nil {
		return err
	}
	mwaxstats.UpdateLogger.Printf("\n\n%s", mwaxstats.Build.Summary)

	obs, err := obsdata.ReadManifest(args[0])
	if err != nil {
		return err
	}
	mwaxstats.PrintInfo(obs)
	if err := os.MkdirAll(outputDir, 0775); err != nil {
		return err
	}

	runID := ulid.Make().String()
	sinks, err := appsetup.OpenSinks(v, statsdb.NewRunMessage(runID, "mwaxstats", strconv.Itoa(obs.ObsID)))
	if err != nil {
		return err
	}
	p := &mwaxstats.Processor{
		OutputDir:             outputDir,
		Source:                obsdata.NPYSource{},
		Workers:               v.GetInt("workers"),
		MemoryLimitBytes:      appsetup.MemoryLimitBytes(v),
		CalibratorOnlyFringes: v.GetBool("fringes.calibrator_only"),
		Observers:             sinks.Observers(),
		Metrics:               sinks.Metrics,
	}
	summary, err := p.RunWithID(runID, obs)
	if summary != nil {
		sinks.Close(len(summary.Results), len(summary.Failed()))
		mwaxstats.Infof("run %s: %d file(s) written, %d of %d channel(s) failed",
			runID, len(summary.Files()), len(summary.Failed()), len(summary.Results))
	} else {
		sinks.Close(len(obs.Channels), len(obs.Channels))
	}
	return err
}

func main() {
	appsetup.SetBuildInfo("mwaxstats", githash, buildDate)
	if err := rootCmd.Execute(); err != nil {
		mwaxstats.ProblemLogger.Printf("mwaxstats: %v", err)
		if errors.Is(err, mwaxstats.ErrPartialFailure) {
			os.Exit(exitPartial)
		}
		os.Exit(exitFatal)
	}
}
