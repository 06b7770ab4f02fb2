// Command mwaxpacketstats writes the per-input lost-packet counters of an
// MWAX subfile to a packetstats file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/MWATelescope/mwaxstats"
	"github.com/MWATelescope/mwaxstats/internal/appsetup"
	"github.com/MWATelescope/mwaxstats/internal/statsdb"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var githash = "githash not computed"
var buildDate = "build date not computed"

var (
	outputDir   string
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "mwaxpacketstats [flags] SUBFILE",
	Short: "Extract lost-packet counters from an MWAX subfile",
	Long: `mwaxpacketstats reads the packet map of an MWAX subfile and writes one
uint16 lost-packet counter per RF input, in subfile input order, to
packetstats_<subobsid>_<N>T_ch<C>_<host>.dat in the output directory.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVar(&showVersion, "version", false, "print version and quit")
	flags.StringVarP(&outputDir, "output-dir", "o", ".", "directory for the packetstats file")
	flags.BoolP("verbose", "v", false, "log debug messages")
	flags.Bool("trace", false, "log trace messages")
	flags.String("logdir", "", "directory for updates.log and problems.log")
	flags.String("hostname", "", "hostname for the output filename (default: this host)")
	flags.String("metrics-textfile", "", "write Prometheus metrics to this file when done")

	for key, flag := range map[string]string{
		"verbose":          "verbose",
		"trace":            "trace",
		"logdir":           "logdir",
		"hostname":         "hostname",
		"metrics.textfile": "metrics-textfile",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Print(appsetup.VersionText("mwaxpacketstats"))
		return nil
	}
	if len(args) != 1 {
		return errors.New("a subfile is required")
	}
	v := viper.GetViper()
	if err := appsetup.SetupViper(v); err != nil {
		return err
	}
	mwaxstats.Verbosity = appsetup.Verbosity(v)
	if err := appsetup.StartLoggers(v.GetString("logdir")); err != nil {
		return err
	}
	host, err := appsetup.Hostname(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0775); err != nil {
		return err
	}

	runID := ulid.Make().String()
	sinks, err := appsetup.OpenSinks(v, statsdb.NewRunMessage(runID, "mwaxpacketstats", args[0]))
	if err != nil {
		return err
	}
	ps, err := mwaxstats.ExtractPacketStats(args[0], outputDir, host)
	if err != nil {
		sinks.Close(1, 1)
		return err
	}
	for _, o := range sinks.Observers() {
		o.FileWritten(runID, ps.Product)
	}
	sinks.Metrics.FileWritten(runID, ps.Product)
	sinks.Metrics.ObservePacketLoss(ps.Lost)
	sinks.Close(1, 0)
	mwaxstats.Infof("Done! %s written (%d inputs, %d with loss).", ps.Product.Path, len(ps.Lost), ps.InputsWithLoss())
	return nil
}

func main() {
	appsetup.SetBuildInfo("mwaxpacketstats", githash, buildDate)
	if err := rootCmd.Execute(); err != nil {
		mwaxstats.ProblemLogger.Printf("mwaxpacketstats: %v", err)
		os.Exit(1)
	}
}
