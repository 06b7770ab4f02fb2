// Command mwaxplot draws one tile or baseline of an autos or fringes file, or
// the whole of a packetstats file, as an image.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MWATelescope/mwaxstats"
	"github.com/MWATelescope/mwaxstats/plotting"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

var (
	outputName string
	widthCm    float64
	heightCm   float64
)

var rootCmd = &cobra.Command{
	Use:   "mwaxplot [flags] FILE.dat [INDEX]",
	Short: "Plot a statistics file",
	Long: `mwaxplot plots row INDEX (tile for autos, baseline for fringes; default 0)
of a statistics file against frequency. For packetstats files it plots the
lost packets of every RF input.`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&outputName, "output", "o", "", "image file to write (default: FILE with .png)")
	rootCmd.Flags().Float64Var(&widthCm, "width", 20, "image width in cm")
	rootCmd.Flags().Float64Var(&heightCm, "height", 12, "image height in cm")
}

func run(cmd *cobra.Command, args []string) error {
	path := args[0]
	row := 0
	if len(args) == 2 {
		var err error
		if row, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("index %q: %w", args[1], err)
		}
	}
	if outputName == "" {
		outputName = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}

	p, err := makePlot(path, row)
	if err != nil {
		return err
	}
	out, err := os.Create(outputName)
	if err != nil {
		return err
	}
	format := strings.TrimPrefix(filepath.Ext(outputName), ".")
	if err := plotting.Store(p, vg.Length(widthCm)*vg.Centimeter, vg.Length(heightCm)*vg.Centimeter, format, out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", outputName)
	return nil
}

func makePlot(path string, row int) (*plot.Plot, error) {
	if info, err := mwaxstats.ParsePacketStatsFilename(path); err == nil {
		lost, err := mwaxstats.ReadPacketStatsFile(path)
		if err != nil {
			return nil, err
		}
		if len(lost) != 2*info.Tiles {
			return nil, fmt.Errorf("%w: '%s' holds %d counters, its name implies %d",
				mwaxstats.ErrRecordCount, path, len(lost), 2*info.Tiles)
		}
		return plotting.PlotPacketLoss(lost, info)
	}
	info, records, err := mwaxstats.ReadStatsFileChecked(path)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Fine chans = %d\nTiles = %d\nRows = %d\n", info.FineChans, info.Tiles, info.Rows())
	return plotting.PlotStats(records, info, row)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mwaxplot: %v\n", err)
		os.Exit(1)
	}
}
