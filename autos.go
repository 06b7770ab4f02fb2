package mwaxstats

import (
	"fmt"
	"sort"

	"github.com/MWATelescope/mwaxstats/getbytes"
	"gonum.org/v1/gonum/stat"
)

// WriteAutos writes the autocorrelation file for one coarse channel into dir.
//
// File format, slowest moving -> fastest moving: [tile][fine chan], each record
// 3 float32 values:
//
//	fine chan freq (MHz)
//	XX power (dB)
//	YY power (dB)
func WriteAutos(dir string, obs *Observation, ch CoarseChannel, index *BaselineIndex, s *Slice) (*FileProduct, error) {
	if err := checkSliceFits(obs, ch, index, s); err != nil {
		return nil, err
	}
	nfine := s.FineChans()
	ntiles := index.NumTiles()
	name := StatsFilename(obs.ObsID, KindAutos, nfine, ntiles, ch.RecChan)
	path, err := outputPath(dir, name)
	if err != nil {
		return nil, err
	}
	w, err := createRecordWriter(path, StatsRecordBytes)
	if err != nil {
		return nil, err
	}

	var rec [3]float32
	xxPowers := make([]float64, 0, ntiles*nfine)
	for tile := 0; tile < ntiles; tile++ {
		bl := index.AutoIndex(tile)
		for f := 0; f < nfine; f++ {
			rec[0] = hzToMHz(ch.FineFreqsHz[f])
			rec[1] = PowerDB(s.XX(f, bl))
			rec[2] = PowerDB(s.YY(f, bl))
			if err := w.WriteRecord(getbytes.FromSliceFloat32(rec[:])); err != nil {
				w.Abort()
				return nil, err
			}
			if rec[1] != SentinelPowerDB {
				xxPowers = append(xxPowers, float64(rec[1]))
			}
		}
		Tracef("%s tile %d (%s) written", ch.Label(), tile, obs.Tiles[tile].Name)
	}

	product, err := w.Commit(KindAutos, ntiles*nfine)
	if err != nil {
		return nil, err
	}
	if Verbosity >= LevelDebug && len(xxPowers) > 0 {
		sort.Float64s(xxPowers)
		Debugf("%s autos: median XX power %.2f dB, mean %.2f dB over %d samples",
			ch.Label(), stat.Quantile(0.5, stat.Empirical, xxPowers, nil),
			stat.Mean(xxPowers, nil), len(xxPowers))
	}
	return product, nil
}

// checkSliceFits verifies that the slice, frequency axis and tile list agree
// before anything is written.
func checkSliceFits(obs *Observation, ch CoarseChannel, index *BaselineIndex, s *Slice) error {
	if s.Baselines() != index.Count() {
		return fmt.Errorf("%w: %s slice has %d baselines, want %d", ErrCubeShape, ch.Label(), s.Baselines(), index.Count())
	}
	if s.FineChans() != obs.FineChans {
		return fmt.Errorf("%w: %s slice has %d fine channels, observation has %d",
			ErrCubeShape, ch.Label(), s.FineChans(), obs.FineChans)
	}
	if len(ch.FineFreqsHz) != s.FineChans() {
		return fmt.Errorf("%w: %s has %d fine channel frequencies for %d fine channels",
			ErrCubeShape, ch.Label(), len(ch.FineFreqsHz), s.FineChans())
	}
	if index.NumTiles() != obs.NumTiles() {
		return fmt.Errorf("%w: baseline index for %d tiles, observation has %d",
			ErrCubeShape, index.NumTiles(), obs.NumTiles())
	}
	return nil
}
