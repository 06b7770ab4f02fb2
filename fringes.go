package mwaxstats

import (
	"github.com/MWATelescope/mwaxstats/getbytes"
)

// WriteFringes writes the fringe file for one coarse channel into dir.
//
// File format, slowest moving -> fastest moving: [baseline][fine chan], with
// baselines in BaselineIndex order (autos included), each record 3 float32 values:
//
//	fine chan freq (MHz)
//	XX phase (deg)
//	YY phase (deg)
func WriteFringes(dir string, obs *Observation, ch CoarseChannel, index *BaselineIndex, s *Slice) (*FileProduct, error) {
	if err := checkSliceFits(obs, ch, index, s); err != nil {
		return nil, err
	}
	nfine := s.FineChans()
	nbl := index.Count()
	name := StatsFilename(obs.ObsID, KindFringes, nfine, index.NumTiles(), ch.RecChan)
	path, err := outputPath(dir, name)
	if err != nil {
		return nil, err
	}
	w, err := createRecordWriter(path, StatsRecordBytes)
	if err != nil {
		return nil, err
	}

	var rec [3]float32
	for b, bl := range index.Pairs() {
		for f := 0; f < nfine; f++ {
			rec[0] = hzToMHz(ch.FineFreqsHz[f])
			rec[1] = PhaseDeg(s.XX(f, b))
			rec[2] = PhaseDeg(s.YY(f, b))
			if err := w.WriteRecord(getbytes.FromSliceFloat32(rec[:])); err != nil {
				w.Abort()
				return nil, err
			}
		}
		if b == 1 {
			Tracef("%s baseline %d-%d first channel XX %.2f deg YY %.2f deg",
				ch.Label(), bl.Tile1, bl.Tile2, PhaseDeg(s.XX(0, b)), PhaseDeg(s.YY(0, b)))
		}
	}
	return w.Commit(KindFringes, nbl*nfine)
}
