package mwaxstats

import "errors"

// Failure conditions reported by the statistics pipelines. Callers should test
// for them with errors.Is; returned errors wrap them with channel and path context.
var (
	// ErrInvalidTileCount aborts a run before any output is produced.
	ErrInvalidTileCount = errors.New("invalid tile count")

	// ErrEmptyChannelData fails one coarse channel; the others continue.
	ErrEmptyChannelData = errors.New("no time steps in coarse channel data")

	// ErrCubeShape fails one coarse channel whose cube does not match the
	// observation's baseline or fine channel counts.
	ErrCubeShape = errors.New("correlation cube shape mismatch")

	// ErrMalformedSubfile fails a packet-loss run; no output file is written.
	ErrMalformedSubfile = errors.New("malformed subfile")

	// ErrIOFailure fails the output file being written (and only that file).
	ErrIOFailure = errors.New("output i/o failure")

	// ErrRecordCount means the encoded byte length differs from the length
	// implied by the record count.
	ErrRecordCount = errors.New("encoded record count mismatch")

	// ErrPartialFailure is returned by a run in which at least one unit failed
	// while others completed and kept their output.
	ErrPartialFailure = errors.New("one or more coarse channels failed")
)
