package statsdb

import (
	"path/filepath"
	"runtime"
	"time"

	"github.com/MWATelescope/mwaxstats"
)

// The composite types used for messages to the ClickHouse database.

// RunMessage is the information for the runs table: one row per program run.
type RunMessage struct {
	ID        string
	Program   string
	Hostname  string
	Githash   string
	Version   string
	GoVersion string
	CPUs      int
	Source    string // obsid or subobsid the run worked on
	Units     int
	Failed    int
	Start     time.Time
	End       time.Time
}

// NewRunMessage starts a RunMessage for the current build and host.
func NewRunMessage(runID, program, source string) *RunMessage {
	return &RunMessage{
		ID:        runID,
		Program:   program,
		Hostname:  mwaxstats.Build.Host,
		Githash:   mwaxstats.Build.Githash,
		Version:   mwaxstats.Build.Version,
		GoVersion: runtime.Version(),
		CPUs:      runtime.NumCPU(),
		Source:    source,
		Start:     time.Now(),
	}
}

// FileMessage is the information required to make an entry in the files table.
type FileMessage struct {
	RunID    string
	Filename string
	Kind     string
	Records  int
	Size     int64
	SHA256   string
	Written  time.Time
}

// NewFileMessage describes a produced file.
func NewFileMessage(runID string, product *mwaxstats.FileProduct, written time.Time) *FileMessage {
	return &FileMessage{
		RunID:    runID,
		Filename: filepath.Base(product.Path),
		Kind:     product.Kind,
		Records:  product.Records,
		Size:     product.Size,
		SHA256:   product.SHA256,
		Written:  written,
	}
}
