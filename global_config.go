package mwaxstats

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// BuildInfo can contain compile-time information about the build
type BuildInfo struct {
	Version string
	Githash string
	Date    string
	Host    string
	Summary string
}

// Build is a global holding compile-time information about the build
var Build = BuildInfo{
	Version: "0.4.0",
	Githash: "no git hash computed",
	Date:    "no build date computed",
}

// StartTime is a global holding the time init() was run
var StartTime time.Time

// ProblemLogger will log warning messages (failed units, malformed input) to a file
var ProblemLogger *log.Logger

// UpdateLogger will log progress messages to a file
var UpdateLogger *log.Logger

// Level selects how much diagnostic output UpdateLogger receives.
type Level int

// Diagnostic levels, least to most verbose.
const (
	LevelInfo Level = iota
	LevelDebug
	LevelTrace
)

// Verbosity is the current diagnostic level. Main programs set it from the
// configuration; it never changes what the pipelines compute.
var Verbosity = LevelInfo

// Infof logs a progress message.
func Infof(format string, args ...any) {
	UpdateLogger.Printf(format, args...)
}

// Debugf logs a message when Verbosity is at least LevelDebug.
func Debugf(format string, args ...any) {
	if Verbosity >= LevelDebug {
		UpdateLogger.Printf("DEBUG "+format, args...)
	}
}

// Tracef logs a message when Verbosity is LevelTrace.
func Tracef(format string, args ...any) {
	if Verbosity >= LevelTrace {
		UpdateLogger.Printf("TRACE "+format, args...)
	}
}

// Warnf logs a problem. Problems always reach ProblemLogger, whatever the Verbosity.
func Warnf(format string, args ...any) {
	ProblemLogger.Printf("WARNING "+format, args...)
}

// SetLogOutputs redirects both loggers. A nil writer leaves that logger alone.
func SetLogOutputs(updates, problems io.Writer) {
	if updates != nil {
		UpdateLogger.SetOutput(updates)
	}
	if problems != nil {
		ProblemLogger.SetOutput(problems)
	}
}

func init() {
	StartTime = time.Now()

	// Main programs will override these, but at least initialize with sensible values
	ProblemLogger = log.New(os.Stderr, "", log.LstdFlags)
	UpdateLogger = log.New(os.Stderr, "", log.LstdFlags)
	Build.Summary = fmt.Sprintf("mwaxstats version %s", Build.Version)
}
