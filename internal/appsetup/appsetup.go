// Package appsetup holds the start-up chores shared by the mwaxstats programs:
// finding and reading the config file, opening rotating log files and
// filling in build information.
package appsetup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/MWATelescope/mwaxstats"
	"github.com/pbnjay/memory"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ConfigDirName is the per-user config directory, relative to $HOME.
const ConfigDirName = ".mwaxstats"

// MakeFileExist returns the path of dir/filename, creating an empty file (and
// its directories) when missing. The config file and the two log files go
// through it, so a fresh host runs with defaults and logs without setup. A
// leading "$HOME" in dir is expanded.
func MakeFileExist(dir, filename string) (string, error) {
	if rest, ok := strings.CutPrefix(dir, "$HOME"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = home + rest
	}
	if err := os.MkdirAll(dir, 0775); err != nil {
		return "", err
	}
	fullname := filepath.Join(dir, filename)
	if _, err := os.Stat(fullname); !os.IsNotExist(err) {
		return fullname, err
	}
	f, err := os.OpenFile(fullname, os.O_WRONLY|os.O_CREATE, 0664)
	if err != nil {
		return "", err
	}
	f.Close()
	return fullname, nil
}

// SetDefaults installs the default value of every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("trace", false)
	v.SetDefault("logdir", filepath.Join("$HOME", ConfigDirName, "logs"))
	v.SetDefault("workers", 0)
	v.SetDefault("memory_limit_gb", 0.0)
	v.SetDefault("fringes.calibrator_only", true)
	v.SetDefault("hostname", "")
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.addr", "localhost:9000")
	v.SetDefault("database.name", "mwaxstats")
	v.SetDefault("notify.address", "")
}

// SetupViper sets up the viper configuration manager: says where to find config
// files and the filename and suffix. Sets the defaults.
func SetupViper(v *viper.Viper) error {
	SetDefaults(v)

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding user home dir: %w", err)
	}
	dotDir := filepath.Join(home, ConfigDirName)
	const filename string = "config"
	const suffix string = ".yaml"
	if _, err := MakeFileExist(dotDir, filename+suffix); err != nil {
		return err
	}

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.FromSlash("/etc/mwaxstats"))
	v.AddConfigPath(dotDir)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %s", err)
	}
	return nil
}

// Verbosity maps the verbose and trace settings to a logging level.
func Verbosity(v *viper.Viper) mwaxstats.Level {
	switch {
	case v.GetBool("trace"):
		return mwaxstats.LevelTrace
	case v.GetBool("verbose"):
		return mwaxstats.LevelDebug
	default:
		return mwaxstats.LevelInfo
	}
}

// RotatingLog returns a size-rotated log file writer for pfname.
func RotatingLog(pfname string) io.Writer {
	return &lumberjack.Logger{
		Filename:   pfname,
		MaxSize:    10,   // megabytes after which new file is created
		MaxBackups: 4,    // number of backups
		MaxAge:     180,  // days
		Compress:   true, // whether to gzip the backups
	}
}

// StartLoggers sends the package loggers to problems.log and updates.log in
// logdir, and also to stderr.
func StartLoggers(logdir string) error {
	problemname, err := MakeFileExist(logdir, "problems.log")
	if err != nil {
		return err
	}
	logname, err := MakeFileExist(logdir, "updates.log")
	if err != nil {
		return err
	}
	mwaxstats.SetLogOutputs(
		io.MultiWriter(os.Stderr, RotatingLog(logname)),
		io.MultiWriter(os.Stderr, RotatingLog(problemname)),
	)
	mwaxstats.Debugf("Logging problems to %s", problemname)
	mwaxstats.Debugf("Logging updates  to %s", logname)
	return nil
}

// SetBuildInfo fills in mwaxstats.Build for the program called name.
func SetBuildInfo(name, githash, buildDate string) {
	buildDate = strings.ReplaceAll(buildDate, ".", " ") // workaround for Make problems
	mwaxstats.Build.Date = buildDate
	mwaxstats.Build.Githash = githash
	mwaxstats.Build.Summary = fmt.Sprintf("%s version %s (git commit %s of %s)",
		name, mwaxstats.Build.Version, githash, buildDate)
	if host, err := os.Hostname(); err == nil {
		mwaxstats.Build.Host = host
	} else {
		mwaxstats.Build.Host = "host not detected"
	}
}

// VersionText describes the build, for a --version flag.
func VersionText(name string) string {
	return fmt.Sprintf("This is %s version %s\nGit commit hash: %s\nBuild time: %s\nBuilt on go version %s\nRunning on %d CPUs.\n",
		name, mwaxstats.Build.Version, mwaxstats.Build.Githash, mwaxstats.Build.Date,
		runtime.Version(), runtime.NumCPU())
}

// MemoryLimitBytes returns the configured memory limit, or 90% of physical
// memory when memory_limit_gb is not positive.
func MemoryLimitBytes(v *viper.Viper) uint64 {
	if gb := v.GetFloat64("memory_limit_gb"); gb > 0 {
		return mwaxstats.GigabytesToBytes(gb)
	}
	return memory.TotalMemory() / 10 * 9
}

// Hostname returns the configured hostname, falling back to the host's own name.
func Hostname(v *viper.Viper) (string, error) {
	if h := v.GetString("hostname"); h != "" {
		return h, nil
	}
	return os.Hostname()
}
