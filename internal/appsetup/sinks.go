package appsetup

import (
	"github.com/MWATelescope/mwaxstats"
	"github.com/MWATelescope/mwaxstats/internal/notify"
	"github.com/MWATelescope/mwaxstats/internal/statsdb"
	"github.com/spf13/viper"
)

// Sinks are the optional receivers of a run's results: the database
// catalogue, the ZeroMQ publisher and the metrics textfile.
type Sinks struct {
	DB        *statsdb.Connection
	Publisher *notify.Publisher
	Metrics   *mwaxstats.Metrics
	textfile  string
}

// OpenSinks opens whatever sinks the configuration enables. A database that
// cannot be reached is logged and left disconnected; a publisher that cannot
// bind is an error.
func OpenSinks(v *viper.Viper, run *statsdb.RunMessage) (*Sinks, error) {
	s := &Sinks{Metrics: mwaxstats.NewMetrics(), textfile: v.GetString("metrics.textfile")}
	if v.GetBool("database.enabled") {
		cfg := statsdb.ConfigFromEnv(v.GetString("database.addr"), v.GetString("database.name"))
		s.DB = statsdb.Open(cfg)
		if s.DB.IsConnected() {
			s.DB.StartRun(run)
		} else {
			mwaxstats.Warnf("database at %s not connected: %v", cfg.Addr, s.DB.Err())
		}
	}
	if addr := v.GetString("notify.address"); addr != "" {
		p, err := notify.NewPublisher(addr)
		if err != nil {
			return nil, err
		}
		s.Publisher = p
		mwaxstats.Debugf("announcing files on %s", addr)
	}
	return s, nil
}

// Observers returns the sinks that want to hear about every written file.
// Metrics are not included; the pipelines feed them directly.
func (s *Sinks) Observers() []mwaxstats.FileObserver {
	var obs []mwaxstats.FileObserver
	if s.DB.IsConnected() {
		obs = append(obs, s.DB)
	}
	if s.Publisher != nil {
		obs = append(obs, s.Publisher)
	}
	return obs
}

// Close finishes the run in every sink.
func (s *Sinks) Close(units, failed int) {
	if s.DB != nil {
		s.DB.FinishRun(units, failed)
	}
	if s.Publisher != nil {
		if err := s.Publisher.Close(); err != nil {
			mwaxstats.Warnf("closing publisher: %v", err)
		}
	}
	if s.textfile != "" {
		if err := s.Metrics.WriteTextfile(s.textfile); err != nil {
			mwaxstats.Warnf("writing metrics to %s: %v", s.textfile, err)
		}
	}
}
