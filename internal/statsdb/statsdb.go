// Package statsdb records runs and produced statistics files in a ClickHouse database.
package statsdb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/MWATelescope/mwaxstats"
)

// Environment variables holding the database credentials.
const (
	UserEnv     = "MWAXSTATS_DB_USER"
	PasswordEnv = "MWAXSTATS_DB_PASSWORD"
)

const timeFormat = "2006-01-02 15:04:05.000000"

// Schema creates the tables this package writes to.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id String, program String, hostname String, githash String, version String,
		goversion String, cpus UInt32, source String, units UInt32, failed UInt32,
		start DateTime64(6), end DateTime64(6)
	) ENGINE = ReplacingMergeTree ORDER BY id`,
	`CREATE TABLE IF NOT EXISTS files (
		run_id String, filename String, kind LowCardinality(String), records UInt64,
		size UInt64, sha256 FixedString(64), written DateTime64(6)
	) ENGINE = MergeTree ORDER BY (filename, written)`,
}

// Config locates the database server.
type Config struct {
	Addr     string
	Database string
	Username string
	Password string
}

// ConfigFromEnv returns a Config for addr and database, with the credentials
// taken from the environment.
func ConfigFromEnv(addr, database string) Config {
	return Config{
		Addr:     addr,
		Database: database,
		Username: os.Getenv(UserEnv),
		Password: os.Getenv(PasswordEnv),
	}
}

// Connection is a (possibly failed) connection to the database. All methods are
// no-ops on a Connection that is not connected, so callers never need to check.
type Connection struct {
	conn    clickhouse.Conn
	run     *RunMessage
	filemsg chan *FileMessage
	abort   chan struct{}
	mu      sync.Mutex
	err     error
	sync.WaitGroup
}

// IsConnected reports whether the database is usable.
func (db *Connection) IsConnected() bool {
	if db == nil || db.conn == nil {
		return false
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.err == nil
}

// Err returns the error that disconnected the database, if any.
func (db *Connection) Err() error {
	if db == nil {
		return nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.err
}

func (db *Connection) fail(what string, err error) {
	mwaxstats.Warnf("database %s: %v", what, err)
	db.mu.Lock()
	db.err = err
	db.mu.Unlock()
}

// Open connects to the database described by cfg and pings it. The returned
// Connection is never nil; when the server cannot be reached it is simply not
// connected and Err says why.
func Open(cfg Config) *Connection {
	db := &Connection{}
	client := clickhouse.ClientInfo{
		Products: []struct {
			Name    string
			Version string
		}{
			{Name: "mwaxstats", Version: mwaxstats.Build.Version},
		},
	}
	opt := clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		ClientInfo:  client,
		DialTimeout: 5 * time.Second,
	}
	conn, err := clickhouse.Open(&opt)
	if err != nil {
		db.err = err
		return db
	}

	// Ping the server at the DB connection.
	if err = conn.Ping(context.Background()); err != nil {
		if exception, ok := err.(*clickhouse.Exception); ok {
			mwaxstats.Warnf("database exception [%d] %s \n%s", exception.Code, exception.Message, exception.StackTrace)
		}
		conn.Close()
		db.err = err
		return db
	}
	db.conn = conn
	return db
}

// CreateTables creates any missing tables.
func (db *Connection) CreateTables(ctx context.Context) error {
	if !db.IsConnected() {
		return fmt.Errorf("database is not connected")
	}
	for _, stmt := range Schema {
		if err := db.conn.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// StartRun logs the start of run and begins accepting file records.
func (db *Connection) StartRun(run *RunMessage) {
	if !db.IsConnected() || run == nil {
		return
	}
	db.run = run
	db.logRun()
	db.filemsg = make(chan *FileMessage)
	db.abort = make(chan struct{})
	db.Add(1)
	go db.handleConnection()
}

func (db *Connection) handleConnection() {
	defer db.Done()
	for {
		select {
		case <-db.abort:
			return
		case fmsg := <-db.filemsg:
			db.handleFileMessage(fmsg)
		}
	}
}

// RecordFile stores msg in the files table. It blocks until the connection's
// goroutine accepts the message, so every file recorded before FinishRun is
// in the database when FinishRun returns.
func (db *Connection) RecordFile(msg *FileMessage) {
	if !db.IsConnected() || msg == nil || db.filemsg == nil {
		return
	}
	db.filemsg <- msg
}

// FileWritten records product as a file of runID.
func (db *Connection) FileWritten(runID string, product *mwaxstats.FileProduct) {
	db.RecordFile(NewFileMessage(runID, product, time.Now()))
}

// FinishRun logs the end of the run with its unit counts, then closes the connection.
func (db *Connection) FinishRun(units, failed int) {
	if db == nil || db.conn == nil {
		return
	}
	if db.abort != nil {
		close(db.abort)
		db.Wait()
	}
	if db.run != nil && db.IsConnected() {
		db.run.Units = units
		db.run.Failed = failed
		db.run.End = time.Now()
		db.logRun()
	}
	db.conn.Close()
}

func (db *Connection) logRun() {
	ctx := context.Background()
	const nowait = false
	r := db.run
	end := r.End
	if end.IsZero() {
		end = r.Start
	}
	if err := db.conn.AsyncInsert(ctx, `INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, nowait,
		r.ID, r.Program, r.Hostname, r.Githash, r.Version, r.GoVersion, r.CPUs,
		r.Source, r.Units, r.Failed, r.Start.Format(timeFormat), end.Format(timeFormat),
	); err != nil {
		db.fail("insert into runs", err)
	}
}

func (db *Connection) handleFileMessage(m *FileMessage) {
	if !db.IsConnected() {
		return
	}
	ctx := context.Background()
	const nowait = false
	if err := db.conn.AsyncInsert(ctx, `INSERT INTO files VALUES (?, ?, ?, ?, ?, ?, ?)`, nowait,
		m.RunID, m.Filename, m.Kind, m.Records, m.Size, m.SHA256, m.Written.Format(timeFormat),
	); err != nil {
		db.fail("insert into files", err)
	}
}
