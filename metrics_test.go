package mwaxstats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.FileWritten("r", &FileProduct{Kind: KindAutos, Records: 100})
	m.FileWritten("r", &FileProduct{Kind: KindAutos, Records: 50})
	m.FileWritten("r", &FileProduct{Kind: KindFringes, Records: 7})
	assert.Equal(t, 150.0, testutil.ToFloat64(m.recordsWritten.WithLabelValues(KindAutos)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.filesWritten.WithLabelValues(KindAutos)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.filesWritten.WithLabelValues(KindFringes)))

	m.ObserveRun(&RunSummary{Results: []ChannelResult{{}, {Err: errors.New("bad")}, {}}})
	assert.Equal(t, 2.0, testutil.ToFloat64(m.channels.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.channels.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.lastSuccess), "a partial run is not a success")

	m.ObservePacketLoss([]uint16{0, 3, 0, 65535})
	assert.Equal(t, 65538.0, testutil.ToFloat64(m.packetsLost))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.inputsWithLoss))
	assert.Greater(t, testutil.ToFloat64(m.lastSuccess), 0.0)
}

func TestMetricsTextfile(t *testing.T) {
	m := NewMetrics()
	m.FileWritten("r", &FileProduct{Kind: KindPacketStats, Records: 256})
	path := filepath.Join(t.TempDir(), "mwaxstats.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `mwaxstats_records_written_total{kind="packetstats"} 256`))
}
