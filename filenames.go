package mwaxstats

import "fmt"

// Kinds of statistics file.
const (
	KindAutos       = "autos"
	KindFringes     = "fringes"
	KindPacketStats = "packetstats"
)

// Record widths in bytes.
const (
	StatsRecordBytes  = 12 // frequency (MHz), XX, YY as float32
	PacketRecordBytes = 2  // one uint16 lost-packet count
)

// StatsFilename returns <obsid>_<kind>_<F>chans_<N>T[_ch<R>].dat. The channel
// suffix is omitted when recChan <= 0 (a single implicit channel).
func StatsFilename(obsid int, kind string, fineChans, tiles, recChan int) string {
	name := fmt.Sprintf("%d_%s_%dchans_%dT", obsid, kind, fineChans, tiles)
	if recChan > 0 {
		name += fmt.Sprintf("_ch%d", recChan)
	}
	return name + ".dat"
}

// PacketStatsFilename returns packetstats_<subobsid>_<N>T_ch<C>_<host>.dat.
func PacketStatsFilename(subobsID string, tiles, channel int, host string) string {
	return fmt.Sprintf("packetstats_%s_%dT_ch%d_%s.dat", subobsID, tiles, channel, host)
}
