package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MWATelescope/mwaxstats"
	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnounce(t *testing.T) {
	const addr = "inproc://mwaxstats-notify-test"
	pub, err := NewPublisher(addr)
	require.NoError(t, err)
	defer pub.Close()
	pub.Host = "mwax01"

	sub, err := zmq.NewSocket(zmq.SUB)
	require.NoError(t, err)
	defer sub.Close()
	require.NoError(t, sub.Connect(addr))
	require.NoError(t, sub.SetSubscribe(mwaxstats.KindFringes))
	require.NoError(t, sub.SetRcvtimeo(50*time.Millisecond))

	product := &mwaxstats.FileProduct{
		Path:    "/data/1317706936_fringes_64chans_128T_ch123.dat",
		Kind:    mwaxstats.KindFringes,
		Records: 528384,
		Size:    6340608,
	}
	// A new subscriber misses messages published before its subscription
	// arrives, so keep announcing until one gets through.
	var frames [][]byte
	for i := 0; i < 100 && frames == nil; i++ {
		pub.FileWritten("01J0RUN", product)
		frames, _ = sub.RecvMessageBytes(0)
	}
	require.Len(t, frames, 2)
	assert.Equal(t, mwaxstats.KindFringes, string(frames[0]))

	var msg FileMessage
	require.NoError(t, json.Unmarshal(frames[1], &msg))
	assert.Equal(t, "01J0RUN", msg.RunID)
	assert.Equal(t, "mwax01", msg.Host)
	assert.Equal(t, "1317706936_fringes_64chans_128T_ch123.dat", msg.Filename)
	assert.Equal(t, 528384, msg.Records)
}

func TestCloseTwice(t *testing.T) {
	pub, err := NewPublisher("inproc://mwaxstats-notify-close")
	require.NoError(t, err)
	pub.FileWritten("run", &mwaxstats.FileProduct{Kind: mwaxstats.KindAutos})
	assert.NoError(t, pub.Close())
	assert.NoError(t, pub.Close())
}

func TestBadAddress(t *testing.T) {
	_, err := NewPublisher("nonsense")
	assert.Error(t, err)
}
