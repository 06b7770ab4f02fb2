package getbytes

import (
	"encoding/hex"
	"testing"
)

// These expectations assume a little-endian host, like every machine the
// statistics files are produced on.
func TestFromSlice(t *testing.T) {
	var byteslicetests = []struct {
		byteslice []byte
		expect    string
	}{
		{FromSlice([]uint8{0xAB, 0xCD, 0xEF, 0x01}), "abcdef01"},
		{FromSliceUint16([]uint16{0xABCD, 0xEF01, 0x2345, 0x6789}), "cdab01ef45238967"},
		{FromSliceUint16([]uint16{8, 2098}), "08003208"},
		{FromSlice([]uint32{0xABCDEF01, 0x23456789}), "01efcdab89674523"},
		{FromSlice([]int16{1, 2, 3, 4}), "0100020003000400"},
		{FromSliceFloat32([]float32{1, 2}), "0000803f00000040"},
		{FromSlice([]float64{2, 4}), "00000000000000400000000000001040"},
		{FromSliceFloat32([]float32{}), ""},
		{FromSliceUint16(nil), ""},
	}
	for _, bt := range byteslicetests {
		if have := hex.EncodeToString(bt.byteslice); have != bt.expect {
			t.Errorf("want %v, have %v", bt.expect, have)
		}
	}
}

func TestToSlice(t *testing.T) {
	f := []float32{1.5, -999, 142.34}
	back := ToSlice[float32](FromSliceFloat32(f))
	if len(back) != len(f) {
		t.Fatalf("ToSlice returned %d values, want %d", len(back), len(f))
	}
	for i := range f {
		if back[i] != f[i] {
			t.Errorf("ToSlice()[%d] = %v, want %v", i, back[i], f[i])
		}
	}

	u := ToSlice[uint16]([]byte{0x08, 0x00, 0x32, 0x08, 0xff})
	if len(u) != 2 || u[0] != 8 || u[1] != 2098 {
		t.Errorf("ToSlice[uint16] = %v, want [8 2098] with odd byte dropped", u)
	}
}
