// Package getbytes views numeric slices as raw bytes in the machine's native
// byte order, without copying. Statistics files are written this way: their
// consumers run on the same class of host and read them with native order.
package getbytes

import (
	"unsafe"
)

// Number is the set of element types that can be viewed as bytes.
type Number interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// FromSlice returns the bytes backing d. The result aliases d, so it is only
// valid while d is neither modified nor reallocated.
func FromSlice[T Number](d []T) []byte {
	if len(d) == 0 {
		return []byte{}
	}
	outlength := uintptr(len(d)) * unsafe.Sizeof(d[0])
	return unsafe.Slice((*byte)(unsafe.Pointer(&d[0])), outlength)
}

// FromSliceFloat32 converts a []float32 to []byte using unsafe
func FromSliceFloat32(d []float32) []byte {
	return FromSlice(d)
}

// FromSliceUint16 converts a []uint16 to []byte using unsafe
func FromSliceUint16(d []uint16) []byte {
	return FromSlice(d)
}

// ToSlice copies native-order bytes back into a new []T. Trailing bytes that do
// not fill a whole element are ignored.
func ToSlice[T Number](b []byte) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	out := make([]T, len(b)/size)
	if len(out) > 0 {
		copy(FromSlice(out), b)
	}
	return out
}
