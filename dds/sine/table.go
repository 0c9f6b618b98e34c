// Package sine builds the quantized sine lookup table addressed by the
// upper bits of the phase accumulator.
package sine

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sync"
)

const (
	// DefaultBits is log2 of the default table size.
	DefaultBits = 10
	// DefaultSize is the number of entries in the default table (one full period).
	DefaultSize = 1 << DefaultBits
	// DefaultAmplitude is the peak deviation from the midpoint, 2^7 - 1.
	DefaultAmplitude = 127
	// DefaultOffset is the unsigned 8 bit midpoint.
	DefaultOffset = 128
)

var (
	ErrSize  = errors.New("sine: table size must be a power of two >= 4")
	ErrRange = errors.New("sine: amplitude and offset exceed the 8 bit sample range")
)

// Table is an immutable sequence of unsigned 8 bit sine samples covering
// exactly one period.
type Table struct {
	samples []uint8
	bits    uint
}

// Build computes a table of size entries where entry i is
// round(sin(2*pi*i/size)*amplitude + offset), rounded half away from zero.
func Build(size, amplitude, offset int) (Table, error) {
	if size < 4 || size&(size-1) != 0 {
		return Table{}, fmt.Errorf("%w: got %d", ErrSize, size)
	}
	if amplitude < 0 || offset-amplitude < 0 || offset+amplitude > math.MaxUint8 {
		return Table{}, fmt.Errorf("%w: amplitude %d, offset %d", ErrRange, amplitude, offset)
	}

	samples := make([]uint8, size)
	for i := range samples {
		v := math.Sin(2*math.Pi*float64(i)/float64(size))*float64(amplitude) + float64(offset)
		// math.Round rounds half away from zero
		samples[i] = uint8(math.Round(v))
	}

	return Table{
		samples: samples,
		bits:    uint(bits.TrailingZeros(uint(size))),
	}, nil
}

// MustBuild is like Build but panics on invalid parameters.
func MustBuild(size, amplitude, offset int) Table {
	t, err := Build(size, amplitude, offset)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	defaultOnce  sync.Once
	defaultTable Table
)

// Default returns the shared 1024 entry table with amplitude 127 around 128.
func Default() Table {
	defaultOnce.Do(func() {
		defaultTable = MustBuild(DefaultSize, DefaultAmplitude, DefaultOffset)
	})
	return defaultTable
}

// Len returns the number of entries.
func (t Table) Len() int {
	return len(t.samples)
}

// Bits returns log2 of the table size, the number of phase bits used as index.
func (t Table) Bits() uint {
	return t.bits
}

// Lookup returns the entry at index, masked into range.
func (t Table) Lookup(index uint32) uint8 {
	return t.samples[index&uint32(len(t.samples)-1)]
}

// Samples returns a copy of the table contents.
func (t Table) Samples() []uint8 {
	out := make([]uint8, len(t.samples))
	copy(out, t.samples)
	return out
}
