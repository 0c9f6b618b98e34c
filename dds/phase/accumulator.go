// Package phase implements the wrapping phase accumulator of the
// synthesizer. Overflow of the register is what produces periodicity.
package phase

import (
	"fmt"

	"github.com/valerio/go-dds/dds/bit"
)

const (
	// MinBits is the narrowest supported register.
	MinBits = 8
	// MaxBits is the widest supported register.
	MaxBits = 32
)

// Accumulator is a fixed width unsigned register advanced by a frequency
// word once per clock tick.
type Accumulator struct {
	value uint32
	bits  uint
	mask  uint32
}

// New creates an accumulator of the given width, reset to zero.
func New(bits uint) (*Accumulator, error) {
	if bits < MinBits || bits > MaxBits {
		return nil, fmt.Errorf("phase: width %d outside [%d, %d]", bits, MinBits, MaxBits)
	}
	return &Accumulator{bits: bits, mask: bit.Mask32(bits)}, nil
}

// At returns an accumulator of the given width holding value. The width is
// trusted; callers validate it once up front.
func At(value uint32, bits uint) Accumulator {
	mask := bit.Mask32(bits)
	return Accumulator{value: value & mask, bits: bits, mask: mask}
}

// Advance adds word to the phase modulo 2^width and returns the new phase.
func (a *Accumulator) Advance(word uint32) uint32 {
	a.value = (a.value + (word & a.mask)) & a.mask
	return a.value
}

// Value returns the current phase.
func (a *Accumulator) Value() uint32 {
	return a.value
}

// Top returns the upper n bits of the phase.
func (a *Accumulator) Top(n uint) uint32 {
	return bit.Top(a.value, a.bits, n)
}

// Period returns the number of ticks after which a phase advanced by word
// repeats, 2^bits / gcd(word, 2^bits). A zero word never advances and
// reports 0.
func Period(word uint32, bits uint) uint64 {
	word &= bit.Mask32(bits)
	if word == 0 {
		return 0
	}
	full := uint64(1) << bits
	return full / gcd(uint64(word), full)
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
