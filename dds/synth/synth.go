// Package synth maps the phase register and the selected mode to an
// output sample.
package synth

import (
	"github.com/valerio/go-dds/dds/bit"
	"github.com/valerio/go-dds/dds/control"
)

const (
	// SquareHigh is the square wave level while the phase MSB is set.
	SquareHigh uint8 = 0xFF
	// SquareLow is the square wave level for the first half period.
	SquareLow uint8 = 0x00
	// rampBits is the number of phase bits used as a sawtooth sample.
	rampBits = 8
)

// Sample returns the synthesizer output for mode. phase is the phaseBits
// wide accumulator value and rom is the registered sine table read. Every
// mode is total: unknown modes produce the idle output.
func Sample(mode control.Mode, phase uint32, phaseBits uint, rom uint8) uint8 {
	switch mode {
	case control.Sine:
		return rom
	case control.Square:
		if bit.IsSet32(phaseBits-1, phase) {
			return SquareHigh
		}
		return SquareLow
	case control.Sawtooth:
		return uint8(bit.Top(phase, phaseBits, rampBits))
	default:
		return 0
	}
}
