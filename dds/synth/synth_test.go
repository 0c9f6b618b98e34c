package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-dds/dds/control"
)

func TestSample_Off(t *testing.T) {
	for _, phase := range []uint32{0, 1, 0x7FFF, 0x8000, 0xFFFF} {
		assert.Equal(t, uint8(0), Sample(control.Off, phase, 16, 200), "phase %04X", phase)
	}
}

func TestSample_Sine(t *testing.T) {
	assert.Equal(t, uint8(177), Sample(control.Sine, 0x1234, 16, 177))
}

func TestSample_Square(t *testing.T) {
	tests := []struct {
		phase    uint32
		bits     uint
		expected uint8
	}{
		{0x0000, 16, SquareLow},
		{0x7FFF, 16, SquareLow},
		{0x8000, 16, SquareHigh},
		{0xFFFF, 16, SquareHigh},
		{0x200, 10, SquareHigh},
		{0x1FF, 10, SquareLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Sample(control.Square, tt.phase, tt.bits, 0), "phase %X/%d", tt.phase, tt.bits)
	}
}

func TestSample_Sawtooth(t *testing.T) {
	tests := []struct {
		phase    uint32
		bits     uint
		expected uint8
	}{
		{0x0000, 16, 0},
		{0x00FF, 16, 0},
		{0x0100, 16, 1},
		{0xAB12, 16, 0xAB},
		{0xFFFF, 16, 0xFF},
		{0x3C, 8, 0x3C},
		{0xFFC00000, 32, 0xFF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Sample(control.Sawtooth, tt.phase, tt.bits, 0), "phase %X/%d", tt.phase, tt.bits)
	}
}

func TestSample_SawtoothIsMonotonicRamp(t *testing.T) {
	var prev uint8
	for phase := uint32(0); phase <= 0xFFFF; phase += 0x40 {
		s := Sample(control.Sawtooth, phase, 16, 0)
		assert.GreaterOrEqual(t, s, prev)
		prev = s
	}
	assert.Equal(t, uint8(0xFF), prev)
	assert.Equal(t, uint8(0), Sample(control.Sawtooth, 0, 16, 0), "ramp wraps at full scale")
}

func TestSample_UnknownModeIsIdle(t *testing.T) {
	assert.Equal(t, uint8(0), Sample(control.Mode(7), 0xFFFF, 16, 99))
}
