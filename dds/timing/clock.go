package timing

import (
	"fmt"
	"math"
	"time"
)

// Clock constants for the reference board.
const (
	// ClockPeriod is the period of the synthesizer clock (20 ns).
	ClockPeriod = 20 * time.Nanosecond
	// ClockHz is the synthesizer clock rate.
	ClockHz = float64(time.Second / ClockPeriod)
)

// OutputFrequency returns the fundamental of the synthesized waveform in Hz:
// word * clockHz / 2^phaseBits.
func OutputFrequency(word uint32, phaseBits uint, clockHz float64) float64 {
	return float64(word) * clockHz / math.Ldexp(1, int(phaseBits))
}

// Resolution returns the smallest frequency step, clockHz / 2^phaseBits.
func Resolution(phaseBits uint, clockHz float64) float64 {
	return OutputFrequency(1, phaseBits, clockHz)
}

// TuningWord returns the frequency word closest to hz. Frequencies at or
// above the Nyquist limit cannot be synthesized and return an error.
func TuningWord(hz float64, phaseBits uint, clockHz float64) (uint32, error) {
	if hz < 0 || hz >= clockHz/2 {
		return 0, fmt.Errorf("timing: %.3f Hz outside [0, %.3f)", hz, clockHz/2)
	}
	word := math.Round(hz * math.Ldexp(1, int(phaseBits)) / clockHz)
	return uint32(word), nil
}
