package control

import (
	"fmt"
	"strings"
)

// Mode selects the waveform state of the synthesizer.
type Mode uint8

const (
	Off Mode = iota
	Sine
	Square
	Sawtooth
)

var modeNames = [...]string{
	Off:      "off",
	Sine:     "sine",
	Square:   "square",
	Sawtooth: "sawtooth",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Enabled reports whether the mode drives a non-idle output.
func (m Mode) Enabled() bool {
	return m != Off
}

// ParseMode converts a mode name (case insensitive) into a Mode.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	switch name {
	case "saw":
		return Sawtooth, nil
	case "sq":
		return Square, nil
	case "sin":
		return Sine, nil
	}
	return Off, fmt.Errorf("control: unknown mode %q", s)
}
