package control

import "github.com/valerio/go-dds/dds/bit"

// Register holds the latched mode and frequency word. It is a value type:
// Next computes the contents after the coming clock edge without touching
// the current ones.
type Register struct {
	Mode      Mode
	Frequency uint16
}

// Next returns the register contents after a clock edge that sampled cmd
// and the data port.
func (r Register) Next(cmd Command, data uint8) Register {
	low, high := bit.Low(r.Frequency), bit.High(r.Frequency)
	if cmd.LoadLow {
		low = data
	}
	if cmd.LoadHigh {
		high = data
	}
	return Register{
		Mode:      cmd.Mode,
		Frequency: bit.Combine(high, low),
	}
}
