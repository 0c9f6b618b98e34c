package dds

import (
	"github.com/valerio/go-dds/dds/bit"
	"github.com/valerio/go-dds/dds/control"
)

// Driver issues control port write sequences to a Generator. It keeps the
// last control word on the port between calls, the way a register would
// hold it.
type Driver struct {
	gen     *Generator
	layout  control.Layout
	control uint8
	data    uint8
}

// NewDriver returns a driver bound to gen.
func NewDriver(gen *Generator) *Driver {
	return &Driver{gen: gen, layout: gen.Config().Layout}
}

// Generator returns the driven generator.
func (d *Driver) Generator() *Generator {
	return d.gen
}

// HoldReset asserts reset for n ticks and then releases it with an idle
// control word.
func (d *Driver) HoldReset(n int) {
	d.control, d.data = 0, 0
	for i := 0; i < n; i++ {
		d.gen.Tick(Inputs{Reset: true})
	}
}

// LoadFrequency writes word through the low and high byte strobes, one
// tick each. The mode field is idle during the writes, which parks the
// phase at zero.
func (d *Driver) LoadFrequency(word uint16) {
	d.write(control.Command{LoadLow: true}, bit.Low(word))
	d.gen.Tick(d.inputs())
	d.write(control.Command{LoadHigh: true}, bit.High(word))
	d.gen.Tick(d.inputs())
	d.write(control.Command{}, 0)
}

// Select puts mode on the control port. It takes effect on the next tick.
func (d *Driver) Select(mode control.Mode) {
	d.write(control.Command{Mode: mode}, 0)
}

// Idle ticks n times with the current port values.
func (d *Driver) Idle(n int) {
	for i := 0; i < n; i++ {
		d.gen.Tick(d.inputs())
	}
}

// Run ticks n times and passes every output sample to fn.
func (d *Driver) Run(n int, fn func(tick int, out uint8)) {
	for i := 0; i < n; i++ {
		out := d.gen.Tick(d.inputs())
		if fn != nil {
			fn(i, out)
		}
	}
}

// Fill ticks once per element of buf and stores the output samples.
func (d *Driver) Fill(buf []uint8) {
	for i := range buf {
		buf[i] = d.gen.Tick(d.inputs())
	}
}

// Program loads word, selects mode and waits out the settling ticks. The
// next tick returns the new waveform's phase zero sample.
func (d *Driver) Program(word uint16, mode control.Mode) {
	d.Select(control.Off)
	d.Idle(1)
	d.LoadFrequency(word)
	d.Select(mode)
	d.Idle(SettleTicks)
}

func (d *Driver) write(cmd control.Command, data uint8) {
	d.control = d.layout.Encode(cmd)
	d.data = data
}

func (d *Driver) inputs() Inputs {
	return Inputs{Control: d.control, Data: d.data}
}
