// Package dds models a clock-synchronous direct digital synthesis waveform
// generator. Each call to Tick is one rising clock edge: every register's
// next value is computed from the pre-edge state and all of them commit
// together.
package dds

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-dds/dds/control"
	"github.com/valerio/go-dds/dds/phase"
	"github.com/valerio/go-dds/dds/sine"
	"github.com/valerio/go-dds/dds/synth"
)

// Inputs are the ports sampled on a clock edge.
type Inputs struct {
	Reset   bool  // asserted reset, zeroes every register
	Control uint8 // control word, decoded by the configured layout
	Data    uint8 // data port, latched into the frequency word on load strobes
}

// State is the full register contents of the generator.
type State struct {
	Register control.Register // latched mode and frequency word
	Phase    uint32           // phase accumulator
	Tap      uint32           // phase as seen by the synthesizer, one tick behind
	ROM      uint8            // registered sine table read of Tap
	Sample   uint8            // synthesizer output register
	Out      uint8            // output latch, the observable port
}

func (s State) String() string {
	return fmt.Sprintf("mode=%s freq=0x%04X phase=0x%X tap=0x%X rom=%d sample=%d out=%d",
		s.Register.Mode, s.Register.Frequency, s.Phase, s.Tap, s.ROM, s.Sample, s.Out)
}

// Step computes the state after one clock edge. It is a pure function of
// its arguments.
func Step(cfg Config, table sine.Table, cur State, in Inputs) State {
	if in.Reset {
		return State{}
	}

	var next State
	next.Register = cur.Register.Next(cfg.Layout.Decode(in.Control), in.Data)

	acc := phase.At(cur.Phase, cfg.PhaseBits)
	next.Tap = acc.Value()
	next.ROM = table.Lookup(acc.Top(cfg.TableBits))
	next.Sample = synth.Sample(cur.Register.Mode, cur.Tap, cfg.PhaseBits, cur.ROM)
	next.Out = cur.Sample

	// the accumulator is held at zero while idle
	if cur.Register.Mode.Enabled() {
		next.Phase = acc.Advance(uint32(cur.Register.Frequency))
	}
	return next
}

// SettleTicks is the number of ticks a mode write needs to reach the output.
// Selecting Off from any state zeroes the output after SettleTicks ticks.
// Selecting a waveform from Off makes tick SettleTicks+1 return the sample
// at phase zero.
const SettleTicks = 3

// Generator is a DDS core driven one clock tick at a time.
type Generator struct {
	cfg   Config
	table sine.Table
	cur   State
	ticks uint64
}

// New creates a generator in its reset state.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table, err := cfg.table()
	if err != nil {
		return nil, err
	}

	slog.Debug("DDS generator created",
		"phase_bits", cfg.PhaseBits,
		"table_bits", table.Bits(),
		"table_size", table.Len(),
		"layout", cfg.Layout.Name())

	return &Generator{cfg: cfg, table: table}, nil
}

// Tick advances the generator by one clock edge and returns the output
// latch after the edge.
func (g *Generator) Tick(in Inputs) uint8 {
	next := Step(g.cfg, g.table, g.cur, in)
	if next.Register.Mode != g.cur.Register.Mode {
		slog.Debug("Mode change latched", "tick", g.ticks+1, "old", g.cur.Register.Mode, "new", next.Register.Mode)
	}
	g.cur = next
	g.ticks++
	return g.cur.Out
}

// Reset returns every register to its power-on value.
func (g *Generator) Reset() {
	g.cur = State{}
}

// Output returns the current output latch.
func (g *Generator) Output() uint8 {
	return g.cur.Out
}

// State returns a snapshot of all registers.
func (g *Generator) State() State {
	return g.cur
}

// Ticks returns the number of clock edges since creation.
func (g *Generator) Ticks() uint64 {
	return g.ticks
}

func (g *Generator) Config() Config {
	return g.cfg
}

func (g *Generator) Table() sine.Table {
	return g.table
}

// OutputPeriod returns the waveform period in ticks for the latched
// frequency word, or 0 when the output is frozen.
func (g *Generator) OutputPeriod() uint64 {
	return phase.Period(uint32(g.cur.Register.Frequency), g.cfg.PhaseBits)
}
