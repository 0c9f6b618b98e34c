package dds

import (
	"errors"
	"fmt"

	"github.com/valerio/go-dds/dds/control"
	"github.com/valerio/go-dds/dds/phase"
	"github.com/valerio/go-dds/dds/sine"
)

// Default register geometry. A 16 bit phase and a 1024 entry table give a
// period of exactly 1024 ticks for frequency word 64.
const (
	DefaultPhaseBits = 16
	DefaultTableBits = sine.DefaultBits
)

var ErrConfig = errors.New("dds: invalid configuration")

// Config describes the generator geometry and its control port layout.
type Config struct {
	PhaseBits uint // width of the phase accumulator
	TableBits uint // log2 of the sine table size
	Amplitude int  // sine peak deviation
	Offset    int  // sine midpoint
	Layout    control.Layout
}

// DefaultConfig returns the reference geometry with the encoded layout.
func DefaultConfig() Config {
	return Config{
		PhaseBits: DefaultPhaseBits,
		TableBits: DefaultTableBits,
		Amplitude: sine.DefaultAmplitude,
		Offset:    sine.DefaultOffset,
		Layout:    control.EncodedLayout{},
	}
}

// Validate checks the geometry for consistency.
func (c Config) Validate() error {
	if _, err := phase.New(c.PhaseBits); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if c.TableBits < 2 || c.TableBits > 16 {
		return fmt.Errorf("%w: table bits %d outside [2, 16]", ErrConfig, c.TableBits)
	}
	if c.TableBits > c.PhaseBits {
		return fmt.Errorf("%w: table bits %d exceed phase width %d", ErrConfig, c.TableBits, c.PhaseBits)
	}
	if c.Layout == nil {
		return fmt.Errorf("%w: no control layout", ErrConfig)
	}
	return nil
}

func (c Config) table() (sine.Table, error) {
	if c.TableBits == sine.DefaultBits && c.Amplitude == sine.DefaultAmplitude && c.Offset == sine.DefaultOffset {
		return sine.Default(), nil
	}
	t, err := sine.Build(1<<c.TableBits, c.Amplitude, c.Offset)
	if err != nil {
		return sine.Table{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return t, nil
}
