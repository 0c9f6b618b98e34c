package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-dds/dds"
	"github.com/valerio/go-dds/dds/control"
	"github.com/valerio/go-dds/dds/timing"
)

// DefaultBlockSize is the number of ticks generated per Update.
const DefaultBlockSize = 1024

// resetTicks is how long reset is held when a backend requests one.
const resetTicks = 10

var errNoBackend = errors.New("backend: no backend")

// Runner drives a generator and feeds its output to a backend until the
// backend quits or the context is cancelled.
type Runner struct {
	driver  *dds.Driver
	backend Backend
	limiter timing.Limiter
	config  BackendConfig

	word uint16
	mode control.Mode
}

// NewRunner binds a driver and backend. A nil limiter runs unthrottled.
func NewRunner(driver *dds.Driver, b Backend, limiter timing.Limiter, config BackendConfig) *Runner {
	if limiter == nil {
		limiter = timing.NewNoOpLimiter()
	}
	if config.BlockSize <= 0 {
		config.BlockSize = DefaultBlockSize
	}
	if config.PhaseBits == 0 {
		config.PhaseBits = driver.Generator().Config().PhaseBits
	}
	if config.ClockHz == 0 {
		config.ClockHz = timing.ClockHz
	}
	return &Runner{driver: driver, backend: b, limiter: limiter, config: config}
}

// Start programs the initial waveform.
func (r *Runner) Start(word uint16, mode control.Mode) {
	r.word, r.mode = word, mode
	r.driver.Program(word, mode)
	slog.Info("Waveform programmed",
		"mode", mode,
		"word", word,
		"hz", timing.OutputFrequency(uint32(word), r.config.PhaseBits, r.config.ClockHz))
}

// Run initializes the backend, streams blocks until done and cleans up.
func (r *Runner) Run(ctx context.Context) (err error) {
	if r.backend == nil {
		return errNoBackend
	}
	if err := r.backend.Init(r.config); err != nil {
		return fmt.Errorf("backend init: %w", err)
	}
	defer func() {
		if cerr := r.backend.Cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("backend cleanup: %w", cerr)
		}
	}()

	gen := r.driver.Generator()
	buf := make([]uint8, r.config.BlockSize)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Run cancelled", "ticks", gen.Ticks())
			return nil
		default:
		}

		r.driver.Fill(buf)
		events, err := r.backend.Update(Block{Samples: buf, State: gen.State(), Tick: gen.Ticks()})
		if err != nil {
			return err
		}

		for _, ev := range events {
			if ev.Action == ActionQuit {
				return nil
			}
			r.apply(ev)
		}
		if len(events) > 0 {
			// event handling stalls the loop, restart frame pacing
			r.limiter.Reset()
		}

		r.limiter.WaitForNextFrame()
	}
}

func (r *Runner) apply(ev Event) {
	slog.Debug("Applying backend event", "action", ev.Action, "mode", ev.Mode, "word", ev.Word)

	switch ev.Action {
	case ActionSelectMode:
		r.Start(r.word, ev.Mode)
	case ActionFrequency:
		r.Start(ev.Word, r.mode)
	case ActionReset:
		r.driver.HoldReset(resetTicks)
		r.Start(r.word, r.mode)
	}
}
