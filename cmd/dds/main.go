package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"github.com/valerio/go-dds/dds"
	"github.com/valerio/go-dds/dds/backend"
	"github.com/valerio/go-dds/dds/backend/headless"
	"github.com/valerio/go-dds/dds/backend/terminal"
	"github.com/valerio/go-dds/dds/capture"
	"github.com/valerio/go-dds/dds/control"
	"github.com/valerio/go-dds/dds/phase"
	"github.com/valerio/go-dds/dds/sine"
	"github.com/valerio/go-dds/dds/timing"
)

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running dds", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "dds"
	app.Description = "A clock-synchronous direct digital synthesis waveform generator"
	app.Usage = "dds [global options] command [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "phase-bits",
			Usage: "Width of the phase accumulator",
			Value: dds.DefaultPhaseBits,
		},
		cli.IntFlag{
			Name:  "table-bits",
			Usage: "log2 of the sine table size",
			Value: dds.DefaultTableBits,
		},
		cli.StringFlag{
			Name:  "layout",
			Usage: "Control port layout: encoded or onehot",
			Value: "encoded",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		{
			Name:   "table",
			Usage:  "Print the sine lookup table",
			Action: printTable,
			Flags: []cli.Flag{
				cli.IntFlag{Name: "amplitude", Value: sine.DefaultAmplitude, Usage: "Peak deviation from the midpoint"},
				cli.IntFlag{Name: "offset", Value: sine.DefaultOffset, Usage: "Midpoint"},
				cli.IntFlag{Name: "columns", Value: 16, Usage: "Entries per output line"},
			},
		},
		{
			Name:   "info",
			Usage:  "Show output frequency and period for a frequency word",
			Action: printInfo,
			Flags:  waveformFlags(),
		},
		{
			Name:   "run",
			Usage:  "Run the generator headless, optionally capturing to WAV",
			Action: runHeadless,
			Flags: append(waveformFlags(),
				cli.IntFlag{Name: "ticks", Value: 1 << 16, Usage: "Number of clock ticks to run"},
				cli.IntFlag{Name: "block", Value: backend.DefaultBlockSize, Usage: "Ticks per block"},
				cli.StringFlag{Name: "wav", Usage: "Write the output samples to this WAV file"},
				cli.IntFlag{Name: "sample-rate", Value: capture.DefaultWAVRate, Usage: "WAV sample rate, one sample per tick"},
				cli.IntFlag{Name: "wav-bits", Value: 16, Usage: "WAV bit depth: 8 (raw samples) or 16"},
				cli.IntFlag{Name: "wav-limit", Value: 0, Usage: "Maximum samples kept for the WAV file (0 = all)"},
			),
		},
		{
			Name:   "scope",
			Usage:  "Show the output on a terminal oscilloscope",
			Action: runScope,
			Flags: append(waveformFlags(),
				cli.IntFlag{Name: "fps", Value: timing.DefaultFPS, Usage: "Screen refresh rate"},
				cli.BoolFlag{Name: "precise", Usage: "Use drift compensated frame pacing"},
				cli.IntFlag{Name: "block", Value: backend.DefaultBlockSize, Usage: "Ticks shown per frame"},
			),
		},
	}
	return app
}

func waveformFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{Name: "freq", Value: 64, Usage: "Frequency tuning word"},
		cli.Float64Flag{Name: "hz", Usage: "Target output frequency, overrides --freq"},
		cli.Float64Flag{Name: "clock", Value: timing.ClockHz, Usage: "Synthesizer clock in Hz"},
		cli.StringFlag{Name: "mode", Value: "sine", Usage: "Waveform: off, sine, square, sawtooth"},
	}
}

func setupLogging(c *cli.Context) error {
	level := slog.LevelInfo
	if c.GlobalBool("debug") {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	return nil
}

func configFromFlags(c *cli.Context) (dds.Config, error) {
	cfg := dds.DefaultConfig()
	cfg.PhaseBits = uint(c.GlobalInt("phase-bits"))
	cfg.TableBits = uint(c.GlobalInt("table-bits"))

	layout, err := control.ParseLayout(c.GlobalString("layout"))
	if err != nil {
		return cfg, err
	}
	cfg.Layout = layout
	return cfg, cfg.Validate()
}

// waveform resolves the word and mode requested on the command line.
func waveform(c *cli.Context, phaseBits uint) (uint16, control.Mode, error) {
	mode, err := control.ParseMode(c.String("mode"))
	if err != nil {
		return 0, control.Off, err
	}

	if hz := c.Float64("hz"); hz > 0 {
		word, err := timing.TuningWord(hz, phaseBits, c.Float64("clock"))
		if err != nil {
			return 0, mode, err
		}
		if word > 0xFFFF {
			return 0, mode, fmt.Errorf("%.3f Hz needs word %d, wider than 16 bits", hz, word)
		}
		return uint16(word), mode, nil
	}

	freq := c.Int("freq")
	if freq < 0 || freq > 0xFFFF {
		return 0, mode, fmt.Errorf("frequency word %d outside [0, 65535]", freq)
	}
	return uint16(freq), mode, nil
}

func printTable(c *cli.Context) error {
	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}
	table, err := sine.Build(1<<cfg.TableBits, c.Int("amplitude"), c.Int("offset"))
	if err != nil {
		return err
	}
	return writeTable(c.App.Writer, table.Samples(), c.Int("columns"))
}

func writeTable(w io.Writer, samples []uint8, columns int) error {
	if columns <= 0 {
		columns = 16
	}
	for i, v := range samples {
		if i%columns == 0 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%4d:", i)
		}
		fmt.Fprintf(w, " %3d", v)
	}
	_, err := fmt.Fprintln(w)
	return err
}

func printInfo(c *cli.Context) error {
	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}
	word, mode, err := waveform(c, cfg.PhaseBits)
	if err != nil {
		return err
	}

	clock := c.Float64("clock")
	w := c.App.Writer
	fmt.Fprintf(w, "mode:        %s\n", mode)
	fmt.Fprintf(w, "word:        %d (0x%04X)\n", word, word)
	fmt.Fprintf(w, "clock:       %.0f Hz\n", clock)
	fmt.Fprintf(w, "output:      %.6f Hz\n", timing.OutputFrequency(uint32(word), cfg.PhaseBits, clock))
	fmt.Fprintf(w, "resolution:  %.6f Hz\n", timing.Resolution(cfg.PhaseBits, clock))
	if period := phase.Period(uint32(word), cfg.PhaseBits); period > 0 {
		fmt.Fprintf(w, "period:      %d ticks\n", period)
	} else {
		fmt.Fprintf(w, "period:      frozen\n")
	}
	return nil
}

func newRunner(c *cli.Context, b backend.Backend, limiter timing.Limiter, title string) (*backend.Runner, error) {
	cfg, err := configFromFlags(c)
	if err != nil {
		return nil, err
	}
	word, mode, err := waveform(c, cfg.PhaseBits)
	if err != nil {
		return nil, err
	}

	gen, err := dds.New(cfg)
	if err != nil {
		return nil, err
	}

	r := backend.NewRunner(dds.NewDriver(gen), b, limiter, backend.BackendConfig{
		Title:     title,
		ClockHz:   c.Float64("clock"),
		PhaseBits: cfg.PhaseBits,
		BlockSize: c.Int("block"),
	})
	r.Start(word, mode)
	return r, nil
}

func runHeadless(c *cli.Context) error {
	ticks := c.Int("ticks")
	if ticks <= 0 {
		return errors.New("run requires --ticks with a positive value")
	}

	captureConfig := headless.CaptureConfig{
		Enabled:    c.String("wav") != "",
		Path:       c.String("wav"),
		SampleRate: c.Int("sample-rate"),
		BitDepth:   c.Int("wav-bits"),
		Limit:      c.Int("wav-limit"),
	}

	r, err := newRunner(c, headless.New(uint64(ticks), captureConfig), nil, "dds")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.Run(ctx)
}

func runScope(c *cli.Context) error {
	var limiter timing.Limiter
	if c.Bool("precise") {
		limiter = timing.NewAdaptiveLimiter(c.Int("fps"))
	} else {
		ticker := timing.NewTickerLimiter(c.Int("fps"))
		defer ticker.Stop()
		limiter = ticker
	}

	r, err := newRunner(c, terminal.New(nil), limiter, "dds scope")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.Run(ctx)
}
