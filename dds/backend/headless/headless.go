package headless

import (
	"log/slog"

	"github.com/valerio/go-dds/dds/backend"
	"github.com/valerio/go-dds/dds/capture"
)

// Backend runs the generator for a fixed number of ticks without any
// display, optionally recording the output to a WAV file.
type Backend struct {
	config      backend.BackendConfig
	maxTicks    uint64
	ticks       uint64
	blocks      int
	logInterval int
	capture     CaptureConfig
	recorder    *capture.Recorder
}

// CaptureConfig holds configuration for WAV capture
type CaptureConfig struct {
	Enabled    bool
	Path       string
	SampleRate int
	BitDepth   int // 8 or 16, 0 selects 16
	Limit      int // maximum samples kept, 0 for all
}

func New(maxTicks uint64, captureConfig CaptureConfig) *Backend {
	return &Backend{
		maxTicks:    maxTicks,
		logInterval: 64,
		capture:     captureConfig,
	}
}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.config = config
	h.recorder = capture.NewRecorder(h.capture.Limit)

	slog.Info("Running headless mode",
		"ticks", h.maxTicks,
		"block_size", config.BlockSize,
		"capture", h.capture.Path)

	return nil
}

// Update records a block and stops once maxTicks samples were produced.
func (h *Backend) Update(block backend.Block) ([]backend.Event, error) {
	samples := block.Samples
	if remaining := h.maxTicks - h.ticks; uint64(len(samples)) > remaining {
		samples = samples[:remaining]
	}

	h.recorder.Write(samples)
	h.ticks += uint64(len(samples))
	h.blocks++

	if h.blocks%h.logInterval == 0 {
		slog.Info("Tick progress", "completed", h.ticks, "total", h.maxTicks, "state", block.State.String())
	}

	if h.ticks >= h.maxTicks {
		slog.Info("Headless execution completed", "ticks", h.ticks)
		return []backend.Event{{Action: backend.ActionQuit}}, nil
	}

	return nil, nil
}

// Cleanup logs waveform statistics and writes the capture file.
func (h *Backend) Cleanup() error {
	if h.recorder == nil {
		return nil
	}

	samples := h.recorder.Samples()
	stats := capture.Analyze(samples)
	slog.Info("Output statistics",
		"samples", stats.Count,
		"min", stats.Min,
		"max", stats.Max,
		"mean", stats.Mean,
		"period_ticks", stats.Period)

	if dropped := h.recorder.Dropped(); dropped > 0 {
		slog.Warn("Capture limit reached", "dropped", dropped)
	}

	if !h.capture.Enabled {
		return nil
	}

	rate := h.capture.SampleRate
	if rate <= 0 {
		rate = capture.DefaultWAVRate
	}
	if err := capture.Save(h.capture.Path, samples, rate, h.capture.BitDepth); err != nil {
		return err
	}
	slog.Info("Saved capture", "path", h.capture.Path, "samples", len(samples), "sample_rate", rate, "bits", h.capture.BitDepth)
	return nil
}

// Samples returns what has been recorded so far.
func (h *Backend) Samples() []uint8 {
	if h.recorder == nil {
		return nil
	}
	return h.recorder.Samples()
}
