package backend

import (
	"github.com/valerio/go-dds/dds"
	"github.com/valerio/go-dds/dds/control"
)

// Backend consumes the generator's output one block at a time.
// Backends are responsible for:
// - Presenting or storing the samples (terminal scope, capture files, logs)
// - Translating platform-specific input to Events
// - Deciding when a run is finished
type Backend interface {
	// Init configures the backend. This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update receives the next block of output samples and returns the
	// events the backend wants applied before the next block.
	Update(block Block) ([]Event, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title     string
	ClockHz   float64 // synthesizer clock, for frequency readouts
	PhaseBits uint
	BlockSize int // samples per Update
}

// Block is a contiguous run of output samples and the generator state at
// its end. Samples is reused by the runner and only valid during Update.
type Block struct {
	Samples []uint8
	State   dds.State
	Tick    uint64 // generator tick count after the last sample
}

// Action is something a backend asks the runner to do.
type Action int

const (
	ActionQuit Action = iota
	ActionSelectMode
	ActionFrequency // set the frequency word to Event.Word
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionSelectMode:
		return "select-mode"
	case ActionFrequency:
		return "frequency"
	case ActionReset:
		return "reset"
	}
	return "unknown"
}

// Event is an Action with its arguments.
type Event struct {
	Action Action
	Mode   control.Mode
	Word   uint16
}
