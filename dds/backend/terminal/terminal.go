package terminal

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-dds/dds/backend"
	"github.com/valerio/go-dds/dds/control"
	"github.com/valerio/go-dds/dds/timing"
)

const (
	statusHeight = 1
	logHeight    = 5
	minTraceRows = 4
	traceRune    = '█'
)

// Backend implements the Backend interface as a tcell oscilloscope.
type Backend struct {
	screen    tcell.Screen
	config    backend.BackendConfig
	logBuffer *LogBuffer
	prevLog   *slog.Logger
	running   bool
}

// New creates a terminal backend. A nil screen opens the real terminal on
// Init.
func New(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the terminal and redirects logging to the log pane.
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	t.logBuffer = NewLogBuffer(100)
	t.prevLog = slog.Default()
	slog.SetDefault(slog.New(NewLogBufferHandler(t.logBuffer, slog.LevelInfo)))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()
	t.running = true

	slog.Info("Terminal scope initialized")
	return nil
}

// Update draws the block and translates pending key presses into events.
func (t *Backend) Update(block backend.Block) ([]backend.Event, error) {
	var events []backend.Event

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if e, ok := t.keyEvent(ev, block.State.Register.Frequency); ok {
				events = append(events, e)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	t.render(block)
	t.screen.Show()

	return events, nil
}

// Cleanup restores the terminal and the previous logger.
func (t *Backend) Cleanup() error {
	if t.prevLog != nil {
		slog.SetDefault(t.prevLog)
	}
	if t.screen != nil && t.running {
		t.running = false
		t.screen.Fini()
	}
	return nil
}

var runeModes = map[rune]control.Mode{
	'0': control.Off,
	'1': control.Sine,
	'2': control.Square,
	'3': control.Sawtooth,
}

func (t *Backend) keyEvent(ev *tcell.EventKey, word uint16) (backend.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return backend.Event{Action: backend.ActionQuit}, true
	case tcell.KeyRight:
		if word < math.MaxUint16 {
			word++
		}
		return backend.Event{Action: backend.ActionFrequency, Word: word}, true
	case tcell.KeyLeft:
		if word > 0 {
			word--
		}
		return backend.Event{Action: backend.ActionFrequency, Word: word}, true
	case tcell.KeyRune:
	default:
		return backend.Event{}, false
	}

	r := ev.Rune()
	if mode, ok := runeModes[r]; ok {
		slog.Info("Mode selected", "mode", mode)
		return backend.Event{Action: backend.ActionSelectMode, Mode: mode}, true
	}

	switch r {
	case 'q':
		return backend.Event{Action: backend.ActionQuit}, true
	case 'r':
		slog.Info("Reset requested")
		return backend.Event{Action: backend.ActionReset}, true
	case '+', '=':
		next := word << 1
		if word == 0 {
			next = 1
		} else if next < word {
			next = word
		}
		return backend.Event{Action: backend.ActionFrequency, Word: next}, true
	case '-':
		return backend.Event{Action: backend.ActionFrequency, Word: word >> 1}, true
	}
	return backend.Event{}, false
}

func (t *Backend) render(block backend.Block) {
	t.screen.Clear()
	termWidth, termHeight := t.screen.Size()

	t.drawStatus(block, termWidth)

	traceHeight := termHeight - statusHeight - logHeight
	if traceHeight < minTraceRows {
		traceHeight = termHeight - statusHeight
	}
	t.drawTrace(block.Samples, statusHeight, termWidth, traceHeight)

	if logTop := statusHeight + traceHeight; logTop < termHeight {
		t.drawLogs(logTop, termWidth, termHeight-logTop)
	}
}

func (t *Backend) drawStatus(block backend.Block, width int) {
	st := block.State
	hz := timing.OutputFrequency(uint32(st.Register.Frequency), t.config.PhaseBits, t.config.ClockHz)
	status := fmt.Sprintf("%s  mode=%s word=%d (%.1f Hz)  tick=%d  [0-3] mode  [+/-] word  [r] reset  [q] quit",
		t.config.Title, st.Register.Mode, st.Register.Frequency, hz, block.Tick)

	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	t.drawText(0, 0, width, status, style)
}

func (t *Backend) drawTrace(samples []uint8, top, width, height int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for x, v := range Decimate(samples, width) {
		t.screen.SetContent(x, top+ScopeRow(v, height), traceRune, nil, style)
	}
}

func (t *Backend) drawLogs(top, width, height int) {
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.GetRecent(height) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		}
		t.drawText(0, top+i, width, FormatLogEntry(entry), style)
	}
}

func (t *Backend) drawText(x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, ch := range text {
		if col >= width {
			break
		}
		t.screen.SetContent(x+col, y, ch, nil, style)
		col++
	}
}
