package terminal

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-dds/dds"
	"github.com/valerio/go-dds/dds/backend"
	"github.com/valerio/go-dds/dds/control"
	"github.com/valerio/go-dds/dds/sine"
	"github.com/valerio/go-dds/dds/timing"
)

func TestDecimate(t *testing.T) {
	assert.Nil(t, Decimate(nil, 10))
	assert.Nil(t, Decimate([]uint8{1}, 0))
	assert.Equal(t, []uint8{1, 2}, Decimate([]uint8{1, 2}, 10))
	assert.Equal(t, []uint8{0, 2, 4, 6}, Decimate([]uint8{0, 1, 2, 3, 4, 5, 6, 7}, 4))
}

func TestScopeRow(t *testing.T) {
	tests := []struct {
		v        uint8
		height   int
		expected int
	}{
		{255, 18, 0},
		{0, 18, 17},
		{128, 18, 8},
		{1, 18, 16},
		{200, 1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ScopeRow(tt.v, tt.height), "ScopeRow(%d, %d)", tt.v, tt.height)
	}
}

func TestLogBuffer(t *testing.T) {
	lb := NewLogBuffer(3)
	assert.Nil(t, lb.GetRecent(0))

	for i, msg := range []string{"a", "b", "c", "d"} {
		lb.Add(LogEntry{Time: time.Unix(int64(i), 0), Level: slog.LevelInfo, Message: msg})
	}

	recent := lb.GetRecent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "d", recent[0].Message)
	assert.Equal(t, "b", recent[2].Message)
	assert.Len(t, lb.GetRecent(2), 2)
}

func TestLogBufferHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	logger := slog.New(NewLogBufferHandler(lb, slog.LevelInfo))

	logger.Debug("hidden")
	logger.With("mode", "sine").Info("Programmed", "word", 64)

	recent := lb.GetRecent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, "Programmed mode=sine word=64", recent[0].Message)
	assert.Contains(t, FormatLogEntry(recent[0]), "INFO")
}

func TestKeyEvent(t *testing.T) {
	b := New(nil)

	tests := []struct {
		name     string
		ev       *tcell.EventKey
		word     uint16
		expected backend.Event
		ok       bool
	}{
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 64, backend.Event{Action: backend.ActionQuit}, true},
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), 64, backend.Event{Action: backend.ActionQuit}, true},
		{"2 selects square", tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone), 64, backend.Event{Action: backend.ActionSelectMode, Mode: control.Square}, true},
		{"0 selects off", tcell.NewEventKey(tcell.KeyRune, '0', tcell.ModNone), 64, backend.Event{Action: backend.ActionSelectMode, Mode: control.Off}, true},
		{"plus doubles", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), 64, backend.Event{Action: backend.ActionFrequency, Word: 128}, true},
		{"plus from zero", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), 0, backend.Event{Action: backend.ActionFrequency, Word: 1}, true},
		{"plus saturates", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), 0x9000, backend.Event{Action: backend.ActionFrequency, Word: 0x9000}, true},
		{"minus halves", tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), 64, backend.Event{Action: backend.ActionFrequency, Word: 32}, true},
		{"right steps up", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), 64, backend.Event{Action: backend.ActionFrequency, Word: 65}, true},
		{"right stops at max", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), 0xFFFF, backend.Event{Action: backend.ActionFrequency, Word: 0xFFFF}, true},
		{"left steps down", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), 64, backend.Event{Action: backend.ActionFrequency, Word: 63}, true},
		{"left stops at zero", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), 0, backend.Event{Action: backend.ActionFrequency, Word: 0}, true},
		{"r resets", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), 64, backend.Event{Action: backend.ActionReset}, true},
		{"unmapped rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 64, backend.Event{}, false},
		{"unmapped key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), 64, backend.Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := b.keyEvent(tt.ev, tt.word)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, ev)
		})
	}
}

func rowText(cells []tcell.SimCell, width, y int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		runes := cells[y*width+x].Runes
		if len(runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(runes[0])
	}
	return sb.String()
}

func TestBackend_Render(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	b := New(screen)
	require.NoError(t, b.Init(backend.BackendConfig{Title: "dds", ClockHz: timing.ClockHz, PhaseBits: 16}))
	defer b.Cleanup()
	screen.SetSize(80, 24)

	block := backend.Block{
		Samples: sine.Default().Samples(),
		State:   dds.State{Register: control.Register{Mode: control.Sine, Frequency: 64}},
		Tick:    1029,
	}
	events, err := b.Update(block)
	require.NoError(t, err)
	assert.Empty(t, events)

	cells, width, _ := screen.GetContents()
	require.Equal(t, 80, width)

	status := rowText(cells, width, 0)
	assert.Contains(t, status, "mode=sine")
	assert.Contains(t, status, "word=64")
	assert.Contains(t, status, "48828.1 Hz")

	// first column is the midpoint, trace rows start below the status line
	traceHeight := 24 - statusHeight - logHeight
	y := statusHeight + ScopeRow(128, traceHeight)
	assert.Equal(t, traceRune, cells[y*width].Runes[0])

	// the log pane shows the init message
	found := false
	for y := 24 - logHeight; y < 24; y++ {
		if strings.Contains(rowText(cells, width, y), "Terminal scope initialized") {
			found = true
		}
	}
	assert.True(t, found, "log pane should show captured logs")
}

func TestBackend_CleanupRestoresLogger(t *testing.T) {
	before := slog.Default()
	b := New(tcell.NewSimulationScreen("UTF-8"))
	require.NoError(t, b.Init(backend.BackendConfig{}))
	assert.NotEqual(t, before, slog.Default())

	require.NoError(t, b.Cleanup())
	assert.Equal(t, before, slog.Default())
	assert.NoError(t, b.Cleanup(), "cleanup is idempotent")
}
