package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-dds/dds"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"dds"}, args...))
	return out.String(), err
}

func TestTableCommand(t *testing.T) {
	out, err := run(t, "--table-bits", "4", "table", "--columns", "8")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "   0: 128 177 218 245 255 245 218 177", lines[0])
	assert.Equal(t, "   8: 128  79  38  11   1  11  38  79", lines[1])
}

func TestTableCommand_InvalidAmplitude(t *testing.T) {
	_, err := run(t, "table", "--amplitude", "300")
	assert.Error(t, err)
}

func TestTableCommand_InvalidGeometry(t *testing.T) {
	_, err := run(t, "--table-bits", "40", "table")
	assert.ErrorIs(t, err, dds.ErrConfig)

	_, err = run(t, "--phase-bits", "8", "--table-bits", "12", "table")
	assert.ErrorIs(t, err, dds.ErrConfig)
}

func TestInfoCommand(t *testing.T) {
	out, err := run(t, "info", "--freq", "64")
	require.NoError(t, err)
	assert.Contains(t, out, "word:        64 (0x0040)")
	assert.Contains(t, out, "output:      48828.125000 Hz")
	assert.Contains(t, out, "period:      1024 ticks")

	out, err = run(t, "info", "--freq", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "frozen")

	out, err = run(t, "info", "--hz", "48828.125")
	require.NoError(t, err)
	assert.Contains(t, out, "word:        64 (0x0040)")
}

func TestInfoCommand_Errors(t *testing.T) {
	_, err := run(t, "info", "--freq", "70000")
	assert.Error(t, err)

	_, err = run(t, "info", "--mode", "triangle")
	assert.Error(t, err)

	_, err = run(t, "--layout", "gray", "info")
	assert.Error(t, err)

	_, err = run(t, "--phase-bits", "4", "info")
	assert.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	_, err := run(t, "run", "--ticks", "4096", "--mode", "sawtooth", "--freq", "256", "--wav", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	require.NoError(t, err)
	require.Len(t, buf.Data, 4096)

	// one ramp step per tick, starting at phase zero
	for i := 0; i < 256; i++ {
		assert.Equal(t, (i-128)<<8, buf.Data[i], "sample %d", i)
	}
}

func TestRunCommand_EightBit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out8.wav")
	_, err := run(t, "run", "--ticks", "512", "--mode", "sawtooth", "--freq", "256", "--wav", path, "--wav-bits", "8")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(raw), 512)

	data := raw[len(raw)-512:]
	for i := 0; i < 256; i++ {
		assert.Equal(t, uint8(i), data[i], "sample %d", i)
	}
}

func TestRunCommand_NeedsTicks(t *testing.T) {
	_, err := run(t, "run", "--ticks", "0")
	assert.Error(t, err)
}
