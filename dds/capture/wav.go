package capture

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth    = 16
	wavChannels    = 1
	wavFormatPCM   = 1
	DefaultWAVRate = 48000
)

// ToPCM16 maps unsigned 8 bit samples around the midpoint to signed 16 bit
// PCM values.
func ToPCM16(samples []uint8) []int {
	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = (int(v) - Midpoint) << 8
	}
	return data
}

// WriteWAV encodes samples as a mono 16 bit PCM WAV stream. Each generator
// tick becomes one frame at sampleRate.
func WriteWAV(w io.WriteSeeker, samples []uint8, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("capture: invalid sample rate %d", sampleRate)
	}

	enc := wav.NewEncoder(w, sampleRate, wavBitDepth, wavChannels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
		Data:           ToPCM16(samples),
		SourceBitDepth: wavBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("capture: wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("capture: wav: %w", err)
	}
	return nil
}

// SaveWAV writes samples to a WAV file at path.
func SaveWAV(path string, samples []uint8, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	if err := WriteWAV(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
