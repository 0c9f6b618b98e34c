package capture

import (
	"fmt"
	"io"
	"os"

	youpywav "github.com/youpy/go-wav"
)

// WriteWAV8 encodes samples unchanged as a mono 8 bit unsigned PCM WAV
// stream, the generator's native output format.
func WriteWAV8(w io.Writer, samples []uint8, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("capture: invalid sample rate %d", sampleRate)
	}

	frames := make([]youpywav.Sample, len(samples))
	for i, v := range samples {
		frames[i].Values[0] = int(v)
	}

	enc := youpywav.NewWriter(w, uint32(len(frames)), wavChannels, uint32(sampleRate), 8)
	if enc == nil {
		return fmt.Errorf("capture: wav: bad parameters for 8 bit encoding")
	}
	if err := enc.WriteSamples(frames); err != nil {
		return fmt.Errorf("capture: wav: %w", err)
	}
	return nil
}

// Save writes samples to a WAV file at path with the given bit depth, 8
// or 16.
func Save(path string, samples []uint8, sampleRate, bitDepth int) error {
	switch bitDepth {
	case 16, 0:
		return SaveWAV(path, samples, sampleRate)
	case 8:
	default:
		return fmt.Errorf("capture: unsupported bit depth %d", bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if err := WriteWAV8(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
