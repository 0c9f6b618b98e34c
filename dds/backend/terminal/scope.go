package terminal

// Decimate picks width evenly spaced samples out of samples. When there
// are fewer samples than columns every sample is returned.
func Decimate(samples []uint8, width int) []uint8 {
	if width <= 0 || len(samples) == 0 {
		return nil
	}
	if len(samples) <= width {
		out := make([]uint8, len(samples))
		copy(out, samples)
		return out
	}

	out := make([]uint8, width)
	for x := range out {
		out[x] = samples[x*len(samples)/width]
	}
	return out
}

// ScopeRow maps a sample to a row of a trace height rows tall, full scale
// at row 0 and zero at the bottom row.
func ScopeRow(v uint8, height int) int {
	if height <= 1 {
		return 0
	}
	return (255 - int(v)) * (height - 1) / 255
}
