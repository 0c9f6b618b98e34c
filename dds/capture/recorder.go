// Package capture records generator output and exports it for inspection.
package capture

import (
	"math"
	"sync"
)

// Recorder accumulates output samples up to a fixed limit. It is safe for
// concurrent use so a display goroutine can read while the generator runs.
type Recorder struct {
	mu      sync.Mutex
	samples []uint8
	limit   int
	dropped uint64
}

// NewRecorder creates a recorder keeping at most limit samples. A limit of
// zero or less keeps everything.
func NewRecorder(limit int) *Recorder {
	r := &Recorder{limit: limit}
	if limit > 0 {
		r.samples = make([]uint8, 0, limit)
	}
	return r
}

// Write appends samples, dropping any past the limit.
func (r *Recorder) Write(samples []uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit > 0 {
		room := r.limit - len(r.samples)
		if room < len(samples) {
			r.dropped += uint64(len(samples) - max(room, 0))
			samples = samples[:max(room, 0)]
		}
	}
	r.samples = append(r.samples, samples...)
}

// Samples returns a copy of the recorded samples.
func (r *Recorder) Samples() []uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint8, len(r.samples))
	copy(out, r.samples)
	return out
}

// Len returns the number of recorded samples.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

// Dropped returns how many samples were discarded because of the limit.
func (r *Recorder) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Stats summarizes a block of output samples.
type Stats struct {
	Count     int
	Min       uint8
	Max       uint8
	Mean      float64
	Crossings int     // rising crossings of the midpoint
	Period    float64 // mean ticks between rising crossings, 0 if fewer than two
}

// Midpoint is the unsigned 8 bit zero level.
const Midpoint = 128

// Analyze computes Stats for samples.
func Analyze(samples []uint8) Stats {
	s := Stats{Count: len(samples)}
	if len(samples) == 0 {
		return s
	}

	s.Min, s.Max = math.MaxUint8, 0
	var sum int
	first, last := -1, -1
	for i, v := range samples {
		sum += int(v)
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		if i > 0 && samples[i-1] < Midpoint && v >= Midpoint {
			s.Crossings++
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	s.Mean = float64(sum) / float64(len(samples))
	if s.Crossings > 1 {
		s.Period = float64(last-first) / float64(s.Crossings-1)
	}
	return s
}
