package audio

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// FileSource analyses a WAV file in simulation time. It never plays the
// file; samples are pulled on the tick goroutine and the file loops.
type FileSource struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	analyzer *Analyzer

	history []float64 // last fftSize mono samples
	chunk   [][2]float64
	owed    float64 // fractional samples carried between ticks
	loops   int
}

// OpenFile decodes the WAV header at path and prepares an analyzer.
func OpenFile(path string, fftSize, numBands int, decay float64) (*FileSource, error) {
	analyzer, err := NewAnalyzer(fftSize, numBands, decay)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening audio: %w", err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if streamer.Len() == 0 {
		_ = streamer.Close()
		return nil, fmt.Errorf("decoding %s: no samples", path)
	}

	slog.Info("audio source opened",
		"path", path,
		"sample_rate", int(format.SampleRate),
		"channels", format.NumChannels,
		"samples", streamer.Len(),
	)

	return &FileSource{
		streamer: streamer,
		format:   format,
		analyzer: analyzer,
		history:  make([]float64, fftSize),
		chunk:    make([][2]float64, 512),
	}, nil
}

// Advance reads dt seconds of audio and re-runs the analysis.
func (s *FileSource) Advance(dt float64) error {
	s.owed += dt * float64(s.format.SampleRate)
	need := int(s.owed)
	s.owed -= float64(need)

	for need > 0 {
		buf := s.chunk
		if need < len(buf) {
			buf = buf[:need]
		}
		n, ok := s.streamer.Stream(buf)
		s.push(buf[:n])
		need -= n
		if !ok || n == 0 {
			if err := s.streamer.Err(); err != nil {
				return fmt.Errorf("streaming audio: %w", err)
			}
			if err := s.streamer.Seek(0); err != nil {
				return fmt.Errorf("rewinding audio: %w", err)
			}
			s.loops++
		}
	}

	s.analyzer.Process(s.history)
	return nil
}

// push appends samples to the history window as a mono mix.
func (s *FileSource) push(samples [][2]float64) {
	if len(samples) == 0 {
		return
	}
	if len(samples) >= len(s.history) {
		samples = samples[len(samples)-len(s.history):]
	}
	keep := len(s.history) - len(samples)
	copy(s.history, s.history[len(samples):])
	for i, smp := range samples {
		s.history[keep+i] = (smp[0] + smp[1]) / 2
	}
}

// Bands returns the analyzer's normalised band energies.
func (s *FileSource) Bands() []float64 {
	return s.analyzer.Bands()
}

// Loops returns how many times the file wrapped around.
func (s *FileSource) Loops() int {
	return s.loops
}

// Close releases the underlying file.
func (s *FileSource) Close() error {
	return s.streamer.Close()
}
