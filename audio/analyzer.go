package audio

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

const (
	minPeak   = 0.01
	peakDecay = 0.995 // per Process call
)

// Analyzer turns mono sample windows into smoothed, normalised band
// energies: Hann window, FFT, logarithmic banding and exponential
// smoothing. Normalisation divides by a slowly decaying running peak so a
// steady signal does not pin every band at 1.
type Analyzer struct {
	numBands int
	fftSize  int
	decay    float64

	fft    *fourier.FFT
	window []float64
	frame  []float64
	coeff  []complex128

	raw  []float64
	norm []float64
	peak float64
}

// NewAnalyzer creates an analyzer for fftSize-sample windows.
func NewAnalyzer(fftSize, numBands int, decay float64) (*Analyzer, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two, got %d", fftSize)
	}
	if numBands < 1 {
		return nil, fmt.Errorf("band count must be at least 1, got %d", numBands)
	}
	if decay < 0 || decay >= 1 {
		return nil, fmt.Errorf("decay must be in [0,1), got %g", decay)
	}

	window := make([]float64, fftSize)
	for i := range window {
		window[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(fftSize-1)))
	}

	return &Analyzer{
		numBands: numBands,
		fftSize:  fftSize,
		decay:    decay,
		fft:      fourier.NewFFT(fftSize),
		window:   window,
		frame:    make([]float64, fftSize),
		coeff:    make([]complex128, fftSize/2+1),
		raw:      make([]float64, numBands),
		norm:     make([]float64, numBands),
		peak:     minPeak,
	}, nil
}

// FFTSize returns the analysis window length in samples.
func (a *Analyzer) FFTSize() int {
	return a.fftSize
}

// Process analyses the most recent fftSize samples of mono. Shorter input
// is ignored.
func (a *Analyzer) Process(mono []float64) {
	if len(mono) < a.fftSize {
		return
	}
	copy(a.frame, mono[len(mono)-a.fftSize:])
	floats.Mul(a.frame, a.window)

	a.coeff = a.fft.Coefficients(a.coeff, a.frame)

	maxBin := a.fftSize / 2
	for b := range a.numBands {
		lo := int(math.Pow(float64(maxBin), float64(b)/float64(a.numBands)))
		hi := int(math.Pow(float64(maxBin), float64(b+1)/float64(a.numBands)))
		if lo < 1 {
			lo = 1
		}
		if hi <= lo {
			hi = lo + 1
		}
		if hi > maxBin {
			hi = maxBin
		}

		sum := 0.0
		count := 0
		for i := lo; i < hi; i++ {
			sum += cmplx.Abs(a.coeff[i])
			count++
		}
		var mag float64
		if count > 0 {
			mag = sum / float64(count)
		}
		a.raw[b] = a.raw[b]*a.decay + mag*(1-a.decay)
	}

	a.peak = math.Max(a.peak*peakDecay, math.Max(floats.Max(a.raw), minPeak))
	for i, v := range a.raw {
		a.norm[i] = v / a.peak
	}
}

// Bands returns the normalised band energies in [0,1].
func (a *Analyzer) Bands() []float64 {
	return a.norm
}

// Raw returns the smoothed band magnitudes before normalisation.
func (a *Analyzer) Raw() []float64 {
	return a.raw
}
