package transform

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Gonum wraps a gonum real FFT. Only float64 is supported.
//
// gonum panics on malformed buffers; Forward and Inverse recover those panics
// and report them as ErrBackend.
type Gonum struct {
	fft *fourier.FFT
}

// NewGonum creates a gonum backed transform of length n.
func NewGonum(n int) (Real[float64, complex128], error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: gonum plan needs n >= 1, got %d", ErrInvalidLength, n)
	}
	return &Gonum{fft: fourier.NewFFT(n)}, nil
}

// Len returns the number of real samples.
func (g *Gonum) Len() int {
	return g.fft.Len()
}

// SpectrumLen returns the number of complex bins (n/2+1).
func (g *Gonum) SpectrumLen() int {
	return g.fft.Len()/2 + 1
}

// NormalizesInverse reports false: gonum returns the unscaled sequence.
func (g *Gonum) NormalizesInverse() bool {
	return false
}

// Forward computes the real-to-complex transform of src into dst.
func (g *Gonum) Forward(dst []complex128, src []float64) (err error) {
	if err := checkLengths(g.fft.Len(), len(src), len(dst)); err != nil {
		return err
	}
	defer recoverBackend(&err, "gonum forward")

	g.fft.Coefficients(dst, src)
	return nil
}

// Inverse computes the complex-to-real transform of src into dst.
func (g *Gonum) Inverse(dst []float64, src []complex128) (err error) {
	if err := checkLengths(g.fft.Len(), len(dst), len(src)); err != nil {
		return err
	}
	defer recoverBackend(&err, "gonum inverse")

	g.fft.Sequence(dst, src)
	return nil
}
