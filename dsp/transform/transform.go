// Package transform adapts real-input Fourier transform libraries to the
// small interface consumed by the convolution engine in package conv.
//
// Two backends are provided:
//
//   - [NewAlgoFFT]: generic float32/float64 plans from algo-fft. The inverse
//     transform is normalized by 1/N.
//   - [NewGonum]: float64 plans from gonum's dsp/fourier package. The inverse
//     transform is not normalized.
//
// Callers that need a particular scaling convention must consult
// [Real.NormalizesInverse] instead of assuming one.
package transform

import (
	"errors"
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// Errors returned by transform backends.
var (
	ErrInvalidLength  = errors.New("transform: invalid length")
	ErrLengthMismatch = errors.New("transform: buffer length mismatch")
	ErrBackend        = errors.New("transform: backend failure")
)

// Float and Complex are the sample and spectrum constraints shared with algo-fft.
type (
	Float   = algofft.Float
	Complex = algofft.Complex
)

// Real is a forward/inverse real-input FFT of a fixed length.
//
// Forward reads Len() real samples and writes SpectrumLen() = Len()/2+1
// complex bins (the non-redundant half of a conjugate-symmetric spectrum).
// Inverse reads SpectrumLen() bins and writes Len() real samples.
//
// Implementations are not required to be safe for concurrent use.
type Real[F Float, C Complex] interface {
	Len() int
	SpectrumLen() int
	Forward(dst []C, src []F) error
	Inverse(dst []F, src []C) error

	// NormalizesInverse reports whether Inverse already divides by Len().
	NormalizesInverse() bool
}

// Factory creates a transform of length n.
type Factory[F Float, C Complex] func(n int) (Real[F, C], error)

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// checkLengths validates buffers for a transform of length n.
func checkLengths(n, timeLen, specLen int) error {
	if timeLen != n {
		return fmt.Errorf("%w: expected %d samples, got %d", ErrLengthMismatch, n, timeLen)
	}
	if specLen != n/2+1 {
		return fmt.Errorf("%w: expected %d bins, got %d", ErrLengthMismatch, n/2+1, specLen)
	}
	return nil
}

// recoverBackend turns a panic raised inside a backend into an ErrBackend error.
func recoverBackend(err *error, op string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: %v", ErrBackend, op, r)
	}
}
