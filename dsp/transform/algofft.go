package transform

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// AlgoFFT wraps an algo-fft real plan.
type AlgoFFT[F Float, C Complex] struct {
	n    int
	plan *algofft.PlanRealT[F, C]
}

// NewAlgoFFT creates an algo-fft backed transform of length n.
// n must be a power of two and at least 2.
func NewAlgoFFT[F Float, C Complex](n int) (Real[F, C], error) {
	if n < 2 || !IsPowerOf2(n) {
		return nil, fmt.Errorf("%w: algo-fft real plan needs a power of two >= 2, got %d", ErrInvalidLength, n)
	}

	plan, err := algofft.NewPlanRealT[F, C](n)
	if err != nil {
		return nil, fmt.Errorf("%w: algo-fft plan (n=%d): %w", ErrBackend, n, err)
	}

	return &AlgoFFT[F, C]{n: n, plan: plan}, nil
}

// AlgoFFTFactory returns NewAlgoFFT as a Factory.
func AlgoFFTFactory[F Float, C Complex]() Factory[F, C] {
	return NewAlgoFFT[F, C]
}

// Len returns the number of real samples.
func (a *AlgoFFT[F, C]) Len() int {
	return a.n
}

// SpectrumLen returns the number of complex bins (n/2+1).
func (a *AlgoFFT[F, C]) SpectrumLen() int {
	return a.n/2 + 1
}

// NormalizesInverse reports true: algo-fft scales the inverse by 1/n.
func (a *AlgoFFT[F, C]) NormalizesInverse() bool {
	return true
}

// Forward computes the real-to-complex transform of src into dst.
func (a *AlgoFFT[F, C]) Forward(dst []C, src []F) (err error) {
	if err := checkLengths(a.n, len(src), len(dst)); err != nil {
		return err
	}
	defer recoverBackend(&err, "algo-fft forward")

	if err := a.plan.Forward(dst, src); err != nil {
		return fmt.Errorf("%w: algo-fft forward (n=%d): %w", ErrBackend, a.n, err)
	}
	return nil
}

// Inverse computes the complex-to-real transform of src into dst.
func (a *AlgoFFT[F, C]) Inverse(dst []F, src []C) (err error) {
	if err := checkLengths(a.n, len(dst), len(src)); err != nil {
		return err
	}
	defer recoverBackend(&err, "algo-fft inverse")

	if err := a.plan.Inverse(dst, src); err != nil {
		return fmt.Errorf("%w: algo-fft inverse (n=%d): %w", ErrBackend, a.n, err)
	}
	return nil
}
