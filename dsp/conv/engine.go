package conv

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-conv/dsp/transform"
	algofft "github.com/cwbudde/algo-fft"
)

// EngineT binds a signal and a kernel and convolves them with any Method.
//
// The type parameters F and C select precision: F is the sample type and C
// the matching spectrum type (float32/complex64 or float64/complex128).
//
// The engine keeps private copies of its inputs and allocates all scratch
// buffers per call, so it is safe for concurrent use.
type EngineT[F algofft.Float, C algofft.Complex] struct {
	signal  []F
	kernel  []F
	factory transform.Factory[F, C]
}

// Engine is the float64 specialization of EngineT.
type Engine = EngineT[float64, complex128]

// Engine32 is the float32 specialization of EngineT.
type Engine32 = EngineT[float32, complex64]

// NewEngineT creates a generic engine using the algo-fft transform backend.
func NewEngineT[F algofft.Float, C algofft.Complex](signal, kernel []F) (*EngineT[F, C], error) {
	if err := validateInputs(signal, kernel); err != nil {
		return nil, err
	}

	return &EngineT[F, C]{
		signal:  slices.Clone(signal),
		kernel:  slices.Clone(kernel),
		factory: transform.AlgoFFTFactory[F, C](),
	}, nil
}

// NewEngine creates a float64 engine.
func NewEngine(signal, kernel []float64) (*Engine, error) {
	return NewEngineT[float64, complex128](signal, kernel)
}

// NewEngine32 creates a float32 engine.
func NewEngine32(signal, kernel []float32) (*Engine32, error) {
	return NewEngineT[float32, complex64](signal, kernel)
}

// WithTransform returns a copy of the engine that runs the spectral methods
// on transforms created by factory. A nil factory restores the default.
func (e *EngineT[F, C]) WithTransform(factory transform.Factory[F, C]) *EngineT[F, C] {
	if factory == nil {
		factory = transform.AlgoFFTFactory[F, C]()
	}

	c := *e
	c.factory = factory
	return &c
}

// SignalLen returns the signal length N.
func (e *EngineT[F, C]) SignalLen() int {
	return len(e.signal)
}

// KernelLen returns the kernel length M.
func (e *EngineT[F, C]) KernelLen() int {
	return len(e.kernel)
}

// ResultLen returns N + M - 1, the length of every Convolve result.
func (e *EngineT[F, C]) ResultLen() int {
	return len(e.signal) + len(e.kernel) - 1
}

// Convolve computes the full linear convolution with the selected method.
// The returned slice is newly allocated and has length ResultLen().
func (e *EngineT[F, C]) Convolve(method Method) ([]F, error) {
	switch method.kind {
	case kindInputSide:
		return InputSide(e.signal, e.kernel)
	case kindOutputSide:
		return OutputSide(e.signal, e.kernel)
	case kindFastMultiply:
		return fastMultiplyConvolve(e.signal, e.kernel)
	case kindSpectral:
		return spectralConvolve(e.factory, e.signal, e.kernel)
	case kindFramedSpectral:
		oa, err := newOverlapAdd(e.factory, e.signal, e.kernel, method.frameSize)
		if err != nil {
			return nil, err
		}
		return oa.process()
	case kindParallelFramedSpectral:
		oa, err := newOverlapAdd(e.factory, e.signal, e.kernel, method.frameSize)
		if err != nil {
			return nil, err
		}
		return oa.processParallel(method.workers)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}
}

// ConvolveTo convolves into a pre-allocated destination of length ResultLen().
func (e *EngineT[F, C]) ConvolveTo(dst []F, method Method) error {
	if len(dst) != e.ResultLen() {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, e.ResultLen(), len(dst))
	}

	y, err := e.Convolve(method)
	if err != nil {
		return err
	}

	copy(dst, y)
	return nil
}

// ConvolveMode convolves with the selected method and trims the result to mode,
// with the signal taking the role of the first input.
func (e *EngineT[F, C]) ConvolveMode(method Method, mode Mode) ([]F, error) {
	full, err := e.Convolve(method)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(e.signal), len(e.kernel), mode)
}
