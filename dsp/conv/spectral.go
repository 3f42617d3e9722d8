package conv

import (
	"fmt"

	"github.com/cwbudde/algo-conv/dsp/transform"
	algofft "github.com/cwbudde/algo-fft"
)

// minTransformSize is the smallest real FFT length used. A real transform of
// length 1 has no valid half-spectrum packing in algo-fft.
const minTransformSize = 2

// transformSize returns the padded transform length for a linear convolution
// of convLen samples: the smallest power of two >= convLen.
func transformSize(convLen int) int {
	return max(minTransformSize, nextPowerOf2(convLen))
}

// spectralPlan convolves blocks of up to blockLen samples with a fixed kernel
// whose spectrum is computed once.
type spectralPlan[F algofft.Float, C algofft.Complex] struct {
	fft       transform.Real[F, C]
	size      int // transform length L
	kernelLen int

	// Kernel in frequency domain, shared read-only between clones.
	kernelSpec []C

	// Scratch buffers
	padded   []F // L samples, zero-padded input block
	spectrum []C // L/2+1 bins
	timeBuf  []F // L samples, inverse transform output
}

// newSpectralPlan creates a plan for blocks of blockLen samples convolved
// with kernel.
func newSpectralPlan[F algofft.Float, C algofft.Complex](
	factory transform.Factory[F, C], kernel []F, blockLen int,
) (*spectralPlan[F, C], error) {
	size := transformSize(blockLen + len(kernel) - 1)

	p, err := allocSpectralPlan(factory, size, len(kernel))
	if err != nil {
		return nil, err
	}

	p.kernelSpec = make([]C, p.fft.SpectrumLen())
	copy(p.padded, kernel)
	if err := p.forward(p.kernelSpec, p.padded); err != nil {
		return nil, fmt.Errorf("kernel spectrum: %w", err)
	}

	return p, nil
}

// allocSpectralPlan creates the transform and scratch buffers of a plan.
func allocSpectralPlan[F algofft.Float, C algofft.Complex](
	factory transform.Factory[F, C], size, kernelLen int,
) (p *spectralPlan[F, C], err error) {
	defer recoverTransform(&err, "plan")

	fft, err := factory(size)
	if err != nil {
		return nil, fmt.Errorf("%w: create plan (n=%d): %w", ErrTransform, size, err)
	}
	if fft.Len() != size || fft.SpectrumLen() != size/2+1 {
		return nil, fmt.Errorf("%w: plan reports length %d/%d, want %d/%d",
			ErrTransform, fft.Len(), fft.SpectrumLen(), size, size/2+1)
	}

	return &spectralPlan[F, C]{
		fft:       fft,
		size:      size,
		kernelLen: kernelLen,
		padded:    make([]F, size),
		spectrum:  make([]C, size/2+1),
		timeBuf:   make([]F, size),
	}, nil
}

// clone returns a plan with its own transform and scratch buffers sharing the
// kernel spectrum, for use on another goroutine.
func (p *spectralPlan[F, C]) clone(factory transform.Factory[F, C]) (*spectralPlan[F, C], error) {
	c, err := allocSpectralPlan(factory, p.size, p.kernelLen)
	if err != nil {
		return nil, err
	}
	c.kernelSpec = p.kernelSpec
	return c, nil
}

// convolveInto writes the linear convolution of block with the kernel into
// dst, which must hold len(block)+kernelLen-1 samples.
func (p *spectralPlan[F, C]) convolveInto(dst, block []F) error {
	if want := len(block) + p.kernelLen - 1; len(dst) != want || want > p.size {
		return fmt.Errorf("%w: block of %d samples needs %d outputs within transform length %d, got %d",
			ErrPrecondition, len(block), want, p.size, len(dst))
	}

	// Zero-pad input block to transform size
	clear(p.padded)
	copy(p.padded, block)

	if err := p.forward(p.spectrum, p.padded); err != nil {
		return err
	}

	// Multiply in frequency domain
	for i := range p.spectrum {
		p.spectrum[i] *= p.kernelSpec[i]
	}

	if err := p.inverse(p.timeBuf, p.spectrum); err != nil {
		return err
	}

	if !p.fft.NormalizesInverse() {
		scaleBlockInPlace(p.timeBuf, 1/F(p.size))
	}

	// Keep the linear part, drop the padding tail
	copy(dst, p.timeBuf[:len(dst)])
	return nil
}

func (p *spectralPlan[F, C]) forward(dst []C, src []F) (err error) {
	defer recoverTransform(&err, "forward")

	if err := p.fft.Forward(dst, src); err != nil {
		return fmt.Errorf("%w: forward (n=%d): %w", ErrTransform, p.size, err)
	}
	return nil
}

func (p *spectralPlan[F, C]) inverse(dst []F, src []C) (err error) {
	defer recoverTransform(&err, "inverse")

	if err := p.fft.Inverse(dst, src); err != nil {
		return fmt.Errorf("%w: inverse (n=%d): %w", ErrTransform, p.size, err)
	}
	return nil
}

// recoverTransform converts a panic escaping a transform backend into an
// ErrTransform error.
func recoverTransform(err *error, op string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: %v", ErrTransform, op, r)
	}
}

// spectralConvolve convolves x and h through one zero-padded transform pair.
func spectralConvolve[F algofft.Float, C algofft.Complex](
	factory transform.Factory[F, C], x, h []F,
) ([]F, error) {
	plan, err := newSpectralPlan(factory, h, len(x))
	if err != nil {
		return nil, err
	}

	y := make([]F, len(x)+len(h)-1)
	if err := plan.convolveInto(y, x); err != nil {
		return nil, err
	}
	return y, nil
}
