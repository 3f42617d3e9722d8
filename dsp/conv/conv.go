package conv

import (
	"errors"
	"fmt"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput       = errors.New("conv: empty input")
	ErrEmptyKernel      = errors.New("conv: empty kernel")
	ErrLengthMismatch   = errors.New("conv: buffer length mismatch")
	ErrInvalidFrameSize = errors.New("conv: invalid frame size")
	ErrUnknownMethod    = errors.New("conv: unknown method")
	ErrInvalidMode      = errors.New("conv: invalid mode")
	ErrPrecondition     = errors.New("conv: internal precondition violated")
	ErrTransform        = errors.New("conv: transform failure")
)

// Mode specifies the output mode for convolution and correlation.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input.
	ModeSame

	// ModeValid returns only the portion where signals fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeSame:
		return "same"
	case ModeValid:
		return "valid"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// directThreshold is the kernel length up to which Convolve picks the
// input-side direct method.
const directThreshold = 64

// Convolve performs linear convolution with automatic algorithm selection.
// Kernels of up to 64 samples use input-side direct convolution; longer
// kernels use framed spectral (overlap-add) convolution.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	// Ensure a is the longer signal for efficient processing
	if len(b) > len(a) {
		a, b = b, a
	}

	e, err := NewEngine(a, b)
	if err != nil {
		return nil, err
	}

	return e.Convolve(autoMethod(len(b)))
}

// ConvolveMode performs convolution with specified output mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(a), len(b), mode)
}

// autoMethod picks a method for a kernel of length m.
func autoMethod(m int) Method {
	if m <= directThreshold {
		return MethodInputSide
	}

	// Rule of thumb: frame size roughly equal to or larger than kernel
	return MethodFramedSpectral(max(256, nextPowerOf2(m)))
}

// trimToMode extracts the appropriate portion of a full convolution result.
func trimToMode[F any](full []F, lenA, lenB int, mode Mode) ([]F, error) {
	switch mode {
	case ModeFull:
		return full, nil
	case ModeSame:
		// Center the result to match length of first input
		start := (lenB - 1) / 2
		return full[start : start+lenA], nil
	case ModeValid:
		// Return only fully overlapping portion
		if lenA >= lenB {
			return full[lenB-1 : lenA], nil
		}
		return full[lenA-1 : lenB], nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	}
}

// validateInputs rejects empty operands.
func validateInputs[F any](signal, kernel []F) error {
	if len(signal) == 0 {
		return ErrEmptyInput
	}
	if len(kernel) == 0 {
		return ErrEmptyKernel
	}
	return nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// isPowerOf2 returns true if n is a power of 2.
func isPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
