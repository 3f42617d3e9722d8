package conv

import (
	"fmt"
	"strings"
)

type methodKind uint8

const (
	kindUnset methodKind = iota
	kindInputSide
	kindOutputSide
	kindFastMultiply
	kindSpectral
	kindFramedSpectral
	kindParallelFramedSpectral
)

var kindNames = [...]string{
	kindUnset:                  "",
	kindInputSide:              "input-side",
	kindOutputSide:             "output-side",
	kindFastMultiply:           "fast-multiply",
	kindSpectral:               "spectral",
	kindFramedSpectral:         "framed-spectral",
	kindParallelFramedSpectral: "parallel-framed-spectral",
}

// Method selects a convolution algorithm. It is a closed set of variants;
// the framed variants carry their frame size (and worker count).
// The zero Method is invalid.
type Method struct {
	kind      methodKind
	frameSize int
	workers   int
}

// Parameterless methods.
var (
	// MethodInputSide accumulates y[k+i] += h[k]*x[i], kernel index outer.
	MethodInputSide = Method{kind: kindInputSide}

	// MethodOutputSide computes each y[n] as one inclusive dot product.
	MethodOutputSide = Method{kind: kindOutputSide}

	// MethodFastMultiply treats convolution as Karatsuba polynomial multiplication.
	MethodFastMultiply = Method{kind: kindFastMultiply}

	// MethodSpectral multiplies zero-padded spectra.
	MethodSpectral = Method{kind: kindSpectral}
)

// MethodFramedSpectral returns the overlap-add method with the given frame size.
// The frame size is validated when the method is used.
func MethodFramedSpectral(frameSize int) Method {
	return Method{kind: kindFramedSpectral, frameSize: frameSize}
}

// MethodParallelFramedSpectral returns the overlap-add method processing
// frames on up to workers goroutines. workers <= 0 selects GOMAXPROCS.
func MethodParallelFramedSpectral(frameSize, workers int) Method {
	return Method{kind: kindParallelFramedSpectral, frameSize: frameSize, workers: workers}
}

// Name returns the method name without parameters.
func (m Method) Name() string {
	if int(m.kind) >= len(kindNames) {
		return ""
	}
	return kindNames[m.kind]
}

// FrameSize returns the frame size of a framed method, or 0.
func (m Method) FrameSize() int {
	return m.frameSize
}

// Workers returns the requested worker count of the parallel framed method.
func (m Method) Workers() int {
	return m.workers
}

// Valid reports whether m is one of the known variants.
func (m Method) Valid() bool {
	return m.kind > kindUnset && m.kind <= kindParallelFramedSpectral
}

// String returns the method name including its parameters.
func (m Method) String() string {
	switch m.kind {
	case kindFramedSpectral:
		return fmt.Sprintf("%s(%d)", m.Name(), m.frameSize)
	case kindParallelFramedSpectral:
		return fmt.Sprintf("%s(%d,%d)", m.Name(), m.frameSize, m.workers)
	}
	if !m.Valid() {
		return fmt.Sprintf("Method(%d)", m.kind)
	}
	return m.Name()
}

// MethodNames lists the names accepted by ParseMethod.
func MethodNames() []string {
	return append([]string(nil), kindNames[kindInputSide:]...)
}

// ParseMethod maps a method name to a Method. frameSize and workers are used
// only by the framed variants.
func ParseMethod(name string, frameSize, workers int) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case kindNames[kindInputSide]:
		return MethodInputSide, nil
	case kindNames[kindOutputSide]:
		return MethodOutputSide, nil
	case kindNames[kindFastMultiply], "karatsuba":
		return MethodFastMultiply, nil
	case kindNames[kindSpectral], "fft":
		return MethodSpectral, nil
	case kindNames[kindFramedSpectral], "ola", "overlap-add":
		return MethodFramedSpectral(frameSize), nil
	case kindNames[kindParallelFramedSpectral]:
		return MethodParallelFramedSpectral(frameSize, workers), nil
	default:
		return Method{}, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}
