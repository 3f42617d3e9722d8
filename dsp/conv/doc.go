// Package conv computes the linear convolution of a real signal with a real
// kernel using interchangeable algorithms.
//
// Every method produces len(signal)+len(kernel)-1 samples and agrees with the
// others within floating-point tolerance:
//
//   - Input-side direct: kernel-major O(N*M) accumulation
//   - Output-side direct: one inclusive dot product per output sample, O(N*M)
//   - Fast multiply: Karatsuba polynomial multiplication, O(n^1.585)
//   - Spectral: zero-padded real FFT, pointwise product, inverse FFT
//   - Framed spectral: overlap-add of per-frame spectral convolutions,
//     optionally fanned out over worker goroutines
//
// # Usage
//
// Bind a signal and a kernel to an engine, then pick a method per call:
//
//	e, err := conv.NewEngine(signal, kernel)
//	y, err := e.Convolve(conv.MethodSpectral)
//	y, err := e.Convolve(conv.MethodFramedSpectral(4096))
//
// The engine copies its inputs and keeps no state between calls, so one
// engine may serve concurrent Convolve calls.
//
// For one-shot convolution with automatic algorithm selection use [Convolve]:
//
//	y, err := conv.Convolve(signal, kernel)
//
// # Precision
//
// [EngineT] is parametrized over the sample type F (float32 or float64) and
// the matching spectrum type C (complex64 or complex128). [Engine] and
// [Engine32] are the usual instantiations.
//
// # Transform length
//
// Spectral methods pad to the smallest power of two that holds the linear
// convolution (never less than 2), so no circular wrap-around reaches the
// returned samples. The Fourier transform itself comes from package
// transform; [EngineT.WithTransform] selects another backend.
//
// # Errors
//
// Empty inputs return [ErrEmptyInput] or [ErrEmptyKernel]; a non-positive
// frame size returns [ErrInvalidFrameSize]; transform backend failures wrap
// [ErrTransform]; an internal padding mismatch returns
// [ErrPrecondition]. No method returns a partial result.
package conv
