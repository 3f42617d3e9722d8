package conv

import algofft "github.com/cwbudde/algo-fft"

// blockTapThreshold is the kernel length from which InputSideTo scales and
// accumulates whole signal blocks per kernel tap.
const blockTapThreshold = 4

// InputSide performs direct convolution grouped by kernel index:
// y[k+i] += h[k]*x[i] with k in the outer loop.
// Returns a new slice of length len(x) + len(h) - 1.
func InputSide[F algofft.Float](x, h []F) ([]F, error) {
	if err := validateInputs(x, h); err != nil {
		return nil, err
	}

	y := make([]F, len(x)+len(h)-1)
	InputSideTo(y, x, h)
	return y, nil
}

// InputSideTo performs input-side convolution into a pre-allocated destination.
// dst must have length len(x) + len(h) - 1; it is cleared first.
func InputSideTo[F algofft.Float](dst, x, h []F) {
	clear(dst)

	n := len(x)
	if len(h) >= blockTapThreshold {
		// Scratch buffer for the scaled signal
		temp := make([]F, n)
		for k, hk := range h {
			scaleBlock(temp, x, hk)
			addBlock(dst[k:k+n], temp)
		}
		return
	}

	for k, hk := range h {
		row := dst[k : k+n]
		for i, xi := range x {
			row[i] += hk * xi
		}
	}
}

// OutputSide performs direct convolution one output sample at a time:
// y[n] = sum of h[k]*x[n-k] for k in [max(0, n-N+1), min(n, M-1)].
// Returns a new slice of length len(x) + len(h) - 1.
func OutputSide[F algofft.Float](x, h []F) ([]F, error) {
	if err := validateInputs(x, h); err != nil {
		return nil, err
	}

	y := make([]F, len(x)+len(h)-1)
	OutputSideTo(y, x, h)
	return y, nil
}

// OutputSideTo performs output-side convolution into a pre-allocated destination.
// dst must have length len(x) + len(h) - 1.
func OutputSideTo[F algofft.Float](dst, x, h []F) {
	xlen := len(x)
	hlen := len(h)

	for n := range dst {
		lower := max(0, n-xlen+1)
		upper := min(n, hlen-1)

		var acc F
		for k := lower; k <= upper; k++ {
			acc += h[k] * x[n-k]
		}
		dst[n] = acc
	}
}

