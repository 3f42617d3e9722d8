package conv

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// FastMultiply multiplies two polynomials given as coefficient vectors using
// Karatsuba's divide-and-conquer scheme. Both operands must have the same
// power-of-two length n; the product has length 2n-1.
//
// Operands that break this contract return ErrPrecondition. The engine's
// MethodFastMultiply pads its inputs so that it never does.
func FastMultiply[F algofft.Float](x, h []F) ([]F, error) {
	n := len(x)
	if n != len(h) || !isPowerOf2(n) {
		return nil, fmt.Errorf("%w: fast multiply needs equal power-of-two operands, got %d and %d",
			ErrPrecondition, len(x), len(h))
	}

	product := make([]F, 2*n-1)
	karatsuba(product, x, h, make([]F, karatsubaScratch(n)))
	return product, nil
}

// fastMultiplyConvolve pads x and h to a shared power of two that holds the
// linear convolution, multiplies, and drops the padding tail.
func fastMultiplyConvolve[F algofft.Float](x, h []F) ([]F, error) {
	ylen := len(x) + len(h) - 1
	size := nextPowerOf2(ylen)

	xpad := make([]F, size)
	hpad := make([]F, size)
	copy(xpad, x)
	copy(hpad, h)

	product, err := FastMultiply(xpad, hpad)
	if err != nil {
		return nil, err
	}

	return product[:ylen:ylen], nil
}

// karatsubaScratch returns the arena size needed by karatsuba for operands of
// length n: 4m-1 samples per level with m = n/2, summed over the levels.
func karatsubaScratch(n int) int {
	total := 0
	for m := n / 2; m >= 1; m /= 2 {
		total += 4*m - 1
	}
	return total
}

// karatsuba writes the 2n-1 coefficient product of x and h (both length n, a
// power of two) into dst. scratch holds the level temporaries; deeper levels
// reuse its tail, so no level allocates.
func karatsuba[F algofft.Float](dst, x, h, scratch []F) {
	n := len(x)
	if n == 1 {
		dst[0] = x[0] * h[0]
		return
	}

	m := n / 2
	zlen := 2*m - 1
	x0, x1 := x[:m], x[m:]
	h0, h1 := h[:m], h[m:]

	// z0 and z2 are built in place; the sample between them stays zero.
	z0 := dst[:zlen]
	z2 := dst[2*m : 2*m+zlen]
	dst[zlen] = 0

	karatsuba(z0, x0, h0, scratch)
	karatsuba(z2, x1, h1, scratch)

	xsum := scratch[:m]
	hsum := scratch[m : 2*m]
	z1 := scratch[2*m : 2*m+zlen]
	for i := range m {
		xsum[i] = x0[i] + x1[i]
		hsum[i] = h0[i] + h1[i]
	}

	karatsuba(z1, xsum, hsum, scratch[2*m+zlen:])

	for i := range z1 {
		z1[i] = z1[i] - z0[i] - z2[i]
	}

	addBlock(dst[m:m+zlen], z1)
}
