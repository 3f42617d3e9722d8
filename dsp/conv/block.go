package conv

import (
	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// The helpers below route float64 blocks through algo-vecmath and fall back
// to scalar loops for every other sample type. dst and src must have equal
// length.

// addBlock performs dst[i] += src[i].
func addBlock[F algofft.Float](dst, src []F) {
	if d, ok := any(dst).([]float64); ok {
		vecmath.AddBlockInPlace(d, any(src).([]float64))
		return
	}
	for i, v := range src {
		dst[i] += v
	}
}

// scaleBlock performs dst[i] = src[i] * scale.
func scaleBlock[F algofft.Float](dst, src []F, scale F) {
	if d, ok := any(dst).([]float64); ok {
		vecmath.ScaleBlock(d, any(src).([]float64), float64(scale))
		return
	}
	for i, v := range src {
		dst[i] = v * scale
	}
}

// scaleBlockInPlace performs dst[i] *= scale.
func scaleBlockInPlace[F algofft.Float](dst []F, scale F) {
	if d, ok := any(dst).([]float64); ok {
		vecmath.ScaleBlockInPlace(d, float64(scale))
		return
	}
	for i := range dst {
		dst[i] *= scale
	}
}
