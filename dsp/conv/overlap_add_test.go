package conv

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cwbudde/algo-conv/dsp/transform"
	"github.com/cwbudde/algo-conv/internal/testutil"
)

func TestOverlapAddFrameSizeInvariance(t *testing.T) {
	x := testutil.DeterministicNoise(21, 1, 1000)
	h := testutil.DeterministicNoise(22, 1, 63)
	want, _ := OutputSide(x, h)

	for _, frameSize := range []int{1, 7, 64, 100, 333, 999, 1000, 5000} {
		t.Run(fmt.Sprintf("frame=%d", frameSize), func(t *testing.T) {
			oa, err := newOverlapAdd(transform.AlgoFFTFactory[float64, complex128](), x, h, frameSize)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := oa.process()
			if err != nil {
				t.Fatalf("process: %v", err)
			}
			if len(got) != len(x)+len(h)-1 {
				t.Fatalf("length %d, want %d", len(got), len(x)+len(h)-1)
			}
			testutil.RequireSliceNearlyEqual(t, got, want, 1e-10)
		})
	}
}

func TestOverlapAddSingleFrameMatchesSpectral(t *testing.T) {
	x := testutil.DeterministicNoise(31, 1, 300)
	h := testutil.DeterministicNoise(32, 1, 41)
	factory := transform.AlgoFFTFactory[float64, complex128]()

	spectral, err := spectralConvolve(factory, x, h)
	if err != nil {
		t.Fatalf("spectral: %v", err)
	}

	for _, frameSize := range []int{len(x), len(x) + 1, 1 << 20} {
		oa, err := newOverlapAdd(factory, x, h, frameSize)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if oa.numFrames != 1 || oa.frameSize != len(x) {
			t.Fatalf("frame %d: got %d frames of %d", frameSize, oa.numFrames, oa.frameSize)
		}

		got, err := oa.process()
		if err != nil {
			t.Fatalf("process: %v", err)
		}
		testutil.RequireSliceEqual(t, got, spectral)
	}
}

func TestOverlapAddFrameLayout(t *testing.T) {
	x := make([]float64, 10)
	h := make([]float64, 3)

	oa, err := newOverlapAdd(transform.AlgoFFTFactory[float64, complex128](), x, h, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if oa.numFrames != 3 {
		t.Errorf("numFrames = %d, want 3", oa.numFrames)
	}
	if oa.frameLen != 6 {
		t.Errorf("frameLen = %d, want 6", oa.frameLen)
	}
	if oa.outputLen() != 14 {
		t.Errorf("outputLen = %d, want 14", oa.outputLen())
	}
	if n := len(oa.frame(2)); n != 2 {
		t.Errorf("last frame has %d samples, want 2", n)
	}
}

func TestOverlapAddInvalidFrameSize(t *testing.T) {
	x := []float64{1, 2, 3}
	h := []float64{1}

	for _, frameSize := range []int{0, -1, -4096} {
		_, err := newOverlapAdd(transform.AlgoFFTFactory[float64, complex128](), x, h, frameSize)
		if !errors.Is(err, ErrInvalidFrameSize) {
			t.Errorf("frame %d: expected ErrInvalidFrameSize, got %v", frameSize, err)
		}
	}
}

func TestOverlapAddParallelMatchesSequential(t *testing.T) {
	x := testutil.DeterministicNoise(41, 1, 4100)
	h := testutil.DeterministicNoise(42, 1, 257)
	factory := transform.AlgoFFTFactory[float64, complex128]()

	oa, err := newOverlapAdd(factory, x, h, 256)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, err := oa.process()
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	for _, workers := range []int{-1, 0, 1, 2, 3, 7, 17, 100} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, err := oa.processParallel(workers)
			if err != nil {
				t.Fatalf("processParallel: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, want, 1e-10)
		})
	}
}

func TestOverlapAddFloat32(t *testing.T) {
	x := testutil.DeterministicNoise32(51, 1, 900)
	h := testutil.DeterministicNoise32(52, 1, 33)

	oa, err := newOverlapAdd(transform.AlgoFFTFactory[float32, complex64](), x, h, 128)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := oa.process()
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	want, _ := OutputSide(x, h)
	testutil.RequireSliceRelNearlyEqual(t, got, want, 1e-4)
}

func TestSpectralPlanRejectsOversizedBlock(t *testing.T) {
	h := []float64{1, 2, 3}

	plan, err := newSpectralPlan(transform.AlgoFFTFactory[float64, complex128](), h, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 7 + 3 - 1 = 9 outputs do not fit a transform of length 8.
	dst := make([]float64, 9)
	err = plan.convolveInto(dst, make([]float64, 7))
	if !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition, got %v", err)
	}
}

func TestSpectralPlanReuse(t *testing.T) {
	h := []float64{0.5, -1, 0.25}

	plan, err := newSpectralPlan(transform.AlgoFFTFactory[float64, complex128](), h, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, x := range [][]float64{
		{1, 2, 3, 4, 5, 6, 7, 8},
		{1},
		{-3, 0, 2},
	} {
		dst := make([]float64, len(x)+len(h)-1)
		if err := plan.convolveInto(dst, x); err != nil {
			t.Fatalf("convolveInto: %v", err)
		}

		want, _ := OutputSide(x, h)
		testutil.RequireSliceNearlyEqual(t, dst, want, 1e-12)
	}
}
