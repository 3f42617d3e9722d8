package conv

import (
	"fmt"
	"runtime"

	"github.com/cwbudde/algo-conv/dsp/transform"
	algofft "github.com/cwbudde/algo-fft"
	"golang.org/x/sync/errgroup"
)

// overlapAdd implements framed spectral convolution.
//
// The algorithm:
// 1. Divide the signal into frames of frameSize samples (last frame shorter)
// 2. Zero-pad each frame and the kernel to the transform size of frameSize+M-1
// 3. Convolve each frame via spectral multiplication
// 4. Overlap-add the per-frame results at multiples of frameSize
type overlapAdd[F algofft.Float, C algofft.Complex] struct {
	factory   transform.Factory[F, C]
	signal    []F
	kernel    []F
	frameSize int
	numFrames int
	frameLen  int // frameSize + kernelLen - 1
}

func newOverlapAdd[F algofft.Float, C algofft.Complex](
	factory transform.Factory[F, C], x, h []F, frameSize int,
) (*overlapAdd[F, C], error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("%w: frame size must be positive, got %d", ErrInvalidFrameSize, frameSize)
	}

	// A frame covering the whole signal is plain spectral convolution.
	frameSize = min(frameSize, len(x))

	return &overlapAdd[F, C]{
		factory:   factory,
		signal:    x,
		kernel:    h,
		frameSize: frameSize,
		numFrames: (len(x) + frameSize - 1) / frameSize,
		frameLen:  frameSize + len(h) - 1,
	}, nil
}

// outputLen is the length of the overlap-added buffer before truncation.
func (oa *overlapAdd[F, C]) outputLen() int {
	return oa.numFrames*oa.frameSize + len(oa.kernel) - 1
}

// frame returns frame i; only the last frame may be shorter than frameSize.
func (oa *overlapAdd[F, C]) frame(i int) []F {
	start := i * oa.frameSize
	end := min(start+oa.frameSize, len(oa.signal))
	return oa.signal[start:end]
}

// accumulate convolves frames [first, last) and overlap-adds them into out,
// whose index 0 corresponds to signal sample first*frameSize.
func (oa *overlapAdd[F, C]) accumulate(plan *spectralPlan[F, C], out []F, first, last int) error {
	kernelTail := len(oa.kernel) - 1
	contrib := make([]F, oa.frameLen)

	for i := first; i < last; i++ {
		frame := oa.frame(i)
		n := len(frame) + kernelTail

		if err := plan.convolveInto(contrib[:n], frame); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		offset := (i - first) * oa.frameSize
		addBlock(out[offset:offset+n], contrib[:n])
	}

	return nil
}

// process runs all frames on the calling goroutine.
func (oa *overlapAdd[F, C]) process() ([]F, error) {
	plan, err := newSpectralPlan(oa.factory, oa.kernel, oa.frameSize)
	if err != nil {
		return nil, err
	}

	out := make([]F, oa.outputLen())
	if err := oa.accumulate(plan, out, 0, oa.numFrames); err != nil {
		return nil, err
	}

	return oa.truncate(out), nil
}

// processParallel splits the frames into contiguous runs, one per worker.
// Each worker owns a transform and a partial output covering its run plus the
// kernel tail; partials are merged in frame order after all workers finish.
func (oa *overlapAdd[F, C]) processParallel(workers int) ([]F, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, oa.numFrames)
	if workers <= 1 {
		return oa.process()
	}

	plan, err := newSpectralPlan(oa.factory, oa.kernel, oa.frameSize)
	if err != nil {
		return nil, err
	}

	perWorker := (oa.numFrames + workers - 1) / workers
	partials := make([][]F, workers)

	var g errgroup.Group
	for w := range workers {
		first := w * perWorker
		last := min(first+perWorker, oa.numFrames)
		if first >= last {
			continue
		}

		g.Go(func() error {
			wp, err := plan.clone(oa.factory)
			if err != nil {
				return err
			}

			part := make([]F, (last-first)*oa.frameSize+len(oa.kernel)-1)
			if err := oa.accumulate(wp, part, first, last); err != nil {
				return err
			}
			partials[w] = part
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]F, oa.outputLen())
	for w, part := range partials {
		if part == nil {
			continue
		}
		offset := w * perWorker * oa.frameSize
		addBlock(out[offset:offset+len(part)], part)
	}

	return oa.truncate(out), nil
}

// truncate returns exactly len(signal)+len(kernel)-1 samples.
func (oa *overlapAdd[F, C]) truncate(out []F) []F {
	ylen := len(oa.signal) + len(oa.kernel) - 1
	if len(out) == ylen {
		return out
	}

	y := make([]F, ylen)
	copy(y, out)
	return y
}
