/*package qrng provides multi-dimensional quasi-random (low-discrepancy)
sequences. Unlike pseudo-random generators, these sequences are deterministic:
the nth point depends only on the dimensionality and n. Their points fill the
unit hypercube more evenly than independent random draws, which makes
Monte Carlo integrals converge faster.

Two sequences are provided, Halton and Sobol. Both implement Sequence.

	// Reuse a caller-owned buffer.
	seq, err := NewSobol(3)
	if err != nil { ... }
	x := make([]float64, 3)
	for i := 0; i < 1000; i++ {
		if err := seq.NextAt(x); err != nil { ... }
	}

	// Or let a Buffered wrapper own it.
	buf := NewBuffered[*Halton](halton)
	x := buf.Next()

Generators hold mutable state and do no locking. To sample from several
goroutines, give each its own Clone().
*/
package qrng

import (
	"errors"
	"fmt"

	"github.com/phil-mansfield/qrng/math/qrng/joekuo"
)

// MaxLogN is the number of bits of state advanced by the sequences. Both
// sequences repeat after roughly 2^MaxLogN draws.
const MaxLogN = 48

var (
	// ErrInvalidDimension is returned when a sequence is requested with more
	// axes than it supports (or fewer than one).
	ErrInvalidDimension = joekuo.ErrInvalidDimension
	// ErrBufferTooSmall is returned by NextAt when the target is shorter
	// than Dim(). The sequence is not advanced.
	ErrBufferTooSmall = errors.New("buffer too small")
)

// Sequence is a multi-dimensional quasi-random sequence generator.
type Sequence interface {
	// Dim returns the number of coordinates generated at each step.
	Dim() int
	// NextAt writes the next point of the sequence to the first Dim()
	// elements of target. Each coordinate lies in [0, 1). If
	// len(target) < Dim(), an error wrapping ErrBufferTooSmall is returned
	// and the sequence does not advance.
	NextAt(target []float64) error
	// NextAtUnchecked is NextAt without the length check. The caller must
	// guarantee len(target) >= Dim(); the behavior is undefined otherwise.
	NextAtUnchecked(target []float64)
	// Clone returns an independent copy of the sequence, positioned at the
	// same point.
	Clone() Sequence
}

// checkLen returns an error if target cannot hold a point with dim coordinates.
func checkLen(target []float64, dim int) error {
	if len(target) < dim {
		return fmt.Errorf("%w: len is %d but the dimensionality is %d",
			ErrBufferTooSmall, len(target), dim)
	}
	return nil
}

// ScaleAt maps the coordinates in target from [0, 1) to [low[i], high[i])
// in place. low and high must be at least as long as target.
func ScaleAt(target, low, high []float64) {
	low, high = low[:len(target)], high[:len(target)]
	for i := range target {
		target[i] = target[i]*(high[i]-low[i]) + low[i]
	}
}
