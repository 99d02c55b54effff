package qrng

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/qrng/math/prime"
)

// haltonAxis generates the van der Corput sequence in a single base.
type haltonAxis struct {
	base uint32
	// digits is the base-b expansion of the current index, least significant
	// digit first. remainders[k] is the value contributed by every digit
	// above k, so the current point is (digits[0] + remainders[0]) / base.
	digits     []uint32
	remainders []float64
	// nextPower is the next index which needs another digit.
	nextPower uint64
}

func newHaltonAxis(base uint32) haltonAxis {
	return haltonAxis{
		base:       base,
		digits:     []uint32{0},
		remainders: []float64{0},
		nextPower:  1,
	}
}

func (ax *haltonAxis) reset() {
	ax.digits = append(ax.digits[:0], 0)
	ax.remainders = append(ax.remainders[:0], 0)
	ax.nextPower = 1
}

func (ax *haltonAxis) clone() haltonAxis {
	return haltonAxis{
		base:       ax.base,
		digits:     append([]uint32(nil), ax.digits...),
		remainders: append([]float64(nil), ax.remainders...),
		nextPower:  ax.nextPower,
	}
}

// next returns the point at index, which must be one larger than the index
// passed on the previous call (or 1 after a reset).
func (ax *haltonAxis) next(index uint64) float64 {
	// The digit slices only grow when a new digit appears, which happens at
	// indices base^0, base^1, base^2, ...
	if index == ax.nextPower {
		ax.digits = append(ax.digits, 0)
		ax.remainders = append(ax.remainders, 0)
		if ax.nextPower > math.MaxUint64/uint64(ax.base) {
			ax.nextPower = math.MaxUint64
		} else {
			ax.nextPower *= uint64(ax.base)
		}
	}

	base := float64(ax.base)
	digits, rem := ax.digits, ax.remainders

	digits[0]++
	if digits[0] != ax.base {
		return (float64(digits[0]) + rem[0]) / base
	}

	k := 0
	for digits[k] == ax.base {
		digits[k] = 0
		k++
		digits[k]++
	}
	rem[k-1] = (float64(digits[k]) + rem[k]) / base
	for i := k - 1; i >= 1; i-- {
		rem[i-1] = rem[i] / base
	}
	return rem[0] / base
}

// Halton is a Halton sequence generator. Axis i is the van der Corput
// sequence in the base of the ith prime.
//
// Points are computed incrementally following "Fast, Portable, and Reliable
// Algorithm for the Calculation of Halton Numbers" (Kolar and Shea, 1993):
// each step increments a stored digit expansion instead of recomputing it,
// which costs amortized O(1) per axis.
type Halton struct {
	index uint64
	axes  []haltonAxis
}

var _ Sequence = &Halton{}

// NewHalton returns a Halton sequence with dim axes, using the first dim
// primes as bases. Construction time grows quickly with dim; tens of
// thousands of axes are impractical.
func NewHalton(dim int) (*Halton, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}

	seq := &Halton{axes: make([]haltonAxis, dim)}
	primes := prime.New()
	for i := range seq.axes {
		seq.axes[i] = newHaltonAxis(uint32(primes.Next()))
	}
	return seq, nil
}

// Dim returns the number of axes.
func (seq *Halton) Dim() int { return len(seq.axes) }

// Bases returns the base of every axis.
func (seq *Halton) Bases() []uint32 {
	out := make([]uint32, len(seq.axes))
	for i := range seq.axes {
		out[i] = seq.axes[i].base
	}
	return out
}

// NextAt writes the next point to target.
func (seq *Halton) NextAt(target []float64) error {
	if err := checkLen(target, len(seq.axes)); err != nil {
		return err
	}
	seq.NextAtUnchecked(target)
	return nil
}

// NextAtUnchecked writes the next point to target without checking its
// length.
func (seq *Halton) NextAtUnchecked(target []float64) {
	target = target[:len(seq.axes)]
	if seq.index >= 1<<MaxLogN {
		seq.index = 0
		for i := range seq.axes {
			seq.axes[i].reset()
		}
	}

	seq.index++
	for i := range seq.axes {
		target[i] = seq.axes[i].next(seq.index)
	}
}

// Clone returns an independent copy of seq.
func (seq *Halton) Clone() Sequence {
	out := &Halton{index: seq.index, axes: make([]haltonAxis, len(seq.axes))}
	for i := range seq.axes {
		out.axes[i] = seq.axes[i].clone()
	}
	return out
}
