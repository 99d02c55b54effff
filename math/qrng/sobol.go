package qrng

import (
	"fmt"
	"math/bits"

	"github.com/phil-mansfield/qrng/math/qrng/joekuo"
)

const (
	sobolMaxIndex = uint64(1) << MaxLogN
	sobolFac      = 1.0 / float64(sobolMaxIndex)
)

// SobolMaxDim returns the largest dimensionality supported by NewSobol.
func SobolMaxDim() int { return joekuo.MaxDim() }

// directionNumbers writes the MaxLogN direction numbers of the given axis to
// out[0], out[stride], out[2*stride], ...
func directionNumbers(
	axis int, table *joekuo.Table, out []uint64, stride int,
) error {
	const top = MaxLogN - 1
	var v [MaxLogN]uint64

	if axis == 0 {
		for i := range v {
			v[i] = 1 << (top - i)
		}
	} else {
		e, err := table.Lookup(axis - 1)
		if err != nil {
			return err
		}

		s := e.Degree
		for i := 0; i < s && i < MaxLogN; i++ {
			v[i] = uint64(e.Init[i]) << (top - i)
		}
		for i := s; i < MaxLogN; i++ {
			k := i - s
			x := v[k] ^ (v[k] >> uint(s))
			coef := uint64(e.Coef)
			for j := 1; j < s; j++ {
				x ^= (coef & 1) * v[k+j]
				coef >>= 1
			}
			v[i] = x
		}
	}

	for i := range v {
		out[i*stride] = v[i]
	}
	return nil
}

// Sobol is a Sobol sequence generator.
//
// Direction numbers are built from the primitive polynomials and initial
// values published in "Constructing Sobol Sequences with Better
// Two-Dimensional Projections" (Joe and Kuo, 2008); see package joekuo. Points are generated in Gray code order, so each step
// XORs a single direction number into every axis.
type Sobol struct {
	dim int
	// dirnums[c*dim + j] is direction number c of axis j.
	dirnums []uint64
	value   []uint64
	index   uint64
}

var _ Sequence = &Sobol{}

// NewSobol returns a Sobol sequence with dim axes using the compiled-in
// direction number table. An error wrapping ErrInvalidDimension is returned
// if dim is less than one or larger than SobolMaxDim().
func NewSobol(dim int) (*Sobol, error) {
	return NewSobolFromTable(dim, joekuo.Default())
}

// NewSobolFromTable is NewSobol with a caller-supplied direction number
// table, which limits dim to table.MaxDim().
func NewSobolFromTable(dim int, table *joekuo.Table) (*Sobol, error) {
	if dim < 1 || dim > table.MaxDim() {
		return nil, fmt.Errorf("%w: %d (maximum is %d)",
			ErrInvalidDimension, dim, table.MaxDim())
	}

	seq := &Sobol{
		dim:     dim,
		dirnums: make([]uint64, dim*MaxLogN),
		value:   make([]uint64, dim),
	}
	for j := 0; j < dim; j++ {
		if err := directionNumbers(j, table, seq.dirnums[j:], dim); err != nil {
			return nil, err
		}
	}
	return seq, nil
}

// Dim returns the number of axes.
func (seq *Sobol) Dim() int { return seq.dim }

// NextAt writes the next point to target.
func (seq *Sobol) NextAt(target []float64) error {
	if err := checkLen(target, seq.dim); err != nil {
		return err
	}
	seq.NextAtUnchecked(target)
	return nil
}

// NextAtUnchecked writes the next point to target without checking its
// length.
func (seq *Sobol) NextAtUnchecked(target []float64) {
	target = target[:seq.dim]
	c := bits.TrailingZeros64(^seq.index)
	if c >= MaxLogN {
		// Every one of the 2^48 - 1 reachable points has been drawn.
		seq.index = 0
		for j := range seq.value {
			seq.value[j] = 0
		}
		c = 0
	}

	v := seq.dirnums[c*seq.dim : (c+1)*seq.dim]
	for j := range target {
		seq.value[j] ^= v[j]
		target[j] = float64(seq.value[j]) * sobolFac
	}
	seq.index = (seq.index + 1) % sobolMaxIndex
}

// Clone returns an independent copy of seq. The direction numbers are
// shared, since they are never modified after construction.
func (seq *Sobol) Clone() Sequence {
	return &Sobol{
		dim:     seq.dim,
		dirnums: seq.dirnums,
		value:   append([]uint64(nil), seq.value...),
		index:   seq.index,
	}
}
