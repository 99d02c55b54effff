package qrng

// Buffered wraps a Sequence together with a buffer that holds its most
// recent point, so that repeated sampling doesn't allocate.
type Buffered[S Sequence] struct {
	seq S
	buf []float64
}

var _ Sequence = &Buffered[*Sobol]{}

// NewBuffered wraps seq. The buffer is sized to seq.Dim() once and never
// resized.
func NewBuffered[S Sequence](seq S) *Buffered[S] {
	return &Buffered[S]{seq: seq, buf: make([]float64, seq.Dim())}
}

// Next advances the sequence and returns the new point. The returned slice is
// owned by b and is overwritten by the next call to Next.
func (b *Buffered[S]) Next() []float64 {
	b.seq.NextAtUnchecked(b.buf)
	return b.buf
}

// Inner returns the wrapped sequence.
func (b *Buffered[S]) Inner() S { return b.seq }

// Dim returns the dimensionality of the wrapped sequence.
func (b *Buffered[S]) Dim() int { return b.seq.Dim() }

// NextAt writes the next point to target, leaving the internal buffer alone.
func (b *Buffered[S]) NextAt(target []float64) error {
	return b.seq.NextAt(target)
}

// NextAtUnchecked writes the next point to target without checking its
// length.
func (b *Buffered[S]) NextAtUnchecked(target []float64) {
	b.seq.NextAtUnchecked(target)
}

// Clone returns an independent copy of b, including its buffer.
func (b *Buffered[S]) Clone() Sequence {
	return &Buffered[S]{
		seq: b.seq.Clone().(S),
		buf: append([]float64(nil), b.buf...),
	}
}
