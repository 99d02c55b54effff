/*package prime generates the increasing sequence of prime numbers. It is used
to choose the bases of Halton sequences, which only need the first few
thousand primes, so plain trial division against the cached primes is fast
enough.*/
package prime

// Sequence is a lazy, unbounded sequence of primes: 2, 3, 5, 7, 11, ...
// The zero value is not usable; call New.
type Sequence struct {
	primes []uint64
	index  int
}

// New returns a Sequence positioned before the first prime. A fresh Sequence
// is the only way to restart from 2.
func New() *Sequence {
	return &Sequence{primes: []uint64{2, 3}}
}

// Next returns the next prime in the sequence.
func (seq *Sequence) Next() uint64 {
	for len(seq.primes) <= seq.index {
		seq.extend()
	}
	seq.index++
	return seq.primes[seq.index-1]
}

// extend appends the smallest prime larger than every cached prime.
func (seq *Sequence) extend() {
	x := seq.primes[len(seq.primes)-1]
outer:
	for {
		x += 2
		for _, p := range seq.primes {
			if x%p == 0 {
				continue outer
			} else if p*p > x {
				break
			}
		}
		seq.primes = append(seq.primes, x)
		return
	}
}

// First returns the first n primes.
func First(n int) []uint64 {
	out := make([]uint64, n)
	seq := New()
	for i := range out {
		out[i] = seq.Next()
	}
	return out
}
