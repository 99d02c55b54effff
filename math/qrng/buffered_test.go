package qrng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedNext(t *testing.T) {
	seq, err := NewSobol(8)
	require.NoError(t, err)
	buf := NewBuffered(seq)
	assert.Equal(t, 8, buf.Dim())
	assert.Same(t, seq, buf.Inner())

	first := buf.Next()
	assert.Equal(t, sobol8[0], first)
	for i := 1; i < len(sobol8); i++ {
		x := buf.Next()
		assert.Equal(t, sobol8[i], x, "draw %d", i)
		// The same storage is handed back every time.
		assert.Same(t, &first[0], &x[0])
	}
}

func TestBufferedNextAt(t *testing.T) {
	seq, err := NewHalton(2)
	require.NoError(t, err)
	buf := NewBuffered(seq)

	x := buf.Next()
	assert.Equal(t, []float64{0.5, 1.0 / 3}, x)

	y := make([]float64, 2)
	require.NoError(t, buf.NextAt(y))
	assert.Equal(t, []float64{0.25, 2.0 / 3}, y)
	assert.Equal(t, []float64{0.5, 1.0 / 3}, x, "NextAt touched the buffer")

	assert.ErrorIs(t, buf.NextAt(y[:1]), ErrBufferTooSmall)
	buf.NextAtUnchecked(y)
	assert.Equal(t, 0.75, y[0])
}

func TestBufferedClone(t *testing.T) {
	seq, err := NewSobol(8)
	require.NoError(t, err)
	buf := NewBuffered(seq)
	for i := 0; i < 5; i++ {
		buf.Next()
	}

	clone := buf.Clone().(*Buffered[*Sobol])
	assert.NotSame(t, buf.Inner(), clone.Inner())
	assert.Equal(t, sobol8[4], clone.buf)

	for i := 5; i < len(sobol8); i++ {
		assert.Equal(t, sobol8[i], clone.Next(), "draw %d", i)
	}
	assert.Equal(t, sobol8[4], buf.buf)
	assert.Equal(t, sobol8[5], buf.Next())
}

func TestBufferedInterface(t *testing.T) {
	seq, err := NewHalton(3)
	require.NoError(t, err)

	var s Sequence = NewBuffered[Sequence](seq)
	clone := s.Clone()
	x, y := make([]float64, 3), make([]float64, 3)
	for i := 0; i < 100; i++ {
		require.NoError(t, s.NextAt(x))
		require.NoError(t, clone.NextAt(y))
		require.Equal(t, x, y)
	}
}
