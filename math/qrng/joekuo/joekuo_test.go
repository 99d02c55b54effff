package joekuo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// publishedRows are rows 2 to 23 of new-joe-kuo-6.21201.
var publishedRows = []Entry{
	{1, 0, []uint32{1}},
	{2, 1, []uint32{1, 3}},
	{3, 1, []uint32{1, 3, 1}},
	{3, 2, []uint32{1, 1, 1}},
	{4, 1, []uint32{1, 1, 3, 3}},
	{4, 4, []uint32{1, 3, 5, 13}},
	{5, 2, []uint32{1, 1, 5, 5, 17}},
	{5, 4, []uint32{1, 1, 5, 5, 5}},
	{5, 7, []uint32{1, 1, 7, 11, 19}},
	{5, 11, []uint32{1, 1, 5, 1, 1}},
	{5, 13, []uint32{1, 1, 1, 3, 11}},
	{5, 14, []uint32{1, 3, 5, 5, 31}},
	{6, 1, []uint32{1, 3, 3, 9, 7, 49}},
	{6, 13, []uint32{1, 1, 1, 15, 21, 21}},
	{6, 16, []uint32{1, 3, 1, 13, 27, 49}},
	{6, 19, []uint32{1, 1, 1, 15, 7, 5}},
	{6, 22, []uint32{1, 3, 1, 15, 13, 25}},
	{6, 25, []uint32{1, 1, 5, 5, 19, 61}},
	{7, 1, []uint32{1, 3, 7, 11, 23, 15, 103}},
	{7, 4, []uint32{1, 3, 7, 13, 13, 15, 69}},
	{7, 7, []uint32{1, 1, 3, 13, 7, 35, 63}},
	{7, 8, []uint32{1, 3, 5, 9, 1, 25, 53}},
}

func TestDefaultSize(t *testing.T) {
	tab := Default()
	assert.Equal(t, MaxDim(), tab.MaxDim())
	assert.Equal(t, MaxDim()-1, tab.Len())
	assert.GreaterOrEqual(t, tab.Len(), len(publishedRows))
	assert.Same(t, tab, Default())
}

func TestDefaultMatchesPublished(t *testing.T) {
	for i, want := range publishedRows {
		e, err := Lookup(i)
		require.NoError(t, err, "axis %d", i+2)
		assert.Equal(t, want, e, "axis %d", i+2)
	}
}

// The embedded file's header names the published rows it was cut from.
func TestEmbeddedHeader(t *testing.T) {
	want := fmt.Sprintf("# Rows 2 to %d of new-joe-kuo-6.21201.", MaxDim())
	assert.Contains(t, string(embeddedTable), want)
}

func TestLookupOutOfRange(t *testing.T) {
	for _, index := range []int{-1, MaxDim() - 1, MaxDim(), 1 << 20} {
		_, err := Lookup(index)
		assert.ErrorIs(t, err, ErrInvalidDimension, "index %d", index)
	}
}

// Every row of the default table should describe a primitive polynomial,
// and the rows should be ordered by degree and then by coefficients.
func TestDefaultPolynomialsArePrimitive(t *testing.T) {
	tab := Default()
	prevDegree, prevCoef := 0, uint32(0)
	for i := 0; i < tab.Len(); i++ {
		e, err := tab.Lookup(i)
		require.NoError(t, err)

		if e.Degree == prevDegree {
			require.Greater(t, e.Coef, prevCoef, "index %d", i)
		} else {
			require.Greater(t, e.Degree, prevDegree, "index %d", i)
		}
		prevDegree, prevCoef = e.Degree, e.Coef

		if e.Degree > 16 {
			continue
		}
		require.True(t, isPrimitive(e.Degree, e.Coef), "index %d", i)
	}
}

// isPrimitive reports whether x has order 2^s - 1 modulo the polynomial
// x^s + a_1 x^(s-1) + ... + a_(s-1) x + 1 over GF(2).
func isPrimitive(s int, coef uint32) bool {
	poly := uint64(1)<<uint(s) | uint64(coef)<<1 | 1
	order := uint64(1)<<uint(s) - 1

	mulMod := func(a, b uint64) uint64 {
		r := uint64(0)
		for ; b != 0; b >>= 1 {
			if b&1 == 1 {
				r ^= a
			}
			a <<= 1
			if a>>uint(s)&1 == 1 {
				a ^= poly
			}
		}
		return r
	}
	powMod := func(e uint64) uint64 {
		base, r := uint64(2), uint64(1)
		if s == 1 {
			base = 1
		}
		for ; e != 0; e >>= 1 {
			if e&1 == 1 {
				r = mulMod(r, base)
			}
			base = mulMod(base, base)
		}
		return r
	}

	if powMod(order) != 1 {
		return false
	}
	n := order
	for q := uint64(2); q*q <= n; q++ {
		if n%q != 0 {
			continue
		}
		if powMod(order/q) == 1 {
			return false
		}
		for n%q == 0 {
			n /= q
		}
	}
	return n == 1 || powMod(order/n) != 1
}

func TestParse(t *testing.T) {
	text := `d       s       a       m_i
# comment
2       1       0       1

3       2       1       1 3
4       3       1       1 3 1
`
	tab, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, 3, tab.Len())
	assert.Equal(t, 4, tab.MaxDim())

	e, err := tab.Lookup(2)
	require.NoError(t, err)
	assert.Equal(t, Entry{3, 1, []uint32{1, 3, 1}}, e)

	_, err = tab.Lookup(3)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, text string
	}{
		{"skipped axis", "2 1 0 1\n4 3 1 1 3 1\n"},
		{"wrong first axis", "3 2 1 1 3\n"},
		{"too few columns", "2 1 0\n"},
		{"too few seeds", "2 1 0 1\n3 2 1 1\n"},
		{"too many seeds", "2 1 0 1 1\n"},
		{"even seed", "2 1 0 1\n3 2 1 1 2\n"},
		{"seed too large", "2 1 0 1\n3 2 1 1 5\n"},
		{"coefficients too large", "2 1 0 1\n3 2 2 1 3\n"},
		{"zero degree", "2 0 0\n"},
		{"not a number", "2 1 zero 1\n"},
		{"negative", "2 1 -1 1\n"},
	}

	for _, test := range tests {
		_, err := Parse(strings.NewReader(test.text))
		assert.ErrorIs(t, err, ErrMalformedTable, test.name)
	}
}

func TestLoad(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "dirs.txt")
	require.NoError(t, os.WriteFile(fname, []byte("2 1 0 1\n3 2 1 1 3\n"), 0644))

	tab, err := Load(fname)
	require.NoError(t, err)
	assert.Equal(t, 3, tab.MaxDim())

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func BenchmarkParseDefault(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Parse(strings.NewReader(string(embeddedTable))); err != nil {
			b.Fatal(err)
		}
	}
}
