/*package joekuo reads tables of primitive polynomials and initial direction
numbers for Sobol sequences in the text format published by Joe and Kuo:

	d       s       a       m_i
	2       1       0       1
	3       2       1       1 3
	4       3       1       1 3 1

Each row gives an axis d (1-indexed, starting at 2 since the first axis needs
no polynomial), the degree s of its primitive polynomial, the polynomial's
interior coefficients a packed into an integer with the highest-degree term in
the most significant bit, and the s initial direction numbers m_1 ... m_s.

A table is compiled into the package. With a copy of Joe and Kuo's
new-joe-kuo-6.21201 file in this directory, go generate runs
scripts/sobolgen.go to write its first 1110 rows to joe-kuo-std.txt and all
21200 to joe-kuo-highdim.txt, which is embedded instead when building with
the sobolhighdim tag. The checked-in copies stop at axis 23, and MaxDim
reports the coverage of whichever table is embedded. The full published file
can be read at runtime with Load.
*/
package joekuo

//go:generate go run ../../../scripts/sobolgen.go -in new-joe-kuo-6.21201 -rows 1110 -out joe-kuo-std.txt
//go:generate go run ../../../scripts/sobolgen.go -in new-joe-kuo-6.21201 -rows 21200 -out joe-kuo-highdim.txt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrInvalidDimension is returned when a lookup or sequence asks for an
	// axis the table doesn't cover, or for fewer than one axis.
	ErrInvalidDimension = errors.New("invalid sequence dimension")
	// ErrMalformedTable is returned by Parse and Load when a row can't be
	// read or breaks the format's constraints.
	ErrMalformedTable = errors.New("malformed direction number table")
)

// MaxDegree is the largest polynomial degree a Table can hold. Direction
// numbers are computed with 48 bits of precision, and m_k < 2^k must fit in
// a uint32.
const MaxDegree = 32

// Entry is a single row of a direction number table.
type Entry struct {
	// Degree is the degree s of the primitive polynomial.
	Degree int
	// Coef holds the s-1 interior coefficients of the polynomial. Bit 0 is
	// the coefficient of x^1.
	Coef uint32
	// Init holds the initial direction numbers m_1 ... m_s. Every m_k is odd
	// and less than 2^k.
	Init []uint32
}

// Table is an immutable direction number table. Entry i describes axis i+1.
type Table struct {
	entries []Entry
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.entries) }

// MaxDim returns the largest dimensionality a Sobol sequence built from this
// table can have.
func (t *Table) MaxDim() int { return len(t.entries) + 1 }

// Lookup returns the entry for axis index+1. An error wrapping
// ErrInvalidDimension is returned if index+2 exceeds MaxDim().
func (t *Table) Lookup(index int) (Entry, error) {
	if index < 0 || index+2 > t.MaxDim() {
		return Entry{}, fmt.Errorf("%w: %d (maximum is %d)",
			ErrInvalidDimension, index+2, t.MaxDim())
	}
	return t.entries[index], nil
}

// Parse reads a table. Blank lines, lines starting with '#' and a column
// header line beginning with "d" are skipped. Rows must start at d = 2 and
// increase by one.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == 'd' {
			continue
		}

		e, d, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s",
				ErrMalformedTable, lineNum, err.Error())
		}
		if want := len(t.entries) + 2; d != want {
			return nil, fmt.Errorf("%w: line %d: expected axis %d, got %d",
				ErrMalformedTable, lineNum, want, d)
		}
		t.entries = append(t.entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Load reads a table from the named file.
func Load(fname string) (*Table, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return t, nil
}

func parseRow(line string) (Entry, int, error) {
	toks := strings.Fields(line)
	if len(toks) < 4 {
		return Entry{}, 0, fmt.Errorf("expected at least 4 columns, got %d",
			len(toks))
	}

	vals := make([]uint64, len(toks))
	for i := range toks {
		v, err := strconv.ParseUint(toks[i], 10, 32)
		if err != nil {
			return Entry{}, 0, fmt.Errorf("column %d: %s", i+1, err.Error())
		}
		vals[i] = v
	}

	d, s, a, m := int(vals[0]), int(vals[1]), vals[2], vals[3:]
	switch {
	case s < 1 || s > MaxDegree:
		return Entry{}, 0, fmt.Errorf("degree %d out of range", s)
	case len(m) != s:
		return Entry{}, 0, fmt.Errorf("degree %d needs %d direction "+
			"numbers, got %d", s, s, len(m))
	case a>>uint(s-1) != 0:
		return Entry{}, 0, fmt.Errorf("coefficients %d do not fit a "+
			"polynomial of degree %d", a, s)
	}

	e := Entry{Degree: s, Coef: uint32(a), Init: make([]uint32, s)}
	for k := range m {
		if m[k]%2 == 0 || m[k]>>uint(k+1) != 0 {
			return Entry{}, 0, fmt.Errorf("m_%d = %d must be odd and less "+
				"than 2^%d", k+1, m[k], k+1)
		}
		e.Init[k] = uint32(m[k])
	}
	return e, d, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the compiled-in table. It is parsed on first use and shared
// afterwards; it panics if the embedded data is corrupt.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(bytes.NewReader(embeddedTable))
		if err != nil {
			panic(fmt.Sprintf("joekuo: embedded table: %s", err.Error()))
		}
		defaultTable = t
	})
	return defaultTable
}

// MaxDim returns the largest dimensionality supported by the compiled-in
// table.
func MaxDim() int { return Default().MaxDim() }

// Lookup returns the compiled-in entry for axis index+1.
func Lookup(index int) (Entry, error) {
	return Default().Lookup(index)
}
