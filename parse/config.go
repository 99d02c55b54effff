/*package parse reads the .config files used to configure every qrng mode.

A config file starts with a header naming its type, followed by one
assignment per line:

	[gen.config]
	# Comments run to the end of the line.
	Samples = 1000
	Low = 0, 0, -1

Variable names are case-insensitive. List values are comma-separated.
Variables which aren't assigned keep the default value they were registered
with.
*/
package parse

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

/////////////////////
// Conversion Code //
/////////////////////

type varType int

const (
	intVar varType = iota
	intsVar
	floatVar
	floatsVar
	stringVar
	stringsVar
	boolVar
	boolsVar
)

func (v varType) String() string {
	switch v {
	case intVar:
		return "int"
	case intsVar:
		return "int list"
	case floatVar:
		return "float"
	case floatsVar:
		return "float list"
	case stringVar:
		return "string"
	case stringsVar:
		return "string list"
	case boolVar:
		return "bool"
	case boolsVar:
		return "bool list"
	}
	panic("Impossible")
}

// article returns the indefinite article which goes in front of the type
// name.
func (v varType) article() string {
	if v == intVar || v == intsVar {
		return "an"
	}
	return "a"
}

type conversionFunc func(string) bool

type configVar struct {
	name string
	typ  varType
	conv conversionFunc
}

// ConfigVars is the set of variables that a config file of a given type may
// assign to.
type ConfigVars struct {
	name string
	vars []configVar
}

func intConv(ptr *int64) conversionFunc {
	return func(s string) bool {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return false
		}
		*ptr = i
		return true
	}
}

func floatConv(ptr *float64) conversionFunc {
	return func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return false
		}
		*ptr = f
		return true
	}
}

func stringConv(ptr *string) conversionFunc {
	return func(s string) bool {
		*ptr = strings.TrimSpace(s)
		return true
	}
}

func boolConv(ptr *bool) conversionFunc {
	return func(s string) bool {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false
		}
		*ptr = b
		return true
	}
}

func strToList(a string) []string {
	if strings.TrimSpace(a) == "" {
		return nil
	}
	strs := strings.Split(a, ",")
	for i := range strs {
		strs[i] = strings.TrimSpace(strs[i])
	}
	return strs
}

// listConv builds a conversionFunc for a list from the conversion function of
// its elements. ptr is only written to if every element converts.
func listConv[T any](ptr *[]T, elem func(string) (T, bool)) conversionFunc {
	return func(s string) bool {
		toks := strToList(s)
		out := make([]T, len(toks))
		for i := range toks {
			x, ok := elem(toks[i])
			if !ok {
				return false
			}
			out[i] = x
		}
		*ptr = out
		return true
	}
}

func elemConv[T any](conv func(*T) conversionFunc) func(string) (T, bool) {
	return func(s string) (T, bool) {
		var x T
		ok := conv(&x)(s)
		return x, ok
	}
}

func intsConv(ptr *[]int64) conversionFunc {
	return listConv(ptr, elemConv(intConv))
}

func floatsConv(ptr *[]float64) conversionFunc {
	return listConv(ptr, elemConv(floatConv))
}

func stringsConv(ptr *[]string) conversionFunc {
	return listConv(ptr, elemConv(stringConv))
}

func boolsConv(ptr *[]bool) conversionFunc {
	return listConv(ptr, elemConv(boolConv))
}

// NewConfigVars creates an empty variable set for config files with the
// header [name].
func NewConfigVars(name string) *ConfigVars {
	return &ConfigVars{name: name}
}

// Name returns the header of the config files described by vars.
func (vars *ConfigVars) Name() string { return vars.name }

func (vars *ConfigVars) add(name string, typ varType, conv conversionFunc) {
	vars.vars = append(vars.vars, configVar{
		name: strings.ToLower(name), typ: typ, conv: conv,
	})
}

func (vars *ConfigVars) Int(ptr *int64, name string, value int64) {
	*ptr = value
	vars.add(name, intVar, intConv(ptr))
}

func (vars *ConfigVars) Float(ptr *float64, name string, value float64) {
	*ptr = value
	vars.add(name, floatVar, floatConv(ptr))
}

func (vars *ConfigVars) String(ptr *string, name string, value string) {
	*ptr = value
	vars.add(name, stringVar, stringConv(ptr))
}

func (vars *ConfigVars) Bool(ptr *bool, name string, value bool) {
	*ptr = value
	vars.add(name, boolVar, boolConv(ptr))
}

func (vars *ConfigVars) Ints(ptr *[]int64, name string, value []int64) {
	*ptr = value
	vars.add(name, intsVar, intsConv(ptr))
}

func (vars *ConfigVars) Floats(ptr *[]float64, name string, value []float64) {
	*ptr = value
	vars.add(name, floatsVar, floatsConv(ptr))
}

func (vars *ConfigVars) Strings(ptr *[]string, name string, value []string) {
	*ptr = value
	vars.add(name, stringsVar, stringsConv(ptr))
}

func (vars *ConfigVars) Bools(ptr *[]bool, name string, value []bool) {
	*ptr = value
	vars.add(name, boolsVar, boolsConv(ptr))
}

// lookup returns the index of the named variable, or -1.
func (vars *ConfigVars) lookup(name string) int {
	for i := range vars.vars {
		if vars.vars[i].name == name {
			return i
		}
	}
	return -1
}

//////////////////
// Parsing Code //
//////////////////

// ReadConfig reads the config file fname into vars.
func ReadConfig(fname string, vars *ConfigVars) error {
	bs, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	return ParseConfig(bytes.NewReader(bs), fname, vars)
}

// ParseConfig reads a config file from r into vars. fname is only used in
// error messages.
func ParseConfig(r io.Reader, fname string, vars *ConfigVars) error {
	bs, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	lines := strings.Split(strings.ReplaceAll(string(bs), "\r\n", "\n"), "\n")
	lines, lineNums := removeComments(lines)
	for i := range lineNums {
		lineNums[i]++
	}

	if len(lines) == 0 || !strings.EqualFold(lines[0], "["+vars.name+"]") {
		return fmt.Errorf(
			"I expected the config file %s to have the header "+
				"[%s] at the top, but didn't find it.", fname, vars.name,
		)
	}
	lines, lineNums = lines[1:], lineNums[1:]

	names, vals, errLine := associationList(lines)
	if errLine != -1 {
		return fmt.Errorf(
			"I could not parse line %d of the config file %s because it "+
				"did not take the form of a variable assignment.",
			lineNums[errLine], fname,
		)
	}

	if errLine = checkValidNames(names, vars); errLine != -1 {
		return fmt.Errorf(
			"Line %d of the config file %s assigns a value to the "+
				"variable '%s', but config files of type %s don't have that "+
				"variable.", lineNums[errLine], fname, names[errLine], vars.name,
		)
	}

	if errLine1, errLine2 := checkDuplicateNames(names); errLine1 != -1 {
		return fmt.Errorf(
			"Lines %d and %d of the config file %s both assign a value to "+
				"the variable '%s'.", lineNums[errLine1], lineNums[errLine2],
			fname, names[errLine1],
		)
	}

	if errLine = convertAssoc(names, vals, vars); errLine != -1 {
		v := vars.vars[vars.lookup(names[errLine])]
		return fmt.Errorf(
			"I could not parse line %d of the config file %s because '%s' "+
				"expects values of type %s and '%s' cannot be converted to "+
				"%s %s.", lineNums[errLine], fname, v.name, v.typ,
			vals[errLine], v.typ.article(), v.typ,
		)
	}

	return nil
}

func removeComments(lines []string) ([]string, []int) {
	out, lineNums := []string{}, []int{}
	for i := range lines {
		line := lines[i]
		if comment := strings.Index(line, "#"); comment != -1 {
			line = line[:comment]
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		out = append(out, line)
		lineNums = append(lineNums, i)
	}

	return out, lineNums
}

func associationList(lines []string) ([]string, []string, int) {
	names, vals := []string{}, []string{}
	for i := range lines {
		name, val, ok := strings.Cut(lines[i], "=")
		if !ok {
			return nil, nil, i
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if len(name) == 0 {
			return nil, nil, i
		}
		names = append(names, name)
		vals = append(vals, strings.TrimSpace(val))
	}
	return names, vals, -1
}

func checkValidNames(names []string, vars *ConfigVars) int {
	for i := range names {
		if vars.lookup(names[i]) == -1 {
			return i
		}
	}
	return -1
}

func checkDuplicateNames(names []string) (int, int) {
	seen := map[string]int{}
	for j := range names {
		if i, ok := seen[names[j]]; ok {
			return i, j
		}
		seen[names[j]] = j
	}
	return -1, -1
}

func convertAssoc(names, vals []string, vars *ConfigVars) int {
	for i := range names {
		if !vars.vars[vars.lookup(names[i])].conv(vals[i]) {
			return i
		}
	}
	return -1
}
