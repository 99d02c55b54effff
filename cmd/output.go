package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// validateFormat returns an error if format isn't one of the allowed output
// formats of the given mode.
func validateFormat(mode, format string, allowed ...string) error {
	for _, s := range allowed {
		if format == s {
			return nil
		}
	}
	return fmt.Errorf("The 'Format' variable of the %s.config file is set "+
		"to '%s', but the only supported formats are %s.", mode, format,
		strings.Join(allowed, ", "))
}

// formatFloats writes xs with sep between values, using the shortest
// representation which parses back to the same float64.
func formatFloats(xs []float64, sep string) string {
	sb := &strings.Builder{}
	for i, x := range xs {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	return sb.String()
}

// columnNames returns prefix_0, prefix_1, ... prefix_{n-1}.
func columnNames(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s_%d", prefix, i)
	}
	return out
}

// yamlLines marshals v as a YAML document and splits it into lines.
func yamlLines(v any) ([]string, error) {
	bs, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(bs), "\n"), "\n"), nil
}
