/*package version tracks the version of the qrng source and of the config
files written for it.*/
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the version string representing the semantic version number
// of the source code.
const SourceVersion = "0.1.0"

// Parse parses a semantic version number string and returns an error if
// the string is invalid.
func Parse(s string) (major, minor, patch int, err error) {
	toks := strings.Split(strings.TrimSpace(s), ".")
	errMsg := fmt.Errorf("The version string '%s' does not take the form "+
		"of three period-separated non-negative numbers.", s)

	if len(toks) != 3 {
		return -1, -1, -1, errMsg
	}

	var nums [3]int
	for i := range toks {
		nums[i], err = strconv.Atoi(toks[i])
		if err != nil || nums[i] < 0 {
			return -1, -1, -1, errMsg
		}
	}

	return nums[0], nums[1], nums[2], nil
}

// Compare returns -1, 0, or 1 depending on whether s1 represents an earlier,
// the same, or a later version than s2. An error is returned if either is
// invalid.
func Compare(s1, s2 string) (int, error) {
	major1, minor1, patch1, err := Parse(s1)
	if err != nil {
		return 0, err
	}
	major2, minor2, patch2, err := Parse(s2)
	if err != nil {
		return 0, err
	}

	for _, d := range [3]int{
		major1 - major2, minor1 - minor2, patch1 - patch2,
	} {
		switch {
		case d < 0:
			return -1, nil
		case d > 0:
			return +1, nil
		}
	}
	return 0, nil
}

// Later returns true if s1 represents a later version of the source than
// s2. An error is returned if either is invalid.
func Later(s1, s2 string) (bool, error) {
	c, err := Compare(s1, s2)
	return c > 0, err
}

// Check returns an error if the config version s doesn't match
// SourceVersion.
func Check(s string) error {
	c, err := Compare(s, SourceVersion)
	if err != nil {
		return fmt.Errorf("I couldn't parse the 'Version' variable: %s",
			err.Error())
	}
	if c != 0 {
		return fmt.Errorf("The 'Version' variable is set to %s, but the "+
			"version of the source is %s.", s, SourceVersion)
	}
	return nil
}
