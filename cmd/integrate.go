package cmd

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/qrng/math/qrng"
	"github.com/phil-mansfield/qrng/parse"
)

// Integrand is a test function on the unit hypercube with a known integral.
type Integrand struct {
	// F evaluates the integrand at x. buf has the same length as x and may be
	// used as scratch space.
	F func(x, buf []float64) float64
	// Exact returns the integral over the dim-dimensional unit hypercube.
	Exact func(dim int) float64
}

// Integrands are the test functions supported by the integrate mode.
var Integrands = map[string]Integrand{
	// prod_i 2 x_i
	"product": {
		F: func(x, buf []float64) float64 {
			floats.ScaleTo(buf, 2, x)
			return floats.Prod(buf)
		},
		Exact: func(dim int) float64 { return 1 },
	},
	// exp(-|x - 1/2|^2)
	"gaussian": {
		F: func(x, buf []float64) float64 {
			copy(buf, x)
			floats.AddConst(-0.5, buf)
			return math.Exp(-floats.Dot(buf, buf))
		},
		Exact: func(dim int) float64 {
			return math.Pow(math.Sqrt(math.Pi)*math.Erf(0.5), float64(dim))
		},
	},
	// The Sobol' g-function, prod_i (|4 x_i - 2| + a_i) / (1 + a_i) with
	// a_i = i / 2, so later axes matter less.
	"gfunc": {
		F: func(x, buf []float64) float64 {
			for i := range x {
				a := float64(i) / 2
				buf[i] = (math.Abs(4*x[i]-2) + a) / (1 + a)
			}
			return floats.Prod(buf)
		},
		Exact: func(dim int) float64 { return 1 },
	},
}

// IntegrateConfig estimates the integral of a test function over the unit
// hypercube and compares it to the exact value.
type IntegrateConfig struct {
	samples   int64
	integrand string
	format    string
}

var _ Mode = &IntegrateConfig{}

// Estimate is a single estimate of an integral.
type Estimate struct {
	Samples  int64   `yaml:"samples"`
	Estimate float64 `yaml:"estimate"`
	Error    float64 `yaml:"error"`
}

// IntegrateReport is the output of the integrate mode. Convergence holds an
// estimate for every power of two below Samples, followed by the final one.
type IntegrateReport struct {
	Sequence    string     `yaml:"sequence"`
	Dim         int64      `yaml:"dim"`
	Integrand   string     `yaml:"integrand"`
	Exact       float64    `yaml:"exact"`
	Convergence []Estimate `yaml:"convergence"`
}

func (config *IntegrateConfig) ExampleConfig() string {
	names := make([]string, 0, len(Integrands))
	for name := range Integrands {
		names = append(names, name)
	}
	sort.Strings(names)

	return fmt.Sprintf(`[integrate.config]

#####################
## Optional Fields ##
#####################

# Samples is the number of points used in the final estimate. The default
# value is 65535.
Samples = 65535

# Integrand is the function being integrated over the unit hypercube. All of
# them have known integrals:
# product  - prod_i 2 x_i, which integrates to 1.
# gaussian - exp(-|x - 1/2|^2), which integrates to (sqrt(pi) erf(1/2))^Dim.
# gfunc    - The Sobol' g-function, prod_i (|4 x_i - 2| + a_i) / (1 + a_i)
#            with a_i = i/2, which integrates to 1.
#
# Supported Integrands: %s
# The default value is product.
Integrand = product

# Format is the layout of the output. The supported formats are:
# text - One line per estimate, with columns samples, estimate, and absolute
#        error.
# yaml - A YAML document.
#
# The default value is text.
Format = text`, strings.Join(names, ", "))
}

func (config *IntegrateConfig) ReadConfig(fname string) error {
	vars := parse.NewConfigVars("integrate.config")

	vars.Int(&config.samples, "Samples", 1<<16-1)
	vars.String(&config.integrand, "Integrand", "product")
	vars.String(&config.format, "Format", "text")

	if fname != "" {
		if err := parse.ReadConfig(fname, vars); err != nil {
			return err
		}
	}

	return config.validate()
}

func (config *IntegrateConfig) validate() error {
	if config.samples <= 0 {
		return fmt.Errorf("The variable 'Samples' was set to %d, but it "+
			"must be positive.", config.samples)
	}
	if _, ok := Integrands[config.integrand]; !ok {
		return fmt.Errorf("The variable 'Integrand' was set to '%s', which "+
			"I don't recognize.", config.integrand)
	}
	return validateFormat("integrate", config.format, "text", "yaml")
}

func (config *IntegrateConfig) Run(gConfig *GlobalConfig) ([]string, error) {
	defer startLog("integrate", gConfig, "samples", config.samples,
		"integrand", config.integrand, "format", config.format)()

	report, err := config.report(gConfig)
	if err != nil {
		return nil, err
	}

	if config.format == "yaml" {
		return yamlLines(report)
	}

	lines := []string{
		fmt.Sprintf("# %s integral over %d dimensions, exact value %s",
			report.Integrand, report.Dim,
			formatFloats([]float64{report.Exact}, "")),
		"# samples estimate error",
	}
	for _, est := range report.Convergence {
		lines = append(lines, fmt.Sprintf("%d %s", est.Samples,
			formatFloats([]float64{est.Estimate, est.Error}, " ")))
	}
	return lines, nil
}

func (config *IntegrateConfig) report(
	gConfig *GlobalConfig,
) (*IntegrateReport, error) {
	seq, err := gConfig.NewSequence()
	if err != nil {
		return nil, err
	}
	f := Integrands[config.integrand]

	report := &IntegrateReport{
		Sequence: gConfig.Sequence, Dim: gConfig.Dim,
		Integrand: config.integrand, Exact: f.Exact(seq.Dim()),
	}

	buf := qrng.NewBuffered(seq)
	scratch := make([]float64, seq.Dim())
	vals := make([]float64, config.samples)
	next := int64(1)
	for i := range vals {
		vals[i] = f.F(buf.Next(), scratch)

		n := int64(i) + 1
		if n == next || n == config.samples {
			mean := stat.Mean(vals[:n], nil)
			report.Convergence = append(report.Convergence, Estimate{
				Samples: n, Estimate: mean,
				Error: math.Abs(mean - report.Exact),
			})
		}
		if n == next {
			next *= 2
		}
	}

	return report, nil
}
