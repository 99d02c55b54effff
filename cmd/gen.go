package cmd

import (
	"fmt"
	"strings"

	"github.com/phil-mansfield/qrng/math/qrng"
	"github.com/phil-mansfield/qrng/parse"
)

// GenConfig writes points of a sequence to stdout, one per line.
type GenConfig struct {
	samples, skip int64
	low, high     []float64
	format        string
}

var _ Mode = &GenConfig{}

func (config *GenConfig) ExampleConfig() string {
	return `[gen.config]

#####################
## Optional Fields ##
#####################

# Samples is the number of points written out. The default value is 1000.
Samples = 1000

# Skip is the number of points drawn and discarded before the first point is
# written. Skipping the first 2^k - 1 points of a Sobol sequence is a common
# way to start on a balanced block of points. The default value is 0.
Skip = 0

# Low and High are the corners of the box the points are mapped to. Each must
# have one value per dimension, and by default points are left in the unit
# hypercube. For example, with Dim = 3:
# Low = -1, -1, 0
# High = 1, 1, 10

# Format is the layout of the output. The supported formats are:
# text - Space-separated columns, with a commented header line.
# csv  - Comma-separated columns, with a header line.
#
# The default value is text.
Format = text`
}

func (config *GenConfig) ReadConfig(fname string) error {
	vars := parse.NewConfigVars("gen.config")

	vars.Int(&config.samples, "Samples", 1000)
	vars.Int(&config.skip, "Skip", 0)
	vars.Floats(&config.low, "Low", []float64{})
	vars.Floats(&config.high, "High", []float64{})
	vars.String(&config.format, "Format", "text")

	if fname != "" {
		if err := parse.ReadConfig(fname, vars); err != nil {
			return err
		}
	}

	return config.validate()
}

func (config *GenConfig) validate() error {
	switch {
	case config.samples <= 0:
		return fmt.Errorf("The variable 'Samples' was set to %d, but it "+
			"must be positive.", config.samples)
	case config.skip < 0:
		return fmt.Errorf("The variable 'Skip' was set to %d, but it "+
			"can't be negative.", config.skip)
	case len(config.low) != len(config.high):
		return fmt.Errorf("The variable 'Low' has %d values, but 'High' has "+
			"%d.", len(config.low), len(config.high))
	}
	for i := range config.low {
		if config.low[i] >= config.high[i] {
			return fmt.Errorf("Item %d of the variable 'Low' is %g, which "+
				"isn't smaller than the corresponding item of 'High', %g.",
				i, config.low[i], config.high[i])
		}
	}
	return validateFormat("gen", config.format, "text", "csv")
}

func (config *GenConfig) Run(gConfig *GlobalConfig) ([]string, error) {
	defer startLog("gen", gConfig, "samples", config.samples,
		"skip", config.skip, "format", config.format)()

	scale := len(config.low) > 0
	if scale && int64(len(config.low)) != gConfig.Dim {
		return nil, fmt.Errorf("The variables 'Low' and 'High' have %d "+
			"values, but 'Dim' is %d.", len(config.low), gConfig.Dim)
	}

	seq, err := gConfig.NewSequence()
	if err != nil {
		return nil, err
	}
	buf := qrng.NewBuffered(seq)
	for i := int64(0); i < config.skip; i++ {
		buf.Next()
	}

	sep := " "
	lines := make([]string, 0, config.samples+1)
	names := columnNames("x", seq.Dim())
	switch config.format {
	case "text":
		lines = append(lines, "# "+strings.Join(names, " "))
	case "csv":
		sep = ","
		lines = append(lines, strings.Join(names, sep))
	}

	for i := int64(0); i < config.samples; i++ {
		x := buf.Next()
		if scale {
			qrng.ScaleAt(x, config.low, config.high)
		}
		lines = append(lines, formatFloats(x, sep))
	}

	return lines, nil
}
