package cmd

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/qrng/parse"
)

// StatsConfig summarizes how evenly each axis of a sequence fills [0, 1).
type StatsConfig struct {
	samples int64
	format  string
}

var _ Mode = &StatsConfig{}

// AxisStats are the summary statistics of a single axis.
type AxisStats struct {
	Axis     int     `yaml:"axis"`
	Mean     float64 `yaml:"mean"`
	Variance float64 `yaml:"variance"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	// Discrepancy is the one-dimensional star discrepancy of the axis.
	Discrepancy float64 `yaml:"discrepancy"`
}

// StatsReport is the output of the stats mode.
type StatsReport struct {
	Sequence string      `yaml:"sequence"`
	Dim      int64       `yaml:"dim"`
	Samples  int64       `yaml:"samples"`
	Axes     []AxisStats `yaml:"axes"`
}

func (config *StatsConfig) ExampleConfig() string {
	return `[stats.config]

#####################
## Optional Fields ##
#####################

# Samples is the number of points the statistics are computed from. The
# default value is 10000.
Samples = 10000

# Format is the layout of the output. The supported formats are:
# text - One line per axis, with columns axis, mean, variance, min, max, and
#        star discrepancy.
# yaml - A YAML document.
#
# The default value is text.
Format = text`
}

func (config *StatsConfig) ReadConfig(fname string) error {
	vars := parse.NewConfigVars("stats.config")

	vars.Int(&config.samples, "Samples", 10*1000)
	vars.String(&config.format, "Format", "text")

	if fname != "" {
		if err := parse.ReadConfig(fname, vars); err != nil {
			return err
		}
	}

	return config.validate()
}

func (config *StatsConfig) validate() error {
	if config.samples <= 0 {
		return fmt.Errorf("The variable 'Samples' was set to %d, but it "+
			"must be positive.", config.samples)
	}
	return validateFormat("stats", config.format, "text", "yaml")
}

func (config *StatsConfig) Run(gConfig *GlobalConfig) ([]string, error) {
	defer startLog("stats", gConfig, "samples", config.samples,
		"format", config.format)()

	report, err := config.report(gConfig)
	if err != nil {
		return nil, err
	}

	if config.format == "yaml" {
		return yamlLines(report)
	}

	lines := []string{"# axis mean variance min max discrepancy"}
	for _, ax := range report.Axes {
		lines = append(lines, fmt.Sprintf("%d %s", ax.Axis, formatFloats(
			[]float64{ax.Mean, ax.Variance, ax.Min, ax.Max, ax.Discrepancy},
			" ",
		)))
	}
	return lines, nil
}

func (config *StatsConfig) report(gConfig *GlobalConfig) (*StatsReport, error) {
	seq, err := gConfig.NewSequence()
	if err != nil {
		return nil, err
	}

	n := int(config.samples)
	cols := make([][]float64, seq.Dim())
	for j := range cols {
		cols[j] = make([]float64, n)
	}
	x := make([]float64, seq.Dim())
	for i := 0; i < n; i++ {
		seq.NextAtUnchecked(x)
		for j := range x {
			cols[j][i] = x[j]
		}
	}

	report := &StatsReport{
		Sequence: gConfig.Sequence, Dim: gConfig.Dim,
		Samples: config.samples, Axes: make([]AxisStats, len(cols)),
	}
	for j, col := range cols {
		mean, variance := stat.PopMeanVariance(col, nil)
		report.Axes[j] = AxisStats{
			Axis: j, Mean: mean, Variance: variance,
			Min: floats.Min(col), Max: floats.Max(col),
			Discrepancy: starDiscrepancy(col),
		}
	}
	return report, nil
}

// starDiscrepancy returns the star discrepancy of a set of points in [0, 1),
// the largest difference between the fraction of points in [0, t) and t.
// xs is sorted in place.
func starDiscrepancy(xs []float64) float64 {
	sort.Float64s(xs)
	n := float64(len(xs))
	d := 0.0
	for i, x := range xs {
		d = math.Max(d, math.Abs(x-(2*float64(i)+1)/(2*n)))
	}
	return d + 1/(2*n)
}
