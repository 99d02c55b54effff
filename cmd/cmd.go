/*package cmd contains code for running qrng in its various command line
modes.*/
package cmd

import (
	"fmt"
	"time"

	"github.com/phil-mansfield/qrng/logging"
	"github.com/phil-mansfield/qrng/math/qrng"
	"github.com/phil-mansfield/qrng/math/qrng/joekuo"
	"github.com/phil-mansfield/qrng/parse"
	"github.com/phil-mansfield/qrng/version"
)

// ModeNames maps the name of each analysis mode to an empty config for it.
var ModeNames = map[string]Mode{
	"gen":       &GenConfig{},
	"stats":     &StatsConfig{},
	"integrate": &IntegrateConfig{},
}

// Mode represents the interface used by the main binary when interacting with
// a given command line mode.
type Mode interface {
	// ReadConfig reads a mode-specific config file and stores its contents
	// within the Mode. An empty fname sets every variable to its default.
	ReadConfig(fname string) error
	// ExampleConfig returns the text of an example config file of this mode.
	ExampleConfig() string
	// Run executes the mode. It takes an initialized GlobalConfig struct and
	// returns a slice of lines that should be written to stdout along with an
	// error if one occurs.
	Run(gConfig *GlobalConfig) ([]string, error)
}

// GlobalConfig is a config file used by every mode. It describes the sequence
// being sampled.
type GlobalConfig struct {
	Version       string
	Sequence      string
	Dim           int64
	DirectionFile string
}

var _ Mode = &GlobalConfig{}

// ReadConfig reads a config file and returns an error, if applicable.
func (config *GlobalConfig) ReadConfig(fname string) error {
	vars := parse.NewConfigVars("config")
	vars.String(&config.Version, "Version", version.SourceVersion)
	vars.String(&config.Sequence, "Sequence", "")
	vars.Int(&config.Dim, "Dim", 0)
	vars.String(&config.DirectionFile, "DirectionFile", "")

	if err := parse.ReadConfig(fname, vars); err != nil {
		return err
	}
	return config.validate()
}

// validate checks that all the user-generated fields of GlobalConfig are
// properly set.
func (config *GlobalConfig) validate() error {
	if err := version.Check(config.Version); err != nil {
		return err
	}

	switch config.Sequence {
	case "sobol":
	case "halton":
		if config.DirectionFile != "" {
			return fmt.Errorf("The 'DirectionFile' variable is set, but " +
				"Halton sequences don't use direction numbers.")
		}
	case "":
		return fmt.Errorf("The 'Sequence' variable isn't set.")
	default:
		return fmt.Errorf("The 'Sequence' variable is set to '%s', "+
			"which I don't recognize.", config.Sequence)
	}

	if config.Dim <= 0 {
		return fmt.Errorf("The 'Dim' variable is set to %d, but it must be "+
			"positive.", config.Dim)
	}

	return nil
}

// NewSequence creates the sequence described by config, positioned at its
// first point.
func (config *GlobalConfig) NewSequence() (qrng.Sequence, error) {
	dim := int(config.Dim)
	switch config.Sequence {
	case "halton":
		return qrng.NewHalton(dim)
	case "sobol":
		if config.DirectionFile == "" {
			return qrng.NewSobol(dim)
		}
		table, err := joekuo.Load(config.DirectionFile)
		if err != nil {
			return nil, err
		}
		return qrng.NewSobolFromTable(dim, table)
	}

	// Impossible after validate(), but worth doing anyway.
	return nil, fmt.Errorf("Sequence '%s' not recognized.", config.Sequence)
}

// ExampleConfig returns an example configuration file.
func (config *GlobalConfig) ExampleConfig() string {
	return fmt.Sprintf(`[config]
# Target version of qrng. This option merely allows qrng to notice when its
# source and configuration files are not from the same version. It will not
# allow previous versions to be run from earlier versions.
#
# This variable defaults to the source version if not included.
Version = %s

# Sequence is the quasi-random sequence being sampled.
# Supported Sequences: halton, sobol
Sequence = sobol

# Dim is the number of coordinates in each point. Sobol sequences support up
# to %d dimensions with the compiled-in direction numbers, and to more when
# DirectionFile points to a larger published table. Halton sequences
# have no hard limit, but become slow to construct and poorly distributed with
# tens of thousands of dimensions.
Dim = 3

# DirectionFile optionally points to a table of Sobol direction numbers in the
# format published by Joe and Kuo (d s a m_1 ... m_s on each line). If it isn't
# set, the compiled-in table is used.
# DirectionFile = path/to/new-joe-kuo-6.21201`,
		version.SourceVersion, qrng.SobolMaxDim())
}

// Run is a dummy method which allows GlobalConfig to conform to the Mode
// interface for testing purposes.
func (config *GlobalConfig) Run(gConfig *GlobalConfig) ([]string, error) {
	panic("GlobalConfig.Run() should never be executed.")
}

// startLog logs the start of a mode and returns a function which logs its
// end. The end line only carries timing and memory information in
// Performance mode.
func startLog(mode string, gConfig *GlobalConfig, args ...any) func() {
	log := logging.Logger()
	log.Info("qrng "+mode,
		append([]any{
			"sequence", gConfig.Sequence, "dim", gConfig.Dim,
		}, args...)...)

	if logging.Mode != logging.Performance {
		return func() {}
	}
	t := time.Now()
	return func() {
		log.Info("qrng "+mode+" finished",
			"elapsed", time.Since(t), "memory", logging.MemString())
	}
}
