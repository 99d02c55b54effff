package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/qrng/math/qrng"
	"github.com/phil-mansfield/qrng/version"
)

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))
	return fname
}

func globalConfig(t *testing.T, body string) *GlobalConfig {
	t.Helper()
	config := &GlobalConfig{}
	fname := writeFile(t, "global.config", "[config]\n"+body)
	require.NoError(t, config.ReadConfig(fname))
	return config
}

func modeConfig(t *testing.T, mode Mode, header, body string) Mode {
	t.Helper()
	fname := writeFile(t, "mode.config", fmt.Sprintf("[%s]\n%s", header, body))
	require.NoError(t, mode.ReadConfig(fname))
	return mode
}

func TestGlobalConfigValidation(t *testing.T) {
	tests := []struct {
		body, msg string
	}{
		{"Dim = 3\n", "'Sequence' variable isn't set"},
		{"Sequence = niederreiter\nDim = 3\n", "'niederreiter'"},
		{"Sequence = sobol\n", "'Dim' variable is set to 0"},
		{"Sequence = halton\nDim = -2\n", "'Dim' variable is set to -2"},
		{"Sequence = halton\nDim = 2\nDirectionFile = x.txt\n",
			"Halton sequences don't use direction numbers"},
		{"Version = 0.0.1\nSequence = sobol\nDim = 2\n", "version of the source"},
		{"Version = meow\nSequence = sobol\nDim = 2\n", "couldn't parse"},
	}

	for i, test := range tests {
		fname := writeFile(t, "global.config", "[config]\n"+test.body)
		err := (&GlobalConfig{}).ReadConfig(fname)
		if assert.Error(t, err, "%d", i) {
			assert.Contains(t, err.Error(), test.msg, "%d", i)
		}
	}

	config := globalConfig(t, "Sequence = halton\nDim = 4\n")
	assert.Equal(t, version.SourceVersion, config.Version)
	seq, err := config.NewSequence()
	require.NoError(t, err)
	assert.IsType(t, &qrng.Halton{}, seq)
	assert.Equal(t, 4, seq.Dim())
}

func TestGlobalConfigTooManyDims(t *testing.T) {
	config := globalConfig(t, fmt.Sprintf("Sequence = sobol\nDim = %d\n",
		qrng.SobolMaxDim()+1))
	_, err := config.NewSequence()
	assert.ErrorIs(t, err, qrng.ErrInvalidDimension)
}

func TestDirectionFile(t *testing.T) {
	table := writeFile(t, "dirnums.txt", "d s a m_i\n2 1 0 1\n3 2 1 1 3\n")

	config := globalConfig(t,
		"Sequence = sobol\nDim = 3\nDirectionFile = "+table+"\n")
	seq, err := config.NewSequence()
	require.NoError(t, err)
	x := make([]float64, 3)
	for i := 0; i < 3; i++ {
		require.NoError(t, seq.NextAt(x))
	}
	assert.Equal(t, []float64{0.25, 0.75, 0.75}, x)

	config.Dim = 4
	_, err = config.NewSequence()
	assert.ErrorIs(t, err, qrng.ErrInvalidDimension)

	config.DirectionFile = filepath.Join(t.TempDir(), "missing.txt")
	_, err = config.NewSequence()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGen(t *testing.T) {
	gConfig := globalConfig(t, "Sequence = sobol\nDim = 2\n")

	mode := modeConfig(t, &GenConfig{}, "gen.config", "Samples = 4\n")
	lines, err := mode.Run(gConfig)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"# x_0 x_1", "0.5 0.5", "0.75 0.25", "0.25 0.75", "0.375 0.375",
	}, lines)

	mode = modeConfig(t, &GenConfig{}, "gen.config",
		"Samples = 2\nSkip = 1\nFormat = csv\nLow = -1, 0\nHigh = 1, 10\n")
	lines, err = mode.Run(gConfig)
	require.NoError(t, err)
	assert.Equal(t, []string{"x_0,x_1", "0.5,2.5", "-0.5,7.5"}, lines)
}

func TestGenHalton(t *testing.T) {
	gConfig := globalConfig(t, "Sequence = halton\nDim = 1\n")
	mode := modeConfig(t, &GenConfig{}, "gen.config", "Samples = 3\n")
	lines, err := mode.Run(gConfig)
	require.NoError(t, err)
	assert.Equal(t, []string{"# x_0", "0.5", "0.25", "0.75"}, lines)
}

func TestGenErrors(t *testing.T) {
	tests := []struct {
		body, msg string
	}{
		{"Samples = 0\n", "'Samples'"},
		{"Skip = -1\n", "'Skip'"},
		{"Low = 0, 0\nHigh = 1\n", "'Low' has 2 values"},
		{"Low = 0\nHigh = 0\n", "isn't smaller"},
		{"Format = json\n", "'json'"},
	}
	for i, test := range tests {
		fname := writeFile(t, "gen.config", "[gen.config]\n"+test.body)
		err := (&GenConfig{}).ReadConfig(fname)
		if assert.Error(t, err, "%d", i) {
			assert.Contains(t, err.Error(), test.msg, "%d", i)
		}
	}

	gConfig := globalConfig(t, "Sequence = sobol\nDim = 3\n")
	mode := modeConfig(t, &GenConfig{}, "gen.config", "Low = 0\nHigh = 1\n")
	_, err := mode.Run(gConfig)
	assert.ErrorContains(t, err, "'Dim' is 3")
}

func TestStats(t *testing.T) {
	gConfig := globalConfig(t, "Sequence = sobol\nDim = 3\n")
	mode := modeConfig(t, &StatsConfig{}, "stats.config", "Samples = 1023\n")

	report, err := mode.(*StatsConfig).report(gConfig)
	require.NoError(t, err)
	require.Len(t, report.Axes, 3)
	for j, ax := range report.Axes {
		assert.Equal(t, j, ax.Axis)
		assert.InDelta(t, 0.5, ax.Mean, 1e-12, "axis %d", j)
		assert.InDelta(t, 1.0/12, ax.Variance, 1e-3, "axis %d", j)
		assert.Equal(t, 1.0/1024, ax.Min, "axis %d", j)
		assert.Equal(t, 1023.0/1024, ax.Max, "axis %d", j)
		assert.Less(t, ax.Discrepancy, 2e-3, "axis %d", j)
	}

	lines, err := mode.Run(gConfig)
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, "# axis mean variance min max discrepancy", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "1 0.5 "), lines[2])
}

func TestStatsYAML(t *testing.T) {
	gConfig := globalConfig(t, "Sequence = halton\nDim = 2\n")
	mode := modeConfig(t, &StatsConfig{}, "stats.config",
		"Samples = 8\nFormat = yaml\n")

	lines, err := mode.Run(gConfig)
	require.NoError(t, err)

	report := &StatsReport{}
	require.NoError(t, yaml.Unmarshal([]byte(strings.Join(lines, "\n")),
		report))
	assert.Equal(t, "halton", report.Sequence)
	assert.Equal(t, int64(2), report.Dim)
	assert.Equal(t, int64(8), report.Samples)
	require.Len(t, report.Axes, 2)
	assert.Equal(t, 0.0625, report.Axes[0].Min)
	assert.Equal(t, 0.875, report.Axes[0].Max)
}

func TestStarDiscrepancy(t *testing.T) {
	assert.InDelta(t, 0.5, starDiscrepancy([]float64{0.5}), 1e-15)
	assert.InDelta(t, 1.0, starDiscrepancy([]float64{0, 0}), 1e-15)
	assert.InDelta(t, 0.25,
		starDiscrepancy([]float64{0.75, 0.25}), 1e-15)
}

func TestIntegrands(t *testing.T) {
	x := []float64{1, 0.25, 0.5}
	buf := make([]float64, 3)
	assert.InDelta(t, 1, Integrands["product"].F(x, buf), 1e-15)
	assert.InDelta(t, math.Exp(-0.3125), Integrands["gaussian"].F(x, buf),
		1e-15)
	assert.InDelta(t, 1, Integrands["gfunc"].F(x, buf), 1e-15)
	assert.Equal(t, []float64{1, 0.25, 0.5}, x)
}

func TestIntegrate(t *testing.T) {
	for _, seqName := range []string{"sobol", "halton"} {
		gConfig := globalConfig(t, "Sequence = "+seqName+"\nDim = 3\n")

		for name := range Integrands {
			mode := modeConfig(t, &IntegrateConfig{}, "integrate.config",
				"Samples = 4095\nIntegrand = "+name+"\n")
			report, err := mode.(*IntegrateConfig).report(gConfig)
			require.NoError(t, err)

			require.Len(t, report.Convergence, 13)
			last := report.Convergence[12]
			assert.Equal(t, int64(4095), last.Samples)
			assert.Equal(t, int64(2048), report.Convergence[11].Samples)
			assert.Less(t, last.Error, 1e-2, "%s, %s", seqName, name)

			lines, err := mode.Run(gConfig)
			require.NoError(t, err)
			assert.Len(t, lines, 15)
		}
	}
}

func TestIntegrateExact(t *testing.T) {
	g := Integrands["gaussian"]
	assert.InDelta(t, 0.9225620128, g.Exact(1), 1e-9)
	assert.InDelta(t, 0.9225620128*0.9225620128, g.Exact(2), 1e-9)
}
