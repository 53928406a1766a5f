//nolint:whitespace,lll,funlen // readability
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racelens/config"
	"racelens/track"
)

const sessionCSV = `# Track: Test Ring
# Car: Roadster
Time,X,Y,Speed,Throttle,Brake,TireTempFL
0,0,0,100,1,0,80
10,50,0,200,1,0,82
20,50,50,150,0.5,0.8,85
30,0,50,120,0.2,0,84
40,0,0,110,1,0,83
50,50,0,190,1,0,86
60,50,50,140,0,0.9,88
72,0,50,100,0.3,0,87
`

func writeSession(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.csv")
	require.NoError(t, os.WriteFile(path, []byte(sessionCSV), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestLapsCmd(t *testing.T) {
	out, err := run(t, "laps", writeSession(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Test Ring")
	assert.Contains(t, out, "Roadster")
	assert.Contains(t, out, "00:30.000")
	assert.Contains(t, out, "00:32.000")
	assert.Contains(t, out, "1*")
	assert.Contains(t, out, "FL")
}

func TestLapsCmd_Units(t *testing.T) {
	out, err := run(t, "laps", writeSession(t), "--speed-unit", "mph", "--temp-unit", "fahrenheit")
	require.NoError(t, err)
	assert.Contains(t, out, "mph")
	assert.Contains(t, out, "°F")
}

func TestSectorsCmd(t *testing.T) {
	out, err := run(t, "sectors", writeSession(t), "--lap", "1", "--lap", "2", "--lap", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "10.000s")
	assert.Contains(t, out, "12.000s")
	assert.Contains(t, out, "+2.000")
}

func TestDistributionCmd(t *testing.T) {
	out, err := run(t, "distribution", writeSession(t), "--lap", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "190-200")
	assert.Contains(t, out, "Median")
	assert.Contains(t, out, "km/h")

	out, err = run(t, "distribution", writeSession(t), "--lap", "2", "--speed-unit", "mph")
	require.NoError(t, err)
	assert.Contains(t, out, "Speed (mph)")
	assert.NotContains(t, out, "km/h")

	_, err = run(t, "distribution", writeSession(t), "--lap", "3")
	assert.EqualError(t, err, "lap 3 not found")
}

func TestOutlineCmd(t *testing.T) {
	out, err := run(t, "outline", writeSession(t), "--lap", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Lap,RelS,X,Y,Sector", lines[0])
	assert.Equal(t, "1,0.000000,0.000000,0.000000,1", lines[1])
	assert.Equal(t, "1,150.000000,0.000000,50.000000,3", lines[4])
}

func TestExportCmd(t *testing.T) {
	out, err := run(t, "export", writeSession(t), "-o", "-", "--include-metadata=false")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "Time,Speed,Throttle,Brake,TireTempFL"))

	target := filepath.Join(t.TempDir(), "out.json")
	_, err = run(t, "export", writeSession(t), "--format", "json", "-o", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Test Ring"`)
	assert.Contains(t, string(data), `"Lap"`)
}

func TestExportCmd_UnsupportedFormat(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.xml")
	_, err := run(t, "export", writeSession(t), "--format", "xml", "-o", target)
	require.EqualError(t, err, "unsupported export format: xml")
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown preset", args: []string{"laps", "FILE", "--preset", "fast"}, wantErr: `unknown segmentation preset "fast"`},
		{name: "unknown unit", args: []string{"laps", "FILE", "--speed-unit", "knots"}, wantErr: `unknown speed unit "knots"`},
		{name: "not a csv", args: []string{"laps", "session.txt"}, wantErr: "please provide a CSV file"},
		{name: "missing file", args: []string{"laps", "nope.csv"}, wantErr: "open nope.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSession(t)
			args := make([]string, len(tt.args))
			for i, a := range tt.args {
				args[i] = strings.ReplaceAll(a, "FILE", path)
			}
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvOverridesPreset(t *testing.T) {
	t.Setenv("RACELENS_PRESET", "fast")
	_, err := run(t, "laps", writeSession(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fast")
}

func TestSegmentConfig(t *testing.T) {
	saved := []float64{config.StartRadius, config.FarRadius, config.MinLapGap}
	savedPreset := config.Preset
	t.Cleanup(func() {
		config.StartRadius, config.FarRadius, config.MinLapGap = saved[0], saved[1], saved[2]
		config.Preset = savedPreset
	})

	config.Preset = track.PresetLoose
	config.StartRadius, config.FarRadius, config.MinLapGap = config.Unset, config.Unset, config.Unset
	cfg, err := segmentConfig()
	require.NoError(t, err)
	assert.Equal(t, track.LoosePreset(), cfg)

	config.StartRadius, config.MinLapGap = 8, 0
	cfg, err = segmentConfig()
	require.NoError(t, err)
	assert.Equal(t, track.SegmentConfig{StartRadius: 8, FarRadius: 100, MinLapGap: 0}, cfg)
}
