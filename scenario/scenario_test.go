package scenario_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/simos"
	"github.com/viant/simos/scenario"
)

func TestLoad_Run(t *testing.T) {
	testCases := []struct {
		description string
		file        string
		steps       int
	}{
		{description: "fork then exit cascades", file: "fork_exit.yaml", steps: 3},
		{description: "wait dispatch and disk", file: "wait_disk.yaml", steps: 8},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := context.Background()
			scn, err := scenario.Load(ctx, filepath.Join("testdata", testCase.file))
			if !assert.NoError(t, err) {
				return
			}
			srv, err := scn.NewService()
			if !assert.NoError(t, err) {
				return
			}
			var observed int
			results, err := scn.Run(ctx, srv, func(result *scenario.Result) { observed++ })
			assert.NoError(t, err)
			assert.Len(t, results, testCase.steps)
			assert.Equal(t, testCase.steps, observed)
		})
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expectErr   bool
		steps       []string
	}{
		{
			description: "plain and mapping steps",
			input: `
name: mixed
steps:
  - create(10, 1)
  - run: fork()
    expect:
      ok: true
`,
			steps: []string{"create(10, 1)", "fork()"},
		},
		{
			description: "invalid call",
			input: `
steps:
  - create(10
`,
			expectErr: true,
		},
		{
			description: "invalid yaml",
			input:       "steps: [",
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			scn, err := scenario.Parse([]byte(testCase.input))
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			var actual []string
			for _, step := range scn.Steps {
				call, err := step.Call()
				assert.NoError(t, err)
				actual = append(actual, call.String())
			}
			assert.Equal(t, testCase.steps, actual)
		})
	}
}

func TestScenario_ServiceConfig(t *testing.T) {
	scn, err := scenario.Parse([]byte("config:\n  ram: 2KiB\n  osSize: 512\nsteps: []\n"))
	if !assert.NoError(t, err) {
		return
	}
	config, err := scn.ServiceConfig()
	if !assert.NoError(t, err) {
		return
	}
	assert.EqualValues(t, 2048, config.RAM)
	assert.EqualValues(t, 512, config.OSSize)
	assert.Equal(t, simos.DefaultConfig().Disks, config.Disks)

	scn, err = scenario.Parse([]byte("config:\n  ram: 10\n  osSize: 20\nsteps: []\n"))
	if !assert.NoError(t, err) {
		return
	}
	_, err = scn.NewService()
	assert.Error(t, err)
}

func TestRun_Mismatch(t *testing.T) {
	ctx := context.Background()
	scn, err := scenario.Parse([]byte(`
name: mismatch
config:
  ram: 1024
  osSize: 100
steps:
  - run: create(500, 1)
    expect:
      cpu: 2
  - run: create(1000, 1)
    expect:
      ok: true
      memory: ["1:100", "2:500"]
  - exit()
`))
	if !assert.NoError(t, err) {
		return
	}
	srv, err := scn.NewService()
	if !assert.NoError(t, err) {
		return
	}
	results, err := scn.Run(ctx, srv)
	assert.True(t, errors.Is(err, scenario.ErrMismatch))
	if !assert.Len(t, results, 2) {
		return
	}
	assert.False(t, results[1].OK)
	assert.Contains(t, results[1].Diff, "--- expected")
	assert.Contains(t, results[1].Diff, "+++ actual")
	assert.Contains(t, results[1].Diff, "-ok: true")
	assert.Contains(t, results[1].Diff, "+ok: false")
	assert.NotContains(t, results[1].Diff, "-memory")
	assert.EqualValues(t, 2, srv.CPU())
}

func TestRun_UnsupportedCall(t *testing.T) {
	scn, err := scenario.Parse([]byte("steps:\n  - reboot()\n"))
	if !assert.NoError(t, err) {
		return
	}
	srv, err := scn.NewService()
	if !assert.NoError(t, err) {
		return
	}
	_, err = scn.Run(context.Background(), srv)
	assert.Error(t, err)
}
