package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rbright/addtwo/internal/adder"
	"github.com/stretchr/testify/require"
)

func TestExecuteHelp(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	exitCode := Execute(context.Background(), []string{"--help"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdout.String(), "Usage:")
	require.Empty(t, stderr.String())
}

func TestExecuteVersion(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	exitCode := Execute(context.Background(), []string{"version"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdout.String(), "addtwo")
	require.Empty(t, stderr.String())
}

func TestExecuteUnknownCommand(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	exitCode := Execute(context.Background(), []string{"definitely-not-a-command"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 2, exitCode)
	require.Contains(t, stderr.String(), "unknown command")
	require.Contains(t, stderr.String(), "Usage:")
	require.Empty(t, stdout.String())
}

func TestRunnerSumOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine string
		wantCode int
	}{
		{name: "sum", input: "2 11\n", wantLine: "The sum of the two numbers is: 13", wantCode: 0},
		{name: "padded", input: "  2    11  \n", wantLine: "The sum of the two numbers is: 13", wantCode: 0},
		{name: "negative", input: "-4 9\n", wantLine: "The sum of the two numbers is: 5", wantCode: 0},
		{name: "wraps", input: "2000000000 2000000000\n", wantLine: "The sum of the two numbers is: -294967296", wantCode: 0},
		{name: "empty", input: "\n", wantLine: adder.MessageInsufficientOperands, wantCode: 1},
		{name: "single", input: "5\n", wantLine: adder.MessageInsufficientOperands, wantCode: 1},
		{name: "word", input: "2 eleven\n", wantLine: adder.MessageInvalidNumberFormat, wantCode: 1},
		{name: "decimal", input: "2.5 3\n", wantLine: adder.MessageInvalidNumberFormat, wantCode: 1},
		{name: "closed stdin", input: "", wantLine: adder.MessageInputExhausted, wantCode: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setupRunnerEnv(t)

			var stdout bytes.Buffer
			var stderr bytes.Buffer
			runner := Runner{Stdin: strings.NewReader(tc.input), Stdout: &stdout, Stderr: &stderr}

			exitCode := runner.Execute(context.Background(), nil)
			require.Equal(t, tc.wantCode, exitCode)
			require.Equal(t, adder.PromptText+"\n"+tc.wantLine+"\n", stdout.String())
			require.Empty(t, stderr.String())
		})
	}
}

func TestRunnerSumIsRepeatable(t *testing.T) {
	setupRunnerEnv(t)

	outputs := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		var stdout bytes.Buffer
		runner := Runner{Stdin: strings.NewReader("7 8\n"), Stdout: &stdout, Stderr: io.Discard}
		require.Equal(t, 0, runner.Execute(context.Background(), []string{"sum"}))
		outputs = append(outputs, stdout.String())
	}
	require.Equal(t, outputs[0], outputs[1])
}

func TestRunnerSumWritesLogRecord(t *testing.T) {
	stateHome := setupRunnerEnv(t)

	runner := Runner{Stdin: strings.NewReader("1 2\n"), Stdout: io.Discard, Stderr: io.Discard}
	require.Equal(t, 0, runner.Execute(context.Background(), nil))

	contents, err := os.ReadFile(filepath.Join(stateHome, "addtwo", "log.jsonl"))
	require.NoError(t, err)
	require.Contains(t, string(contents), `"msg":"command start"`)
	require.Contains(t, string(contents), `"msg":"sum complete"`)
	require.Contains(t, string(contents), `"sum":3`)
	require.Contains(t, string(contents), `"state":"reported"`)
}

func TestRunnerSumFailureLogsKind(t *testing.T) {
	stateHome := setupRunnerEnv(t)

	runner := Runner{Stdin: strings.NewReader("x y\n"), Stdout: io.Discard, Stderr: io.Discard}
	require.Equal(t, 1, runner.Execute(context.Background(), nil))

	contents, err := os.ReadFile(filepath.Join(stateHome, "addtwo", "log.jsonl"))
	require.NoError(t, err)
	require.Contains(t, string(contents), `"msg":"sum failed"`)
	require.Contains(t, string(contents), `"kind":"invalid_number_format"`)
}

func TestRunnerConfigDisablesPrompt(t *testing.T) {
	setupRunnerEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.jsonc")
	require.NoError(t, os.WriteFile(configPath, []byte(`{
  // scripted
  "prompt": {"enable": false},
  "log": {"enable": false},
}`), 0o600))

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	runner := Runner{Stdin: strings.NewReader("40 2\n"), Stdout: &stdout, Stderr: &stderr}

	exitCode := runner.Execute(context.Background(), []string{"--config", configPath})
	require.Equal(t, 0, exitCode)
	require.Equal(t, "The sum of the two numbers is: 42\n", stdout.String())
	require.Empty(t, stderr.String())
}

func TestRunnerMissingExplicitConfigFails(t *testing.T) {
	setupRunnerEnv(t)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	runner := Runner{Stdin: strings.NewReader("1 2\n"), Stdout: &stdout, Stderr: &stderr}

	exitCode := runner.Execute(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "nope.jsonc")})
	require.Equal(t, 1, exitCode)
	require.Contains(t, stderr.String(), "read config")
	require.Empty(t, stdout.String())
}

func TestRunnerConfigWarningsGoToStderr(t *testing.T) {
	setupRunnerEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.jsonc")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"log":{"enable":false,"path":"/tmp/unused.jsonl"}}`), 0o600))

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	runner := Runner{Stdin: strings.NewReader("1 2\n"), Stdout: &stdout, Stderr: &stderr}

	exitCode := runner.Execute(context.Background(), []string{"--config", configPath})
	require.Equal(t, 0, exitCode)
	require.Contains(t, stderr.String(), "warning: log.path is set")
	require.Contains(t, stdout.String(), "The sum of the two numbers is: 3")
}

func TestRunnerCancelledContextReportsToStderr(t *testing.T) {
	setupRunnerEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	runner := Runner{Stdin: strings.NewReader("1 2\n"), Stdout: &stdout, Stderr: &stderr}

	exitCode := runner.Execute(ctx, nil)
	require.Equal(t, 1, exitCode)
	require.Empty(t, stdout.String())
	require.Contains(t, stderr.String(), "context canceled")
}

func TestRunnerDoctor(t *testing.T) {
	setupRunnerEnv(t)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	runner := Runner{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stderr}

	exitCode := runner.Execute(context.Background(), []string{"doctor"})
	require.Equal(t, 0, exitCode, stdout.String())
	require.Contains(t, stdout.String(), "[OK] config")
	require.Contains(t, stdout.String(), "[OK] log")
	require.Contains(t, stdout.String(), "[OK] stdin: pipe or file")
}

func TestStdinFdForNonFileReader(t *testing.T) {
	require.Equal(t, ^uintptr(0), stdinFd(strings.NewReader("")))

	f, err := os.Open(os.DevNull)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	require.Equal(t, f.Fd(), stdinFd(f))
}

// setupRunnerEnv isolates config and log locations and returns the state home.
func setupRunnerEnv(t *testing.T) string {
	t.Helper()

	xdgStateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", xdgStateHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	return xdgStateHome
}
