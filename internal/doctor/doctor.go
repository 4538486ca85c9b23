// Package doctor runs readiness diagnostics for config, logging, and stdin.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/rbright/addtwo/internal/config"
	"github.com/rbright/addtwo/internal/logging"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config checks for a loaded config. stdinFd is the
// descriptor the sum command would read from.
func Run(cfg config.Loaded, stdinFd uintptr) Report {
	checks := []Check{checkConfig(cfg)}

	checks = append(checks, checkEnv("HOME", func(v string) bool {
		if strings.TrimSpace(v) != "" {
			return true
		}
		return os.Getenv("XDG_CONFIG_HOME") != "" && os.Getenv("XDG_STATE_HOME") != ""
	}, "home directory set", "HOME is empty and XDG_CONFIG_HOME/XDG_STATE_HOME are not both set"))

	checks = append(checks, checkLogSink(cfg.Config.Log))
	checks = append(checks, checkStdin(stdinFd))

	return Report{Checks: checks}
}

func checkConfig(cfg config.Loaded) Check {
	if !cfg.Exists {
		return Check{Name: "config", Pass: true, Message: fmt.Sprintf("no file at %q; using defaults", cfg.Path)}
	}
	msg := fmt.Sprintf("loaded %q", cfg.Path)
	if n := len(cfg.Warnings); n > 0 {
		msg = fmt.Sprintf("%s (%d warning(s))", msg, n)
	}
	return Check{Name: "config", Pass: true, Message: msg}
}

// checkEnv validates an environment variable through a caller-supplied predicate.
func checkEnv(name string, predicate func(string) bool, okMsg, failMsg string) Check {
	value := os.Getenv(name)
	if predicate(value) {
		return Check{Name: name, Pass: true, Message: okMsg}
	}
	return Check{Name: name, Pass: false, Message: failMsg}
}

// checkLogSink confirms the log file can be created and appended to.
func checkLogSink(cfg config.LogConfig) Check {
	if !cfg.Enable {
		return Check{Name: "log", Pass: true, Message: "logging disabled"}
	}

	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		resolved, err := logging.ResolvePath()
		if err != nil {
			return Check{Name: "log", Pass: false, Message: fmt.Sprintf("resolve log path: %v", err)}
		}
		path = resolved
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return Check{Name: "log", Pass: false, Message: fmt.Sprintf("create log dir: %v", err)}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Check{Name: "log", Pass: false, Message: fmt.Sprintf("open log file: %v", err)}
	}
	_ = f.Close()

	return Check{Name: "log", Pass: true, Message: fmt.Sprintf("writable at %s (level=%s)", path, cfg.Level)}
}

// checkStdin reports whether input will come from a terminal. Both outcomes pass.
func checkStdin(fd uintptr) Check {
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return Check{Name: "stdin", Pass: true, Message: "terminal; the prompt is shown before reading"}
	}
	return Check{Name: "stdin", Pass: true, Message: "pipe or file; the first line is read non-interactively"}
}
