package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rbright/addtwo/internal/adder"
	"github.com/rbright/addtwo/internal/cli"
	"github.com/rbright/addtwo/internal/config"
	"github.com/rbright/addtwo/internal/doctor"
	"github.com/rbright/addtwo/internal/logging"
	"github.com/rbright/addtwo/internal/version"
)

type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	r := Runner{Stdin: stdin, Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("addtwo"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("addtwo"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, w.Message)
		}
		fmt.Fprintf(r.Stderr, "warning: %s\n", msg)
	}

	logRuntime, err := logging.New(cfgLoaded.Config.Log)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}
	for _, w := range cfgLoaded.Warnings {
		logger.Warn("config warning", "line", w.Line, "message", w.Message)
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"config_exists", cfgLoaded.Exists,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(cfgLoaded, stdinFd(r.Stdin))
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandSum:
		return r.commandSum(ctx, cfgLoaded.Config, logger)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

func (r Runner) commandSum(ctx context.Context, cfg config.Config, logger *slog.Logger) int {
	processor := adder.NewProcessor(logger, r.Stdin, r.Stdout)
	processor.ShowPrompt = cfg.Prompt.Enable

	result := processor.Run(ctx)
	logSumResult(logger, result)

	if result.Err == nil {
		return 0
	}
	if !adder.Reportable(result.Err) {
		fmt.Fprintf(r.Stderr, "error: %v\n", result.Err)
	}
	return 1
}

func logSumResult(logger *slog.Logger, result adder.Result) {
	if logger == nil {
		return
	}
	fields := []any{
		"state", result.State,
		"kind", adder.KindOf(result.Err),
		"line_length", result.LineLength,
		"tokens", result.Tokens,
		"started_at", result.StartedAt.Format(time.RFC3339Nano),
		"finished_at", result.FinishedAt.Format(time.RFC3339Nano),
		"duration_ms", result.FinishedAt.Sub(result.StartedAt).Milliseconds(),
	}

	if result.Err != nil {
		logger.Error("sum failed", append(fields, "error", result.Err.Error())...)
		return
	}
	logger.Info("sum complete", append(fields,
		"a", result.Operands.A,
		"b", result.Operands.B,
		"sum", result.Sum,
	)...)
}

// stdinFd returns the descriptor behind stdin, or an invalid one when stdin is
// not file-backed.
func stdinFd(stdin io.Reader) uintptr {
	if f, ok := stdin.(interface{ Fd() uintptr }); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}
