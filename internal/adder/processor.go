package adder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rbright/addtwo/internal/fsm"
)

// Result is the outcome of one Processor.Run invocation.
type Result struct {
	State      fsm.State
	LineLength int
	Tokens     int
	Operands   Operands
	Sum        int32
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// OK reports whether the sum was computed and printed.
func (r Result) OK() bool {
	return r.Err == nil && r.State == fsm.StateReported
}

// Processor runs the prompt/read/parse/compute/report sequence once.
type Processor struct {
	ShowPrompt bool

	logger *slog.Logger
	in     io.Reader
	out    io.Writer
	state  fsm.State
	now    func() time.Time
}

// NewProcessor builds a processor reading from in and writing to out. When in
// is an io.Closer it is closed at the end of Run.
func NewProcessor(logger *slog.Logger, in io.Reader, out io.Writer) *Processor {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Processor{
		ShowPrompt: true,
		logger:     logger,
		in:         in,
		out:        out,
		state:      fsm.StateStart,
		now:        time.Now,
	}
}

// State returns the current run state.
func (p *Processor) State() fsm.State {
	return p.state
}

func (p *Processor) transition(event fsm.Event) error {
	next, err := fsm.Transition(p.state, event)
	if err != nil {
		return err
	}
	p.logger.Debug("adder transition", "from", p.state, "event", event, "to", next)
	p.state = next
	return nil
}

// Run executes the sequence. Validation failures are reported to out and
// returned in Result.Err; there is no retry.
func (p *Processor) Run(ctx context.Context) (result Result) {
	result.StartedAt = p.now()
	defer func() {
		if closer, ok := p.in.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				p.logger.Warn("close input failed", "error", err.Error())
			}
		}
		result.State = p.state
		result.FinishedAt = p.now()
	}()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	if p.ShowPrompt {
		if err := Prompt(p.out); err != nil {
			result.Err = fmt.Errorf("write prompt: %w", err)
			return result
		}
	}
	if err := p.transition(fsm.EventPrompt); err != nil {
		result.Err = err
		return result
	}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	line, err := ReadLine(bufio.NewReader(p.in))
	if err != nil && !Reportable(err) {
		result.Err = err
		return result
	}
	if terr := p.transition(fsm.EventRead); terr != nil {
		result.Err = terr
		return result
	}
	if err != nil {
		return p.fail(result, err)
	}
	result.LineLength = len(line)

	tokens := Tokenize(line)
	result.Tokens = len(tokens)
	if err := p.transition(fsm.EventTokenize); err != nil {
		result.Err = err
		return result
	}

	ops, err := ParseOperands(tokens)
	if err != nil {
		return p.fail(result, err)
	}
	result.Operands = ops
	if err := p.transition(fsm.EventParse); err != nil {
		result.Err = err
		return result
	}

	result.Sum = Compute(ops)
	if err := p.transition(fsm.EventCompute); err != nil {
		result.Err = err
		return result
	}

	if err := Report(p.out, result.Sum, nil); err != nil {
		result.Err = fmt.Errorf("write result: %w", err)
		return result
	}
	if err := p.transition(fsm.EventReport); err != nil {
		result.Err = err
	}
	return result
}

// fail routes a validation error through parse_failed to reported.
func (p *Processor) fail(result Result, cause error) Result {
	result.Err = cause
	if err := p.transition(fsm.EventReject); err != nil {
		result.Err = err
		return result
	}
	if err := Report(p.out, 0, cause); err != nil {
		result.Err = fmt.Errorf("write result: %w", err)
		return result
	}
	if err := p.transition(fsm.EventReport); err != nil {
		result.Err = err
	}
	return result
}
