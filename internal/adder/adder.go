// Package adder reads one line of input, parses two integers from it, and
// reports their sum.
package adder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	PromptText   = "Enter two numbers separated by a space (e.g., 2 11):"
	resultPrefix = "The sum of the two numbers is: "
)

// Operands is the validated pair of integers taken from an input line.
type Operands struct {
	A int32
	B int32
}

// Prompt writes the instructional line.
func Prompt(w io.Writer) error {
	_, err := fmt.Fprintln(w, PromptText)
	return err
}

// ReadLine returns the next line from r without its terminator. A final line
// with no trailing newline still counts; a stream that ends before any byte
// yields ErrInputExhausted.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", ErrInputExhausted
		}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// Tokenize splits line on runs of whitespace, ignoring leading and trailing
// whitespace. Blank lines yield an empty slice.
func Tokenize(line string) []string {
	fields := strings.Fields(line)
	if fields == nil {
		return []string{}
	}
	return fields
}

// ParseOperands parses the first two tokens as base-10 int32 values. Tokens
// past the second are ignored.
func ParseOperands(tokens []string) (Operands, error) {
	if len(tokens) < 2 {
		return Operands{}, fmt.Errorf("%w: got %d token(s)", ErrInsufficientOperands, len(tokens))
	}

	var values [2]int32
	for i, token := range tokens[:2] {
		v, err := parseInt32(token)
		if err != nil {
			return Operands{}, fmt.Errorf("%w: operand %d: %w", ErrInvalidNumberFormat, i+1, err)
		}
		values[i] = v
	}

	return Operands{A: values[0], B: values[1]}, nil
}

// parseInt32 accepts an optional sign followed by ASCII digits; values outside
// the int32 range are rejected.
func parseInt32(token string) (int32, error) {
	v, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// Compute adds the operands with int32 wraparound.
func Compute(ops Operands) int32 {
	return ops.A + ops.B
}

// Report writes the sum line, or the failure message when err is non-nil.
func Report(w io.Writer, sum int32, err error) error {
	if err != nil {
		_, werr := fmt.Fprintln(w, Message(err))
		return werr
	}
	_, werr := fmt.Fprintln(w, resultPrefix+strconv.FormatInt(int64(sum), 10))
	return werr
}
