package menu

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// DateLayout is the layout of dates typed at the prompt.
const DateLayout = "02.01.2006"

// ErrInvalidInput is returned when a typed value does not have the expected
// shape. The menu loop reports it and continues.
var ErrInvalidInput = errors.New("invalid input")

var (
	digits    = regexp.MustCompile(`^\d+$`)
	datePunct = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
)

// Console reads answers to prompts from an explicit reader and writes prompts
// and results to an explicit writer.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a Console over in and out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Println writes a line of output.
func (c *Console) Println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

// Printf writes formatted output.
func (c *Console) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}

// ReadLine prints prompt and returns the next line without its terminator.
// It returns io.EOF once the input is exhausted.
func (c *Console) ReadLine(prompt string) (string, error) {
	c.Println(prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadInt reads a non-negative integer made of digits only.
func (c *Console) ReadInt(prompt string) (int, error) {
	s, err := c.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	if !digits.MatchString(s) {
		return 0, errors.Wrapf(ErrInvalidInput, "%q is not a number", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidInput, "%q is out of range", s)
	}
	return n, nil
}

// ReadDate reads a calendar date typed as dd.mm.yyyy and returns it at
// midnight UTC.
func (c *Console) ReadDate(prompt string) (time.Time, error) {
	s, err := c.ReadLine(prompt + " Insert date in format: dd.mm.yyyy")
	if err != nil {
		return time.Time{}, err
	}
	if !datePunct.MatchString(s) {
		return time.Time{}, errors.Wrapf(ErrInvalidInput, "%q is not a dd.mm.yyyy date", s)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidInput, "%q is not a valid date", s)
	}
	return t, nil
}
