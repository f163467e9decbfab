package prompt

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// TermConsole asks questions with huh inputs on an interactive terminal.
type TermConsole struct {
	printer
}

func NewTermConsole(out io.Writer) *TermConsole {
	return &TermConsole{printer: newPrinter(out)}
}

func (c *TermConsole) Ask(ctx context.Context, q Question) (string, error) {
	value := q.Default
	input := huh.NewInput().
		Title(q.Title).
		Value(&value)
	if q.Validate != nil {
		input = input.Validate(func(s string) error {
			return q.Validate(strings.TrimSpace(s))
		})
	}

	form := huh.NewForm(huh.NewGroup(input)).WithOutput(c.out)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// IsTerminal reports whether both stdin and stdout are attached to a terminal.
func IsTerminal() bool {
	in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return in && out
}

// NewConsole picks the huh console for terminals and the line console otherwise.
func NewConsole(in io.Reader, out io.Writer) Console {
	if in == os.Stdin && out == os.Stdout && IsTerminal() {
		return NewTermConsole(out)
	}
	return NewLineConsole(in, out)
}
