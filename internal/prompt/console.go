// Package prompt collects the class target and its fields from an operator.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ErrAborted = errors.New("aborted by user")

// Question is a single prompt. An empty answer selects Default. Validate
// failures are shown and the question is asked again.
type Question struct {
	Title    string
	Default  string
	Validate func(string) error
}

// Console is the line oriented surface the collector talks to. Ask returns an
// error wrapping io.EOF once input is exhausted.
type Console interface {
	Ask(ctx context.Context, q Question) (string, error)
	Section(title string)
	Println(lines ...string)
	Error(msg string)
}

type printer struct {
	out     io.Writer
	title   lipgloss.Style
	value   lipgloss.Style
	err     lipgloss.Style
	section lipgloss.Style
}

func newPrinter(out io.Writer) printer {
	r := lipgloss.NewRenderer(out)
	return printer{
		out:     out,
		title:   r.NewStyle().Foreground(lipgloss.Color("2")),
		value:   r.NewStyle().Foreground(lipgloss.Color("3")),
		err:     r.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
		section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1),
	}
}

func (p printer) Section(title string) {
	_, _ = fmt.Fprintf(p.out, "\n%s\n\n", p.section.Render(title))
}

func (p printer) Println(lines ...string) {
	for _, l := range lines {
		_, _ = fmt.Fprintln(p.out, l)
	}
}

func (p printer) Error(msg string) {
	_, _ = fmt.Fprintln(p.out, p.err.Render(msg))
}

func (p printer) question(q Question) string {
	if q.Default == "" {
		return p.title.Render(q.Title) + ": "
	}
	return fmt.Sprintf("%s [%s]: ", p.title.Render(q.Title), p.value.Render(q.Default))
}

// LineConsole reads answers line by line, for pipes and dumb terminals.
type LineConsole struct {
	printer
	in *bufio.Reader
}

func NewLineConsole(in io.Reader, out io.Writer) *LineConsole {
	return &LineConsole{printer: newPrinter(out), in: bufio.NewReader(in)}
}

func (c *LineConsole) Ask(ctx context.Context, q Question) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		_, _ = fmt.Fprint(c.out, c.question(q))

		line, err := c.in.ReadString('\n')
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return "", fmt.Errorf("read answer: %w", err)
		}
		if eof && line == "" {
			_, _ = fmt.Fprintln(c.out)
			return "", fmt.Errorf("%q: %w", q.Title, io.EOF)
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			answer = q.Default
		}
		if q.Validate != nil {
			if verr := q.Validate(answer); verr != nil {
				c.Error(verr.Error())
				if eof {
					return "", fmt.Errorf("%q: %w", q.Title, io.EOF)
				}
				continue
			}
		}
		return answer, nil
	}
}
