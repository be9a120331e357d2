package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Options configures a Console.
type Options struct {
	Color ColorMode
	// NoClear keeps earlier boards on screen instead of clearing before each render.
	NoClear bool
	// HumanName is shown in the win banner when a human wins.
	HumanName string
}

// Console is a line-oriented terminal UI. It reads answers and box numbers
// from in and draws boards and banners to out.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	color  bool
	clear  bool
	human  string
	notice string

	startReader sync.Once
	lines       chan readResult
	readErr     error
}

type readResult struct {
	line string
	err  error
}

// New creates a Console on arbitrary streams. ColorAuto is treated as
// ColorNever since the streams are not known to be terminals.
func New(in io.Reader, out io.Writer, opts Options) *Console {
	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		color: opts.Color == ColorAlways,
		clear: !opts.NoClear,
		human: humanName(opts.HumanName),
	}
}

// NewStdio creates a Console on stdin and stdout. In ColorAuto mode color is
// enabled when stdout is a terminal. Output goes through go-colorable so
// escape sequences also work on Windows consoles.
func NewStdio(opts Options) *Console {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	color := opts.Color == ColorAlways || (opts.Color == ColorAuto && tty)
	var out io.Writer = colorable.NewColorableStdout()
	if !color {
		out = colorable.NewNonColorable(os.Stdout)
	}

	return &Console{
		in:    bufio.NewReader(os.Stdin),
		out:   out,
		color: color,
		clear: !opts.NoClear && tty,
		human: humanName(opts.HumanName),
	}
}

func humanName(name string) string {
	if name == "" {
		return "You"
	}
	return name
}

// Title prints the game banner.
func (c *Console) Title() {
	fmt.Fprintln(c.out, center(" Tic-Tac-Toe ", 32, '='))
}

// AskYesNo prints question and reads one line. Answers starting with y or Y
// are yes; anything else is no.
func (c *Console) AskYesNo(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(c.out, "%s (y/n): ", question)
	line, err := c.readLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(line), "y"), nil
}

// readLine returns the next line without its line ending, or ctx.Err()
// as soon as ctx is done. A final line without a newline is returned before
// io.EOF. A line typed after ctx was done is kept for the next call.
func (c *Console) readLine(ctx context.Context) (string, error) {
	if c.readErr != nil {
		return "", c.readErr
	}
	c.startReader.Do(c.readLoop)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-c.lines:
		if r.err != nil {
			c.readErr = r.err
			if !errors.Is(r.err, io.EOF) || r.line == "" {
				return "", r.err
			}
		}
		return strings.TrimSpace(r.line), nil
	}
}

// readLoop feeds c.lines from a goroutine so a blocked read never holds up
// cancellation. It stops after the first read error.
func (c *Console) readLoop() {
	c.lines = make(chan readResult)
	go func() {
		for {
			line, err := c.in.ReadString('\n')
			c.lines <- readResult{line: line, err: err}
			if err != nil {
				return
			}
		}
	}()
}

// center pads s on both sides with fill up to width, putting the extra
// character on the right.
func center(s string, width int, fill rune) string {
	pad := width - len([]rune(s))
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), pad-left)
}
