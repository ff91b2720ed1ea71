// Package display renders the live timer line for the status watch view.
package display

import (
	"fmt"
	"io"
	"os"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/tempora/tempora/internal/util"
	"golang.org/x/term"
)

// StatusView redraws a single status line in place on each clock tick.
type StatusView struct {
	out   io.Writer
	width func() int
}

func NewStatusView() *StatusView {
	return &StatusView{
		out:   os.Stdout,
		width: terminalWidth,
	}
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// RenderTick draws the running timer line, truncated to the terminal width.
func (v *StatusView) RenderTick(project, description string, elapsed int) {
	line := fmt.Sprintf("▶ %s  %s", util.FormatClock(elapsed), project)
	if description != "" {
		line += "  " + description
	}
	line = runewidth.Truncate(line, v.width(), "...")
	fmt.Fprintf(v.out, "\r\033[K%s", line)
}

// RenderIdle draws the no-timer line once.
func (v *StatusView) RenderIdle() {
	fmt.Fprintf(v.out, "\r\033[KNo timer running\n")
}

// Done finishes the in-place line with a newline.
func (v *StatusView) Done() {
	fmt.Fprintln(v.out)
}
