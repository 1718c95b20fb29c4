// Package tui renders solver progress for interactive terminals.
package tui

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// StatusPrinter writes progress messages to stdout, styled when stdout is a
// terminal and plain otherwise (pipes, CI logs).
type StatusPrinter struct {
	profile termenv.Profile
	tty     bool
}

// NewStatusPrinter detects the output terminal once at construction.
func NewStatusPrinter() *StatusPrinter {
	return &StatusPrinter{
		profile: termenv.ColorProfile(),
		tty:     term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Progress prints an intermediate status update.
func (p *StatusPrinter) Progress(msg string) {
	if !p.tty {
		fmt.Println(msg)
		return
	}
	fmt.Println(termenv.String(msg).Foreground(p.profile.Color("#a78bfa")))
}

// Success prints a positive final message.
func (p *StatusPrinter) Success(msg string) {
	if !p.tty {
		fmt.Println(msg)
		return
	}
	fmt.Println(termenv.String(msg).Foreground(p.profile.Color("#34d399")).Bold())
}

// Failure prints a negative final message.
func (p *StatusPrinter) Failure(msg string) {
	if !p.tty {
		fmt.Println(msg)
		return
	}
	fmt.Println(termenv.String(msg).Foreground(p.profile.Color("#fb7185")))
}
