// Package output formats CLI results for the terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/jeanpaul/unifind/internal/apperr"
)

// Printer writes status lines to out and problems to err.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// ResolveColors honors NO_COLOR and TERM=dumb before the configured value.
func ResolveColors(configColors bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return configColors
}

// NewPrinter creates a Printer. Nil writers default to stdout and stderr.
func NewPrinter(out, err io.Writer, useColors bool) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if err == nil {
		err = os.Stderr
	}
	return &Printer{out: out, err: err, useColors: useColors}
}

func (p *Printer) Info(format string, args ...any) {
	if p.useColors {
		color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, format+"\n", args...)
	}
}

func (p *Printer) Success(format string, args ...any) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
	}
}

func (p *Printer) Warning(format string, args ...any) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
	}
}

func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
	}
}

// Notice prints err the way the TUI status bar titles it.
func (p *Printer) Notice(err error) {
	if err == nil {
		return
	}
	title, msg := apperr.Notice(err)
	p.Error("%s: %s", title, msg)
}

// Badge renders a reachability marker.
func (p *Printer) Badge(ok bool) string {
	if !p.useColors {
		if ok {
			return "[OK]"
		}
		return "[FAIL]"
	}
	if ok {
		return color.GreenString("●")
	}
	return color.RedString("●")
}

// Dim renders secondary text faintly.
func (p *Printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}
