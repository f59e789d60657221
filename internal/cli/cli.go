// Package cli implements the interactive command-line front-end. It
// translates engine results and typed errors into user-facing text; no
// business rules live here.
package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/knownasnaffy/saldo/internal/ledger"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	warningSymbol = "!"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FFAF00", Dark: "#FFAF00"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Context carries the wired engine into command Run methods via kong.
type Context struct {
	Ledger *ledger.Ledger
	Out    io.Writer
}

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printWarning(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		warningStyle.Render(warningSymbol),
		warningStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

// PrintErr renders an error with its kind so the user knows whether to fix
// input, run setup, or retry.
func PrintErr(w io.Writer, err error) {
	var kind string
	switch {
	case ledger.IsValidation(err):
		kind = "Validation error"
	case ledger.IsConfiguration(err):
		kind = "Configuration error"
	case ledger.IsStorage(err):
		kind = "Storage error"
	default:
		kind = "Error"
	}
	_, _ = fmt.Fprintf(w, "%s %s: %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(kind),
		err,
	)
}

// promptYesNo asks a yes/no question. Defaults to no when stdin is not a
// terminal.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool

	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	return confirm, nil
}

func promptFloat(title string, requirePositive bool) (float64, error) {
	var raw string

	input := huh.NewInput().
		Title(title).
		Validate(func(s string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return fmt.Errorf("enter a valid number")
			}
			if requirePositive && v <= 0 {
				return fmt.Errorf("must be a positive number")
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("enter a finite number")
			}
			return nil
		}).
		Value(&raw)

	if err := input.Run(); err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}

	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func promptInt(title string) (int, error) {
	var raw string

	input := huh.NewInput().
		Title(title).
		Validate(func(s string) error {
			v, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return fmt.Errorf("enter a valid whole number")
			}
			if v < 0 {
				return fmt.Errorf("cannot be negative")
			}
			return nil
		}).
		Value(&raw)

	if err := input.Run(); err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}

	return strconv.Atoi(strings.TrimSpace(raw))
}

// floatArg resolves a value from a flag or an interactive prompt. Outside a
// terminal the flag is mandatory.
func floatArg(flag *float64, name, title string, requirePositive bool) (float64, error) {
	if flag != nil {
		return *flag, nil
	}
	if !isTerminal() {
		return 0, fmt.Errorf("missing --%s (required when not running interactively)", name)
	}
	return promptFloat(title, requirePositive)
}

func intArg(flag *int, name, title string) (int, error) {
	if flag != nil {
		return *flag, nil
	}
	if !isTerminal() {
		return 0, fmt.Errorf("missing --%s (required when not running interactively)", name)
	}
	return promptInt(title)
}

func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
