package color

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	Reset = "\033[0m"
	Bold  = "\033[1m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"

	BrightRed = "\033[91m"
)

var colorEnabled = true

func init() {
	if os.Getenv("NO_COLOR") != "" || !isTerminal() {
		colorEnabled = false
	}
}

func isTerminal() bool {
	if t := os.Getenv("TERM"); t == "" || t == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func EnableColor(enable bool) {
	colorEnabled = enable
}

func IsColorEnabled() bool {
	return colorEnabled
}

func Colorize(color, text string) string {
	if !colorEnabled {
		return text
	}
	return color + text + Reset
}

func RedText(text string) string {
	return Colorize(Red, text)
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func GreenText(text string) string {
	return Colorize(Green, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func BlueText(text string) string {
	return Colorize(Blue, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

func BoldText(text string) string {
	return Colorize(Bold, text)
}

// LineNumber renders a 1-based script line number.
func LineNumber(line int) string {
	return CyanText(fmt.Sprintf("%3d", line))
}

// ErrorWithLine formats a fatal script error with the offending source line.
// line is 1-based; 0 means the error is not tied to a line.
func ErrorWithLine(line int, text, message string) string {
	if line <= 0 {
		return fmt.Sprintf("%s: %s", BrightRedText(BoldText("Error")), message)
	}

	if !colorEnabled {
		return fmt.Sprintf("Error at line %d: %s\n  %d | %s", line, message, line, text)
	}

	return fmt.Sprintf("%s at %s: %s\n  %s %s %s",
		BrightRedText(BoldText("Error")),
		YellowText(fmt.Sprintf("line %d", line)),
		message,
		CyanText(fmt.Sprintf("%d", line)),
		GrayText("|"),
		GrayText(text))
}
