package ui

import (
	"os"
	"strings"

	"github.com/fatih/color"
)

// Color helpers respect NO_COLOR and FORCE_COLOR.

var (
	noColor    = os.Getenv("NO_COLOR") != ""
	forceColor = isForceColor()
)

func isForceColor() bool {
	fc := strings.TrimSpace(os.Getenv("FORCE_COLOR"))
	return fc != "" && fc != "0"
}

// IsRich returns true if the terminal supports rich output (colors)
func IsRich() bool {
	if noColor && !forceColor {
		return false
	}
	return !color.NoColor
}

// Accent returns brand-colored text
func Accent(format string, a ...any) string {
	return color.New(color.FgHiBlue).Sprintf(format, a...)
}

// AccentDim returns muted accent text
func AccentDim(format string, a ...any) string {
	return color.New(color.FgBlue).Sprintf(format, a...)
}

// Success returns success-styled text
func Success(format string, a ...any) string {
	return color.New(color.FgGreen).Sprintf(format, a...)
}

// Warn returns warning-styled text
func Warn(format string, a ...any) string {
	return color.New(color.FgYellow).Sprintf(format, a...)
}

// Muted returns secondary/hint text
func Muted(format string, a ...any) string {
	return color.New(color.FgHiBlack).Sprintf(format, a...)
}
