// Package ui prints the human-facing startup console: banner, status lines
// and the configuration summary. Request logs go through internal/log.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Version is stamped into the banner.
var Version = "v1.0.0"

// Output is where console lines are written.
var Output io.Writer = os.Stdout

var (
	clrDim    = color.New(color.FgHiBlack)
	clrSubtle = color.New(color.FgWhite)
	clrAccent = color.New(color.FgCyan, color.Bold)
	clrBrand  = color.New(color.FgBlue, color.Bold)

	clrSuccess = color.New(color.FgGreen)
	clrError   = color.New(color.FgRed)
	clrWarning = color.New(color.FgYellow)
	clrInfo    = color.New(color.FgBlue)

	badgeBrand = color.New(color.BgBlue, color.FgWhite, color.Bold)
)

const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"

	boxWidth = 60
)

// PrintBanner displays the startup header with a tagline.
func PrintBanner() {
	fmt.Fprintln(Output)
	fmt.Fprintln(Output, clrDim.Sprint(boxTopLeft+strings.Repeat(boxHorizontal, boxWidth)+boxTopRight))

	title := fmt.Sprintf("  %s %s", badgeBrand.Sprint(" ◆ INNO8 "), clrDim.Sprint(Version))
	fmt.Fprintln(Output, boxLine(title, 2+9+1+len(Version)))

	tagline := PickTagline()
	fmt.Fprintln(Output, boxLine("  "+FormatTagline(tagline), 2+len([]rune(tagline))))

	fmt.Fprintln(Output, clrDim.Sprint(boxBottomLeft+strings.Repeat(boxHorizontal, boxWidth)+boxBottomRight))
	fmt.Fprintln(Output)
}

// boxLine pads styled content (of visible width w) to the banner width.
func boxLine(content string, w int) string {
	pad := max(boxWidth-w, 1)
	return clrDim.Sprint(boxVertical) + content + strings.Repeat(" ", pad) + clrDim.Sprint(boxVertical)
}

// LogStatus displays a status message with appropriate styling
func LogStatus(category, message string) {
	ts := clrDim.Sprint(time.Now().Format("15:04:05"))

	var icon, styled string
	switch category {
	case "success":
		icon = clrSuccess.Sprint("✔")
		styled = clrSuccess.Sprint(message)
	case "error":
		icon = clrError.Sprint("✖")
		styled = clrError.Sprint(message)
	case "warning":
		icon = clrWarning.Sprint("⚠")
		styled = clrWarning.Sprint(message)
	case "info":
		icon = clrInfo.Sprint("ℹ")
		styled = clrSubtle.Sprint(message)
	default:
		icon = clrDim.Sprint("●")
		styled = clrSubtle.Sprint(message)
	}

	fmt.Fprintf(Output, "%s  %s  %s\n", ts, icon, styled)
}

// LogGroup starts a boxed block of label/value lines.
func LogGroup(title string) {
	fmt.Fprintln(Output)
	fmt.Fprintf(Output, "%s %s %s\n",
		clrDim.Sprint(boxTopLeft+strings.Repeat(boxHorizontal, 2)),
		clrBrand.Sprint(title),
		clrDim.Sprint(strings.Repeat(boxHorizontal, max(boxWidth-4-len(title), 1))+boxTopRight))
}

// LogGroupItem logs an item within a group
func LogGroupItem(label, value string) {
	fmt.Fprintf(Output, "%s  %s %s\n",
		clrDim.Sprint(boxVertical),
		clrDim.Sprint(label+":"),
		clrAccent.Sprint(value))
}

// LogGroupEnd closes a grouped block
func LogGroupEnd() {
	fmt.Fprintln(Output, clrDim.Sprint(boxBottomLeft+strings.Repeat(boxHorizontal, boxWidth)+boxBottomRight))
	fmt.Fprintln(Output)
}

// LogGracefulShutdown announces that the process is draining.
func LogGracefulShutdown() {
	fmt.Fprintln(Output)
	LogStatus("warning", "Shutdown signal received, draining in-flight requests...")
}

// PrintFooter displays a dim closing line.
func PrintFooter(message string) {
	fmt.Fprintf(Output, "  %s %s\n", clrDim.Sprint("▸"), clrDim.Sprint(message))
}
