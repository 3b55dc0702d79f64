package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bookrack/pkg/pipeline"
)

// Terminal palette, taken from the reference book: teal edges, a green obi
// and the paper background of the default scene.
var (
	colorTeal  = lipgloss.Color("#2a9d8f")
	colorObi   = lipgloss.Color("#6a994e")
	colorAmber = lipgloss.Color("#e9a23b")
	colorBrick = lipgloss.Color("#c8553d")
	colorSpine = lipgloss.Color("#7aa6d6")
	colorPaper = lipgloss.Color("#eee1d1")
	colorGray  = lipgloss.Color("#9a9590")
	colorDim   = lipgloss.Color("#6b6660")
)

// Exported styles, shared with serve and inspect output.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	StyleLink    = lipgloss.NewStyle().Foreground(colorSpine).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorPaper)
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorObi)
	styleIconError   = lipgloss.NewStyle().Foreground(colorBrick)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorAmber)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorTeal)

	styleCached   = lipgloss.NewStyle().Foreground(colorObi)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorSpine)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "·"
	iconArrow   = "→"

	labelCached = "cached"
	labelFresh  = "fresh"
)

// stdout receives all styled output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

func writeLine(parts ...string) {
	fmt.Fprintln(stdout, strings.Join(parts, " "))
}

func status(icon string, style lipgloss.Style, format string, args ...any) {
	writeLine(style.Render(icon), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(iconSuccess, styleIconSuccess, format, args...) }
func printError(format string, args ...any)   { status(iconError, styleIconError, format, args...) }
func printInfo(format string, args ...any)    { status(iconInfo, styleIconInfo, format, args...) }

func printWarning(format string, args ...any) {
	writeLine(styleIconWarning.Render(iconWarning), StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	writeLine(" ", StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written output path.
func printFile(path string) {
	writeLine(" ", StyleDim.Render(iconArrow), StyleValue.Render(path))
}

// printKeyValue prints a label padded to a fixed column and its value.
func printKeyValue(key, value string) {
	writeLine(styleKey.Render(key), StyleValue.Render(value))
}

// printStats prints one dimmed summary line for a render:
//
//	32 books · 128 shapes · 128 shaded · fresh
func printStats(stats pipeline.Stats, cached bool) {
	var parts []string
	if stats.Books > 0 {
		parts = append(parts, StyleDim.Render(plural(stats.Books, "book")))
	}
	if stats.Shapes > 0 {
		parts = append(parts, StyleDim.Render(plural(stats.Shapes, "shape")))
	}
	if stats.Gradients > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d shaded", stats.Gradients)))
	}
	if cached {
		parts = append(parts, styleCached.Render(labelCached))
	} else {
		parts = append(parts, styleComputed.Render(labelFresh))
	}
	writeLine(" ", strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	writeLine(StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
