package main

import (
	"image/color"
	"os/exec"
	"runtime"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/truncate"
)

// clipboardReader and clipboardWriter are swapped out in tests.
var (
	clipboardReader = readClipboardText
	clipboardWriter = clipboard.WriteAll
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func cleanClipboardText(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// sanitizeText flattens text to a single display line: line breaks and tabs become
// spaces, other control runes are dropped.
func sanitizeText(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			result.WriteRune(' ')
		case unicode.IsControl(r):
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

var namedColors = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
}

// parseColor understands hex colors and a few CSS names. "transparent" and unknown
// values report false.
func parseColor(s string) (colorful.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func termColor(s string) (lipgloss.Color, bool) {
	c, ok := parseColor(s)
	if !ok {
		return "", false
	}
	return lipgloss.Color(c.Hex()), true
}

func rgbaColor(s string, fallback color.Color) color.Color {
	if c, ok := parseColor(s); ok {
		return c
	}
	return fallback
}

// fitWidth truncates or pads a possibly styled string to exactly w cells.
func fitWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = truncate.String(s, uint(w))
	if n := w - lipgloss.Width(s); n > 0 {
		s += strings.Repeat(" ", n)
	}
	return s
}
