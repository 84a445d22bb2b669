package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for the preflight report
type ColorScheme struct {
	Check     *color.Color
	Path      *color.Color
	Parameter *color.Color
	Label     *color.Color
	Success   *color.Color
	Error     *color.Color
	Warning   *color.Color
	Highlight *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Check:     color.New(color.FgBlue, color.Bold),
		Path:      color.New(color.FgCyan),
		Parameter: color.New(color.FgYellow),
		Label:     color.New(color.FgWhite),
		Success:   color.New(color.FgGreen, color.Bold),
		Error:     color.New(color.FgRed, color.Bold),
		Warning:   color.New(color.FgYellow, color.Bold),
		Highlight: color.New(color.FgMagenta, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	for _, c := range []*color.Color{
		scheme.Check, scheme.Path, scheme.Parameter, scheme.Label,
		scheme.Success, scheme.Error, scheme.Warning, scheme.Highlight,
	} {
		c.DisableColor()
	}

	return scheme
}

// SchemeFor picks the scheme matching the noColor setting
func SchemeFor(noColor bool) *ColorScheme {
	if noColor {
		return NoColorScheme()
	}
	return DefaultColorScheme()
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}

// WarningIcon returns a warning symbol with appropriate color
func WarningIcon(noColor bool) string {
	if noColor {
		return "⚠"
	}
	return color.New(color.FgYellow).Sprint("⚠")
}
