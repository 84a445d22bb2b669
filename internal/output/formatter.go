package output

import (
	"fmt"
	"strings"
)

// Formatter renders reports as human-readable text
type Formatter struct {
	Verbose bool
	NoColor bool
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
	}
}

// Format implements FormatProvider
func (f *Formatter) Format(report *Report) (string, error) {
	if report.Passed {
		return f.formatPassed(report), nil
	}
	return f.formatFailed(report), nil
}

func (f *Formatter) formatFailed(report *Report) string {
	scheme := SchemeFor(f.NoColor)
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("%s %s [%s] (exit %s)\n",
		ErrorIcon(f.NoColor),
		scheme.Error.Sprint("preflight failed"),
		scheme.Check.Sprint(report.Check),
		scheme.Highlight.Sprint(report.ExitCode)))
	buf.WriteString(fmt.Sprintf("  %s\n", report.Message))

	return buf.String()
}

func (f *Formatter) formatPassed(report *Report) string {
	scheme := SchemeFor(f.NoColor)
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("%s %s\n", SuccessIcon(f.NoColor), scheme.Success.Sprint("preflight passed")))
	buf.WriteString(fmt.Sprintf("  %s %s\n", scheme.Label.Sprint("Type:      "), report.Type))

	buf.WriteString(fmt.Sprintf("  %s\n", scheme.Label.Sprint("Targets:")))
	for _, target := range report.Targets {
		if target.Parameter == "" {
			buf.WriteString(fmt.Sprintf("    %s\n", scheme.Path.Sprint(target.Path)))
			continue
		}
		buf.WriteString(fmt.Sprintf("    %s=%s\n",
			scheme.Parameter.Sprint(target.Parameter),
			scheme.Path.Sprint(target.Path)))
	}

	buf.WriteString(fmt.Sprintf("  %s %s\n", scheme.Label.Sprint("Modes:     "), strings.Join(report.Modes, ", ")))

	for _, warning := range report.Warnings {
		buf.WriteString(fmt.Sprintf("%s %s\n", WarningIcon(f.NoColor), scheme.Warning.Sprint(warning)))
	}

	if f.Verbose {
		buf.WriteString(fmt.Sprintf("  %s %d\n", scheme.Label.Sprint("Mixed:     "), report.MixedModes))
		buf.WriteString(fmt.Sprintf("  %s %s\n", scheme.Label.Sprint("Loop items:"), strings.Join(report.LoopItems, ", ")))
	}

	return buf.String()
}
