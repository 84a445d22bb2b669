package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/benchfio/internal/config"
	"github.com/wesleyorama2/benchfio/internal/preflight"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format '%s', must be one of: text, json, yaml", s)
	}
}

// CheckSettings is the Check reported for errors raised before the gate ran
const CheckSettings = "settings"

// Report is the verdict of one preflight run
type Report struct {
	Passed     bool                       `json:"passed" yaml:"passed"`
	ExitCode   int                        `json:"exitCode" yaml:"exitCode"`
	Check      string                     `json:"check,omitempty" yaml:"check,omitempty"`
	Message    string                     `json:"message,omitempty" yaml:"message,omitempty"`
	Type       string                     `json:"type,omitempty" yaml:"type,omitempty"`
	Parameter  string                     `json:"parameter,omitempty" yaml:"parameter,omitempty"`
	Targets    []preflight.ResolvedTarget `json:"targets,omitempty" yaml:"targets,omitempty"`
	Modes      []string                   `json:"modes,omitempty" yaml:"modes,omitempty"`
	MixedModes int                        `json:"mixedModes,omitempty" yaml:"mixedModes,omitempty"`
	LoopItems  []string                   `json:"loopItems,omitempty" yaml:"loopItems,omitempty"`
	Warnings   []string                   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewReport builds a report from the outcome of a run. settings and result
// may be nil when the run stopped early.
func NewReport(settings *config.Settings, result *preflight.Result, err error) *Report {
	report := &Report{Passed: err == nil, ExitCode: preflight.ExitCode(err)}

	if err != nil {
		if f, ok := preflight.AsFailure(err); ok {
			report.Check = f.Check
			report.Message = f.Message
		} else {
			report.Check = CheckSettings
			report.Message = err.Error()
		}
	}

	if settings != nil {
		report.Type = string(settings.Type)
		report.Modes = settings.Mode
		report.LoopItems = settings.LoopItems
		if report.Passed {
			report.Warnings = destructiveWarnings(settings)
		}
	}

	if result != nil {
		report.Parameter = result.Parameter
		report.Targets = result.Targets
		report.MixedModes = result.MixedModes
	}

	return report
}

// destructiveWarnings lists the confirmed modes that will overwrite data
func destructiveWarnings(settings *config.Settings) []string {
	if !settings.Destructive {
		return nil
	}
	var warnings []string
	for _, mode := range settings.Mode {
		if preflight.IsDestructive(mode) {
			warnings = append(warnings, fmt.Sprintf("Mode %s will overwrite data on %s",
				mode, strings.Join(settings.Target, ", ")))
		}
	}
	return warnings
}

// FormatProvider renders a report
type FormatProvider interface {
	Format(report *Report) (string, error)
}

// JSONFormatter renders reports as indented JSON
type JSONFormatter struct{}

// Format implements FormatProvider
func (JSONFormatter) Format(report *Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding report as JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// YAMLFormatter renders reports as YAML
type YAMLFormatter struct{}

// Format implements FormatProvider
func (YAMLFormatter) Format(report *Report) (string, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("error encoding report as YAML: %w", err)
	}
	return string(data), nil
}

// GetFormatter returns the formatter for format. Unknown formats fall back
// to text.
func GetFormatter(format OutputFormat, verbose, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return JSONFormatter{}
	case FormatYAML:
		return YAMLFormatter{}
	default:
		return NewFormatter(verbose, noColor)
	}
}
