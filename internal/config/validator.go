package config

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/benchfio/pkg/jsonschema"
)

// ValidationError represents a settings file validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// SettingsError reports every schema violation found in a settings file
type SettingsError struct {
	File   string
	Errors []ValidationError
}

// Error lists the violations one per line
func (e *SettingsError) Error() string {
	var sb strings.Builder
	if e.File == "" {
		sb.WriteString("invalid settings")
	} else {
		sb.WriteString(fmt.Sprintf("invalid settings file %s", e.File))
	}
	for _, ve := range e.Errors {
		sb.WriteString("\n  ")
		sb.WriteString(ve.Error())
	}
	return sb.String()
}

// toValidationErrors converts schema violations into dotted settings paths,
// e.g. "/rwmixread/0" becomes "rwmixread.0"
func toValidationErrors(violations jsonschema.ValidationErrors) []ValidationError {
	errors := make([]ValidationError, 0, len(violations))
	for _, v := range violations {
		path := strings.ReplaceAll(strings.TrimPrefix(v.Location, "/"), "/", ".")
		if path == "" {
			path = "settings"
		}
		errors = append(errors, ValidationError{Path: path, Message: v.Message})
	}
	return errors
}
