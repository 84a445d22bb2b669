package config

import (
	"strings"
	"testing"

	"github.com/wesleyorama2/benchfio/pkg/jsonschema"
)

// TestValidationError_Error tests the ValidationError.Error() method
func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name:     "standard error",
			err:      ValidationError{Path: "rwmixread.0", Message: "must be <= 100 but found 150"},
			expected: "rwmixread.0: must be <= 100 but found 150",
		},
		{
			name:     "empty message",
			err:      ValidationError{Path: "mode"},
			expected: "mode: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Expected '%s' but got '%s'", tt.expected, result)
			}
		})
	}
}

func TestSettingsError_Error(t *testing.T) {
	err := &SettingsError{
		File: "bench.yaml",
		Errors: []ValidationError{
			{Path: "mode.0", Message: "value must be one of ..."},
			{Path: "destructive", Message: "expected boolean, but got string"},
		},
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "invalid settings file bench.yaml") {
		t.Errorf("Unexpected prefix in '%s'", msg)
	}
	if strings.Count(msg, "\n") != 2 {
		t.Errorf("Expected one line per violation, got '%s'", msg)
	}
}

func TestToValidationErrors(t *testing.T) {
	got := toValidationErrors(jsonschema.ValidationErrors{
		{Location: "/rwmixread/1", Message: "too big"},
		{Location: "", Message: "additionalProperties 'targets' not allowed"},
	})

	if len(got) != 2 {
		t.Fatalf("Expected 2 errors, got %d", len(got))
	}
	if got[0].Path != "rwmixread.1" {
		t.Errorf("Expected path 'rwmixread.1', got '%s'", got[0].Path)
	}
	if got[1].Path != "settings" {
		t.Errorf("Expected root path 'settings', got '%s'", got[1].Path)
	}
}
