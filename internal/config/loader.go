package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/benchfio/pkg/jsonschema"
)

//go:embed settings.schema.json
var settingsSchemaJSON []byte

var settingsSchema = jsonschema.MustCompile("settings.schema.json", settingsSchemaJSON)

// LoadSettings loads a settings file layered over DefaultSettings.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
//
// Any other extension is parsed as YAML.
func LoadSettings(path string) (*Settings, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("settings file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading settings file: %w", err)
	}

	return ParseSettings(data, path)
}

// ParseSettings validates data against the settings schema and decodes it.
// The format is picked from the extension of path, defaulting to YAML.
func ParseSettings(data []byte, path string) (*Settings, error) {
	isJSON := strings.ToLower(filepath.Ext(path)) == ".json"

	violations, err := validateDocument(data, isJSON)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &SettingsError{File: path, Errors: toValidationErrors(violations)}
	}

	settings := DefaultSettings()
	if isJSON {
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse JSON settings: %w", err)
		}
	} else if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse YAML settings: %w", err)
		}
	}

	return settings, nil
}

// validateDocument checks the raw file against the settings schema. YAML
// goes through a JSON round trip first so that numbers and maps have JSON
// types.
func validateDocument(data []byte, isJSON bool) (jsonschema.ValidationErrors, error) {
	if isJSON {
		violations, err := settingsSchema.ValidateJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON settings: %w", err)
		}
		return violations, nil
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML settings: %w", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("settings are not representable as JSON: %w", err)
	}

	violations, err := settingsSchema.ValidateJSON(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize YAML settings: %w", err)
	}
	return violations, nil
}
