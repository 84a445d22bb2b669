package jsonschema

import (
	"strings"
	"testing"
)

const personSchema = `{
	"type": "object",
	"properties": {
		"name": { "type": "string" },
		"age": { "type": "integer", "minimum": 0 }
	},
	"required": ["name"],
	"additionalProperties": false
}`

func TestSchema_ValidateJSON(t *testing.T) {
	schema, err := Compile("person.json", []byte(personSchema))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	tests := []struct {
		name           string
		json           string
		wantViolations bool
		wantLocation   string
		wantErr        bool
	}{
		{
			name: "Valid simple object",
			json: `{"name": "John Doe", "age": 30}`,
		},
		{
			name:           "Invalid - missing required property",
			json:           `{"age": 30}`,
			wantViolations: true,
		},
		{
			name:           "Invalid - wrong type",
			json:           `{"name": "John Doe", "age": "thirty"}`,
			wantViolations: true,
			wantLocation:   "/age",
		},
		{
			name:           "Invalid - below minimum",
			json:           `{"name": "John Doe", "age": -1}`,
			wantViolations: true,
			wantLocation:   "/age",
		},
		{
			name:           "Invalid - unknown property",
			json:           `{"name": "John Doe", "email": "x"}`,
			wantViolations: true,
		},
		{
			name:    "Malformed JSON",
			json:    `{"name": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations, err := schema.ValidateJSON([]byte(tt.json))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (len(violations) > 0) != tt.wantViolations {
				t.Fatalf("ValidateJSON() violations = %v, want violations %v", violations, tt.wantViolations)
			}
			if tt.wantLocation != "" && violations[0].Location != tt.wantLocation {
				t.Errorf("Expected location '%s' but got '%s'", tt.wantLocation, violations[0].Location)
			}
		})
	}
}

func TestCompile_InvalidSchema(t *testing.T) {
	if _, err := Compile("broken.json", []byte(`{"type": `)); err == nil {
		t.Error("Expected an error for a malformed schema")
	}
	if _, err := Compile("bad-type.json", []byte(`{"type": "not-a-type"}`)); err == nil {
		t.Error("Expected an error for an unknown type keyword value")
	}
}

func TestMustCompile_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCompile() should panic on an invalid schema")
		}
	}()
	MustCompile("broken.json", []byte(`{`))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Location: "/age", Message: "expected integer"},
		{Location: "", Message: "missing properties: 'name'"},
	}

	got := errs.Error()
	if !strings.Contains(got, "validation error at /age: expected integer") {
		t.Errorf("Error() = %q, missing first violation", got)
	}
	if !strings.Contains(got, "validation error at /: missing properties") {
		t.Errorf("Error() = %q, root location should render as /", got)
	}
	if !strings.Contains(got, "; ") {
		t.Errorf("Error() = %q, violations should be joined with '; '", got)
	}

	if (ValidationErrors{}).Error() != "" {
		t.Error("Empty ValidationErrors should render as an empty string")
	}
}
