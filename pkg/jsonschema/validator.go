package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Violation is a single schema violation at a location in the document
type Violation struct {
	Location string
	Message  string
}

// Error implements the error interface
func (v Violation) Error() string {
	location := v.Location
	if location == "" {
		location = "/"
	}
	return fmt.Sprintf("validation error at %s: %s", location, v.Message)
}

// ValidationErrors represents a collection of validation errors
type ValidationErrors []Violation

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, v := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(v.Error())
	}
	return sb.String()
}

// Schema is a compiled JSON schema
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile compiles a schema document registered under name
func Compile(name string, schema []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()

	if err := compiler.AddResource(name, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return &Schema{compiled: compiled}, nil
}

// MustCompile is like Compile but panics on an invalid schema.
// It is meant for schemas embedded in the binary.
func MustCompile(name string, schema []byte) *Schema {
	s, err := Compile(name, schema)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks a decoded JSON document (maps, slices, float64, string,
// bool, nil) against the schema. A nil result means the document is valid.
func (s *Schema) Validate(doc interface{}) ValidationErrors {
	err := s.compiled.Validate(doc)
	if err == nil {
		return nil
	}

	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		return extractViolations(validationErr)
	}
	return ValidationErrors{{Message: err.Error()}}
}

// ValidateJSON decodes data and validates it. The returned error is only
// set when data is not JSON.
func (s *Schema) ValidateJSON(data []byte) (ValidationErrors, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return s.Validate(doc), nil
}

// extractViolations flattens the cause tree, keeping the leaves since the
// inner nodes only say that a subschema failed
func extractViolations(err *jsonschema.ValidationError) ValidationErrors {
	if len(err.Causes) == 0 {
		return ValidationErrors{{Location: err.InstanceLocation, Message: err.Message}}
	}

	var violations ValidationErrors
	for _, cause := range err.Causes {
		violations = append(violations, extractViolations(cause)...)
	}
	return violations
}
