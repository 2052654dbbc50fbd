// Package schemas provides JSON Schema validation for structured LLM outputs.
// Each pipeline stage validates the model's JSON against an embedded schema
// before decoding it, so malformed responses surface as a typed ParseError
// instead of half-populated structs.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema names for the pipeline stages
const (
	CompatibilityVerdict = "compatibility_verdict"
	OptimizationResult   = "optimization_result"
	CreativeResult       = "creative_result"
)

// compiled schemas are cached; gojsonschema.Schema is safe for concurrent use
var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.RWMutex
)

// Validatable is implemented by decoded types that carry their own field
// constraints (validator tags).
type Validatable interface {
	Validate() error
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("schema %s validation failed:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ParseError reports that an LLM response could not be parsed into the target
// schema. Raw preserves the model's text for diagnostics; callers decide per
// stage whether this is recoverable.
type ParseError struct {
	Schema string
	Raw    string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse %s response: %v", e.Schema, e.Cause)
	}
	return fmt.Sprintf("failed to parse %s response", e.Schema)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// DecodeAndValidate validates raw JSON against the named embedded schema,
// decodes it into v, and runs v's own field validation when available.
// Any failure is reported as a *ParseError carrying the raw text.
func DecodeAndValidate(name, raw string, v any) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		// Not valid JSON at all
		return &ParseError{Schema: name, Raw: raw, Cause: err}
	}

	if !result.Valid() {
		validationErr := &ValidationError{
			Schema: name,
			Errors: make([]FieldError, 0, len(result.Errors())),
		}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			validationErr.Errors = append(validationErr.Errors, FieldError{
				Field:   field,
				Message: desc.Description(),
			})
		}
		return &ParseError{Schema: name, Raw: raw, Cause: validationErr}
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return &ParseError{Schema: name, Raw: raw, Cause: err}
	}

	if validatable, ok := v.(Validatable); ok {
		if err := validatable.Validate(); err != nil {
			return &ParseError{Schema: name, Raw: raw, Cause: err}
		}
	}

	return nil
}

// load compiles and caches the named embedded schema.
func load(name string) (*gojsonschema.Schema, error) {
	compiledMu.RLock()
	if schema, exists := compiled[name]; exists {
		compiledMu.RUnlock()
		return schema, nil
	}
	compiledMu.RUnlock()

	data, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	compiledMu.Lock()
	compiled[name] = schema
	compiledMu.Unlock()

	return schema, nil
}
