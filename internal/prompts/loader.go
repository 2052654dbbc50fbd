// Package prompts provides a loader for externalized LLM prompt templates.
// Templates are stored as JSON files and embedded at compile time, so prompt
// text can change without touching stage code.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/resume-optimizer/internal/llm"
)

//go:embed *.json
var promptFiles embed.FS

// Template is a resolved prompt template for one pipeline stage.
type Template struct {
	Name         string         `json:"name"`
	Version      string         `json:"version"`
	System       string         `json:"system"`
	UserTemplate string         `json:"user_template"`
	Config       TemplateConfig `json:"config"`
}

// TemplateConfig carries the sampling parameters and model tier for a template.
type TemplateConfig struct {
	Temperature float32       `json:"temperature"`
	MaxTokens   int32         `json:"max_tokens"`
	Tier        llm.ModelTier `json:"tier"`
}

// cache stores parsed templates to avoid repeated JSON parsing
var (
	cache   = make(map[string]*Template)
	cacheMu sync.RWMutex
)

// Load retrieves a template by name (e.g. "compatibility" loads
// compatibility.json). Returns an error if the file is missing or malformed.
func Load(name string) (*Template, error) {
	cacheMu.RLock()
	if tmpl, exists := cache[name]; exists {
		cacheMu.RUnlock()
		return tmpl, nil
	}
	cacheMu.RUnlock()

	data, err := promptFiles.ReadFile(name + ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s.json: %w", name, err)
	}

	var tmpl Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s.json: %w", name, err)
	}

	// Defaults mirror the loader the prompt files were authored against.
	if tmpl.Config.Temperature == 0 {
		tmpl.Config.Temperature = 0.7
	}
	if tmpl.Config.MaxTokens == 0 {
		tmpl.Config.MaxTokens = 2000
	}
	if tmpl.Config.Tier == "" {
		tmpl.Config.Tier = llm.TierStandard
	}

	cacheMu.Lock()
	cache[name] = &tmpl
	cacheMu.Unlock()

	return &tmpl, nil
}

// MustLoad retrieves a template by name, panicking if not found.
// Use this for templates that are required at initialization time.
func MustLoad(name string) *Template {
	tmpl, err := Load(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt template: %v", err))
	}
	return tmpl
}

// FormatUser replaces placeholders in the form {{.Key}} in the user template
// with values from data.
func (t *Template) FormatUser(data map[string]string) string {
	return Format(t.UserTemplate, data)
}

// Format replaces template placeholders in the form {{.Key}} with values from data.
// This is a simple template system for prompt customization.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// ClearCache clears the template cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]*Template)
	cacheMu.Unlock()
}
