// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume string `json:"resume,omitempty"`  // Path to resume text/HTML file
	Job    string `json:"job,omitempty"`     // Path to job posting file
	JobURL string `json:"job_url,omitempty"` // URL to fetch job posting from

	// LLM
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key
	ModelLite     string `json:"model_lite,omitempty"`     // Override for the lite model tier
	ModelStandard string `json:"model_standard,omitempty"` // Override for the standard model tier
	ModelAdvanced string `json:"model_advanced,omitempty"` // Override for the advanced model tier

	// Knowledge store (optional)
	DatabaseURL string  `json:"database_url,omitempty"` // PostgreSQL connection URL with pgvector
	Collection  string  `json:"collection,omitempty"`   // Knowledge collection name
	RAGLimit    int     `json:"rag_limit,omitempty"`    // Max knowledge snippets per prompt
	RAGMinScore float64 `json:"rag_min_score,omitempty"`

	// Rendering (optional)
	OutputDir      string `json:"output_dir,omitempty"`      // Directory for generated PDFs
	ChromePath     string `json:"chrome_path,omitempty"`     // Headless browser binary
	TemplateID     string `json:"template_id,omitempty"`     // Resume template name
	TargetLanguage string `json:"target_language,omitempty"` // Force document language ("pt"/"en")

	// Behavior
	Verbose  bool `json:"verbose,omitempty"`   // Print stage summaries
	JSONLogs bool `json:"json_logs,omitempty"` // Structured JSON log output
	Debug    bool `json:"debug,omitempty"`     // Debug-level logging
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.RAGLimit < 0 {
		return fmt.Errorf("config error: 'rag_limit' must be non-negative")
	}
	if c.RAGMinScore < 0 || c.RAGMinScore > 1 {
		return fmt.Errorf("config error: 'rag_min_score' must be between 0 and 1")
	}

	if c.TargetLanguage != "" && c.TargetLanguage != "pt" && c.TargetLanguage != "en" {
		return fmt.Errorf("config error: 'target_language' must be \"pt\" or \"en\"")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ModelLite == "" {
		result.ModelLite = defaults.ModelLite
	}
	if result.ModelStandard == "" {
		result.ModelStandard = defaults.ModelStandard
	}
	if result.ModelAdvanced == "" {
		result.ModelAdvanced = defaults.ModelAdvanced
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Collection == "" {
		result.Collection = defaults.Collection
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.TemplateID == "" {
		result.TemplateID = defaults.TemplateID
	}
	if result.TargetLanguage == "" {
		result.TargetLanguage = defaults.TargetLanguage
	}

	if result.RAGLimit == 0 {
		if defaults.RAGLimit > 0 {
			result.RAGLimit = defaults.RAGLimit
		} else {
			result.RAGLimit = 3
		}
	}
	if result.RAGMinScore == 0 {
		if defaults.RAGMinScore > 0 {
			result.RAGMinScore = defaults.RAGMinScore
		} else {
			result.RAGMinScore = 0.7
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
