// Package language provides keyword-based language detection and LLM-backed
// translation of resume content between the supported languages.
package language

import "regexp"

// Language is a supported resume/report language.
type Language string

// Supported languages
const (
	Portuguese Language = "pt"
	English    Language = "en"
)

// DetectorConfig holds the indicator sets for each supported language.
// The indicator patterns and the winner-takes-all rule are empirically tuned,
// not a contract; override them from configuration when real sample data
// says otherwise.
type DetectorConfig struct {
	Primary              Language
	PortugueseIndicators []string
	EnglishIndicators    []string
}

// DefaultDetectorConfig returns the indicator sets the detector ships with.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Primary: Portuguese,
		PortugueseIndicators: []string{
			`\b(vaga|empresa|desenvolvedor|analista|gerente|coordenador|assistente)\b`,
			`\b(experiência|experiências|habilidades|competências)\b`,
			`\b(brasil|brasileiro|português)\b`,
			`\b(anos|mês|meses)\b`,
			`\b(graduação|ensino|superior)\b`,
		},
		EnglishIndicators: []string{
			`\b(job|position|developer|analyst|manager|coordinator|assistant)\b`,
			`\b(experience|experiences|skills|competencies)\b`,
			`\b(usa|united states|english|years|months)\b`,
			`\b(degree|education|bachelor|master)\b`,
		},
	}
}

// Detector scores text against per-language keyword indicator sets.
// It is read-only after construction and safe for concurrent use.
type Detector struct {
	primary Language
	pt      []*regexp.Regexp
	en      []*regexp.Regexp
}

// NewDetector compiles the indicator patterns. Invalid patterns are a
// programming error in the configuration and reported immediately.
func NewDetector(cfg DetectorConfig) (*Detector, error) {
	d := &Detector{primary: cfg.Primary}
	if d.primary == "" {
		d.primary = Portuguese
	}

	for _, pattern := range cfg.PortugueseIndicators {
		re, err := regexp.Compile(`(?i)` + pattern)
		if err != nil {
			return nil, err
		}
		d.pt = append(d.pt, re)
	}
	for _, pattern := range cfg.EnglishIndicators {
		re, err := regexp.Compile(`(?i)` + pattern)
		if err != nil {
			return nil, err
		}
		d.en = append(d.en, re)
	}
	return d, nil
}

// Detect picks the language whose indicator set scores more hits.
// A tie or no signal defaults to the primary language.
func (d *Detector) Detect(text string) Language {
	ptScore := 0
	for _, re := range d.pt {
		if re.MatchString(text) {
			ptScore++
		}
	}
	enScore := 0
	for _, re := range d.en {
		if re.MatchString(text) {
			enScore++
		}
	}

	switch {
	case ptScore > enScore:
		return Portuguese
	case enScore > ptScore:
		return English
	default:
		return d.primary
	}
}

// Primary returns the configured source language.
func (d *Detector) Primary() Language {
	return d.primary
}
