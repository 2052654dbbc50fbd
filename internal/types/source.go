package types

import (
	"fmt"
	"strings"
)

// SourceExperience is one work experience from the candidate's original
// resume. These are the records of truth for company names, dates and the
// current flag during optimization.
type SourceExperience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Current     bool   `json:"current"`
}

// SourceResume is an optional structured view of the candidate's original
// resume. When supplied, the optimization stage pairs optimized experiences
// against it by index instead of trusting the model's copies.
type SourceResume struct {
	CandidateName       string             `json:"candidate_name"`
	Email               string             `json:"email,omitempty"`
	Phone               string             `json:"phone,omitempty"`
	LinkedIn            string             `json:"linkedin,omitempty"`
	ProfessionalSummary string             `json:"professional_summary,omitempty"`
	Experiences         []SourceExperience `json:"experiences"`
	Skills              []string           `json:"skills,omitempty"`
}

// FormatText renders the structured resume as the plain-text block embedded
// in stage prompts when no raw resume text was supplied.
func (r *SourceResume) FormatText() string {
	var b strings.Builder
	b.WriteString("Nome: " + r.CandidateName + "\n")
	summary := r.ProfessionalSummary
	if summary == "" {
		summary = "N/A"
	}
	b.WriteString("Resumo: " + summary + "\n\n")

	b.WriteString("### Experiências\n")
	for _, exp := range r.Experiences {
		end := exp.EndDate
		if exp.Current {
			end = "Atual"
		} else if end == "" {
			end = "N/A"
		}
		fmt.Fprintf(&b, "- %s @ %s (%s - %s)\n  %s\n", exp.Position, exp.Company, exp.StartDate, end, exp.Description)
	}

	b.WriteString("\n### Skills\n")
	b.WriteString(strings.Join(r.Skills, ", "))
	return b.String()
}
