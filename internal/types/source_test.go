package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceResumeFormatText(t *testing.T) {
	resume := &SourceResume{
		CandidateName:       "João Silva",
		ProfessionalSummary: "Desenvolvedor backend",
		Experiences: []SourceExperience{
			{
				Company:     "Acme",
				Position:    "Desenvolvedor",
				Description: "APIs em Go",
				StartDate:   "2020-01",
				Current:     true,
			},
			{
				Company:     "Beta",
				Position:    "Estagiário",
				Description: "Suporte",
				StartDate:   "2018-06",
				EndDate:     "2019-12",
			},
		},
		Skills: []string{"Go", "PostgreSQL"},
	}

	text := resume.FormatText()

	assert.Contains(t, text, "Nome: João Silva")
	assert.Contains(t, text, "Resumo: Desenvolvedor backend")
	assert.Contains(t, text, "### Experiências")
	assert.Contains(t, text, "- Desenvolvedor @ Acme (2020-01 - Atual)")
	assert.Contains(t, text, "- Estagiário @ Beta (2018-06 - 2019-12)")
	assert.Contains(t, text, "### Skills\nGo, PostgreSQL")
}

func TestSourceResumeFormatTextDefaults(t *testing.T) {
	resume := &SourceResume{
		CandidateName: "Maria",
		Experiences: []SourceExperience{
			{Company: "Acme", Position: "Analista", StartDate: "2021-03"},
		},
	}

	text := resume.FormatText()

	assert.Contains(t, text, "Resumo: N/A")
	assert.Contains(t, text, "(2021-03 - N/A)")
}
