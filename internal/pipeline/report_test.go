package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-optimizer/internal/types"
)

func TestFormatOptimizationReportPivotWithoutSkills(t *testing.T) {
	opt := &types.OptimizationResult{
		OptimizedResume: types.OptimizedResume{ProfessionalSummary: "Resumo"},
		Improvements:    []string{"melhoria"},
		ATSScore:        77,
	}
	compat := &types.CompatibilityVerdict{
		RequiresCareerPivot: true,
		CandidateArea:       "Vendas",
		JobArea:             "Marketing",
	}

	report := FormatOptimizationReport(opt, "", compat)
	assert.Contains(t, report, "**Habilidades Destacadas:** Diversas")
	assert.NotContains(t, report, "Baixar Currículo")
}

func TestFormatCreativeReportMinimal(t *testing.T) {
	result := &types.CreativeResult{
		OptimizedResume: types.CreativeResume{ProfessionalSummary: "Resumo criativo"},
		Improvements:    []string{"transformação"},
		ATSScore:        55,
	}

	report := FormatCreativeReport(result, "/storage/x.pdf")
	assert.Contains(t, report, "## Currículo Construído do Zero")
	assert.NotContains(t, report, "### Avisos Importantes")
	assert.NotContains(t, report, "### Dicas para a Entrevista")
	assert.Contains(t, report, "**[Baixar Currículo (PDF)](/storage/x.pdf)**")
}
