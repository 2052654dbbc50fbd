package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Report headings per mode
const (
	standardHeader = "## Currículo Otimizado para a Vaga"
	pivotHeader    = "## Currículo Adaptado para Transição de Carreira"
	creativeHeader = "## Currículo Construído do Zero"
)

// FormatOptimizationReport composes the user-facing summary for the standard
// and pivot modes.
func FormatOptimizationReport(opt *types.OptimizationResult, pdfURL string, compat *types.CompatibilityVerdict) string {
	header := standardHeader
	pivotInfo := ""

	if compat.RequiresCareerPivot {
		header = pivotHeader
		skillsText := "Diversas"
		if len(compat.TransferableSkills) > 0 {
			skillsText = strings.Join(compat.TransferableSkills, ", ")
		}
		pivotInfo = fmt.Sprintf(`
### Transição de Carreira Aplicada
- **De:** %s
- **Para:** %s
- **Habilidades Destacadas:** %s

`, compat.CandidateArea, compat.JobArea, skillsText)
	}

	text := fmt.Sprintf(`%s

**Score ATS estimado: %d/100**
%s
### Melhorias Realizadas
%s

### Keywords da Vaga Incorporadas
%s

### Resumo Profissional Otimizado
%s
`,
		header,
		opt.ATSScore,
		pivotInfo,
		numberedList(opt.Improvements),
		strings.Join(opt.KeywordsMatched, ", "),
		opt.OptimizedResume.ProfessionalSummary,
	)

	return text + downloadLink(pdfURL, "Baixar Currículo Otimizado (PDF)")
}

// FormatCreativeReport composes the user-facing summary for creative mode.
func FormatCreativeReport(result *types.CreativeResult, pdfURL string) string {
	text := fmt.Sprintf(`%s

**Score ATS estimado: %d/100**

### Modo Criativo Ativado
Detectamos que você tem pouca ou nenhuma experiência formal.
Transformamos suas atividades em experiências profissionais!

### O que foi transformado
%s

### Resumo Profissional
%s
`,
		creativeHeader,
		result.ATSScore,
		numberedList(result.Improvements),
		result.OptimizedResume.ProfessionalSummary,
	)

	if len(result.Warnings) > 0 {
		text += "\n### Avisos Importantes\n" + bulletList(result.Warnings) + "\n"
	}

	if len(result.TipsForInterview) > 0 {
		text += "\n### Dicas para a Entrevista\n" + numberedList(result.TipsForInterview) + "\n"
	}

	return text + downloadLink(pdfURL, "Baixar Currículo (PDF)")
}

func numberedList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func downloadLink(pdfURL, label string) string {
	if pdfURL == "" {
		return ""
	}
	return fmt.Sprintf("\n---\n\n**[%s](%s)**\n", label, pdfURL)
}
