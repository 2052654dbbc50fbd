package observability

import (
	"bytes"
	"testing"

	"github.com/jonathan/resume-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintVerdict(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	verdict := &types.CompatibilityVerdict{
		Compatible:          true,
		CompatibilityScore:  72,
		CandidateArea:       "Engenharia de Software",
		JobArea:             "Gestão de Projetos",
		RequiresCareerPivot: true,
		PivotStrategy:       "Destacar experiência de liderança técnica",
		TransferableSkills:  []string{"Liderança", "Comunicação"},
		Reason:              "Áreas distintas com sobreposição de gestão",
	}

	p.PrintVerdict(verdict)
	output := buf.String()

	assert.Contains(t, output, "ANÁLISE DE COMPATIBILIDADE")
	assert.Contains(t, output, "Engenharia de Software")
	assert.Contains(t, output, "72/100")
	assert.Contains(t, output, "Liderança")
}

func TestPrintVerdictNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintVerdict(nil)
	assert.Empty(t, buf.String())
}

func TestPrintOptimization(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.OptimizationResult{
		OptimizedResume: types.OptimizedResume{CandidateName: "João Silva"},
		Improvements:    []string{"Resumo reescrito", "Keywords adicionadas"},
		KeywordsMatched: []string{"Go", "Docker"},
		ATSScore:        88,
	}

	p.PrintOptimization(result)
	output := buf.String()

	assert.Contains(t, output, "CURRÍCULO OTIMIZADO")
	assert.Contains(t, output, "João Silva")
	assert.Contains(t, output, "88/100")
	assert.Contains(t, output, "Resumo reescrito")
	assert.Contains(t, output, "Go, Docker")
}

func TestPrintCreative(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.CreativeResult{
		OptimizedResume:  types.CreativeResume{CandidateName: "Ana Souza"},
		Improvements:     []string{"Atividades informais transformadas"},
		Warnings:         []string{"Conteúdo parcialmente baseado em atividades informais"},
		TipsForInterview: []string{"Explique o contexto voluntário"},
		ATSScore:         65,
	}

	p.PrintCreative(result)
	output := buf.String()

	assert.Contains(t, output, "CURRÍCULO CRIATIVO")
	assert.Contains(t, output, "Ana Souza")
	assert.Contains(t, output, "Avisos:")
	assert.Contains(t, output, "Dicas de Entrevista:")
}

func TestPrintListTruncation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.OptimizationResult{
		OptimizedResume: types.OptimizedResume{CandidateName: "X"},
		Improvements:    []string{"a", "b", "c", "d", "e", "f", "g"},
	}

	p.PrintOptimization(result)
	assert.Contains(t, buf.String(), "... e mais 2")
}
