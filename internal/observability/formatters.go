// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintVerdict outputs a human-readable summary of the compatibility verdict.
func (p *Printer) PrintVerdict(verdict *types.CompatibilityVerdict) {
	if verdict == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Área do Candidato:  %s\n", verdict.CandidateArea))
	sb.WriteString(fmt.Sprintf("Área da Vaga:       %s\n", verdict.JobArea))
	sb.WriteString(fmt.Sprintf("Score:              %d/100\n", verdict.CompatibilityScore))
	sb.WriteString(fmt.Sprintf("Compatível:         %s\n", yesNo(verdict.Compatible)))
	sb.WriteString(fmt.Sprintf("Transição:          %s\n", yesNo(verdict.RequiresCareerPivot)))
	sb.WriteString(fmt.Sprintf("Modo Criativo:      %s\n", yesNo(verdict.NeedsCreativeMode)))

	if verdict.PivotStrategy != "" {
		sb.WriteString("\nEstratégia de Transição:\n")
		sb.WriteString("  " + verdict.PivotStrategy + "\n")
	}
	if len(verdict.TransferableSkills) > 0 {
		sb.WriteString("\nHabilidades Transferíveis:\n")
		appendItems(&sb, verdict.TransferableSkills)
	}
	if verdict.Reason != "" {
		sb.WriteString("\nRazão:\n  " + verdict.Reason + "\n")
	}

	p.printBox("ANÁLISE DE COMPATIBILIDADE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptimization outputs a summary of the standard optimization result.
func (p *Printer) PrintOptimization(result *types.OptimizationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Candidato:   %s\n", result.OptimizedResume.CandidateName))
	sb.WriteString(fmt.Sprintf("Score ATS:   %d/100\n", result.ATSScore))
	sb.WriteString(fmt.Sprintf("Experiências: %d\n", len(result.OptimizedResume.Experiences)))

	if len(result.Improvements) > 0 {
		sb.WriteString("\nMelhorias:\n")
		appendItems(&sb, result.Improvements)
	}
	if len(result.KeywordsMatched) > 0 {
		sb.WriteString("\nKeywords:\n  " + strings.Join(result.KeywordsMatched, ", ") + "\n")
	}

	p.printBox("CURRÍCULO OTIMIZADO", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCreative outputs a summary of the creative builder result, including
// its warnings.
func (p *Printer) PrintCreative(result *types.CreativeResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Candidato:   %s\n", result.OptimizedResume.CandidateName))
	sb.WriteString(fmt.Sprintf("Score ATS:   %d/100\n", result.ATSScore))

	if len(result.Improvements) > 0 {
		sb.WriteString("\nTransformações:\n")
		appendItems(&sb, result.Improvements)
	}
	if len(result.Warnings) > 0 {
		sb.WriteString("\nAvisos:\n")
		appendItems(&sb, result.Warnings)
	}
	if len(result.TipsForInterview) > 0 {
		sb.WriteString("\nDicas de Entrevista:\n")
		appendItems(&sb, result.TipsForInterview)
	}

	p.printBox("CURRÍCULO CRIATIVO", strings.TrimSuffix(sb.String(), "\n"))
}

// appendItems writes up to maxItemsToShow bulleted items
func appendItems(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... e mais %d\n", len(items)-maxItemsToShow))
	}
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
