// Package optimization implements the standard resume optimization stage,
// including career-pivot rewriting and retrieval-augmented prompt enrichment.
package optimization

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/prompts"
	"github.com/jonathan/resume-optimizer/internal/retrieval"
	"github.com/jonathan/resume-optimizer/internal/schemas"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Request carries the inputs for one optimization run. PivotStrategy and
// TransferableSkills come from the compatibility verdict when a career pivot
// is required. Source, when present, is the record of truth for companies
// and dates.
type Request struct {
	ResumeText         string
	JobText            string
	PivotStrategy      string
	TransferableSkills []string
	Source             *types.SourceResume
}

// Options tunes the retrieval enrichment.
type Options struct {
	Collection  string
	RAGLimit    int
	RAGMinScore float64
}

// DefaultOptions mirrors the knowledge-store defaults.
func DefaultOptions() Options {
	return Options{
		Collection:  "mercado_tech",
		RAGLimit:    3,
		RAGMinScore: 0.7,
	}
}

// Optimizer runs the standard optimization stage. retriever may be nil, in
// which case prompts are built from the job text alone.
type Optimizer struct {
	client    llm.Client
	retriever retrieval.Retriever
	logger    *zap.Logger
	opts      Options
}

// NewOptimizer creates an optimizer. Pass a nil retriever to disable
// knowledge enrichment.
func NewOptimizer(client llm.Client, retriever retrieval.Retriever, logger *zap.Logger, opts Options) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RAGLimit <= 0 {
		opts.RAGLimit = DefaultOptions().RAGLimit
	}
	return &Optimizer{client: client, retriever: retriever, logger: logger, opts: opts}
}

// Run optimizes the resume against the job description. A response that
// cannot be parsed is a terminal error for this stage: unlike the
// classifier, optimized content cannot be safely guessed.
func (o *Optimizer) Run(ctx context.Context, req Request) (*types.OptimizationResult, error) {
	tmpl, err := prompts.Load("optimization")
	if err != nil {
		return nil, fmt.Errorf("failed to load optimization prompt: %w", err)
	}

	jobText := o.enrichJobText(ctx, req.JobText)

	user := tmpl.FormatUser(map[string]string{
		"PivotInstructions": PivotDirectives(req.PivotStrategy, req.TransferableSkills),
		"JobDescription":    jobText,
		"ResumeContent":     req.ResumeText,
	})

	resp, err := o.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: tmpl.System},
			{Role: llm.RoleUser, Content: user},
		},
		Tier:        tmpl.Config.Tier,
		Temperature: tmpl.Config.Temperature,
		MaxTokens:   tmpl.Config.MaxTokens,
		JSONOutput:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("optimization failed: %w", err)
	}

	var result types.OptimizationResult
	if err := schemas.DecodeAndValidate(schemas.OptimizationResult, resp.Content, &result); err != nil {
		return nil, err
	}

	applySourceFacts(&result.OptimizedResume, req.Source)

	o.logger.Debug("ats scoring",
		zap.Int("keyword_pre_score", PreScore(req.ResumeText, req.JobText)),
		zap.Int("model_estimate", result.ATSScore))

	return &result, nil
}

// enrichJobText splices top knowledge snippets into the job text. Retrieval
// failure degrades to the unenriched text.
func (o *Optimizer) enrichJobText(ctx context.Context, jobText string) string {
	if o.retriever == nil {
		return jobText
	}

	results, err := o.retriever.Search(ctx, jobText, retrieval.SearchOptions{
		Collection: o.opts.Collection,
		Limit:      o.opts.RAGLimit,
		MinScore:   o.opts.RAGMinScore,
	})
	if err != nil {
		o.logger.Warn("knowledge enrichment failed, using plain job text", zap.Error(err))
		return jobText
	}
	if len(results) == 0 {
		return jobText
	}

	snippets := make([]string, len(results))
	for i, r := range results {
		snippets[i] = fmt.Sprintf("[Conhecimento de Mercado %d]\n%s", i+1, r.Content)
	}

	return jobText + "\n\n=== CONHECIMENTO DE MERCADO ===\n" + strings.Join(snippets, "\n\n")
}

// PivotDirectives builds the career-pivot rewriting block injected into the
// optimization prompt. It is empty when no pivot strategy is set.
func PivotDirectives(strategy string, transferableSkills []string) string {
	if strategy == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("## TRANSIÇÃO DE CARREIRA DETECTADA\n\n")
	b.WriteString("Este é um caso de TRANSIÇÃO DE CARREIRA. O candidato vem de uma área COMPLETAMENTE DIFERENTE.\n\n")
	b.WriteString("Estratégia: " + strategy + "\n\n")
	b.WriteString("Habilidades transferíveis a destacar: " + strings.Join(transferableSkills, ", ") + "\n\n")
	b.WriteString(`AÇÕES OBRIGATÓRIAS:

1. RESUMO PROFISSIONAL:
   - NÃO mantenha NADA da área antiga no resumo
   - REESCREVA COMPLETAMENTE focando 100% na NOVA área
   - Use keywords da NOVA área e destaque as habilidades transferíveis

2. TÍTULOS DE CARGO:
   - REFORMULE todos os títulos para o vocabulário da nova área

3. DESCRIÇÕES E CONQUISTAS:
   - REESCREVA com a perspectiva da nova área, priorizando soft skills

4. SKILLS:
   - REMOVA skills técnicas da área antiga
   - ADICIONE skills relevantes para a nova área

CRÍTICO: o professional_summary DEVE ser TOTALMENTE NOVO.

`)
	return b.String()
}

// applySourceFacts enforces the pairing invariant: optimized experiences are
// matched to the source resume by index, and company, dates and the current
// flag always come from the source. Beyond the source length, a placeholder
// company is used.
func applySourceFacts(resume *types.OptimizedResume, source *types.SourceResume) {
	if source == nil {
		return
	}

	for i := range resume.Experiences {
		exp := &resume.Experiences[i]
		if i < len(source.Experiences) {
			orig := source.Experiences[i]
			exp.Company = orig.Company
			exp.OriginalPosition = orig.Position
			exp.StartDate = orig.StartDate
			exp.EndDate = orig.EndDate
			exp.Current = orig.Current
		} else {
			exp.Company = "Empresa"
		}
	}
}
