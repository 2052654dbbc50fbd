// Package pipeline orchestrates the resume optimization flow: compatibility
// classification, the standard/pivot or creative branch, document rendering
// and report composition.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/compat"
	"github.com/jonathan/resume-optimizer/internal/creative"
	"github.com/jonathan/resume-optimizer/internal/language"
	"github.com/jonathan/resume-optimizer/internal/observability"
	"github.com/jonathan/resume-optimizer/internal/optimization"
	"github.com/jonathan/resume-optimizer/internal/rendering"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// State tracks pipeline progress for logging and diagnostics.
type State string

// Pipeline states
const (
	StateStart      State = "START"
	StateClassified State = "CLASSIFIED"
	StateStandard   State = "STANDARD"
	StateCreative   State = "CREATIVE"
	StateRendered   State = "RENDERED"
	StateDone       State = "DONE"
	StateFailed     State = "FAILED"
)

// failureMessage is the generic user-facing content of a failed run.
const failureMessage = "Ocorreu um erro ao otimizar o currículo. Por favor, tente novamente."

// Request carries the inputs for one pipeline run.
type Request struct {
	ResumeText     string
	JobText        string
	Source         *types.SourceResume
	TargetLanguage language.Language
}

// Pipeline wires the stages together. Construct once; safe for concurrent
// runs since all stages are read-only after construction.
type Pipeline struct {
	classifier *compat.Classifier
	optimizer  *optimization.Optimizer
	builder    *creative.Builder
	renderer   *rendering.Stage
	printer    *observability.Printer
	logger     *zap.Logger
}

// New creates a pipeline. printer may be nil to disable verbose output.
func New(
	classifier *compat.Classifier,
	optimizer *optimization.Optimizer,
	builder *creative.Builder,
	renderer *rendering.Stage,
	printer *observability.Printer,
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		classifier: classifier,
		optimizer:  optimizer,
		builder:    builder,
		renderer:   renderer,
		printer:    printer,
		logger:     logger,
	}
}

// Run executes the full pipeline. It never returns an error: every failure
// is converted into an unsuccessful PipelineResult with a generic message,
// preserving the compatibility verdict when one was computed.
func (p *Pipeline) Run(ctx context.Context, req Request) *types.PipelineResult {
	// Each run gets a correlated logger; p itself is never mutated.
	run := *p
	run.logger = p.logger.With(zap.String("run_id", uuid.NewString()))
	return run.execute(ctx, req)
}

func (p *Pipeline) execute(ctx context.Context, req Request) *types.PipelineResult {
	state := StateStart
	p.logger.Info("pipeline run started", zap.String("state", string(state)))

	if req.ResumeText == "" && req.Source != nil {
		req.ResumeText = req.Source.FormatText()
	}

	verdict, err := p.classifier.Run(ctx, req.ResumeText, req.JobText)
	if err != nil {
		return p.fail(err, state, nil)
	}
	state = StateClassified
	p.logVerdict(verdict)
	if p.printer != nil {
		p.printer.PrintVerdict(verdict)
	}

	if verdict.NeedsCreativeMode {
		return p.runCreative(ctx, req, verdict)
	}
	return p.runStandard(ctx, req, verdict)
}

func (p *Pipeline) runStandard(ctx context.Context, req Request, verdict *types.CompatibilityVerdict) *types.PipelineResult {
	state := StateStandard

	optReq := optimization.Request{
		ResumeText: req.ResumeText,
		JobText:    req.JobText,
		Source:     req.Source,
	}
	mode := types.ModeStandard
	if verdict.RequiresCareerPivot {
		mode = types.ModePivot
		optReq.PivotStrategy = verdict.PivotStrategy
		optReq.TransferableSkills = verdict.TransferableSkills
		p.logger.Info("career pivot detected",
			zap.String("from", verdict.CandidateArea),
			zap.String("to", verdict.JobArea),
			zap.String("strategy", verdict.PivotStrategy))
	}

	result, err := p.optimizer.Run(ctx, optReq)
	if err != nil {
		return p.fail(err, state, verdict)
	}
	if p.printer != nil {
		p.printer.PrintOptimization(result)
	}

	pdfURL := p.render(ctx, &result.OptimizedResume, req)
	state = StateDone
	p.logger.Info("pipeline run finished",
		zap.String("state", string(state)),
		zap.String("mode", string(mode)))

	return &types.PipelineResult{
		Success:       true,
		Content:       FormatOptimizationReport(result, pdfURL, verdict),
		PDFURL:        pdfURL,
		Compatibility: verdict,
		Optimization:  result,
		Mode:          mode,
	}
}

func (p *Pipeline) runCreative(ctx context.Context, req Request, verdict *types.CompatibilityVerdict) *types.PipelineResult {
	state := StateCreative
	p.logger.Info("creative mode activated, building resume from scratch",
		zap.Bool("allow_fictional", verdict.AllowFictional))

	result, err := p.builder.Run(ctx, req.ResumeText, req.JobText, verdict.AllowFictional)
	if err != nil {
		return p.fail(err, state, verdict)
	}
	if p.printer != nil {
		p.printer.PrintCreative(result)
	}

	pdfURL := p.render(ctx, result.OptimizedResume.ToOptimized(), req)
	state = StateDone
	p.logger.Info("pipeline run finished",
		zap.String("state", string(state)),
		zap.String("mode", string(types.ModeCreative)))

	return &types.PipelineResult{
		Success:       true,
		Content:       FormatCreativeReport(result, pdfURL),
		PDFURL:        pdfURL,
		Compatibility: verdict,
		Creative:      result,
		Mode:          types.ModeCreative,
	}
}

// render is a no-op returning "" when no rendering stage is configured.
func (p *Pipeline) render(ctx context.Context, resume *types.OptimizedResume, req Request) string {
	if p.renderer == nil {
		return ""
	}
	return p.renderer.Run(ctx, resume, req.JobText, req.TargetLanguage)
}

// fail converts a stage error into the generic unsuccessful result,
// preserving an already-computed verdict for diagnostics.
func (p *Pipeline) fail(err error, state State, verdict *types.CompatibilityVerdict) *types.PipelineResult {
	p.logger.Error("pipeline failed",
		zap.String("state", string(state)),
		zap.Error(err))
	return &types.PipelineResult{
		Success:       false,
		Content:       failureMessage,
		Compatibility: verdict,
	}
}

func (p *Pipeline) logVerdict(v *types.CompatibilityVerdict) {
	fields := []zap.Field{
		zap.String("candidate_area", v.CandidateArea),
		zap.String("job_area", v.JobArea),
		zap.Int("score", v.CompatibilityScore),
		zap.Bool("requires_career_pivot", v.RequiresCareerPivot),
		zap.Bool("needs_creative_mode", v.NeedsCreativeMode),
		zap.String("reason", v.Reason),
	}
	if v.RequiresCareerPivot {
		fields = append(fields,
			zap.String("pivot_strategy", v.PivotStrategy),
			zap.Strings("transferable_skills", v.TransferableSkills))
	}
	p.logger.Info(fmt.Sprintf("compatibility analysis complete, score %d/100", v.CompatibilityScore), fields...)
}
