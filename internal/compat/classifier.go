// Package compat implements the compatibility classification stage: a single
// LLM call that scores candidate/job fit and selects the downstream branch.
package compat

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/prompts"
	"github.com/jonathan/resume-optimizer/internal/schemas"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Classifier runs the compatibility check between a resume and a job.
type Classifier struct {
	client llm.Client
	logger *zap.Logger
}

// NewClassifier creates a classifier backed by client.
func NewClassifier(client llm.Client, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{client: client, logger: logger}
}

// Run classifies resumeText against jobText. A malformed model response
// never fails the stage: it degrades to a neutral verdict so the pipeline
// can proceed. Only transport-level failures are returned as errors.
func (c *Classifier) Run(ctx context.Context, resumeText, jobText string) (*types.CompatibilityVerdict, error) {
	tmpl, err := prompts.Load("compatibility")
	if err != nil {
		return nil, fmt.Errorf("failed to load compatibility prompt: %w", err)
	}

	user := tmpl.FormatUser(map[string]string{
		"ResumeContent":  resumeText,
		"JobDescription": jobText,
	})

	resp, err := c.client.Complete(ctx, llm.Request{
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
		return nil, fmt.Errorf("compatibility check failed: %w", err)
	}

	var verdict types.CompatibilityVerdict
	if err := schemas.DecodeAndValidate(schemas.CompatibilityVerdict, resp.Content, &verdict); err != nil {
		var parseErr *schemas.ParseError
		if errors.As(err, &parseErr) {
			c.logger.Warn("compatibility verdict did not parse, using neutral verdict",
				zap.Error(err),
				zap.String("response_preview", logging.TruncateForLog(resp.Content, 200)))
			return defaultVerdict(), nil
		}
		return nil, err
	}

	c.logger.Debug("compatibility verdict",
		zap.Bool("compatible", verdict.Compatible),
		zap.Int("score", verdict.CompatibilityScore),
		zap.String("candidate_area", verdict.CandidateArea),
		zap.String("job_area", verdict.JobArea),
		zap.Bool("needs_creative_mode", verdict.NeedsCreativeMode),
		zap.Bool("requires_career_pivot", verdict.RequiresCareerPivot),
		zap.String("pivot_strategy", verdict.PivotStrategy),
	)

	return &verdict, nil
}

// defaultVerdict is the neutral result used when the model response cannot
// be parsed. It always lets the pipeline proceed on the standard branch.
func defaultVerdict() *types.CompatibilityVerdict {
	return &types.CompatibilityVerdict{
		Compatible:         true,
		CompatibilityScore: 50,
		CandidateArea:      "Não identificado",
		JobArea:            "Não identificado",
		HasExperience:      true,
		Reason:             "Não foi possível verificar compatibilidade",
	}
}
