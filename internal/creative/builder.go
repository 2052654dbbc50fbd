// Package creative implements the from-scratch resume builder used when the
// classifier finds insufficient formal experience.
package creative

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/prompts"
	"github.com/jonathan/resume-optimizer/internal/schemas"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// fictionalInstructions is appended to the prompt when the candidate allowed
// invented experiences. Warnings and interview tips become mandatory output.
const fictionalInstructions = `## MODO CRIATIVO ATIVADO
O usuário autorizou a criação de experiências fictícias se necessário.
- Crie experiências PLAUSÍVEIS baseadas nas atividades informais
- Adicione AVISOS explícitos sobre os riscos de alegações inventadas
- Inclua DICAS de como defender cada elemento criado na entrevista
`

// Builder runs the creative construction stage.
type Builder struct {
	client llm.Client
	logger *zap.Logger
}

// NewBuilder creates a builder backed by client.
func NewBuilder(client llm.Client, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{client: client, logger: logger}
}

// Run builds a resume from informal activity descriptions. allowFictional
// permits invented experiences; without it the model must stay on real
// activities. Parse failure is always terminal here: fabricated content is
// never substituted silently.
func (b *Builder) Run(ctx context.Context, candidateInfo, jobText string, allowFictional bool) (*types.CreativeResult, error) {
	tmpl, err := prompts.Load("creative_builder")
	if err != nil {
		return nil, fmt.Errorf("failed to load creative prompt: %w", err)
	}

	special := ""
	if allowFictional {
		special = fictionalInstructions
	}

	user := tmpl.FormatUser(map[string]string{
		"SpecialInstructions": special,
		"ResumeContent":       candidateInfo,
		"JobDescription":      jobText,
	})

	resp, err := b.client.Complete(ctx, llm.Request{
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
		return nil, fmt.Errorf("creative build failed: %w", err)
	}

	var result types.CreativeResult
	if err := schemas.DecodeAndValidate(schemas.CreativeResult, resp.Content, &result); err != nil {
		return nil, err
	}

	if allowFictional && len(result.Warnings) == 0 {
		b.logger.Warn("creative result has fictional content enabled but no warnings")
	}

	return &result, nil
}
