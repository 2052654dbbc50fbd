package language

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/types"
)

var languageNames = map[Language]string{
	Portuguese: "Português (Brasil)",
	English:    "English",
}

// Translator translates resume fields using the lite model tier.
// Translation is best-effort: any failure keeps the original text so a
// rendered document is never blocked on translation.
type Translator struct {
	client llm.Client
	logger *zap.Logger
}

// NewTranslator returns a Translator backed by client.
func NewTranslator(client llm.Client, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{client: client, logger: logger}
}

// Translate returns text translated to target, or the original text when
// translation fails or the input is empty.
func (t *Translator) Translate(ctx context.Context, text string, target Language) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	name, ok := languageNames[target]
	if !ok {
		name = string(target)
	}

	system := "Você é um tradutor profissional especializado em currículos e documentos de carreira. " +
		"Traduza o texto mantendo o tom profissional e os termos técnicos consagrados no idioma de destino. " +
		"Responda APENAS com o texto traduzido, sem explicações."

	resp, err := t.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: fmt.Sprintf("Traduza para %s:\n\n%s", name, text)},
		},
		Tier:        llm.TierLite,
		Temperature: 0.2,
		MaxTokens:   1000,
	})
	if err != nil {
		t.logger.Warn("translation failed, keeping original text",
			zap.String("target", string(target)),
			zap.String("text_preview", logging.TruncateForLog(text, 80)),
			zap.Error(err))
		return text
	}

	translated := strings.TrimSpace(resp.Content)
	if translated == "" {
		return text
	}
	return translated
}

// TranslateResume translates the free-text fields of resume in place.
// Structural fields (names, companies, dates, contact info) are left as-is.
func (t *Translator) TranslateResume(ctx context.Context, resume *types.OptimizedResume, target Language) {
	if resume == nil {
		return
	}

	resume.ProfessionalSummary = t.Translate(ctx, resume.ProfessionalSummary, target)

	for i := range resume.Experiences {
		exp := &resume.Experiences[i]
		exp.Position = t.Translate(ctx, exp.Position, target)
		exp.Description = t.Translate(ctx, exp.Description, target)
		for j, achievement := range exp.Achievements {
			exp.Achievements[j] = t.Translate(ctx, achievement, target)
		}
	}

	for i := range resume.Education {
		edu := &resume.Education[i]
		edu.Degree = t.Translate(ctx, edu.Degree, target)
		edu.Field = t.Translate(ctx, edu.Field, target)
	}
}
