package rendering

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/language"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Stage coordinates language selection, translation and document rendering.
// Every failure inside the stage degrades to "no document": the pipeline
// still returns a textual report when the PDF cannot be produced.
type Stage struct {
	renderer   Renderer
	detector   *language.Detector
	translator *language.Translator
	logger     *zap.Logger
	templateID string
}

// NewStage creates the rendering stage. renderer may be nil, which disables
// document output entirely. detector and translator may be nil to skip
// language handling.
func NewStage(renderer Renderer, detector *language.Detector, translator *language.Translator, logger *zap.Logger, templateID string) *Stage {
	if logger == nil {
		logger = zap.NewNop()
	}
	if templateID == "" {
		templateID = "default"
	}
	return &Stage{
		renderer:   renderer,
		detector:   detector,
		translator: translator,
		logger:     logger,
		templateID: templateID,
	}
}

// Run renders resume to a document and returns its URL, or "" when no
// renderer is configured or rendering fails. An explicit targetLanguage wins;
// otherwise the job description's language decides whether to translate.
func (s *Stage) Run(ctx context.Context, resume *types.OptimizedResume, jobText string, targetLanguage language.Language) string {
	if s.renderer == nil {
		return ""
	}

	lang := s.selectLanguage(jobText, targetLanguage)

	if s.translator != nil && s.detector != nil && lang != s.detector.Primary() {
		// Translate on a copy so callers keep the original text.
		translated := *resume
		translated.Experiences = append([]types.OptimizedExperience(nil), resume.Experiences...)
		for i := range translated.Experiences {
			translated.Experiences[i].Achievements = append([]string(nil), translated.Experiences[i].Achievements...)
		}
		translated.Education = append([]types.EducationEntry(nil), resume.Education...)
		s.translator.TranslateResume(ctx, &translated, lang)
		resume = &translated
	}

	result, err := s.renderer.Render(ctx, RenderRequest{
		Resume:     BuildRenderData(resume),
		TemplateID: s.templateID,
		Language:   lang,
	})
	if err != nil {
		s.logger.Warn("document rendering failed, continuing without PDF", zap.Error(err))
		return ""
	}

	return "/storage/" + result.Filename
}

func (s *Stage) selectLanguage(jobText string, target language.Language) language.Language {
	if target != "" {
		return target
	}
	if jobText != "" && s.detector != nil {
		return s.detector.Detect(jobText)
	}
	if s.detector != nil {
		return s.detector.Primary()
	}
	return language.Portuguese
}
