package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/compat"
	"github.com/jonathan/resume-optimizer/internal/creative"
	"github.com/jonathan/resume-optimizer/internal/language"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/optimization"
	"github.com/jonathan/resume-optimizer/internal/rendering"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// queueClient returns scripted responses in call order. The pipeline is
// strictly sequential, so the first call is always the classifier and the
// second the chosen branch.
type queueClient struct {
	responses []string
	errs      []error
	requests  []llm.Request
}

func (q *queueClient) Complete(ctx context.Context, req llm.Request) (*llm.Completion, error) {
	i := len(q.requests)
	q.requests = append(q.requests, req)
	if i < len(q.errs) && q.errs[i] != nil {
		return nil, q.errs[i]
	}
	if i >= len(q.responses) {
		return nil, errors.New("no scripted response")
	}
	return &llm.Completion{Content: q.responses[i]}, nil
}

func (q *queueClient) GetModel(tier llm.ModelTier) string { return "scripted" }

func (q *queueClient) Close() error { return nil }

type stubRenderer struct {
	err   error
	calls int
}

func (s *stubRenderer) Render(ctx context.Context, req rendering.RenderRequest) (*rendering.RenderResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &rendering.RenderResult{Filename: "curriculo_teste.pdf"}, nil
}

func verdictJSON(creativeMode, pivot bool) string {
	pivotStrategy := "null"
	skills := "[]"
	if pivot {
		pivotStrategy = `"Reposicionar como gestor de projetos"`
		skills = `["Liderança", "Comunicação"]`
	}
	return `{
		"compatible": true,
		"compatibility_score": 70,
		"candidate_area": "Engenharia de Software",
		"job_area": "Gestão de Projetos",
		"has_experience": true,
		"needs_creative_mode": ` + boolStr(creativeMode) + `,
		"allow_fictional": ` + boolStr(creativeMode) + `,
		"requires_career_pivot": ` + boolStr(pivot) + `,
		"pivot_strategy": ` + pivotStrategy + `,
		"transferable_skills": ` + skills + `,
		"informal_activities": [],
		"reason": "Análise concluída"
	}`
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

const optimizationJSON = `{
	"optimized_resume": {
		"candidate_name": "João Silva",
		"email": "joao@example.com",
		"professional_summary": "Resumo otimizado para a vaga",
		"experiences": [],
		"skills": ["Go"]
	},
	"improvements": ["Resumo reescrito", "Keywords incorporadas"],
	"keywords_matched": ["Go", "PostgreSQL"],
	"ats_score": 85
}`

const creativeJSON = `{
	"optimized_resume": {
		"candidate_name": "Ana Souza",
		"email": "ana@example.com",
		"professional_summary": "Perfil construído a partir de atividades informais",
		"experiences": [],
		"skills": ["Organização"],
		"courses": []
	},
	"improvements": ["Atividades transformadas em experiências"],
	"warnings": ["Conteúdo baseado em atividades informais"],
	"tips_for_interview": ["Explique o contexto de cada projeto"],
	"ats_score": 60
}`

func newPipeline(t *testing.T, client llm.Client, renderer rendering.Renderer) *Pipeline {
	t.Helper()

	logger := zap.NewNop()
	detector, err := language.NewDetector(language.DefaultDetectorConfig())
	require.NoError(t, err)

	var stage *rendering.Stage
	if renderer != nil {
		stage = rendering.NewStage(renderer, detector, nil, logger, "default")
	}

	return New(
		compat.NewClassifier(client, logger),
		optimization.NewOptimizer(client, nil, logger, optimization.DefaultOptions()),
		creative.NewBuilder(client, logger),
		stage,
		nil,
		logger,
	)
}

func TestPipelineStandardFlow(t *testing.T) {
	client := &queueClient{responses: []string{verdictJSON(false, false), optimizationJSON}}
	p := newPipeline(t, client, &stubRenderer{})

	result := p.Run(context.Background(), Request{
		ResumeText: "João, 5 anos como engenheiro backend",
		JobText:    "Vaga para engenheiro backend sênior na empresa",
	})

	require.True(t, result.Success)
	assert.Equal(t, types.ModeStandard, result.Mode)
	assert.Equal(t, "/storage/curriculo_teste.pdf", result.PDFURL)
	require.NotNil(t, result.Optimization)
	assert.Nil(t, result.Creative)
	assert.Contains(t, result.Content, "## Currículo Otimizado para a Vaga")
	assert.Contains(t, result.Content, "Score ATS estimado: 85/100")
	assert.Contains(t, result.Content, "1. Resumo reescrito")
	assert.Contains(t, result.Content, "Go, PostgreSQL")
	assert.Contains(t, result.Content, "Baixar Currículo Otimizado (PDF)")
	assert.Contains(t, result.Content, "/storage/curriculo_teste.pdf")
}

func TestPipelinePivotFlow(t *testing.T) {
	client := &queueClient{responses: []string{verdictJSON(false, true), optimizationJSON}}
	p := newPipeline(t, client, &stubRenderer{})

	result := p.Run(context.Background(), Request{ResumeText: "cv", JobText: "vaga"})

	require.True(t, result.Success)
	assert.Equal(t, types.ModePivot, result.Mode)
	assert.Contains(t, result.Content, "## Currículo Adaptado para Transição de Carreira")
	assert.Contains(t, result.Content, "**De:** Engenharia de Software")
	assert.Contains(t, result.Content, "**Para:** Gestão de Projetos")
	assert.Contains(t, result.Content, "Liderança, Comunicação")

	// The pivot strategy must reach the optimizer prompt.
	require.Len(t, client.requests, 2)
	assert.Contains(t, client.requests[1].Messages[1].Content, "Reposicionar como gestor de projetos")
}

func TestPipelineCreativeFlow(t *testing.T) {
	client := &queueClient{responses: []string{verdictJSON(true, false), creativeJSON}}
	p := newPipeline(t, client, &stubRenderer{})

	result := p.Run(context.Background(), Request{ResumeText: "atividades informais", JobText: "vaga"})

	require.True(t, result.Success)
	assert.Equal(t, types.ModeCreative, result.Mode)
	require.NotNil(t, result.Creative)
	assert.Nil(t, result.Optimization)
	assert.Contains(t, result.Content, "## Currículo Construído do Zero")
	assert.Contains(t, result.Content, "### Avisos Importantes")
	assert.Contains(t, result.Content, "- Conteúdo baseado em atividades informais")
	assert.Contains(t, result.Content, "### Dicas para a Entrevista")
	assert.Contains(t, result.Content, "1. Explique o contexto de cada projeto")

	// allow_fictional from the verdict reaches the builder prompt.
	assert.Contains(t, client.requests[1].Messages[1].Content, "MODO CRIATIVO ATIVADO")
}

func TestPipelineCreativeTakesPriorityOverPivot(t *testing.T) {
	client := &queueClient{responses: []string{verdictJSON(true, true), creativeJSON}}
	p := newPipeline(t, client, &stubRenderer{})

	result := p.Run(context.Background(), Request{ResumeText: "cv", JobText: "vaga"})
	require.True(t, result.Success)
	assert.Equal(t, types.ModeCreative, result.Mode)
}

func TestPipelineOptimizationParseFailure(t *testing.T) {
	client := &queueClient{responses: []string{verdictJSON(false, false), "resposta inválida"}}
	p := newPipeline(t, client, &stubRenderer{})

	result := p.Run(context.Background(), Request{ResumeText: "cv", JobText: "vaga"})

	assert.False(t, result.Success)
	assert.Equal(t, failureMessage, result.Content)
	// The verdict computed before the failure is preserved.
	require.NotNil(t, result.Compatibility)
	assert.Equal(t, 70, result.Compatibility.CompatibilityScore)
	assert.Empty(t, result.PDFURL)
}

func TestPipelineClassifierTransportFailure(t *testing.T) {
	client := &queueClient{errs: []error{errors.New("network down")}}
	p := newPipeline(t, client, &stubRenderer{})

	result := p.Run(context.Background(), Request{ResumeText: "cv", JobText: "vaga"})

	assert.False(t, result.Success)
	assert.Equal(t, failureMessage, result.Content)
	assert.Nil(t, result.Compatibility)
}

func TestPipelineClassifierGarbageProceedsWithNeutralVerdict(t *testing.T) {
	client := &queueClient{responses: []string{"sem json aqui", optimizationJSON}}
	p := newPipeline(t, client, &stubRenderer{})

	result := p.Run(context.Background(), Request{ResumeText: "cv", JobText: "vaga"})

	require.True(t, result.Success)
	assert.Equal(t, types.ModeStandard, result.Mode)
	require.NotNil(t, result.Compatibility)
	assert.Equal(t, 50, result.Compatibility.CompatibilityScore)
	assert.Equal(t, "Não identificado", result.Compatibility.CandidateArea)
}

func TestPipelineWithoutRenderer(t *testing.T) {
	client := &queueClient{responses: []string{verdictJSON(false, false), optimizationJSON}}
	p := newPipeline(t, client, nil)

	result := p.Run(context.Background(), Request{ResumeText: "cv", JobText: "vaga"})

	require.True(t, result.Success)
	assert.Empty(t, result.PDFURL)
	assert.NotContains(t, result.Content, "Baixar Currículo")
}

func TestPipelineFormatsStructuredSource(t *testing.T) {
	client := &queueClient{responses: []string{verdictJSON(false, false), optimizationJSON}}
	p := newPipeline(t, client, nil)

	result := p.Run(context.Background(), Request{
		JobText: "vaga para analista",
		Source: &types.SourceResume{
			CandidateName: "João Silva",
			Experiences: []types.SourceExperience{
				{Company: "Acme", Position: "Desenvolvedor", StartDate: "2020-01", Current: true},
			},
			Skills: []string{"Go"},
		},
	})

	require.True(t, result.Success)
	require.Len(t, client.requests, 2)
	classifierPrompt := client.requests[0].Messages[1].Content
	assert.Contains(t, classifierPrompt, "Nome: João Silva")
	assert.Contains(t, classifierPrompt, "- Desenvolvedor @ Acme (2020-01 - Atual)")
}

func TestPipelineRenderFailureStillSucceeds(t *testing.T) {
	client := &queueClient{responses: []string{verdictJSON(false, false), optimizationJSON}}
	renderer := &stubRenderer{err: &rendering.RenderError{Message: "browser missing"}}
	p := newPipeline(t, client, renderer)

	result := p.Run(context.Background(), Request{ResumeText: "cv", JobText: "vaga"})

	require.True(t, result.Success)
	assert.Empty(t, result.PDFURL)
	assert.Equal(t, 1, renderer.calls)
	assert.Contains(t, result.Content, "## Currículo Otimizado para a Vaga")
}
