package compat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/llm"
)

type stubClient struct {
	response string
	err      error
	lastReq  llm.Request
}

func (s *stubClient) Complete(ctx context.Context, req llm.Request) (*llm.Completion, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Completion{Content: s.response}, nil
}

func (s *stubClient) GetModel(tier llm.ModelTier) string { return "stub" }

func (s *stubClient) Close() error { return nil }

const compatibleResponse = `{
	"compatible": true,
	"compatibility_score": 85,
	"candidate_area": "Desenvolvimento Backend",
	"job_area": "Desenvolvimento Backend",
	"has_experience": true,
	"needs_creative_mode": false,
	"allow_fictional": false,
	"requires_career_pivot": false,
	"pivot_strategy": null,
	"transferable_skills": [],
	"informal_activities": [],
	"reason": "Forte alinhamento de experiência e stack."
}`

func TestClassifierRun(t *testing.T) {
	client := &stubClient{response: compatibleResponse}
	classifier := NewClassifier(client, zap.NewNop())

	verdict, err := classifier.Run(context.Background(),
		"João, 5 anos como engenheiro backend", "Vaga de engenheiro backend sênior")
	require.NoError(t, err)

	assert.True(t, verdict.Compatible)
	assert.Equal(t, 85, verdict.CompatibilityScore)
	assert.Equal(t, "Desenvolvimento Backend", verdict.CandidateArea)
	assert.False(t, verdict.NeedsCreativeMode)
	assert.False(t, verdict.RequiresCareerPivot)
	assert.Equal(t, "", verdict.PivotStrategy)
}

func TestClassifierRequestShape(t *testing.T) {
	client := &stubClient{response: compatibleResponse}
	classifier := NewClassifier(client, zap.NewNop())

	_, err := classifier.Run(context.Background(), "currículo aqui", "vaga aqui")
	require.NoError(t, err)

	req := client.lastReq
	require.Len(t, req.Messages, 2)
	assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, llm.RoleUser, req.Messages[1].Role)
	assert.Contains(t, req.Messages[1].Content, "currículo aqui")
	assert.Contains(t, req.Messages[1].Content, "vaga aqui")
	assert.True(t, req.JSONOutput)
}

func TestClassifierParseFailureReturnsNeutralVerdict(t *testing.T) {
	client := &stubClient{response: "desculpe, não consegui analisar"}
	classifier := NewClassifier(client, zap.NewNop())

	verdict, err := classifier.Run(context.Background(), "currículo", "vaga")
	require.NoError(t, err)

	assert.True(t, verdict.Compatible)
	assert.Equal(t, 50, verdict.CompatibilityScore)
	assert.Equal(t, "Não identificado", verdict.CandidateArea)
	assert.Equal(t, "Não identificado", verdict.JobArea)
	assert.False(t, verdict.NeedsCreativeMode)
	assert.False(t, verdict.RequiresCareerPivot)
	assert.NotEmpty(t, verdict.Reason)
	assert.Empty(t, verdict.TransferableSkills)
	assert.Empty(t, verdict.InformalActivities)
}

func TestClassifierSchemaViolationReturnsNeutralVerdict(t *testing.T) {
	// Valid JSON, but the score is out of range.
	client := &stubClient{response: `{
		"compatible": true, "compatibility_score": 300,
		"candidate_area": "TI", "job_area": "TI", "reason": "x"
	}`}
	classifier := NewClassifier(client, zap.NewNop())

	verdict, err := classifier.Run(context.Background(), "currículo", "vaga")
	require.NoError(t, err)
	assert.Equal(t, 50, verdict.CompatibilityScore)
}

func TestClassifierCompletionErrorPropagates(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	classifier := NewClassifier(client, zap.NewNop())

	_, err := classifier.Run(context.Background(), "currículo", "vaga")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compatibility check failed")
}
