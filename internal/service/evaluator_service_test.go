package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excelinterview/internal/config"
	"excelinterview/internal/model"
)

func disabledEvaluator() *EvaluatorService {
	// No API key: every AI path degrades to the documented defaults.
	return NewEvaluatorService(&config.AIConfig{TimeoutMS: 1000})
}

func TestNormalizeFormula(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"=SUM(A1:A10)", "=SUM(A1:A10)"},
		{"sum(a1:a10)", "=SUM(A1:A10)"},
		{"  = Sum( A1 : A10 )  ", "=SUM(A1:A10)"},
		{"=VLOOKUP(F1,A2:D500,4,FALSE)", "=VLOOKUP(F1,A2:D500,4,FALSE)"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeFormula(c.in), "input %q", c.in)
	}
}

func TestEvaluate_FormulaMatch(t *testing.T) {
	svc := disabledEvaluator()
	question := &model.Question{
		ID:              1,
		Type:            model.QuestionTypeFormula,
		CanonicalAnswer: "=SUM(A1:A10)",
		Alternatives:    []string{"=A1+A2+A3+A4+A5+A6+A7+A8+A9+A10"},
	}

	t.Run("canonical", func(t *testing.T) {
		eval := svc.Evaluate(context.Background(), question, "q", "=SUM(A1:A10)", "Priya")
		assert.Equal(t, 100, eval.Score)
		assert.Equal(t, "", eval.FollowUp)
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		eval := svc.Evaluate(context.Background(), question, "q", " sum( a1 : a10 ) ", "Priya")
		assert.Equal(t, 100, eval.Score)
	})

	t.Run("alternative accepted", func(t *testing.T) {
		eval := svc.Evaluate(context.Background(), question, "q", "=A1+A2+A3+A4+A5+A6+A7+A8+A9+A10", "Priya")
		assert.Equal(t, 100, eval.Score)
	})

	t.Run("miss falls through to degraded default", func(t *testing.T) {
		eval := svc.Evaluate(context.Background(), question, "q", "=COUNT(A1:A10)", "Priya")
		assert.Equal(t, DefaultScore, eval.Score)
		assert.Equal(t, "Thanks Priya, noted.", eval.Feedback)
	})
}

func TestEvaluate_DisabledUsesDefault(t *testing.T) {
	svc := disabledEvaluator()

	eval := svc.Evaluate(context.Background(), nil, "Tell me about yourself.", "I am an analyst.", "Ravi")
	require.NotNil(t, eval)
	assert.Equal(t, DefaultScore, eval.Score)
	assert.Equal(t, "Thanks Ravi, noted.", eval.Feedback)
	assert.Equal(t, "", eval.FollowUp)
}

func TestAnalyze_DisabledUsesFallback(t *testing.T) {
	svc := disabledEvaluator()

	analysis := svc.Analyze(context.Background(), nil, 80, "Ravi")
	require.NotNil(t, analysis)
	assert.Equal(t, 72.0, analysis.CommunicationScore)
	assert.Equal(t, 68.0, analysis.PresentationScore)
	assert.Equal(t, 72.0, analysis.ClarityScore)
	assert.Equal(t, 64.0, analysis.ConfidenceScore)
	assert.Equal(t, 80.0, analysis.ProblemSolvingScore)
	assert.Equal(t, 80.0, analysis.OverallScore)
	assert.NotEmpty(t, analysis.Summary)
	assert.Len(t, analysis.Suggestions, 2)
}

func TestFallbackAnalysis_Rounding(t *testing.T) {
	analysis := FallbackAnalysis(66.6)
	assert.Equal(t, 59.9, analysis.CommunicationScore)
	assert.Equal(t, 56.6, analysis.PresentationScore)
	assert.Equal(t, 53.3, analysis.ConfidenceScore)
	assert.Equal(t, 66.6, analysis.OverallScore)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"score":90}`, stripFences("```json\n{\"score\":90}\n```"))
	assert.Equal(t, `{"score":90}`, stripFences("```\n{\"score\":90}\n```"))
	assert.Equal(t, `{"score":90}`, stripFences(`{"score":90}`))
}
