package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excelinterview/internal/model"
)

func sampleReport() *model.InterviewReport {
	q1 := int64(1)
	now := time.Now()
	return &model.InterviewReport{
		SessionID:      "abc123",
		CandidateName:  "Priya Sharma",
		CandidateEmail: "priya@example.com",
		SkillLevel:     "intermediate",
		StartedAt:      now.Add(-15 * time.Minute),
		CompletedAt:    now,
		OverallScore:   82.5,
		TotalQuestions: 2,
		TotalTimeMinutes: 12.3,
		Answers: []model.AnswerView{
			{QuestionID: &q1, UserAnswer: "=SUM(A1:A10)", Score: 100, Feedback: "Correct.", TimeSpent: 60},
			{QuestionID: nil, UserAnswer: "A range is a block of cells that a formula can operate on as a unit.", Score: 65, Feedback: "Reasonable.", TimeSpent: 45, IsFollowUp: true},
		},
		Analysis: model.Analysis{
			CommunicationScore:  74.3,
			PresentationScore:   70.1,
			ClarityScore:        74.3,
			ConfidenceScore:     66.0,
			ProblemSolvingScore: 82.5,
			OverallScore:        82.5,
			Summary:             "Solid fundamentals with room to grow on explanations.",
			Suggestions:         []string{"Practice out loud.", "Structure answers."},
		},
		GeneratedAt: now,
	}
}

func TestRender_WritesPDFAndJSON(t *testing.T) {
	dir := t.TempDir()
	renderer := NewPDFRenderer(dir)

	url, err := renderer.Render(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "/static/reports/report_abc123.pdf", url)

	pdfBytes, err := os.ReadFile(filepath.Join(dir, "report_abc123.pdf"))
	require.NoError(t, err)
	assert.True(t, len(pdfBytes) > 0)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))

	jsonBytes, err := os.ReadFile(filepath.Join(dir, "report_abc123.json"))
	require.NoError(t, err)

	var rec model.InterviewReport
	require.NoError(t, json.Unmarshal(jsonBytes, &rec))
	assert.Equal(t, "abc123", rec.SessionID)
	assert.Equal(t, 82.5, rec.OverallScore)
	assert.Len(t, rec.Answers, 2)
}

func TestRender_MissingDirFails(t *testing.T) {
	renderer := NewPDFRenderer(filepath.Join(t.TempDir(), "does", "not", "exist"))

	_, err := renderer.Render(sampleReport())
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "a long ...", truncate("a long string over the limit", 10))
}
