package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excelinterview/internal/model"
)

type stubRenderer struct {
	url string
	err error
}

func (r *stubRenderer) Render(_ *model.InterviewReport) (string, error) {
	return r.url, r.err
}

func newTestReportService(renderer Renderer) (*ReportService, *fakeSessionRepo, *fakeAnswerRepo, *fakeReportRepo) {
	sessionRepo := newFakeSessionRepo()
	answerRepo := &fakeAnswerRepo{}
	reportRepo := newFakeReportRepo()
	svc := NewReportService(sessionRepo, answerRepo, reportRepo, nil, stubAnalyzer{}, renderer)
	return svc, sessionRepo, answerRepo, reportRepo
}

func seedAnsweredSession(t *testing.T, sessionRepo *fakeSessionRepo, answerRepo *fakeAnswerRepo) *model.Session {
	t.Helper()
	ctx := context.Background()

	session := &model.Session{
		ID:            "session-report",
		CandidateName: "Priya",
		RoleLevel:     "intermediate",
		Status:        model.SessionInProgress,
		StartedAt:     time.Now().Add(-10 * time.Minute),
	}
	require.NoError(t, sessionRepo.Create(ctx, session))

	q1, q2 := int64(1), int64(2)
	for _, a := range []*model.Answer{
		{SessionID: session.ID, QuestionID: &q1, UserAnswer: "=SUM(A1:A10)", Score: 100, TimeSpent: 60},
		{SessionID: session.ID, QuestionID: nil, UserAnswer: "A range is a block of cells.", Score: 70, TimeSpent: 30, IsFollowUp: true},
		{SessionID: session.ID, QuestionID: &q2, UserAnswer: "VLOOKUP searches the first column.", Score: 70, TimeSpent: 90},
	} {
		require.NoError(t, answerRepo.Append(ctx, a))
	}
	return session
}

func TestGenerateReport_AggregatesAnswerLog(t *testing.T) {
	ctx := context.Background()
	svc, sessionRepo, answerRepo, reportRepo := newTestReportService(&stubRenderer{url: "/static/reports/report_session-report.pdf"})
	session := seedAnsweredSession(t, sessionRepo, answerRepo)

	report, err := svc.GenerateReport(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, session.ID, report.SessionID)
	assert.Equal(t, "Priya", report.CandidateName)
	assert.Equal(t, 3, report.TotalQuestions)
	assert.Equal(t, 80.0, report.OverallScore)  // (100+70+70)/3
	assert.Equal(t, 3.0, report.TotalTimeMinutes) // 180s
	assert.Len(t, report.Answers, 3)
	assert.Equal(t, "/static/reports/report_session-report.pdf", report.ReportURL)

	// Analysis comes from the analyzer over the same average.
	assert.Equal(t, 80.0, report.Analysis.OverallScore)
	assert.Equal(t, 72.0, report.Analysis.CommunicationScore)

	// The session is frozen: completed with the overall score pinned.
	stored, err := sessionRepo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, stored.Status)
	require.NotNil(t, stored.OverallScore)
	assert.InDelta(t, 80.0, *stored.OverallScore, 0.001)
	assert.NotNil(t, stored.CompletedAt)
	assert.Equal(t, "", stored.PendingFollowUp)

	// Saved for later retrieval.
	saved, err := reportRepo.GetBySessionID(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, report.OverallScore, saved.OverallScore)
}

func TestGenerateReport_Regenerate(t *testing.T) {
	ctx := context.Background()
	svc, sessionRepo, answerRepo, _ := newTestReportService(&stubRenderer{url: "/u"})
	session := seedAnsweredSession(t, sessionRepo, answerRepo)

	first, err := svc.GenerateReport(ctx, session.ID)
	require.NoError(t, err)
	second, err := svc.GenerateReport(ctx, session.ID)
	require.NoError(t, err)

	// The answer log is immutable, so regenerating reproduces the
	// aggregate and keeps the original completion time.
	assert.Equal(t, first.OverallScore, second.OverallScore)
	assert.Equal(t, first.TotalQuestions, second.TotalQuestions)
	assert.Equal(t, first.CompletedAt, second.CompletedAt)
}

func TestGetReport_ReturnsSavedReport(t *testing.T) {
	ctx := context.Background()
	svc, sessionRepo, answerRepo, _ := newTestReportService(&stubRenderer{url: "/u"})
	session := seedAnsweredSession(t, sessionRepo, answerRepo)

	missing, err := svc.GetReport(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	generated, err := svc.GenerateReport(ctx, session.ID)
	require.NoError(t, err)

	saved, err := svc.GetReport(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, generated.OverallScore, saved.OverallScore)
}

func TestGenerateReport_NoAnswers(t *testing.T) {
	ctx := context.Background()
	svc, sessionRepo, _, _ := newTestReportService(&stubRenderer{url: "/u"})

	session := &model.Session{ID: "empty", CandidateName: "Dev", Status: model.SessionInProgress, StartedAt: time.Now()}
	require.NoError(t, sessionRepo.Create(ctx, session))

	_, err := svc.GenerateReport(ctx, session.ID)
	assert.ErrorIs(t, err, model.ErrNoAnswers)
}

func TestGenerateReport_UnknownSession(t *testing.T) {
	svc, _, _, _ := newTestReportService(&stubRenderer{url: "/u"})

	_, err := svc.GenerateReport(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestGenerateReport_RendererFailureIsTolerated(t *testing.T) {
	ctx := context.Background()
	svc, sessionRepo, answerRepo, _ := newTestReportService(&stubRenderer{err: errors.New("disk full")})
	session := seedAnsweredSession(t, sessionRepo, answerRepo)

	report, err := svc.GenerateReport(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "", report.ReportURL)
	assert.Equal(t, 80.0, report.OverallScore)
}
