package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"excelinterview/internal/cache"
	"excelinterview/internal/model"
	"excelinterview/internal/repository"
)

// Renderer persists a report artifact and returns its URL. Rendering
// is delegated entirely; the aggregator only produces the structured
// report the renderer consumes.
type Renderer interface {
	Render(report *model.InterviewReport) (string, error)
}

// ReportService folds a session's immutable answer log into the
// aggregate report, freezes the session's overall score, and hands the
// result to the renderer. Regenerating recomputes from the same log and
// yields the same result, modulo the AI analysis collaborator.
type ReportService struct {
	sessionRepo  repository.SessionRepo
	answerRepo   repository.AnswerRepo
	reportRepo   repository.ReportRepo
	sessionCache cache.SessionCache
	analyzer     Analyzer
	renderer     Renderer
}

// NewReportService creates a new report service
func NewReportService(
	sessionRepo repository.SessionRepo,
	answerRepo repository.AnswerRepo,
	reportRepo repository.ReportRepo,
	sessionCache cache.SessionCache,
	analyzer Analyzer,
	renderer Renderer,
) *ReportService {
	return &ReportService{
		sessionRepo:  sessionRepo,
		answerRepo:   answerRepo,
		reportRepo:   reportRepo,
		sessionCache: sessionCache,
		analyzer:     analyzer,
		renderer:     renderer,
	}
}

// GenerateReport builds the aggregate report for a session. The
// session is forced into completed state if it is not there already.
func (s *ReportService) GenerateReport(ctx context.Context, sessionID string) (*model.InterviewReport, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, model.ErrSessionNotFound
	}

	answers, err := s.answerRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	if len(answers) == 0 {
		return nil, model.ErrNoAnswers
	}

	views := make([]model.AnswerView, 0, len(answers))
	totalScore := 0.0
	totalTime := 0.0
	for _, a := range answers {
		views = append(views, a.View())
		totalScore += a.Score
		totalTime += a.TimeSpent
	}
	averageScore := totalScore / float64(len(answers))

	// Freeze the session. The answer log is immutable, so regenerating
	// recomputes the same aggregate.
	session.OverallScore = &averageScore
	if session.CompletedAt == nil {
		now := time.Now()
		session.CompletedAt = &now
	}
	session.Status = model.SessionCompleted
	session.PendingFollowUp = ""
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to freeze session: %w", err)
	}
	if s.sessionCache != nil {
		if err := s.sessionCache.Set(ctx, session); err != nil {
			log.Printf("[report] session cache set failed: %v", err)
		}
	}

	analysis := s.analyzer.Analyze(ctx, views, averageScore, session.CandidateName)

	report := &model.InterviewReport{
		SessionID:        sessionID,
		CandidateName:    session.CandidateName,
		CandidateEmail:   session.CandidateEmail,
		CollegeName:      session.CollegeName,
		RollNumber:       session.RollNumber,
		SkillLevel:       session.RoleLevel,
		StartedAt:        session.StartedAt,
		CompletedAt:      *session.CompletedAt,
		OverallScore:     round1(averageScore),
		TotalQuestions:   len(answers),
		TotalTimeMinutes: round1(totalTime / 60),
		Answers:          views,
		Analysis:         *analysis,
		GeneratedAt:      time.Now(),
	}

	// Rendering is best effort: a report without an artifact URL is
	// still a valid report.
	if s.renderer != nil {
		url, err := s.renderer.Render(report)
		if err != nil {
			log.Printf("[report] render failed for session %s: %v", sessionID, err)
		} else {
			report.ReportURL = url
		}
	}

	if err := s.reportRepo.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	log.Printf("[report] generated report for session %s (score=%.1f, answers=%d)", sessionID, report.OverallScore, len(answers))
	return report, nil
}

// GetReport returns a previously generated report, or nil when none
// has been generated yet.
func (s *ReportService) GetReport(ctx context.Context, sessionID string) (*model.InterviewReport, error) {
	return s.reportRepo.GetBySessionID(ctx, sessionID)
}
