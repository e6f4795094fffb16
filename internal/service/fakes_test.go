package service

import (
	"context"
	"fmt"

	"excelinterview/internal/model"
)

// In-memory collaborators for engine tests. They mirror the Mongo
// repos' contracts, including the (nil, nil) miss convention.

type fakeSessionRepo struct {
	sessions map[string]*model.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *model.Session) error {
	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *model.Session) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return fmt.Errorf("session %s not found", session.ID)
	}
	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

type fakeQuestionRepo struct {
	questions []*model.Question
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *model.Question) error {
	r.questions = append(r.questions, q)
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id int64) (*model.Question, error) {
	for _, q := range r.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, nil
}

func (r *fakeQuestionRepo) NextUnanswered(_ context.Context, difficulty string, excludeIDs []int64) (*model.Question, error) {
	excluded := make(map[int64]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	for _, q := range r.questions {
		if q.Difficulty == difficulty && !excluded[q.ID] {
			return q, nil
		}
	}
	return nil, nil
}

func (r *fakeQuestionRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.questions)), nil
}

func (r *fakeQuestionRepo) GetByDifficulty(_ context.Context, difficulty string) ([]*model.Question, error) {
	var out []*model.Question
	for _, q := range r.questions {
		if q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeAnswerRepo struct {
	answers []*model.Answer
}

func (r *fakeAnswerRepo) Append(_ context.Context, answer *model.Answer) error {
	cp := *answer
	cp.ID = fmt.Sprintf("answer-%d", len(r.answers)+1)
	r.answers = append(r.answers, &cp)
	answer.ID = cp.ID
	return nil
}

func (r *fakeAnswerRepo) CountMain(_ context.Context, sessionID string) (int, error) {
	n := 0
	for _, a := range r.answers {
		if a.SessionID == sessionID && !a.IsFollowUp {
			n++
		}
	}
	return n, nil
}

func (r *fakeAnswerRepo) CountFollowUps(_ context.Context, sessionID string) (int, error) {
	n := 0
	for _, a := range r.answers {
		if a.SessionID == sessionID && a.IsFollowUp {
			n++
		}
	}
	return n, nil
}

func (r *fakeAnswerRepo) GetBySessionID(_ context.Context, sessionID string) ([]*model.Answer, error) {
	var out []*model.Answer
	for _, a := range r.answers {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) AnsweredQuestionIDs(_ context.Context, sessionID string) ([]int64, error) {
	seen := make(map[int64]bool)
	var out []int64
	for _, a := range r.answers {
		if a.SessionID == sessionID && a.QuestionID != nil && !seen[*a.QuestionID] {
			seen[*a.QuestionID] = true
			out = append(out, *a.QuestionID)
		}
	}
	return out, nil
}

type fakeReportRepo struct {
	reports map[string]*model.InterviewReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*model.InterviewReport)}
}

func (r *fakeReportRepo) Save(_ context.Context, report *model.InterviewReport) error {
	r.reports[report.SessionID] = report
	return nil
}

func (r *fakeReportRepo) GetBySessionID(_ context.Context, sessionID string) (*model.InterviewReport, error) {
	return r.reports[sessionID], nil
}

// stubEvaluator plays back a queue of evaluations, then repeats the
// last one.
type stubEvaluator struct {
	queue []*model.Evaluation
	calls int
}

func (e *stubEvaluator) Evaluate(_ context.Context, _ *model.Question, _, _, _ string) *model.Evaluation {
	e.calls++
	if len(e.queue) == 0 {
		return &model.Evaluation{Score: 70, Feedback: "ok"}
	}
	eval := e.queue[0]
	if len(e.queue) > 1 {
		e.queue = e.queue[1:]
	}
	return eval
}

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(_ context.Context, _ []model.AnswerView, averageScore float64, _ string) *model.Analysis {
	return FallbackAnalysis(averageScore)
}

type stubTranscriber struct {
	transcript string
}

func (t *stubTranscriber) Transcribe(_ context.Context, _ []byte, _ string) string {
	return t.transcript
}

type stubNarrator struct {
	url string
}

func (n *stubNarrator) Synthesize(_ context.Context, _, _ string) string {
	return n.url
}
