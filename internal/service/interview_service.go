package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"excelinterview/internal/cache"
	"excelinterview/internal/model"
	"excelinterview/internal/repository"
)

// InterviewService is the session progression engine: it decides what a
// session is asked next (main question, pending follow-up, or the
// completion notice) and absorbs submitted answers. It owns the
// follow-up slot and the one-way completion transition.
//
// Each session is guarded by a striped mutex, so the follow-up slot,
// status and completion updates are a single read-modify-write even if
// the host lets two calls race on one session.
type InterviewService struct {
	sessionRepo  repository.SessionRepo
	questionRepo repository.QuestionRepo
	answerRepo   repository.AnswerRepo
	sessionCache cache.SessionCache
	evaluator    Evaluator
	transcriber  Transcriber
	narrator     Narrator

	maxQuestions int
	maxFollowUps int

	locks [64]sync.Mutex
}

// NewInterviewService creates the progression engine with its
// collaborators injected. Evaluator, transcriber and narrator never
// fail; the repos are the only error sources.
func NewInterviewService(
	sessionRepo repository.SessionRepo,
	questionRepo repository.QuestionRepo,
	answerRepo repository.AnswerRepo,
	sessionCache cache.SessionCache,
	evaluator Evaluator,
	transcriber Transcriber,
	narrator Narrator,
	maxQuestions int,
	maxFollowUps int,
) *InterviewService {
	return &InterviewService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		sessionCache: sessionCache,
		evaluator:    evaluator,
		transcriber:  transcriber,
		narrator:     narrator,
		maxQuestions: maxQuestions,
		maxFollowUps: maxFollowUps,
	}
}

// CreateSessionInput carries the candidate identity fields. The engine
// treats them as opaque strings.
type CreateSessionInput struct {
	CandidateName  string
	CandidateEmail string
	CandidatePhone string
	CollegeName    string
	RollNumber     string
	RoleLevel      string
}

// SubmitAnswerInput is one submitted answer. Exactly one of TextAnswer
// and Audio must be present. QuestionID is nil when answering the
// pending follow-up.
type SubmitAnswerInput struct {
	QuestionID *int64
	TextAnswer string
	Audio      []byte
	AudioMime  string
	TimeSpent  float64
}

// SubmitAnswerResult reports the evaluation of the submitted answer and
// where the session stands afterwards.
type SubmitAnswerResult struct {
	Score          float64 `json:"score"`
	Feedback       string  `json:"feedback"`
	UserTranscript string  `json:"user_transcript"`
	IsComplete     bool    `json:"is_complete"`
	NextFollowUp   string  `json:"next_step,omitempty"`
}

// CreateSession starts an interview with the scripted introduction
// preloaded into the follow-up slot, so the first served item asks the
// candidate to introduce themselves.
func (s *InterviewService) CreateSession(ctx context.Context, in CreateSessionInput) (*model.Session, error) {
	roleLevel := in.RoleLevel
	if roleLevel == "" {
		roleLevel = "intermediate"
	}

	session := &model.Session{
		ID:             uuid.NewString(),
		CandidateName:  in.CandidateName,
		CandidateEmail: in.CandidateEmail,
		CandidatePhone: in.CandidatePhone,
		CollegeName:    in.CollegeName,
		RollNumber:     in.RollNumber,
		RoleLevel:      roleLevel,
		Status:         model.SessionInProgress,
		StartedAt:      time.Now(),
		PendingFollowUp: fmt.Sprintf(
			"Hi %s, welcome to your interview! Before we dive into Excel, could you please introduce yourself?",
			in.CandidateName),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.cacheSession(ctx, session)

	log.Printf("[interview] created session %s for %s (level=%s)", session.ID, session.CandidateName, roleLevel)
	return session, nil
}

// GetSession loads a session, cache first. Returns ErrSessionNotFound
// when it does not exist.
func (s *InterviewService) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	if s.sessionCache != nil {
		if session, err := s.sessionCache.Get(ctx, sessionID); err == nil && session != nil {
			return session, nil
		}
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, model.ErrSessionNotFound
	}
	s.cacheSession(ctx, session)
	return session, nil
}

// NextItem returns what the session is asked next. Fetching the pending
// follow-up does not consume it: the slot is cleared only when an
// answer consumes it, a newer follow-up overwrites it, or the session
// completes.
func (s *InterviewService) NextItem(ctx context.Context, sessionID string) (*model.InterviewItem, error) {
	s.lock(sessionID)
	defer s.unlock(sessionID)

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsCompleted() {
		return s.terminalItem(ctx, session,
			fmt.Sprintf("Thank you %s! You've completed the interview.", session.CandidateName)), nil
	}

	mainCount, err := s.answerRepo.CountMain(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count answers: %w", err)
	}
	if mainCount >= s.maxQuestions {
		if err := s.completeSession(ctx, session); err != nil {
			return nil, err
		}
		return s.terminalItem(ctx, session,
			fmt.Sprintf("Thank you %s! You've completed the interview (max questions reached).", session.CandidateName)), nil
	}

	if session.PendingFollowUp != "" {
		return &model.InterviewItem{
			QuestionID:   nil,
			QuestionText: session.PendingFollowUp,
			IsFollowUp:   true,
			AudioURL:     s.narrate(ctx, session.ID, session.PendingFollowUp),
		}, nil
	}

	answeredIDs, err := s.answerRepo.AnsweredQuestionIDs(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answered question ids: %w", err)
	}

	question, err := s.questionRepo.NextUnanswered(ctx, session.RoleLevel, answeredIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	if question != nil {
		qid := question.ID
		return &model.InterviewItem{
			QuestionID:   &qid,
			QuestionText: question.QuestionText,
			AudioURL:     s.narrate(ctx, session.ID, question.QuestionText),
		}, nil
	}

	// Catalog exhausted for this difficulty.
	if err := s.completeSession(ctx, session); err != nil {
		return nil, err
	}
	return s.terminalItem(ctx, session,
		fmt.Sprintf("Thank you %s! You've completed all the questions. You'll see the results now.", session.CandidateName)), nil
}

// SubmitAnswer binds an incoming answer to the in-flight question,
// evaluates it, appends it to the answer log, and updates the follow-up
// slot and completion state.
func (s *InterviewService) SubmitAnswer(ctx context.Context, sessionID string, in *SubmitAnswerInput) (*SubmitAnswerResult, error) {
	s.lock(sessionID)
	defer s.unlock(sessionID)

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() {
		return nil, model.ErrSessionClosed
	}

	// Resolve which question this answers.
	var question *model.Question
	var questionText string
	isFollowUp := false

	if in.QuestionID != nil {
		question, err = s.questionRepo.GetByID(ctx, *in.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load question: %w", err)
		}
		if question == nil {
			return nil, model.ErrQuestionNotFound
		}
		questionText = question.QuestionText
	} else {
		if session.PendingFollowUp == "" {
			return nil, model.ErrNoActiveQuestion
		}
		questionText = session.PendingFollowUp
		isFollowUp = true
	}

	// Resolve the answer text: exactly one of text and audio.
	hasText := strings.TrimSpace(in.TextAnswer) != ""
	hasAudio := len(in.Audio) > 0
	if hasText == hasAudio {
		return nil, model.ErrNoAnswerProvided
	}

	answerText := in.TextAnswer
	if hasAudio {
		answerText = s.transcriber.Transcribe(ctx, in.Audio, in.AudioMime)
	}

	evaluation := s.evaluator.Evaluate(ctx, question, questionText, answerText, session.CandidateName)

	answer := &model.Answer{
		SessionID:  sessionID,
		QuestionID: in.QuestionID,
		UserAnswer: answerText,
		Score:      float64(evaluation.Score),
		TimeSpent:  in.TimeSpent,
		Feedback:   evaluation.Feedback,
		IsFollowUp: isFollowUp,
		CreatedAt:  time.Now(),
	}
	if err := s.answerRepo.Append(ctx, answer); err != nil {
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}

	// Follow-up slot update. The count includes the row appended above,
	// so a just-answered follow-up counts toward the cap.
	followUpsAnswered, err := s.answerRepo.CountFollowUps(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count follow-ups: %w", err)
	}
	if evaluation.FollowUp != "" && followUpsAnswered < s.maxFollowUps {
		session.PendingFollowUp = evaluation.FollowUp
	} else {
		session.PendingFollowUp = ""
	}

	mainCount, err := s.answerRepo.CountMain(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count answers: %w", err)
	}

	isComplete := false
	if mainCount >= s.maxQuestions {
		session.Complete(time.Now())
		isComplete = true
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	s.cacheSession(ctx, session)

	return &SubmitAnswerResult{
		Score:          float64(evaluation.Score),
		Feedback:       evaluation.Feedback,
		UserTranscript: answerText,
		IsComplete:     isComplete,
		NextFollowUp:   session.PendingFollowUp,
	}, nil
}

func (s *InterviewService) completeSession(ctx context.Context, session *model.Session) error {
	session.Complete(time.Now())
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	s.cacheSession(ctx, session)
	log.Printf("[interview] session %s completed", session.ID)
	return nil
}

func (s *InterviewService) terminalItem(ctx context.Context, session *model.Session, closing string) *model.InterviewItem {
	return &model.InterviewItem{
		QuestionID:   nil,
		QuestionText: closing,
		IsComplete:   true,
		AudioURL:     s.narrate(ctx, session.ID, closing),
	}
}

// narrate is best effort: a failed synthesis returns an empty URL and
// the item is served as text only.
func (s *InterviewService) narrate(ctx context.Context, sessionID, text string) string {
	if s.narrator == nil {
		return ""
	}
	return s.narrator.Synthesize(ctx, sessionID, text)
}

func (s *InterviewService) cacheSession(ctx context.Context, session *model.Session) {
	if s.sessionCache == nil {
		return
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		log.Printf("[interview] session cache set failed: %v", err)
	}
}

func (s *InterviewService) lock(sessionID string) {
	s.locks[lockIndex(sessionID)].Lock()
}

func (s *InterviewService) unlock(sessionID string) {
	s.locks[lockIndex(sessionID)].Unlock()
}

func lockIndex(sessionID string) int {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return int(h.Sum32() % 64)
}
