package model

import "errors"

// Client-facing error taxonomy. Collaborator failures (evaluator,
// transcription, narration, analysis) never surface here; they degrade
// to documented defaults instead.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrSessionClosed    = errors.New("session already completed")
	ErrNoActiveQuestion = errors.New("no question id provided and no pending follow-up")
	ErrNoAnswerProvided = errors.New("no answer provided")
	ErrNoAnswers        = errors.New("no answers recorded for session")
)
