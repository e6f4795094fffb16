package model

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// Session is one candidate's interview instance. The pending follow-up
// field is a single-capacity slot: at most one ad hoc question can be
// queued at a time, and it survives fetches until an answer consumes it
// or a newer follow-up overwrites it.
type Session struct {
	ID              string        `json:"id" bson:"_id"`
	CandidateName   string        `json:"candidateName" bson:"candidateName"`
	CandidateEmail  string        `json:"candidateEmail" bson:"candidateEmail"`
	CandidatePhone  string        `json:"candidatePhone,omitempty" bson:"candidatePhone,omitempty"`
	CollegeName     string        `json:"collegeName,omitempty" bson:"collegeName,omitempty"`
	RollNumber      string        `json:"rollNumber,omitempty" bson:"rollNumber,omitempty"`
	RoleLevel       string        `json:"roleLevel" bson:"roleLevel"`
	Status          SessionStatus `json:"status" bson:"status"`
	StartedAt       time.Time     `json:"startedAt" bson:"startedAt"`
	CompletedAt     *time.Time    `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	OverallScore    *float64      `json:"overallScore,omitempty" bson:"overallScore,omitempty"`
	PendingFollowUp string        `json:"pendingFollowUp,omitempty" bson:"pendingFollowUp,omitempty"`
}

func (s *Session) IsCompleted() bool {
	return s.Status == SessionCompleted
}

// Complete transitions the session to its terminal state and clears the
// follow-up slot. The transition is one-way.
func (s *Session) Complete(at time.Time) {
	if s.Status == SessionCompleted {
		return
	}
	s.Status = SessionCompleted
	s.CompletedAt = &at
	s.PendingFollowUp = ""
}
