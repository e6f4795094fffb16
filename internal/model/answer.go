package model

import "time"

// Answer is one submitted response. The answer log is append-only: rows
// are never mutated or deleted once written. QuestionID is nil only for
// follow-up answers, which are not backed by a catalog row.
type Answer struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	SessionID  string    `json:"sessionId" bson:"sessionId"`
	QuestionID *int64    `json:"questionId,omitempty" bson:"questionId,omitempty"`
	UserAnswer string    `json:"userAnswer" bson:"userAnswer"`
	Score      float64   `json:"score" bson:"score"`
	TimeSpent  float64   `json:"timeSpent" bson:"timeSpent"` // seconds
	Feedback   string    `json:"feedback" bson:"feedback"`
	IsFollowUp bool      `json:"isFollowup" bson:"isFollowup"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// View flattens the answer for analysis prompts and report artifacts.
func (a *Answer) View() AnswerView {
	return AnswerView{
		QuestionID: a.QuestionID,
		UserAnswer: a.UserAnswer,
		Score:      a.Score,
		Feedback:   a.Feedback,
		TimeSpent:  a.TimeSpent,
		IsFollowUp: a.IsFollowUp,
	}
}
