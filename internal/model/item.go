package model

// InterviewItem is what the engine serves next: a catalog question, the
// pending follow-up, or the completion notice. A follow-up carries no
// question id; the completion notice carries a closing message in
// QuestionText.
type InterviewItem struct {
	QuestionID   *int64 `json:"questionId"`
	QuestionText string `json:"questionText"`
	IsFollowUp   bool   `json:"isFollowup"`
	IsComplete   bool   `json:"isComplete"`
	AudioURL     string `json:"audioUrl,omitempty"`
}

// Evaluation is the evaluator contract result. Score is 0-100. FollowUp
// is empty when the evaluator has nothing to probe further.
type Evaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
	FollowUp string `json:"followup"`
}
