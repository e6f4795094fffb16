package model

import "time"

// AnswerView is the flattened answer shape fed to the analysis prompt
// and embedded in the report artifact.
type AnswerView struct {
	QuestionID *int64  `json:"question_id" bson:"questionId,omitempty"`
	UserAnswer string  `json:"user_answer" bson:"userAnswer"`
	Score      float64 `json:"score" bson:"score"`
	Feedback   string  `json:"feedback" bson:"feedback"`
	TimeSpent  float64 `json:"time_spent" bson:"timeSpent"`
	IsFollowUp bool    `json:"is_followup" bson:"isFollowup"`
}

// Analysis is the multi-axis breakdown of a finished interview. When
// the AI analysis collaborator is unavailable it is derived
// deterministically from the average score, so a report always carries
// a populated Analysis.
type Analysis struct {
	CommunicationScore  float64  `json:"communication_score" bson:"communicationScore"`
	PresentationScore   float64  `json:"presentation_score" bson:"presentationScore"`
	ClarityScore        float64  `json:"clarity_score" bson:"clarityScore"`
	ConfidenceScore     float64  `json:"confidence_score" bson:"confidenceScore"`
	ProblemSolvingScore float64  `json:"problem_solving_score" bson:"problemSolvingScore"`
	OverallScore        float64  `json:"overall_score" bson:"overallScore"`
	Summary             string   `json:"summary" bson:"summary"`
	Suggestions         []string `json:"suggestions" bson:"suggestions"`
}

// InterviewReport is the aggregate result of one session, frozen from
// the immutable answer log.
type InterviewReport struct {
	SessionID        string       `json:"session_id" bson:"_id"`
	CandidateName    string       `json:"candidate_name" bson:"candidateName"`
	CandidateEmail   string       `json:"candidate_email" bson:"candidateEmail"`
	CollegeName      string       `json:"college_name,omitempty" bson:"collegeName,omitempty"`
	RollNumber       string       `json:"roll_number,omitempty" bson:"rollNumber,omitempty"`
	SkillLevel       string       `json:"skill_level" bson:"skillLevel"`
	StartedAt        time.Time    `json:"started_at" bson:"startedAt"`
	CompletedAt      time.Time    `json:"completed_at" bson:"completedAt"`
	OverallScore     float64      `json:"overall_score" bson:"overallScore"`
	TotalQuestions   int          `json:"total_questions" bson:"totalQuestions"`
	TotalTimeMinutes float64      `json:"total_time_minutes" bson:"totalTimeMinutes"`
	Answers          []AnswerView `json:"answers" bson:"answers"`
	Analysis         Analysis     `json:"analysis" bson:"analysis"`
	ReportURL        string       `json:"report_url,omitempty" bson:"reportUrl,omitempty"`
	GeneratedAt      time.Time    `json:"generated_at" bson:"generatedAt"`
}
