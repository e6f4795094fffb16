package model

// QuestionType defines how an answer to the question is evaluated
type QuestionType string

const (
	QuestionTypeFormula     QuestionType = "formula"     // Matched against canonical formula + alternatives
	QuestionTypeExplanation QuestionType = "explanation" // Free text, AI-evaluated
	QuestionTypeScenario    QuestionType = "scenario"    // Free text, AI-evaluated
)

// Question is a catalog question. Catalog rows are immutable once
// seeded; the interview engine only reads them.
type Question struct {
	ID              int64        `json:"id" bson:"_id"`
	Category        string       `json:"category" bson:"category"`
	Difficulty      string       `json:"difficulty" bson:"difficulty"`
	QuestionText    string       `json:"questionText" bson:"questionText"`
	Type            QuestionType `json:"type" bson:"type"`
	CanonicalAnswer string       `json:"canonicalAnswer,omitempty" bson:"canonicalAnswer,omitempty"`
	Alternatives    []string     `json:"alternatives,omitempty" bson:"alternatives,omitempty"`
	Explanation     string       `json:"explanation,omitempty" bson:"explanation,omitempty"`
	Tags            []string     `json:"tags,omitempty" bson:"tags,omitempty"`
}
