package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"excelinterview/internal/config"
	"excelinterview/internal/model"
)

// Evaluator scores a single answer. Implementations must never fail:
// on any internal error they return the documented degraded default.
type Evaluator interface {
	Evaluate(ctx context.Context, question *model.Question, questionText, answerText, candidateName string) *model.Evaluation
}

// Analyzer expands a finished interview into a multi-axis breakdown.
// Implementations must never fail; the degraded default is derived from
// the average score alone.
type Analyzer interface {
	Analyze(ctx context.Context, answers []model.AnswerView, averageScore float64, candidateName string) *model.Analysis
}

// EvaluatorService handles AI evaluation and analysis via the Gemini
// API. Formula questions are matched against the catalog's canonical
// answer first and only fall through to the AI path on a miss.
type EvaluatorService struct {
	config *config.AIConfig
	client *http.Client
}

// NewEvaluatorService creates a new evaluator service
func NewEvaluatorService(cfg *config.AIConfig) *EvaluatorService {
	return &EvaluatorService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// DefaultScore is the neutral score substituted when evaluation is
// unavailable, so the interview keeps progressing.
const DefaultScore = 65

// Evaluate scores one answer. question is nil for follow-ups, which
// have no catalog row and always take the free-text path.
func (s *EvaluatorService) Evaluate(ctx context.Context, question *model.Question, questionText, answerText, candidateName string) *model.Evaluation {
	if question != nil && question.Type == model.QuestionTypeFormula {
		if eval := s.matchFormula(question, answerText); eval != nil {
			return eval
		}
	}

	if !s.config.IsEnabled() {
		return s.defaultEvaluation(candidateName)
	}

	prompt := s.buildEvaluationPrompt(questionText, answerText, candidateName)
	response, err := s.callGemini(ctx, s.config.Models.Eval, prompt)
	if err != nil {
		return s.defaultEvaluation(candidateName)
	}

	var eval model.Evaluation
	if err := json.Unmarshal([]byte(stripFences(response)), &eval); err != nil {
		return s.defaultEvaluation(candidateName)
	}

	if eval.Score < 0 {
		eval.Score = 0
	}
	if eval.Score > 100 {
		eval.Score = 100
	}
	eval.FollowUp = strings.TrimSpace(eval.FollowUp)
	return &eval
}

// Analyze folds the answer log into per-axis scores plus a summary and
// two suggestions. Falls back to a deterministic derivation from the
// average score when Gemini is unavailable or returns garbage.
func (s *EvaluatorService) Analyze(ctx context.Context, answers []model.AnswerView, averageScore float64, candidateName string) *model.Analysis {
	if !s.config.IsEnabled() {
		return FallbackAnalysis(averageScore)
	}

	prompt := s.buildAnalysisPrompt(answers, averageScore, candidateName)
	response, err := s.callGemini(ctx, s.config.Models.Analysis, prompt)
	if err != nil {
		return FallbackAnalysis(averageScore)
	}

	var analysis model.Analysis
	if err := json.Unmarshal([]byte(stripFences(response)), &analysis); err != nil {
		return FallbackAnalysis(averageScore)
	}

	if len(analysis.Suggestions) > 2 {
		analysis.Suggestions = analysis.Suggestions[:2]
	}
	if analysis.Suggestions == nil {
		analysis.Suggestions = []string{}
	}
	return &analysis
}

// FallbackAnalysis derives a full analysis from the average score
// alone. The axis fractions match the report's documented degraded
// defaults.
func FallbackAnalysis(averageScore float64) *model.Analysis {
	return &model.Analysis{
		CommunicationScore:  round1(averageScore * 0.9),
		PresentationScore:   round1(averageScore * 0.85),
		ClarityScore:        round1(averageScore * 0.9),
		ConfidenceScore:     round1(averageScore * 0.8),
		ProblemSolvingScore: round1(averageScore),
		OverallScore:        round1(averageScore),
		Summary:             "Overall solid performance. Focus on structuring responses and practicing clarity.",
		Suggestions: []string{
			"Structure answers with 3 steps (what/why/how).",
			"Practice concise explanations out loud.",
		},
	}
}

// matchFormula compares a normalized candidate formula against the
// canonical answer and its accepted alternatives. Returns nil when
// nothing matches, so the AI path can take over.
func (s *EvaluatorService) matchFormula(question *model.Question, answerText string) *model.Evaluation {
	submitted := NormalizeFormula(answerText)
	if submitted == "" {
		return nil
	}

	candidates := append([]string{question.CanonicalAnswer}, question.Alternatives...)
	for _, c := range candidates {
		if c != "" && NormalizeFormula(c) == submitted {
			return &model.Evaluation{
				Score:    100,
				Feedback: "That's the expected formula. Well done.",
				FollowUp: "",
			}
		}
	}
	return nil
}

// NormalizeFormula canonicalizes an Excel formula for comparison:
// whitespace stripped, upper-cased, with a leading "=" enforced.
func NormalizeFormula(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			b.WriteRune(r)
		}
	}
	f := strings.ToUpper(b.String())
	if f == "" {
		return ""
	}
	if !strings.HasPrefix(f, "=") {
		f = "=" + f
	}
	return f
}

func (s *EvaluatorService) defaultEvaluation(candidateName string) *model.Evaluation {
	return &model.Evaluation{
		Score:    DefaultScore,
		Feedback: fmt.Sprintf("Thanks %s, noted.", candidateName),
		FollowUp: "",
	}
}

// callGemini makes a request to the Gemini API
func (s *EvaluatorService) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

// Prompt builders
func (s *EvaluatorService) buildEvaluationPrompt(questionText, answerText, candidateName string) string {
	return fmt.Sprintf(`You are Sarah, a friendly professional Excel interviewer speaking with %s.
Question asked: "%s"
Candidate's Answer: "%s"

As Sarah, do the following:
1) Provide a short conversational acknowledgment.
2) Give a numeric score between 0 and 100 (integer).
3) Provide concise feedback highlighting strengths and weaknesses in one sentence.
4) If the answer is strong, provide a single natural follow-up question (or empty string).
Respond ONLY with valid JSON:

{
  "score": <number>,
  "feedback": "<short feedback>",
  "followup": "<follow-up or empty>"
}`, candidateName, questionText, answerText)
}

func (s *EvaluatorService) buildAnalysisPrompt(answers []model.AnswerView, averageScore float64, candidateName string) string {
	answersJSON, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		answersJSON = []byte("[]")
	}

	return fmt.Sprintf(`You are an expert interview evaluator.

Candidate: %s

The "answers" field below contains raw speech-to-text transcripts from an interview. These transcripts may include spelling mistakes, repeated words, filler ("um", "uh"), partial words, or other transcription artifacts. When you analyze them you should:

- Automatically correct obvious spelling mistakes and minor transcription errors before evaluating (do not invent new content).
- Normalize filler words and repeated fragments.
- If an answer is ambiguous because of transcription errors, infer the most likely intended meaning conservatively and reflect important assumptions in the summary.
- Evaluate intent, clarity, and knowledge even when the wording is imperfect.

Answers JSON:
%s

Current overall_score: %.1f

Produce ONLY a JSON object with the following keys (no extra keys, no commentary):

- communication_score (number 0-100)
- presentation_score (number 0-100)
- clarity_score (number 0-100)
- confidence_score (number 0-100)
- problem_solving_score (number 0-100)
- overall_score (number 0-100)
- summary (string, 1-3 sentences)
- suggestions (array of exactly 2 short strings)

Return only the JSON object and nothing else.`, candidateName, answersJSON, averageScore)
}

// stripFences removes markdown code fences some models wrap around
// JSON even when a JSON MIME type was requested.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func round1(f float64) float64 {
	if f < 0 {
		return float64(int(f*10-0.5)) / 10
	}
	return float64(int(f*10+0.5)) / 10
}
