package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"excelinterview/internal/model"
	"excelinterview/internal/service"
)

// maxAudioBytes bounds uploaded answer audio.
const maxAudioBytes = 10 << 20

// SessionHandler handles interview session endpoints
type SessionHandler struct {
	interviewSvc *service.InterviewService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(interviewSvc *service.InterviewService) *SessionHandler {
	return &SessionHandler{interviewSvc: interviewSvc}
}

// CreateSessionRequest is the request body for starting an interview
type CreateSessionRequest struct {
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	CandidatePhone string `json:"candidate_phone"`
	CollegeName    string `json:"college_name"`
	RollNumber     string `json:"roll_number"`
	RoleLevel      string `json:"role_level"`
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CandidateName == "" || req.CandidateEmail == "" {
		writeError(w, http.StatusBadRequest, "candidate_name and candidate_email are required")
		return
	}

	session, err := h.interviewSvc.CreateSession(r.Context(), service.CreateSessionInput{
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		CandidatePhone: req.CandidatePhone,
		CollegeName:    req.CollegeName,
		RollNumber:     req.RollNumber,
		RoleLevel:      req.RoleLevel,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"session_id": session.ID})
}

// NextQuestion handles GET /api/sessions/{sessionId}/question
func (h *SessionHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	item, err := h.interviewSvc.NextItem(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"question_id":   item.QuestionID,
		"question_text": item.QuestionText,
		"is_followup":   item.IsFollowUp,
		"is_complete":   item.IsComplete,
		"audio_url":     item.AudioURL,
	})
}

// SubmitAnswer handles POST /api/sessions/{sessionId}/answer. The body
// is multipart form data: optional question_id, time_spent, and either
// text_answer or an audio file part.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	in := &service.SubmitAnswerInput{
		TextAnswer: r.FormValue("text_answer"),
	}

	if raw := r.FormValue("question_id"); raw != "" {
		qid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid question_id")
			return
		}
		in.QuestionID = &qid
	}

	if raw := r.FormValue("time_spent"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid time_spent")
			return
		}
		in.TimeSpent = t
	}

	if file, header, err := r.FormFile("audio"); err == nil {
		defer file.Close()
		audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read audio")
			return
		}
		in.Audio = audio
		in.AudioMime = header.Header.Get("Content-Type")
	}

	result, err := h.interviewSvc.SubmitAnswer(r.Context(), sessionID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeServiceError maps the engine's error taxonomy onto HTTP status
// codes. Anything unrecognized is a server error.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrSessionNotFound),
		errors.Is(err, model.ErrQuestionNotFound),
		errors.Is(err, model.ErrNoAnswers):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrSessionClosed),
		errors.Is(err, model.ErrNoActiveQuestion),
		errors.Is(err, model.ErrNoAnswerProvided):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
