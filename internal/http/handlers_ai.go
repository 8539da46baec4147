package httpx

import (
	"errors"
	"io"
	"net/http"

	"github.com/tpo-portal/tpo-ui-api/internal/resume"
)

// aiResponse wraps generated text. Failures from the generator arrive as
// "Error:" strings and are returned in the same field; the HTTP status
// stays 200 because the UI renders them inline.
type aiResponse struct {
	Text string `json:"text"`
}

// handleResumeSuggestions accepts a resume upload and returns improvement
// suggestions.
func (s *Server) handleResumeSuggestions(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readResume(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, aiResponse{Text: s.assistant.ResumeSuggestions(r.Context(), text)})
}

// handleResumeValidation accepts a resume upload and checks it for
// completeness.
func (s *Server) handleResumeValidation(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readResume(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, aiResponse{Text: s.assistant.ResumeValidation(r.Context(), text)})
}

// readResume extracts plain text from an uploaded resume file.
func (s *Server) readResume(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseMultipartForm(resume.MaxUploadBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_upload", Err: err})
		return "", false
	}
	file, _, err := r.FormFile("resume")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_upload",
			Err:     errors.New("attach the resume as the 'resume' form field"),
		})
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, resume.MaxUploadBytes+1))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_upload", Err: err})
		return "", false
	}

	text, err := resume.ExtractText(data)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusUnprocessableEntity, ErrCode: "unreadable_resume", Err: err})
		return "", false
	}
	return text, true
}

// handleInterviewQuestions generates mock interview questions.
func (s *Server) handleInterviewQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role  string `json:"role"`
		Topic string `json:"topic"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	WriteJSON(w, http.StatusOK, aiResponse{
		Text: s.assistant.InterviewQuestions(r.Context(), req.Role, req.Topic),
	})
}

// handleAnswerFeedback critiques a practice interview answer.
func (s *Server) handleAnswerFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	WriteJSON(w, http.StatusOK, aiResponse{
		Text: s.assistant.AnswerFeedback(r.Context(), req.Question, req.Answer),
	})
}

// handleJobDescription drafts a posting description for recruiters.
func (s *Server) handleJobDescription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        string `json:"title"`
		Company      string `json:"company"`
		Requirements string `json:"requirements"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	WriteJSON(w, http.StatusOK, aiResponse{
		Text: s.assistant.JobDescription(r.Context(), req.Title, req.Company, req.Requirements),
	})
}

// handleCareerGuidance answers an open-ended career question.
func (s *Server) handleCareerGuidance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	WriteJSON(w, http.StatusOK, aiResponse{
		Text: s.assistant.CareerGuidance(r.Context(), req.Question),
	})
}
