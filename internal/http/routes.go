package httpx

import (
	"net/http"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/nav"
)

// Routes builds the full route table. Restricted routes carry a GuardScreen
// middleware bound to the screen they serve, so the HTTP surface enforces
// exactly the same decisions as in-process navigation.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)

	// Session and navigation.
	mux.HandleFunc("GET /api/session", s.handleSession)
	mux.HandleFunc("POST /api/session/role", s.handleSelectRole)
	mux.HandleFunc("POST /api/session/login", s.handleLogin)
	mux.HandleFunc("POST /api/session/register/student", s.handleRegisterStudent)
	mux.HandleFunc("POST /api/session/register/recruiter", s.handleRegisterRecruiter)
	mux.HandleFunc("POST /api/session/logout", s.handleLogout)
	mux.HandleFunc("GET /api/session/check", s.handleCheckAuth)
	mux.HandleFunc("GET /api/session/profile", s.handleProfile)
	mux.HandleFunc("POST /api/navigate", s.handleNavigate)
	mux.HandleFunc("PUT /api/settings/api-key", s.handleSetAPIKey)

	// Postings.
	s.guarded(mux, "POST /api/postings", nav.ScreenCreateJob, s.handleCreatePosting)
	s.guarded(mux, "GET /api/postings", nav.ScreenJobListings, s.handleListApproved)
	s.guarded(mux, "GET /api/postings/mine", nav.ScreenManageJobs, s.handleListMine)
	s.guarded(mux, "GET /api/postings/pending", nav.ScreenJobApproval, s.handleListPending)
	s.guarded(mux, "POST /api/postings/{id}/approve", nav.ScreenJobApproval, s.handleApprovePosting)
	s.guarded(mux, "POST /api/postings/{id}/reject", nav.ScreenJobApproval, s.handleRejectPosting)
	s.guarded(mux, "DELETE /api/postings/{id}", nav.ScreenManageJobs, s.handleDeletePosting)

	// AI features.
	s.guarded(mux, "POST /api/ai/resume/suggestions", nav.ScreenResumeOptimizer, s.handleResumeSuggestions)
	s.guarded(mux, "POST /api/ai/resume/validate", nav.ScreenResumeOptimizer, s.handleResumeValidation)
	s.guarded(mux, "POST /api/ai/interview/questions", nav.ScreenMockInterview, s.handleInterviewQuestions)
	s.guarded(mux, "POST /api/ai/interview/feedback", nav.ScreenMockInterview, s.handleAnswerFeedback)
	s.guarded(mux, "POST /api/ai/job-description", nav.ScreenCreateJob, s.handleJobDescription)
	s.guarded(mux, "POST /api/ai/career-guidance", nav.ScreenStudentDashboard, s.handleCareerGuidance)

	return Chain(mux, Recover(s.log), Logging(s.log))
}

// guarded registers a handler behind a screen guard.
func (s *Server) guarded(mux *http.ServeMux, pattern string, screen nav.ScreenID, h http.HandlerFunc) {
	mux.Handle(pattern, GuardScreen(s.store, screen)(h))
}

// handleHealthz reports process liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
