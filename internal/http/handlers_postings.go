package httpx

import (
	"net/http"

	"github.com/tpo-portal/tpo-ui-api/internal/service"
)

// handleCreatePosting files a new posting for the signed-in recruiter.
func (s *Server) handleCreatePosting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Location    string `json:"location"`
		SalaryRange string `json:"salary_range"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	posting, err := s.postings.Create(r.Context(), s.store.Session(), service.CreatePostingInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		SalaryRange: req.SalaryRange,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, posting)
}

// handleListApproved serves the job_listings screen.
func (s *Server) handleListApproved(w http.ResponseWriter, r *http.Request) {
	postings, err := s.postings.ListApproved(r.Context(), s.store.Session())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"postings": postings})
}

// handleListMine serves the manage_jobs screen.
func (s *Server) handleListMine(w http.ResponseWriter, r *http.Request) {
	postings, err := s.postings.ListMine(r.Context(), s.store.Session())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"postings": postings})
}

// handleListPending serves the job_approval screen.
func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	postings, err := s.postings.ListPending(r.Context(), s.store.Session())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"postings": postings})
}

// handleApprovePosting approves a pending posting.
func (s *Server) handleApprovePosting(w http.ResponseWriter, r *http.Request) {
	posting, err := s.postings.Approve(r.Context(), s.store.Session(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, posting)
}

// handleRejectPosting rejects a pending posting.
func (s *Server) handleRejectPosting(w http.ResponseWriter, r *http.Request) {
	posting, err := s.postings.Reject(r.Context(), s.store.Session(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, posting)
}

// handleDeletePosting removes a posting owned by the caller.
func (s *Server) handleDeletePosting(w http.ResponseWriter, r *http.Request) {
	if err := s.postings.Delete(r.Context(), s.store.Session(), r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
