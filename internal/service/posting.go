package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/auth"
	"github.com/tpo-portal/tpo-ui-api/internal/domain/model"
	apperrors "github.com/tpo-portal/tpo-ui-api/internal/errors"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

// PostingServiceOptions groups dependencies for PostingService.
type PostingServiceOptions struct {
	Repo   ports.PostingRepository
	Logger *slog.Logger
}

// PostingService owns the posting lifecycle: recruiters create pending
// postings, admins moderate them, students see only approved ones.
type PostingService struct {
	repo ports.PostingRepository
	log  *slog.Logger
}

// NewPostingService creates a PostingService. The repository is required.
func NewPostingService(opts PostingServiceOptions) *PostingService {
	if opts.Repo == nil {
		panic("PostingService requires a repository")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &PostingService{repo: opts.Repo, log: log}
}

// CreatePostingInput carries the create_job form fields.
type CreatePostingInput struct {
	Title       string
	Description string
	Location    string
	SalaryRange string
}

// Create files a new posting for the recruiter. Postings always start
// pending regardless of caller input.
func (s *PostingService) Create(ctx context.Context, actor auth.Session, in CreatePostingInput) (model.Posting, error) {
	if err := requireRole(actor, auth.RoleRecruiter); err != nil {
		return model.Posting{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.Posting{}, apperrors.ValidationField("title", "Title is required.")
	}
	if strings.TrimSpace(in.Description) == "" {
		return model.Posting{}, apperrors.ValidationField("description", "Description is required.")
	}

	companyName := ""
	if actor.Profile != nil {
		companyName = actor.Profile.CompanyName
	}

	posting, err := s.repo.Create(ctx, model.Posting{
		RecruiterID: actor.User.ID,
		CompanyName: companyName,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Location:    strings.TrimSpace(in.Location),
		SalaryRange: strings.TrimSpace(in.SalaryRange),
		Status:      model.PostingPending,
	})
	if err != nil {
		return model.Posting{}, err
	}

	s.log.Info("posting created", "posting_id", posting.ID, "recruiter_id", actor.User.ID)
	return posting, nil
}

// ListApproved returns the postings visible on the job_listings screen.
func (s *PostingService) ListApproved(ctx context.Context, actor auth.Session) ([]model.Posting, error) {
	if err := requireRole(actor, auth.RoleStudent, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, model.PostingApproved)
}

// ListPending returns postings awaiting moderation (job_approval screen).
func (s *PostingService) ListPending(ctx context.Context, actor auth.Session) ([]model.Posting, error) {
	if err := requireRole(actor, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, model.PostingPending)
}

// ListMine returns the recruiter's own postings (manage_jobs screen).
func (s *PostingService) ListMine(ctx context.Context, actor auth.Session) ([]model.Posting, error) {
	if err := requireRole(actor, auth.RoleRecruiter); err != nil {
		return nil, err
	}
	return s.repo.ListByRecruiter(ctx, actor.User.ID)
}

// Approve moves a pending posting to approved.
func (s *PostingService) Approve(ctx context.Context, actor auth.Session, id string) (model.Posting, error) {
	return s.moderate(ctx, actor, id, model.PostingApproved)
}

// Reject moves a pending posting to rejected.
func (s *PostingService) Reject(ctx context.Context, actor auth.Session, id string) (model.Posting, error) {
	return s.moderate(ctx, actor, id, model.PostingRejected)
}

func (s *PostingService) moderate(ctx context.Context, actor auth.Session, id string, status model.PostingStatus) (model.Posting, error) {
	if err := requireRole(actor, auth.RoleAdmin); err != nil {
		return model.Posting{}, err
	}
	posting, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return model.Posting{}, err
	}
	s.log.Info("posting moderated", "posting_id", id, "status", string(status), "admin_id", actor.User.ID)
	return posting, nil
}

// Delete removes a posting. Recruiters may delete only their own; admins
// may delete any.
func (s *PostingService) Delete(ctx context.Context, actor auth.Session, id string) error {
	if err := requireRole(actor, auth.RoleRecruiter, auth.RoleAdmin); err != nil {
		return err
	}
	if actor.Role == auth.RoleRecruiter {
		posting, err := s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if posting.RecruiterID != actor.User.ID {
			return apperrors.NotFound("posting not found")
		}
	}
	return s.repo.Delete(ctx, id)
}

// requireRole rejects callers who are signed out or hold none of the
// allowed roles.
func requireRole(actor auth.Session, allowed ...auth.Role) error {
	if !actor.Authenticated() {
		return apperrors.SessionInvalid("sign in to continue")
	}
	for _, role := range allowed {
		if actor.Role == role {
			return nil
		}
	}
	return apperrors.InvalidState("your role cannot perform this action")
}
