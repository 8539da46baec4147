package ports

// Package ports defines interfaces (hexagonal ports) for the portal's
// external dependencies. Implementations live in internal/adapters,
// internal/gateway, internal/genai, and internal/data; orchestration in
// internal/session, internal/forms, and internal/service.

import (
	"context"
	"errors"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/auth"
	"github.com/tpo-portal/tpo-ui-api/internal/domain/model"
)

// ErrKeyNotFound is returned by StateStore.Get for absent keys.
var ErrKeyNotFound = errors.New("state key not found")

// StateStore is a small key-value persistence port for client state.
// Values are opaque byte slices; callers own serialization.
type StateStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Credentials are the inputs to a password login.
type Credentials struct {
	Email    string
	Password string
	UserType auth.Role
}

// StudentSignup carries a student registration payload.
type StudentSignup struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number"`
	StudentID       string `json:"student_id"`
	University      string `json:"university"`
	Department      string `json:"department"`
	GraduationYear  string `json:"graduation_year"`
	AgreeTerms      bool   `json:"agree_terms"`
	AgreePlacement  bool   `json:"agree_placement"`
}

// RecruiterSignup carries a recruiter registration payload.
type RecruiterSignup struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number"`
	CompanyName     string `json:"company_name"`
	Position        string `json:"position"`
	CompanyWebsite  string `json:"company_website"`
	CompanySize     string `json:"company_size"`
	AgreeTerms      bool   `json:"agree_terms"`
	AgreeConduct    bool   `json:"agree_conduct"`
}

// AuthResult is the gateway's success payload for login, registration,
// and session checks.
type AuthResult struct {
	User    auth.Identity
	Profile *auth.Profile
	Token   string
}

// AuthGateway is the client port for the remote auth service.
//
// Any call may fail with a session_invalid AppError when the gateway
// returns 401; callers must then clear persisted identity.
type AuthGateway interface {
	Login(ctx context.Context, creds Credentials) (AuthResult, error)
	RegisterStudent(ctx context.Context, in StudentSignup) (AuthResult, error)
	RegisterRecruiter(ctx context.Context, in RecruiterSignup) (AuthResult, error)
	Logout(ctx context.Context) error
	CheckAuth(ctx context.Context) (AuthResult, error)
	Profile(ctx context.Context) (auth.Profile, error)
}

// TextGenerator produces model text for a prompt. Implementations never
// return a Go error; failures come back as a string beginning with "Error:".
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// PostingRepository persists job postings.
type PostingRepository interface {
	Create(ctx context.Context, p model.Posting) (model.Posting, error)
	Get(ctx context.Context, id string) (model.Posting, error)
	ListByStatus(ctx context.Context, status model.PostingStatus) ([]model.Posting, error)
	ListByRecruiter(ctx context.Context, recruiterID int64) ([]model.Posting, error)
	UpdateStatus(ctx context.Context, id string, status model.PostingStatus) (model.Posting, error)
	Delete(ctx context.Context, id string) error
}
