package httpx

import (
	"log/slog"

	"github.com/tpo-portal/tpo-ui-api/internal/dispatch"
	"github.com/tpo-portal/tpo-ui-api/internal/forms"
	"github.com/tpo-portal/tpo-ui-api/internal/genai"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
	"github.com/tpo-portal/tpo-ui-api/internal/service"
	"github.com/tpo-portal/tpo-ui-api/internal/session"
)

// Server bundles the handler dependencies for the portal's HTTP surface.
type Server struct {
	log        *slog.Logger
	store      *session.Store
	dispatcher *dispatch.Dispatcher
	gateway    ports.AuthGateway
	postings   *service.PostingService
	assistant  *genai.Assistant

	loginForm     *forms.LoginForm
	studentForm   *forms.StudentRegistrationForm
	recruiterForm *forms.RecruiterRegistrationForm
}

// ServerOptions groups Server dependencies.
type ServerOptions struct {
	Logger     *slog.Logger
	Store      *session.Store
	Dispatcher *dispatch.Dispatcher
	Gateway    ports.AuthGateway
	Postings   *service.PostingService
	Assistant  *genai.Assistant
}

// NewServer creates the HTTP server state. Store, Dispatcher, and Gateway
// are required.
func NewServer(opts ServerOptions) *Server {
	if opts.Store == nil || opts.Dispatcher == nil || opts.Gateway == nil {
		panic("Server requires a session store, dispatcher, and gateway")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		log:           log,
		store:         opts.Store,
		dispatcher:    opts.Dispatcher,
		gateway:       opts.Gateway,
		postings:      opts.Postings,
		assistant:     opts.Assistant,
		loginForm:     forms.NewLoginForm(opts.Gateway),
		studentForm:   forms.NewStudentRegistrationForm(opts.Gateway),
		recruiterForm: forms.NewRecruiterRegistrationForm(opts.Gateway),
	}
}
