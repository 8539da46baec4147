package httpx

import (
	"errors"
	"net/http"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/auth"
	"github.com/tpo-portal/tpo-ui-api/internal/domain/nav"
	"github.com/tpo-portal/tpo-ui-api/internal/forms"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

// sessionView is the state payload returned by the session endpoints.
type sessionView struct {
	Screen   nav.ScreenID   `json:"screen"`
	RoleHint auth.Role      `json:"role_hint,omitempty"`
	User     *auth.Identity `json:"user,omitempty"`
	Profile  *auth.Profile  `json:"profile,omitempty"`
}

func (s *Server) currentView() sessionView {
	sess := s.store.Session()
	return sessionView{
		Screen:   s.dispatcher.Current(),
		RoleHint: s.dispatcher.RoleHint(),
		User:     sess.User,
		Profile:  sess.Profile,
	}
}

// handleSession returns the current portal state.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.currentView())
}

// handleSelectRole records the landing-screen role choice and moves to login.
func (s *Server) handleSelectRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	role, ok := auth.ParseRole(req.Role)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation",
			Err:     errors.New("unknown role"),
		})
		return
	}

	s.dispatcher.SelectRole(role)
	WriteJSON(w, http.StatusOK, s.currentView())
}

// formView is the outcome of a form submit: the resulting form state plus
// the portal state it produced.
type formView struct {
	FormState forms.State       `json:"form_state"`
	Errors    map[string]string `json:"errors,omitempty"`
	Session   sessionView       `json:"session"`
}

// handleLogin drives the login form and, on success, installs the session
// and routes to the role's first screen.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		UserType string `json:"user_type"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	role, _ := auth.ParseRole(req.UserType)
	if role == "" {
		role = s.dispatcher.RoleHint()
	}

	result := s.loginForm.Submit(r.Context(), forms.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})

	if result.State == forms.StateSuccess && result.Auth != nil {
		if _, err := s.dispatcher.LoginSuccess(r.Context(), *result.Auth); err != nil {
			WriteAppError(w, err)
			return
		}
	}

	code := http.StatusOK
	if result.State == forms.StateEditing {
		code = http.StatusBadRequest
	} else if result.State == forms.StateFailed {
		code = http.StatusUnprocessableEntity
	}
	WriteJSON(w, code, formView{
		FormState: result.State,
		Errors:    result.Errors,
		Session:   s.currentView(),
	})
}

// handleRegisterStudent drives the student registration form.
func (s *Server) handleRegisterStudent(w http.ResponseWriter, r *http.Request) {
	var req ports.StudentSignup
	if !DecodeJSON(w, r, &req) {
		return
	}
	s.writeRegistration(w, r, s.studentForm.Submit(r.Context(), req))
}

// handleRegisterRecruiter drives the recruiter registration form.
func (s *Server) handleRegisterRecruiter(w http.ResponseWriter, r *http.Request) {
	var req ports.RecruiterSignup
	if !DecodeJSON(w, r, &req) {
		return
	}
	s.writeRegistration(w, r, s.recruiterForm.Submit(r.Context(), req))
}

func (s *Server) writeRegistration(w http.ResponseWriter, r *http.Request, result forms.Result) {
	if result.State == forms.StateSuccess && result.Auth != nil {
		if _, err := s.dispatcher.LoginSuccess(r.Context(), *result.Auth); err != nil {
			WriteAppError(w, err)
			return
		}
	}

	code := http.StatusOK
	switch result.State {
	case forms.StateSuccess:
		code = http.StatusCreated
	case forms.StateEditing:
		code = http.StatusBadRequest
	case forms.StateFailed:
		code = http.StatusUnprocessableEntity
	}
	WriteJSON(w, code, formView{
		FormState: result.State,
		Errors:    result.Errors,
		Session:   s.currentView(),
	})
}

// handleLogout ends the session. Local state is cleared even when the
// gateway call fails, so this always lands on the landing screen.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.dispatcher.Logout(r.Context())
	WriteJSON(w, http.StatusOK, s.currentView())
}

// handleCheckAuth asks the gateway whether the persisted session is still
// valid. A 401 clears local identity and redirects to landing.
func (s *Server) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	result, err := s.gateway.CheckAuth(r.Context())
	if err != nil {
		if _, invalid := s.dispatcher.HandleSessionInvalid(r.Context(), err); invalid {
			w.Header().Set("X-Redirect-Screen", string(nav.ScreenWelcome))
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "session_invalid",
				Err:     errors.New("session is no longer valid"),
			})
			return
		}
		WriteAppError(w, err)
		return
	}

	user := result.User
	if err := s.store.SetSession(r.Context(), &user, result.Profile); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, s.currentView())
}

// handleProfile refreshes the role-specific profile from the gateway.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.gateway.Profile(r.Context())
	if err != nil {
		if _, invalid := s.dispatcher.HandleSessionInvalid(r.Context(), err); invalid {
			w.Header().Set("X-Redirect-Screen", string(nav.ScreenWelcome))
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "session_invalid",
				Err:     errors.New("session is no longer valid"),
			})
			return
		}
		WriteAppError(w, err)
		return
	}

	if err := s.store.SetProfile(r.Context(), &profile); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// handleNavigate attempts a screen transition and reports where the portal
// landed.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Screen string `json:"screen"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	decision := s.dispatcher.Navigate(nav.ScreenID(req.Screen))
	WriteJSON(w, http.StatusOK, map[string]any{
		"allowed": decision.Allowed,
		"reason":  decision.Reason,
		"session": s.currentView(),
	})
}

// handleSetAPIKey stores the text-generation credential. Independent of the
// login lifecycle.
func (s *Server) handleSetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"api_key"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	s.store.SetCredential(r.Context(), req.APIKey)
	WriteJSON(w, http.StatusOK, map[string]bool{"configured": req.APIKey != ""})
}
