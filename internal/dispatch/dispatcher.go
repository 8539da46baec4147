package dispatch

// Package dispatch is the screen state machine for the portal. It owns the
// current screen, consults nav.Authorize on every transition into a
// restricted subtree, and coordinates the session store on login and
// logout.

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/auth"
	"github.com/tpo-portal/tpo-ui-api/internal/domain/nav"
	apperrors "github.com/tpo-portal/tpo-ui-api/internal/errors"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
	"github.com/tpo-portal/tpo-ui-api/internal/session"
)

// Dispatcher drives screen transitions for a single portal instance.
type Dispatcher struct {
	mu       sync.Mutex
	current  nav.ScreenID
	roleHint auth.Role

	store   *session.Store
	gateway ports.AuthGateway
	log     *slog.Logger
}

// New creates a dispatcher starting on the landing screen.
func New(store *session.Store, gateway ports.AuthGateway, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		current: nav.ScreenWelcome,
		store:   store,
		gateway: gateway,
		log:     log,
	}
}

// Current returns the screen the portal is showing.
func (d *Dispatcher) Current() nav.ScreenID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// RoleHint returns the role chosen on the landing screen, informing which
// login variant to render. Empty when none was chosen.
func (d *Dispatcher) RoleHint() auth.Role {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.roleHint
}

// SelectRole records the role chosen on the landing screen and moves to
// login. Every role goes through login; no role gets a direct path into an
// authenticated dashboard.
func (d *Dispatcher) SelectRole(role auth.Role) nav.ScreenID {
	d.mu.Lock()
	defer d.mu.Unlock()
	if role.Valid() {
		d.roleHint = role
	}
	d.current = nav.ScreenLogin
	return d.current
}

// Navigate attempts a transition to dest. The destination is authorized
// against the live session; the portal lands on the decision's target
// either way. Unknown destinations resolve to the landing screen.
func (d *Dispatcher) Navigate(dest nav.ScreenID) nav.Decision {
	decision := nav.Authorize(dest, d.store.Session())

	d.mu.Lock()
	d.current = decision.Target
	d.mu.Unlock()

	if !decision.Allowed {
		d.log.Info("navigation redirected",
			"requested", string(dest),
			"target", string(decision.Target),
			"reason", string(decision.Reason))
	}
	return decision
}

// LoginSuccess installs the authenticated result and moves to the role's
// first screen. Session mutation and the screen change happen under the
// dispatcher lock so no observer sees a signed-in session on a public
// screen.
func (d *Dispatcher) LoginSuccess(ctx context.Context, result ports.AuthResult) (nav.ScreenID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	user := result.User
	if err := d.store.SetSession(ctx, &user, result.Profile); err != nil {
		return d.current, err
	}
	if result.Token != "" {
		d.store.SetToken(ctx, result.Token)
	}

	d.roleHint = ""
	d.current = nav.InitialScreen(user.UserType)
	return d.current, nil
}

// Logout ends the session. The gateway call is best effort: local state is
// cleared and the portal returns to the landing screen even when the
// network call fails.
func (d *Dispatcher) Logout(ctx context.Context) nav.ScreenID {
	if err := d.gateway.Logout(ctx); err != nil {
		d.log.Warn("gateway logout failed, clearing local session anyway", "error", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.store.ClearSession(ctx)
	d.roleHint = ""
	d.current = nav.ScreenWelcome
	return d.current
}

// HandleSessionInvalid reacts to a 401 from any gateway call: persisted
// identity is cleared and the portal hard-redirects to the landing screen.
func (d *Dispatcher) HandleSessionInvalid(ctx context.Context, err error) (nav.ScreenID, bool) {
	if !apperrors.IsSessionInvalid(err) {
		return d.Current(), false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.store.ClearSession(ctx)
	d.roleHint = ""
	d.current = nav.ScreenWelcome
	return d.current, true
}

// RestoreSession replays persisted identity at startup and lands on the
// appropriate screen: the role's dashboard when a valid identity was
// persisted, the landing screen otherwise.
func (d *Dispatcher) RestoreSession(ctx context.Context) nav.ScreenID {
	d.store.RestoreFromPersistence(ctx)

	sess := d.store.Session()
	d.mu.Lock()
	defer d.mu.Unlock()
	if sess.Authenticated() {
		d.current = nav.DefaultDashboard(sess.Role)
	} else {
		d.current = nav.ScreenWelcome
	}
	return d.current
}
