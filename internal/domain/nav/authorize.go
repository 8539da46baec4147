package nav

import "github.com/tpo-portal/tpo-ui-api/internal/domain/auth"

// Reason explains a navigation decision. It is informational only; callers
// branch on Allowed and Target.
type Reason string

const (
	ReasonAllowed         Reason = "allowed"
	ReasonAlreadySignedIn Reason = "already_signed_in"
	ReasonLoginRequired   Reason = "login_required"
	ReasonRoleMismatch    Reason = "role_mismatch"
	ReasonUnknownScreen   Reason = "unknown_screen"
)

// Decision is the outcome of an authorization check. When Allowed is false,
// Target names the screen the caller should go to instead.
type Decision struct {
	Allowed bool
	Target  ScreenID
	Reason  Reason
}

// Authorize decides whether a session may land on a destination screen.
// It is a pure function of its inputs: no clock, no I/O, no globals.
//
// Rules:
//   - unknown destination resolves to the landing screen
//   - public destination while signed in redirects to the role's dashboard
//   - restricted destination without a session redirects to login
//   - restricted destination with the wrong role redirects to the landing
//     screen, never an error state
func Authorize(dest ScreenID, sess auth.Session) Decision {
	if !Known(dest) {
		return Decision{Allowed: false, Target: ScreenWelcome, Reason: ReasonUnknownScreen}
	}

	roles, restricted := RequiredRoles(dest)
	if !restricted {
		if sess.Authenticated() {
			return Decision{
				Allowed: false,
				Target:  DefaultDashboard(sess.Role),
				Reason:  ReasonAlreadySignedIn,
			}
		}
		return Decision{Allowed: true, Target: dest, Reason: ReasonAllowed}
	}

	if !sess.Authenticated() {
		return Decision{Allowed: false, Target: ScreenLogin, Reason: ReasonLoginRequired}
	}
	for _, role := range roles {
		if sess.Role == role {
			return Decision{Allowed: true, Target: dest, Reason: ReasonAllowed}
		}
	}
	return Decision{Allowed: false, Target: ScreenWelcome, Reason: ReasonRoleMismatch}
}
