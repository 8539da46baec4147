package forms

import (
	"context"
	"errors"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/auth"
	apperrors "github.com/tpo-portal/tpo-ui-api/internal/errors"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

// LoginInput is what the login screen collects.
type LoginInput struct {
	Email    string
	Password string
	Role     auth.Role
}

// LoginForm drives a login attempt against the gateway.
type LoginForm struct {
	machine
	gateway ports.AuthGateway
}

// NewLoginForm creates a login form bound to the gateway.
func NewLoginForm(gw ports.AuthGateway) *LoginForm {
	return &LoginForm{machine: newMachine(), gateway: gw}
}

// ValidateLogin checks login inputs and returns a field-keyed error map,
// empty when the inputs are acceptable.
func ValidateLogin(in LoginInput) map[string]string {
	errs := map[string]string{}
	if !validEmail(in.Email) {
		errs["email"] = "Enter a valid email address."
	}
	if in.Password == "" {
		errs["password"] = "Password is required."
	} else if len(in.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters."
	}
	if !in.Role.Valid() {
		errs["user_type"] = "Choose a role to sign in as."
	}
	return errs
}

// Submit runs validation and, only when it passes, calls the gateway.
// A submit while another is in flight is a no-op returning the current
// state. Gateway failures land in failed with a single submit error;
// a 401 is reported to the caller as ErrCodeSessionInvalid so persisted
// identity can be cleared.
func (f *LoginForm) Submit(ctx context.Context, in LoginInput) Result {
	if !f.beginSubmit() {
		return Result{State: f.State(), Errors: f.Errors()}
	}

	if errs := ValidateLogin(in); len(errs) > 0 {
		return f.failValidation(errs)
	}

	f.startNetwork()
	result, err := f.gateway.Login(ctx, ports.Credentials{
		Email:    in.Email,
		Password: in.Password,
		UserType: in.Role,
	})
	if err != nil {
		if apperrors.IsSessionInvalid(err) {
			return f.fail("Invalid email or password.")
		}
		if fields := apperrors.GetFields(err); len(fields) > 0 {
			return f.failValidation(fields)
		}
		return f.fail(gatewayMessage(err))
	}

	return f.succeed(&result)
}

// gatewayMessage extracts a renderable message from a gateway error.
func gatewayMessage(err error) string {
	if apperrors.IsTimeout(err) {
		return "The request timed out. Please try again."
	}
	var appErr *apperrors.AppError
	if apperrors.IsGateway(err) && errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}
