package forms

// Package forms implements the login and registration state machines.
// Each form moves editing → validating → submitting → {success, failed};
// validation failures return to editing with a field-keyed error map and
// never reach the gateway.

import (
	"regexp"
	"strings"
	"sync"

	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

// State is the lifecycle state of a form.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// submitErrorKey is the error-map key for gateway-level failures, as
// opposed to per-field validation errors.
const submitErrorKey = "submit"

var (
	reEmail   = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	rePhone   = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
	reWebsite = regexp.MustCompile(`^https?://.+`)
	reLower   = regexp.MustCompile(`[a-z]`)
	reUpper   = regexp.MustCompile(`[A-Z]`)
	reDigit   = regexp.MustCompile(`\d`)
)

// Result is the terminal outcome of a submit attempt.
type Result struct {
	State  State
	Errors map[string]string
	Auth   *ports.AuthResult
}

// machine is the shared submit-gating core embedded by each form.
type machine struct {
	mu     sync.Mutex
	state  State
	errors map[string]string
}

func newMachine() machine {
	return machine{state: StateEditing, errors: map[string]string{}}
}

// State returns the current form state.
func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Errors returns a copy of the current error map.
func (m *machine) Errors() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

// beginSubmit moves the form into validating and reports whether the
// caller won the submit. A form already submitting refuses re-entry.
func (m *machine) beginSubmit() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateValidating || m.state == StateSubmitting {
		return false
	}
	m.state = StateValidating
	m.errors = map[string]string{}
	return true
}

// failValidation returns to editing with the field error map.
func (m *machine) failValidation(errs map[string]string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateEditing
	m.errors = errs
	return Result{State: StateEditing, Errors: errs}
}

// startNetwork moves validating → submitting.
func (m *machine) startNetwork() {
	m.mu.Lock()
	m.state = StateSubmitting
	m.mu.Unlock()
}

// succeed terminates the attempt in success.
func (m *machine) succeed(auth *ports.AuthResult) Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateSuccess
	m.errors = map[string]string{}
	return Result{State: StateSuccess, Auth: auth}
}

// fail terminates the attempt in failed with a single submit error.
// The form is retryable from here: beginSubmit accepts failed.
func (m *machine) fail(message string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateFailed
	m.errors = map[string]string{submitErrorKey: message}
	return Result{State: StateFailed, Errors: map[string]string{submitErrorKey: message}}
}

func validEmail(email string) bool {
	return reEmail.MatchString(strings.TrimSpace(email))
}

// validStrongPassword enforces the registration rule: at least 8 characters
// with an upper-case letter, a lower-case letter, and a digit.
func validStrongPassword(password string) bool {
	return len(password) >= 8 &&
		reLower.MatchString(password) &&
		reUpper.MatchString(password) &&
		reDigit.MatchString(password)
}

func validPhone(phone string) bool {
	return rePhone.MatchString(strings.TrimSpace(phone))
}

func validWebsite(url string) bool {
	return reWebsite.MatchString(strings.TrimSpace(url))
}
