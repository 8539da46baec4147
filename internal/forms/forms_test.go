package forms

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/auth"
	apperrors "github.com/tpo-portal/tpo-ui-api/internal/errors"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

// fakeGateway counts calls and returns a scripted result. block, when set,
// holds each call open until released so in-flight gating can be observed.
type fakeGateway struct {
	calls   atomic.Int64
	err     error
	result  ports.AuthResult
	block   chan struct{}
	started chan struct{}
}

func (f *fakeGateway) invoke() (ports.AuthResult, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return ports.AuthResult{}, f.err
	}
	return f.result, nil
}

func (f *fakeGateway) Login(context.Context, ports.Credentials) (ports.AuthResult, error) {
	return f.invoke()
}

func (f *fakeGateway) RegisterStudent(context.Context, ports.StudentSignup) (ports.AuthResult, error) {
	return f.invoke()
}

func (f *fakeGateway) RegisterRecruiter(context.Context, ports.RecruiterSignup) (ports.AuthResult, error) {
	return f.invoke()
}

func (f *fakeGateway) Logout(context.Context) error {
	_, err := f.invoke()
	return err
}

func (f *fakeGateway) CheckAuth(ctx context.Context) (ports.AuthResult, error) {
	return f.invoke()
}

func (f *fakeGateway) Profile(context.Context) (auth.Profile, error) {
	_, err := f.invoke()
	return auth.Profile{}, err
}

func studentResult() ports.AuthResult {
	return ports.AuthResult{
		User: auth.Identity{ID: 1, Email: "s@uni.edu", UserType: auth.RoleStudent},
	}
}

func validLogin() LoginInput {
	return LoginInput{Email: "s@uni.edu", Password: "secret1", Role: auth.RoleStudent}
}

func TestLoginForm_BadEmailNeverReachesGateway(t *testing.T) {
	gw := &fakeGateway{result: studentResult()}
	form := NewLoginForm(gw)

	in := validLogin()
	in.Email = "bad"
	result := form.Submit(context.Background(), in)

	assert.Equal(t, StateEditing, result.State)
	assert.Contains(t, result.Errors, "email")
	assert.Zero(t, gw.calls.Load(), "validation failure must not call the gateway")
}

func TestLoginForm_ShortPassword(t *testing.T) {
	gw := &fakeGateway{}
	form := NewLoginForm(gw)

	in := validLogin()
	in.Password = "abc12"
	result := form.Submit(context.Background(), in)

	assert.Equal(t, StateEditing, result.State)
	assert.Contains(t, result.Errors, "password")
	assert.Zero(t, gw.calls.Load())
}

func TestLoginForm_Success(t *testing.T) {
	gw := &fakeGateway{result: studentResult()}
	form := NewLoginForm(gw)

	result := form.Submit(context.Background(), validLogin())

	require.Equal(t, StateSuccess, result.State)
	require.NotNil(t, result.Auth)
	assert.Equal(t, auth.RoleStudent, result.Auth.User.UserType)
	assert.Equal(t, int64(1), gw.calls.Load())
}

func TestLoginForm_RejectedCredentials(t *testing.T) {
	gw := &fakeGateway{err: apperrors.SessionInvalid("bad credentials")}
	form := NewLoginForm(gw)

	result := form.Submit(context.Background(), validLogin())

	assert.Equal(t, StateFailed, result.State)
	assert.Contains(t, result.Errors, "submit")
	assert.Nil(t, result.Auth)
}

func TestLoginForm_RetryAfterFailure(t *testing.T) {
	gw := &fakeGateway{err: apperrors.Gateway("down")}
	form := NewLoginForm(gw)

	first := form.Submit(context.Background(), validLogin())
	require.Equal(t, StateFailed, first.State)

	gw.err = nil
	gw.result = studentResult()
	second := form.Submit(context.Background(), validLogin())
	assert.Equal(t, StateSuccess, second.State)
}

func TestLoginForm_DoubleSubmitIsNoOp(t *testing.T) {
	gw := &fakeGateway{
		result:  studentResult(),
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	form := NewLoginForm(gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		form.Submit(context.Background(), validLogin())
	}()

	<-gw.started // first submit is now inside the gateway call
	second := form.Submit(context.Background(), validLogin())
	assert.Equal(t, StateSubmitting, second.State)

	close(gw.block)
	wg.Wait()
	assert.Equal(t, int64(1), gw.calls.Load(), "second submit must not reach the gateway")
	assert.Equal(t, StateSuccess, form.State())
}

func validStudentSignup() ports.StudentSignup {
	return ports.StudentSignup{
		Email:           "s@uni.edu",
		Password:        "Abcdef12",
		ConfirmPassword: "Abcdef12",
		FirstName:       "Asha",
		LastName:        "Rao",
		PhoneNumber:     "+91 98765 43210",
		StudentID:       "S42",
		University:      "IIT",
		Department:      "CSE",
		GraduationYear:  "2027",
		AgreeTerms:      true,
		AgreePlacement:  true,
	}
}

func TestStudentRegistration_WeakPasswordBlocked(t *testing.T) {
	gw := &fakeGateway{}
	form := NewStudentRegistrationForm(gw)

	in := validStudentSignup()
	in.Password = "abc"
	in.ConfirmPassword = "abc"
	result := form.Submit(context.Background(), in)

	assert.Equal(t, StateEditing, result.State)
	assert.Contains(t, result.Errors, "password")
	assert.Zero(t, gw.calls.Load())
}

func TestStudentRegistration_StrongPasswordSubmitsOnce(t *testing.T) {
	gw := &fakeGateway{result: studentResult()}
	form := NewStudentRegistrationForm(gw)

	result := form.Submit(context.Background(), validStudentSignup())

	assert.Equal(t, StateSuccess, result.State)
	assert.Equal(t, int64(1), gw.calls.Load())
}

func TestStudentRegistration_ConfirmMismatch(t *testing.T) {
	gw := &fakeGateway{}
	form := NewStudentRegistrationForm(gw)

	in := validStudentSignup()
	in.ConfirmPassword = "Abcdef13"
	result := form.Submit(context.Background(), in)

	assert.Equal(t, StateEditing, result.State)
	assert.Contains(t, result.Errors, "confirm_password")
}

func TestStudentRegistration_AgreementsRequired(t *testing.T) {
	in := validStudentSignup()
	in.AgreeTerms = false
	in.AgreePlacement = false

	errs := ValidateStudentSignup(in)
	assert.Contains(t, errs, "agree_terms")
	assert.Contains(t, errs, "agree_placement")
}

func validRecruiterSignup() ports.RecruiterSignup {
	return ports.RecruiterSignup{
		Email:           "r@acme.com",
		Password:        "Abcdef12",
		ConfirmPassword: "Abcdef12",
		FirstName:       "Ravi",
		LastName:        "Mehta",
		PhoneNumber:     "(080) 2345-6789",
		CompanyName:     "Acme",
		Position:        "HR Lead",
		CompanyWebsite:  "https://acme.example.com",
		CompanySize:     "51-200",
		AgreeTerms:      true,
		AgreeConduct:    true,
	}
}

func TestRecruiterRegistration_WebsiteMustBeHTTP(t *testing.T) {
	in := validRecruiterSignup()
	in.CompanyWebsite = "acme.example.com"

	errs := ValidateRecruiterSignup(in)
	assert.Contains(t, errs, "company_website")
}

func TestRecruiterRegistration_Success(t *testing.T) {
	gw := &fakeGateway{result: ports.AuthResult{
		User: auth.Identity{ID: 2, Email: "r@acme.com", UserType: auth.RoleRecruiter},
	}}
	form := NewRecruiterRegistrationForm(gw)

	result := form.Submit(context.Background(), validRecruiterSignup())
	assert.Equal(t, StateSuccess, result.State)
	assert.Equal(t, int64(1), gw.calls.Load())
}

func TestRegistration_GatewayFieldErrorsSurface(t *testing.T) {
	gw := &fakeGateway{err: apperrors.GatewayFields("rejected", map[string]string{"email": "already registered"})}
	form := NewStudentRegistrationForm(gw)

	result := form.Submit(context.Background(), validStudentSignup())
	assert.Equal(t, StateEditing, result.State)
	assert.Equal(t, "already registered", result.Errors["email"])
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, validPhone("+91 98765 43210"))
	assert.True(t, validPhone("(080) 2345-6789"))
	assert.False(t, validPhone("12345"))
	assert.False(t, validPhone("abcdefghijk"))
}
