package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/auth"
	apperrors "github.com/tpo-portal/tpo-ui-api/internal/errors"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, tokens)
}

func TestClient_Login_Success(t *testing.T) {
	var gotPath, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"user": {"id": 5, "email": "s@uni.edu", "first_name": "Asha", "last_name": "Rao", "user_type": "student"},
			"profile": {"university": "IIT", "student_id": "S5"},
			"token": "tok-xyz"
		}`))
	}, staticToken("old-token"))

	result, err := client.Login(context.Background(), ports.Credentials{
		Email: "s@uni.edu", Password: "secret1", UserType: auth.RoleStudent,
	})
	require.NoError(t, err)

	assert.Equal(t, "/login/", gotPath)
	assert.Equal(t, "Bearer old-token", gotAuth)
	assert.Equal(t, int64(5), result.User.ID)
	assert.Equal(t, auth.RoleStudent, result.User.UserType)
	require.NotNil(t, result.Profile)
	assert.Equal(t, "IIT", result.Profile.University)
	assert.Equal(t, "tok-xyz", result.Token)
}

func TestClient_Login_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Invalid credentials"}`))
	}, nil)

	_, err := client.Login(context.Background(), ports.Credentials{
		Email: "s@uni.edu", Password: "wrong1", UserType: auth.RoleStudent,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsSessionInvalid(err))
}

func TestClient_RegisterStudent_FieldErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/register/student/", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Registration failed", "errors": {"email": "already registered"}}`))
	}, nil)

	_, err := client.RegisterStudent(context.Background(), ports.StudentSignup{Email: "dup@uni.edu"})
	require.Error(t, err)
	assert.True(t, apperrors.IsGateway(err))
	assert.Equal(t, map[string]string{"email": "already registered"}, apperrors.GetFields(err))
}

func TestClient_Logout_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // gone before the call

	client := NewClient(srv.URL, time.Second, nil)
	err := client.Logout(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsGateway(err))
}

func TestClient_CheckAuth_MissingUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, nil)

	_, err := client.CheckAuth(context.Background())
	assert.True(t, apperrors.IsGateway(err))
}

func TestClient_Profile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/profile/", r.URL.Path)
		_, _ = w.Write([]byte(`{"profile": {"company_name": "Acme", "position": "HR"}}`))
	}, nil)

	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme", profile.CompanyName)
}

func TestClient_NoTokenHeaderWhenEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"user": {"id": 1, "user_type": "student"}}`))
	}, staticToken(""))

	_, err := client.CheckAuth(context.Background())
	require.NoError(t, err)
}
