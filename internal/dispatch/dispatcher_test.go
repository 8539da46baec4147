package dispatch

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/auth"
	"github.com/tpo-portal/tpo-ui-api/internal/domain/nav"
	apperrors "github.com/tpo-portal/tpo-ui-api/internal/errors"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
	"github.com/tpo-portal/tpo-ui-api/internal/session"
)

// memState is a minimal in-memory StateStore.
type memState struct {
	data map[string][]byte
}

func newMemState() *memState { return &memState{data: map[string][]byte{}} }

func (m *memState) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return v, nil
}

func (m *memState) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memState) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// fakeGateway only cares about Logout behavior here.
type fakeGateway struct {
	logoutErr   error
	logoutCalls int
}

func (f *fakeGateway) Login(context.Context, ports.Credentials) (ports.AuthResult, error) {
	return ports.AuthResult{}, nil
}

func (f *fakeGateway) RegisterStudent(context.Context, ports.StudentSignup) (ports.AuthResult, error) {
	return ports.AuthResult{}, nil
}

func (f *fakeGateway) RegisterRecruiter(context.Context, ports.RecruiterSignup) (ports.AuthResult, error) {
	return ports.AuthResult{}, nil
}

func (f *fakeGateway) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeGateway) CheckAuth(context.Context) (ports.AuthResult, error) {
	return ports.AuthResult{}, nil
}

func (f *fakeGateway) Profile(context.Context) (auth.Profile, error) {
	return auth.Profile{}, nil
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *session.Store, *fakeGateway, *memState) {
	t.Helper()
	state := newMemState()
	log := slog.New(slog.DiscardHandler)
	store := session.NewStore(state, log)
	gw := &fakeGateway{}
	return New(store, gw, log), store, gw, state
}

func studentResult() ports.AuthResult {
	return ports.AuthResult{
		User:  auth.Identity{ID: 1, Email: "s@uni.edu", UserType: auth.RoleStudent},
		Token: "tok-1",
	}
}

func TestDispatcher_StartsOnWelcome(t *testing.T) {
	d, _, _, _ := newTestDispatcher(t)
	assert.Equal(t, nav.ScreenWelcome, d.Current())
}

func TestDispatcher_SelectRole_AllRolesGoToLogin(t *testing.T) {
	for _, role := range []auth.Role{auth.RoleStudent, auth.RoleRecruiter, auth.RoleAdmin} {
		d, _, _, _ := newTestDispatcher(t)
		got := d.SelectRole(role)
		assert.Equal(t, nav.ScreenLogin, got, "role %s must pass through login", role)
		assert.Equal(t, role, d.RoleHint())
	}
}

func TestDispatcher_LoginSuccess_RoutesByRole(t *testing.T) {
	tests := []struct {
		role auth.Role
		want nav.ScreenID
	}{
		{auth.RoleStudent, nav.ScreenStudentOnboarding},
		{auth.RoleRecruiter, nav.ScreenRecruiterDashboard},
		{auth.RoleAdmin, nav.ScreenAdminDashboard},
	}
	for _, tt := range tests {
		d, store, _, _ := newTestDispatcher(t)
		result := ports.AuthResult{User: auth.Identity{ID: 1, UserType: tt.role}}

		screen, err := d.LoginSuccess(context.Background(), result)
		require.NoError(t, err)
		assert.Equal(t, tt.want, screen)
		assert.Equal(t, tt.role, store.Role())
	}
}

func TestDispatcher_LoginSuccess_PersistsToken(t *testing.T) {
	d, store, _, state := newTestDispatcher(t)
	_, err := d.LoginSuccess(context.Background(), studentResult())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", store.Token())
	assert.Contains(t, state.data, "auth_token")
}

func TestDispatcher_Navigate_StudentToAdminScreenLandsOnWelcome(t *testing.T) {
	d, _, _, _ := newTestDispatcher(t)
	_, err := d.LoginSuccess(context.Background(), studentResult())
	require.NoError(t, err)

	decision := d.Navigate(nav.ScreenAdminDashboard)
	assert.False(t, decision.Allowed)
	assert.Equal(t, nav.ScreenWelcome, d.Current())
}

func TestDispatcher_Navigate_UnknownScreenLandsOnWelcome(t *testing.T) {
	d, _, _, _ := newTestDispatcher(t)
	_, err := d.LoginSuccess(context.Background(), studentResult())
	require.NoError(t, err)

	d.Navigate(nav.ScreenID("no_such_screen"))
	assert.Equal(t, nav.ScreenWelcome, d.Current())
}

func TestDispatcher_Navigate_AllowedScreen(t *testing.T) {
	d, _, _, _ := newTestDispatcher(t)
	_, err := d.LoginSuccess(context.Background(), studentResult())
	require.NoError(t, err)

	decision := d.Navigate(nav.ScreenResumeOptimizer)
	assert.True(t, decision.Allowed)
	assert.Equal(t, nav.ScreenResumeOptimizer, d.Current())
}

func TestDispatcher_Logout_ClearsEvenWhenGatewayFails(t *testing.T) {
	d, store, gw, state := newTestDispatcher(t)
	_, err := d.LoginSuccess(context.Background(), studentResult())
	require.NoError(t, err)

	gw.logoutErr = apperrors.Gateway("network down")
	got := d.Logout(context.Background())

	assert.Equal(t, nav.ScreenWelcome, got)
	assert.Equal(t, 1, gw.logoutCalls)
	assert.False(t, store.Session().Authenticated())
	assert.NotContains(t, state.data, "user_data")
	assert.NotContains(t, state.data, "auth_token")
}

func TestDispatcher_HandleSessionInvalid(t *testing.T) {
	d, store, _, _ := newTestDispatcher(t)
	_, err := d.LoginSuccess(context.Background(), studentResult())
	require.NoError(t, err)

	screen, handled := d.HandleSessionInvalid(context.Background(), apperrors.SessionInvalid("gone"))
	assert.True(t, handled)
	assert.Equal(t, nav.ScreenWelcome, screen)
	assert.False(t, store.Session().Authenticated())

	// Other errors are not a session teardown.
	_, handled = d.HandleSessionInvalid(context.Background(), apperrors.Gateway("down"))
	assert.False(t, handled)
}

func TestDispatcher_RestoreSession(t *testing.T) {
	state := newMemState()
	log := slog.New(slog.DiscardHandler)

	// A prior process persisted a recruiter identity.
	firstStore := session.NewStore(state, log)
	user := auth.Identity{ID: 7, Email: "r@acme.com", UserType: auth.RoleRecruiter}
	require.NoError(t, firstStore.SetSession(context.Background(), &user, nil))

	store := session.NewStore(state, log)
	d := New(store, &fakeGateway{}, log)

	screen := d.RestoreSession(context.Background())
	assert.Equal(t, nav.ScreenRecruiterDashboard, screen)
	assert.Equal(t, auth.RoleRecruiter, store.Role())
}

func TestDispatcher_RestoreSession_NothingPersisted(t *testing.T) {
	d, _, _, _ := newTestDispatcher(t)
	assert.Equal(t, nav.ScreenWelcome, d.RestoreSession(context.Background()))
}
