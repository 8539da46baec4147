package session

// Package session holds the process-wide authenticated state of the portal
// client. A single Store instance is shared by the dispatcher, the forms
// layer, and the HTTP handlers; a mutex keeps readers consistent.

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/auth"
	apperrors "github.com/tpo-portal/tpo-ui-api/internal/errors"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

// Persistence keys. These names are part of the on-disk contract and must
// stay stable across releases.
const (
	keyUserData      = "user_data"
	keyUserProfile   = "user_profile"
	keyAuthToken     = "auth_token"
	keyAPICredential = "gemini-api-key"
)

// Store is the process-wide session store.
//
// Invariant: role is non-empty exactly when user is non-nil. The API
// credential lives outside the login lifecycle: it survives ClearSession
// and is persisted on every change.
type Store struct {
	mu    sync.RWMutex
	state ports.StateStore
	log   *slog.Logger

	sess       auth.Session
	token      string
	credential string
}

// NewStore creates a session store backed by the given persistence.
func NewStore(state ports.StateStore, log *slog.Logger) *Store {
	return &Store{state: state, log: log}
}

// Session returns a copy of the current session.
func (s *Store) Session() auth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

// Role returns the current role, empty when signed out.
func (s *Store) Role() auth.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.Role
}

// SetSession installs a new identity and optional profile, derives the role
// from the identity, and persists both. A profile without a user violates
// the role/user invariant and is rejected.
func (s *Store) SetSession(ctx context.Context, user *auth.Identity, profile *auth.Profile) error {
	if user == nil {
		if profile != nil {
			return apperrors.InvalidState("profile supplied without a user")
		}
		return s.ClearSession(ctx)
	}
	if !user.UserType.Valid() {
		return apperrors.InvalidState("identity carries an unknown role")
	}

	s.mu.Lock()
	s.sess = auth.Session{Role: user.UserType, User: user, Profile: profile}
	s.mu.Unlock()

	s.persistIdentity(ctx, user, profile)
	return nil
}

// SetProfile replaces the profile for the signed-in user.
func (s *Store) SetProfile(ctx context.Context, profile *auth.Profile) error {
	s.mu.Lock()
	if s.sess.User == nil {
		s.mu.Unlock()
		return apperrors.InvalidState("no signed-in user to attach a profile to")
	}
	s.sess.Profile = profile
	s.mu.Unlock()

	s.persistProfile(ctx, profile)
	return nil
}

// ClearSession wipes identity, profile, role, and token. It is idempotent
// and never fails: persistence trouble is logged and swallowed so logout
// always completes locally. The API credential is left in place.
func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	s.sess = auth.Session{}
	s.token = ""
	s.mu.Unlock()

	for _, key := range []string{keyUserData, keyUserProfile, keyAuthToken} {
		if err := s.state.Delete(ctx, key); err != nil {
			s.log.Warn("clearing persisted state failed", "key", key, "error", err)
		}
	}
	return nil
}

// Token returns the persisted bearer token, empty when absent.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken stores and persists the bearer token.
func (s *Store) SetToken(ctx context.Context, token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if token == "" {
		if err := s.state.Delete(ctx, keyAuthToken); err != nil {
			s.log.Warn("deleting persisted token failed", "error", err)
		}
		return
	}
	if err := s.state.Set(ctx, keyAuthToken, []byte(token)); err != nil {
		s.log.Warn("persisting token failed", "error", err)
	}
}

// Credential returns the stored text-generation API credential.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// SetCredential stores and persists the text-generation API credential.
// Independent of the login lifecycle.
func (s *Store) SetCredential(ctx context.Context, credential string) {
	s.mu.Lock()
	s.credential = credential
	s.mu.Unlock()

	if credential == "" {
		if err := s.state.Delete(ctx, keyAPICredential); err != nil {
			s.log.Warn("deleting persisted credential failed", "error", err)
		}
		return
	}
	if err := s.state.Set(ctx, keyAPICredential, []byte(credential)); err != nil {
		s.log.Warn("persisting credential failed", "error", err)
	}
}

// RestoreFromPersistence loads identity, profile, token, and credential
// from the state store. Malformed or partial persisted data behaves as
// absent; restore never fails the startup path.
func (s *Store) RestoreFromPersistence(ctx context.Context) {
	var user *auth.Identity
	if raw, err := s.state.Get(ctx, keyUserData); err == nil {
		var id auth.Identity
		if jsonErr := json.Unmarshal(raw, &id); jsonErr == nil && id.UserType.Valid() {
			user = &id
		} else {
			s.log.Warn("discarding malformed persisted identity", "error", jsonErr)
			if delErr := s.state.Delete(ctx, keyUserData); delErr != nil {
				s.log.Warn("deleting malformed identity failed", "error", delErr)
			}
		}
	}

	var profile *auth.Profile
	if user != nil {
		if raw, err := s.state.Get(ctx, keyUserProfile); err == nil {
			var p auth.Profile
			if jsonErr := json.Unmarshal(raw, &p); jsonErr == nil {
				profile = &p
			}
		}
	}

	var token string
	if raw, err := s.state.Get(ctx, keyAuthToken); err == nil {
		token = string(raw)
	}

	var credential string
	if raw, err := s.state.Get(ctx, keyAPICredential); err == nil {
		credential = string(raw)
	}

	s.mu.Lock()
	if user != nil {
		s.sess = auth.Session{Role: user.UserType, User: user, Profile: profile}
	}
	s.token = token
	s.credential = credential
	s.mu.Unlock()
}

func (s *Store) persistIdentity(ctx context.Context, user *auth.Identity, profile *auth.Profile) {
	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Warn("encoding identity failed", "error", err)
		return
	}
	if err := s.state.Set(ctx, keyUserData, raw); err != nil {
		s.log.Warn("persisting identity failed", "error", err)
	}
	s.persistProfile(ctx, profile)
}

func (s *Store) persistProfile(ctx context.Context, profile *auth.Profile) {
	if profile == nil {
		if err := s.state.Delete(ctx, keyUserProfile); err != nil {
			s.log.Warn("deleting persisted profile failed", "error", err)
		}
		return
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		s.log.Warn("encoding profile failed", "error", err)
		return
	}
	if err := s.state.Set(ctx, keyUserProfile, raw); err != nil {
		s.log.Warn("persisting profile failed", "error", err)
	}
}
