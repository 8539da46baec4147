package gateway

// Package gateway is the HTTP client for the remote auth service. The wire
// contract is fixed by the service: trailing-slash POST endpoints, a
// {user, profile} success envelope, and an {error, errors} failure envelope.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/auth"
	apperrors "github.com/tpo-portal/tpo-ui-api/internal/errors"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

// TokenSource supplies the persisted bearer token, empty when absent.
type TokenSource interface {
	Token() string
}

// Client talks to the auth gateway. It implements ports.AuthGateway.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// noToken is used when no token source is wired.
type noToken struct{}

func (noToken) Token() string { return "" }

// NewClient creates a gateway client. baseURL is the service root, e.g.
// "https://auth.example.com/api/auth". A nil tokens source sends no
// Authorization header.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if tokens == nil {
		tokens = noToken{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// envelope is the gateway's response shape for both outcomes.
type envelope struct {
	User    *auth.Identity    `json:"user"`
	Profile *auth.Profile     `json:"profile"`
	Token   string            `json:"token"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// Login authenticates with email, password, and the chosen role.
func (c *Client) Login(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error) {
	payload := map[string]any{
		"email":     creds.Email,
		"password":  creds.Password,
		"user_type": creds.UserType,
	}
	return c.postAuth(ctx, "/login/", payload)
}

// RegisterStudent creates a student account.
func (c *Client) RegisterStudent(ctx context.Context, in ports.StudentSignup) (ports.AuthResult, error) {
	payload := map[string]any{
		"email":            in.Email,
		"password":         in.Password,
		"confirm_password": in.ConfirmPassword,
		"first_name":       in.FirstName,
		"last_name":        in.LastName,
		"phone_number":     in.PhoneNumber,
		"student_id":       in.StudentID,
		"university":       in.University,
		"department":       in.Department,
		"graduation_year":  in.GraduationYear,
	}
	return c.postAuth(ctx, "/register/student/", payload)
}

// RegisterRecruiter creates a recruiter account.
func (c *Client) RegisterRecruiter(ctx context.Context, in ports.RecruiterSignup) (ports.AuthResult, error) {
	payload := map[string]any{
		"email":            in.Email,
		"password":         in.Password,
		"confirm_password": in.ConfirmPassword,
		"first_name":       in.FirstName,
		"last_name":        in.LastName,
		"phone_number":     in.PhoneNumber,
		"company_name":     in.CompanyName,
		"position":         in.Position,
		"company_website":  in.CompanyWebsite,
		"company_size":     in.CompanySize,
	}
	return c.postAuth(ctx, "/register/recruiter/", payload)
}

// Logout tells the gateway to end the session. Callers clear local state
// regardless of the outcome here.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/logout/", nil)
	return err
}

// CheckAuth asks the gateway whether the persisted token still names a
// valid session, returning the current identity when it does.
func (c *Client) CheckAuth(ctx context.Context) (ports.AuthResult, error) {
	env, err := c.do(ctx, http.MethodGet, "/check-auth/", nil)
	if err != nil {
		return ports.AuthResult{}, err
	}
	return resultFromEnvelope(env)
}

// Profile fetches the role-specific profile for the signed-in user.
func (c *Client) Profile(ctx context.Context) (auth.Profile, error) {
	env, err := c.do(ctx, http.MethodGet, "/profile/", nil)
	if err != nil {
		return auth.Profile{}, err
	}
	if env.Profile == nil {
		return auth.Profile{}, apperrors.NotFound("no profile for this account")
	}
	return *env.Profile, nil
}

func (c *Client) postAuth(ctx context.Context, path string, payload any) (ports.AuthResult, error) {
	env, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return ports.AuthResult{}, err
	}
	return resultFromEnvelope(env)
}

func resultFromEnvelope(env envelope) (ports.AuthResult, error) {
	if env.User == nil {
		return ports.AuthResult{}, apperrors.Gateway("gateway response missing user")
	}
	return ports.AuthResult{User: *env.User, Profile: env.Profile, Token: env.Token}, nil
}

// do performs a request and decodes the envelope. Non-2xx responses become
// AppErrors: 401 maps to session_invalid, everything else to gateway with
// the service's message and field errors carried through.
func (c *Client) do(ctx context.Context, method, path string, payload any) (envelope, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return envelope{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode gateway request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return envelope{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build gateway request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return envelope{}, apperrors.Wrap(err, apperrors.ErrCodeTimeout, "gateway request timed out")
		}
		var urlErr interface{ Timeout() bool }
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return envelope{}, apperrors.Wrap(err, apperrors.ErrCodeTimeout, "gateway request timed out")
		}
		return envelope{}, apperrors.Wrap(err, apperrors.ErrCodeGateway, "gateway unreachable")
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env)

	if resp.StatusCode == http.StatusUnauthorized {
		return envelope{}, apperrors.SessionInvalid("session is no longer valid")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := env.Error
		if message == "" {
			message = fmt.Sprintf("gateway returned status %d", resp.StatusCode)
		}
		return envelope{}, apperrors.GatewayFields(message, env.Errors)
	}
	if decodeErr != nil {
		return envelope{}, apperrors.Wrap(decodeErr, apperrors.ErrCodeGateway, "decode gateway response")
	}
	return env, nil
}
