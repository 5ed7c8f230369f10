package application

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/summarizeai/sai-cli/internal/domain"
	"github.com/summarizeai/sai-cli/internal/ports"
)

// AuthService runs the authentication flows and owns the session
// credential: it is the only writer of the stored token. Infrastructure
// fallbacks are refused here, since a credential must never be
// "fallback-accepted".
type AuthService struct {
	gw    ports.Gateway
	store ports.SecretStore
}

func NewAuthService(gw ports.Gateway, store ports.SecretStore) *AuthService {
	return &AuthService{gw: gw, store: store}
}

// Login exchanges credentials for a bearer token and persists it for the
// session.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	resp, err := s.gw.Post(ctx, authLoginPath, map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if resp.Kind != ports.KindOK {
		return domain.ErrServiceUnavailable
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrInvalidCredentials
	}
	if !resp.OK() {
		return apiError("login", resp)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := resp.Decode(&token); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("login response missing access token")
	}

	if err := s.store.Put(ctx, ports.SessionTokenKey, token.AccessToken); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return nil
}

// Register validates the new credentials locally, creates the account and
// then logs in with it, matching the product's register-then-enter flow.
func (s *AuthService) Register(ctx context.Context, name, email, password, confirm string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return fmt.Errorf("register: name and email are required")
	}
	if err := domain.ValidateNewPassword(password, confirm); err != nil {
		return err
	}

	resp, err := s.gw.Post(ctx, authRegisterPath, map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if resp.Kind != ports.KindOK {
		return domain.ErrServiceUnavailable
	}
	if !resp.OK() {
		return apiError("register", resp)
	}

	return s.Login(ctx, email, password)
}

// CurrentUser fetches the account behind the stored session credential.
func (s *AuthService) CurrentUser(ctx context.Context) (domain.User, error) {
	resp, err := s.gw.Get(ctx, authMePath)
	if err != nil {
		return domain.User{}, fmt.Errorf("current user: %w", err)
	}
	if resp.Kind != ports.KindOK {
		return domain.User{}, domain.ErrServiceUnavailable
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return domain.User{}, domain.ErrNotAuthenticated
	}
	if !resp.OK() {
		return domain.User{}, apiError("current user", resp)
	}

	var user domain.User
	if err := resp.Decode(&user); err != nil {
		return domain.User{}, fmt.Errorf("decode user response: %w", err)
	}
	return user, nil
}

// Logout discards the stored credential. No network call is involved.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, ports.SessionTokenKey); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// ForgotPassword requests a reset email. The backend always answers with a
// neutral message so account existence is not revealed.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("forgot password: email is required")
	}

	resp, err := s.gw.Post(ctx, authForgotPasswordPath, map[string]any{"email": email})
	if err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	if resp.Kind != ports.KindOK {
		return "", domain.ErrServiceUnavailable
	}
	if !resp.OK() {
		return "", apiError("forgot password", resp)
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := resp.Decode(&payload); err != nil {
		return "", fmt.Errorf("decode forgot password response: %w", err)
	}
	return payload.Message, nil
}

// ValidateResetToken checks a reset token before prompting for the new
// password, returning the email it belongs to.
func (s *AuthService) ValidateResetToken(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", domain.ErrInvalidResetToken
	}

	resp, err := s.gw.Get(ctx, validateResetTokenPath(token))
	if err != nil {
		return "", fmt.Errorf("validate reset token: %w", err)
	}
	if resp.Kind != ports.KindOK {
		return "", domain.ErrServiceUnavailable
	}
	if resp.StatusCode == http.StatusBadRequest {
		return "", domain.ErrInvalidResetToken
	}
	if !resp.OK() {
		return "", apiError("validate reset token", resp)
	}

	var payload struct {
		Valid bool   `json:"valid"`
		Email string `json:"email"`
	}
	if err := resp.Decode(&payload); err != nil {
		return "", fmt.Errorf("decode validate response: %w", err)
	}
	if !payload.Valid {
		return "", domain.ErrInvalidResetToken
	}
	return payload.Email, nil
}

// ResetPassword redeems a reset token for a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", domain.ErrInvalidResetToken
	}
	if err := domain.ValidateNewPassword(password, confirm); err != nil {
		return "", err
	}

	resp, err := s.gw.Post(ctx, authResetPasswordPath, map[string]any{
		"token":        token,
		"new_password": password,
	})
	if err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}
	if resp.Kind != ports.KindOK {
		return "", domain.ErrServiceUnavailable
	}
	if resp.StatusCode == http.StatusBadRequest {
		return "", domain.ErrInvalidResetToken
	}
	if !resp.OK() {
		return "", apiError("reset password", resp)
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := resp.Decode(&payload); err != nil {
		return "", fmt.Errorf("decode reset response: %w", err)
	}
	return payload.Message, nil
}
