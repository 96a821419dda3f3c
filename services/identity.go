package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"main/config"
	"main/model"
	"main/store"
	"main/usecase"
	"main/utils"

	"github.com/google/uuid"
)

// ProviderError is a raw identity-provider failure. The service layer maps
// Code onto the caller-facing taxonomy; the vocabulary here never escapes
// past usecase.ClassifyProviderError.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

func (e *ProviderError) ProviderCode() string {
	return e.Code
}

// IdentityProvider is the hosted identity provider, realized in-house:
// account records in the credentials collection, argon2id password hashes,
// HS256 tokens, and a Redis session registry with revocation watermarks.
// It implements usecase.AuthProvider.
type IdentityProvider struct {
	store    store.Gateway
	sessions *SessionStore
	cfg      config.AuthConfig
}

func NewIdentityProvider(gateway store.Gateway, sessions *SessionStore, cfg config.AuthConfig) *IdentityProvider {
	return &IdentityProvider{store: gateway, sessions: sessions, cfg: cfg}
}

// VerifyIDToken checks the token's signature, issuer, expiry, type and
// revocation watermark, and returns its claims.
func (p *IdentityProvider) VerifyIDToken(ctx context.Context, idToken string) (*usecase.TokenClaims, error) {
	claims, err := parseToken(p.cfg, idToken)
	if err != nil {
		return nil, &ProviderError{Code: usecase.CodeInvalidIDToken, Message: err.Error()}
	}
	if claims.TokenType != tokenTypeAuth {
		return nil, &ProviderError{Code: usecase.CodeInvalidIDToken, Message: "wrong token type"}
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, &ProviderError{Code: usecase.CodeInvalidIDToken, Message: "missing claims"}
	}

	revokedAt, err := p.sessions.RevokedAt(ctx, claims.Subject)
	if err != nil {
		return nil, &ProviderError{Code: usecase.CodeInvalidArgument, Message: err.Error()}
	}
	if !revokedAt.IsZero() && !claims.IssuedAt.Time.After(revokedAt) {
		return nil, &ProviderError{Code: usecase.CodeInvalidIDToken, Message: "token revoked"}
	}

	return &usecase.TokenClaims{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Picture:  claims.Picture,
		IssuedAt: claims.IssuedAt.Time,
	}, nil
}

// Account looks up a provider account by subject.
func (p *IdentityProvider) Account(ctx context.Context, uid string) (*usecase.ProviderAccount, error) {
	doc, err := p.store.Get(ctx, store.Credentials(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &ProviderError{Code: usecase.CodeUserNotFound, Message: uid}
		}
		return nil, utils.StorageError("failed to load provider account", err)
	}
	return accountFromDoc(doc), nil
}

// AccountByEmail looks up a provider account by email address.
func (p *IdentityProvider) AccountByEmail(ctx context.Context, email string) (*usecase.ProviderAccount, error) {
	docs, err := p.store.QueryField(ctx, store.Credentials(), "email", email)
	if err != nil {
		return nil, utils.StorageError("failed to look up provider account", err)
	}
	if len(docs) == 0 {
		return nil, &ProviderError{Code: usecase.CodeUserNotFound, Message: email}
	}
	return accountFromDoc(docs[0]), nil
}

// CreateAccount registers a new provider account. Password is optional for
// federated accounts; when set it must meet the minimum length.
func (p *IdentityProvider) CreateAccount(ctx context.Context, account usecase.NewProviderAccount) (*usecase.ProviderAccount, error) {
	if !strings.Contains(account.Email, "@") {
		return nil, &ProviderError{Code: usecase.CodeInvalidEmail, Message: account.Email}
	}

	existing, err := p.store.QueryField(ctx, store.Credentials(), "email", account.Email)
	if err != nil {
		return nil, utils.StorageError("failed to check existing account", err)
	}
	if len(existing) > 0 {
		return nil, &ProviderError{Code: usecase.CodeEmailExists, Message: account.Email}
	}

	fields := map[string]interface{}{
		"email":        account.Email,
		"display_name": account.DisplayName,
		"photo_url":    account.PhotoURL,
		"created_at":   time.Now().UTC(),
	}
	if account.Password != "" {
		if len(account.Password) < 6 {
			return nil, &ProviderError{Code: usecase.CodeInvalidPassword, Message: "password too short"}
		}
		hash, err := HashPassword(account.Password)
		if err != nil {
			return nil, &ProviderError{Code: usecase.CodeInvalidPassword, Message: err.Error()}
		}
		fields["password_hash"] = hash
	}

	uid := account.ID
	if uid == "" {
		uid = uuid.NewString()
	}

	if err := p.store.SetOverwrite(ctx, store.Credentials(), uid, fields); err != nil {
		return nil, utils.StorageError("failed to create provider account", err)
	}

	return &usecase.ProviderAccount{
		ID:          uid,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		PhotoURL:    account.PhotoURL,
	}, nil
}

// UpdatePassword unconditionally sets a new password for the subject.
func (p *IdentityProvider) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	if len(newPassword) < 6 {
		return &ProviderError{Code: usecase.CodeInvalidPassword, Message: "password too short"}
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return &ProviderError{Code: usecase.CodeInvalidPassword, Message: err.Error()}
	}

	err = p.store.Update(ctx, store.Credentials(), uid, map[string]interface{}{
		"password_hash": hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &ProviderError{Code: usecase.CodeUserNotFound, Message: uid}
		}
		return utils.StorageError("failed to update password", err)
	}
	return nil
}

// VerifyPassword checks a subject's credentials. Used by clients obtaining
// an initial token; the core auth flows never call it.
func (p *IdentityProvider) VerifyPassword(ctx context.Context, email, password string) (*usecase.ProviderAccount, error) {
	docs, err := p.store.QueryField(ctx, store.Credentials(), "email", email)
	if err != nil {
		return nil, utils.StorageError("failed to look up provider account", err)
	}
	if len(docs) == 0 {
		return nil, &ProviderError{Code: usecase.CodeUserNotFound, Message: email}
	}

	hash, _ := docs[0].Fields["password_hash"].(string)
	match, err := VerifyPassword(hash, password)
	if err != nil || !match {
		return nil, &ProviderError{Code: usecase.CodeUserNotFound, Message: "wrong password"}
	}
	return accountFromDoc(docs[0]), nil
}

// RevokeSessions invalidates every token issued to the subject so far.
func (p *IdentityProvider) RevokeSessions(ctx context.Context, uid string) error {
	if err := p.sessions.RevokeAll(ctx, uid); err != nil {
		return &ProviderError{Code: usecase.CodeInvalidArgument, Message: err.Error()}
	}
	return nil
}

// PasswordResetLink generates a signed single-purpose reset link for the
// account. Delivery is the caller's concern.
func (p *IdentityProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	account, err := p.AccountByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := mintResetToken(p.cfg, account.ID, email)
	if err != nil {
		return "", &ProviderError{Code: usecase.CodeInvalidArgument, Message: err.Error()}
	}
	return fmt.Sprintf("%s/reset-password?token=%s", p.cfg.BaseURL, token), nil
}

// IssueCustomToken mints a fresh token for the subject and records the
// login session. device is the raw User-Agent of the client, or empty.
func (p *IdentityProvider) IssueCustomToken(ctx context.Context, uid, device string) (string, error) {
	account, err := p.Account(ctx, uid)
	if err != nil {
		return "", err
	}

	token, err := mintAuthToken(p.cfg, account.ID, account.Email, account.DisplayName, account.PhotoURL)
	if err != nil {
		return "", &ProviderError{Code: usecase.CodeInvalidArgument, Message: err.Error()}
	}

	session := &model.Session{
		SessionID: uuid.NewString(),
		UserID:    uid,
		Device:    utils.SessionName(device),
		CreatedAt: time.Now().UTC(),
	}
	// Session recording is best-effort; the minted token stays valid.
	if err := p.sessions.Record(ctx, session); err != nil {
		utils.TrackError("auth", "session_record_failed")
	}

	return token, nil
}

func accountFromDoc(doc store.Document) *usecase.ProviderAccount {
	account := &usecase.ProviderAccount{ID: doc.ID}
	if v, ok := doc.Fields["email"].(string); ok {
		account.Email = v
	}
	if v, ok := doc.Fields["display_name"].(string); ok {
		account.DisplayName = v
	}
	if v, ok := doc.Fields["photo_url"].(string); ok {
		account.PhotoURL = v
	}
	return account
}
