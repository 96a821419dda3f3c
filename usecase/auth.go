package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"main/model"
	"main/repository"
	"main/utils"
)

// Raw error codes the identity provider reports. ClassifyProviderError is
// the only place this vocabulary is turned into caller-facing errors.
const (
	CodeInvalidEmail    = "INVALID_EMAIL"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodeEmailExists     = "EMAIL_EXISTS"
	CodeInvalidPassword = "INVALID_PASSWORD"
	CodeTooManyAttempts = "TOO_MANY_ATTEMPTS"
	CodeInvalidIDToken  = "INVALID_ID_TOKEN"
	CodeInvalidArgument = "INVALID_ARGUMENT"
)

// TokenClaims are the verified claims of an identity token.
type TokenClaims struct {
	Subject  string
	Email    string
	Name     string
	Picture  string
	IssuedAt time.Time
}

// ProviderAccount is the provider's view of an account.
type ProviderAccount struct {
	ID          string
	Email       string
	DisplayName string
	PhotoURL    string
}

// NewProviderAccount describes an account to create at the provider. ID is
// optional; when empty the provider assigns one.
type NewProviderAccount struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	PhotoURL    string
}

// AuthProvider is the hosted identity provider collaborator. It is injected
// at construction; there is no ambient global instance.
type AuthProvider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*TokenClaims, error)
	Account(ctx context.Context, uid string) (*ProviderAccount, error)
	AccountByEmail(ctx context.Context, email string) (*ProviderAccount, error)
	CreateAccount(ctx context.Context, account NewProviderAccount) (*ProviderAccount, error)
	UpdatePassword(ctx context.Context, uid, newPassword string) error
	RevokeSessions(ctx context.Context, uid string) error
	PasswordResetLink(ctx context.Context, email string) (string, error)
	IssueCustomToken(ctx context.Context, uid, device string) (string, error)
}

// providerCoder is implemented by provider errors carrying a raw code.
type providerCoder interface {
	ProviderCode() string
}

// ClassifyProviderError maps a raw provider error code onto the closed error
// taxonomy. It is total: unknown codes land on the generic auth-error.
func ClassifyProviderError(code string) error {
	switch code {
	case CodeInvalidEmail:
		return utils.AuthProviderError("invalid-email", nil)
	case CodeUserNotFound:
		return utils.AuthProviderError("wrong-credentials", nil)
	case CodeEmailExists:
		return utils.AuthProviderError("email-already-in-use", nil)
	case CodeInvalidPassword:
		return utils.AuthProviderError("weak-password", nil)
	case CodeTooManyAttempts:
		return utils.AuthProviderError("too-many-requests", nil)
	case CodeInvalidIDToken:
		return utils.InvalidTokenError("invalid-token")
	case CodeInvalidArgument:
		return utils.AuthProviderError("invalid-audience", nil)
	default:
		return utils.AuthProviderError("auth-error", nil)
	}
}

// AuthService orchestrates identity-provider calls and persists the
// resulting local account. Every operation is a linear sequence with no
// retries: call provider, upsert account, return.
type AuthService struct {
	Provider AuthProvider
	UserRepo *repository.UserRepo
}

// Login verifies the ID token, checks its email claim against the supplied
// email, upserts the local account and issues a fresh custom token.
func (s *AuthService) Login(ctx context.Context, email, idToken, device string) (*model.User, string, error) {
	claims, err := s.Provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", s.classify(err)
	}
	if claims.Email != email {
		return nil, "", utils.InvalidTokenError("invalid-token")
	}

	account, err := s.Provider.AccountByEmail(ctx, email)
	if err != nil {
		return nil, "", s.classify(err)
	}

	user := userFromProviderAccount(account)
	if err := s.UserRepo.Save(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.Provider.IssueCustomToken(ctx, account.ID, device)
	if err != nil {
		return nil, "", s.classify(err)
	}

	log.Printf("Login successful for user: %s", user.ID)
	return user, token, nil
}

// Register creates a provider account with the given credentials, upserts
// the local account and issues a custom token.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*model.User, string, error) {
	account, err := s.Provider.CreateAccount(ctx, NewProviderAccount{
		Email:       email,
		Password:    password,
		DisplayName: fullName,
	})
	if err != nil {
		return nil, "", s.classify(err)
	}

	user := userFromProviderAccount(account)
	if err := s.UserRepo.Save(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.Provider.IssueCustomToken(ctx, account.ID, "")
	if err != nil {
		return nil, "", s.classify(err)
	}

	utils.TrackRegistration()
	log.Printf("Registration successful for user: %s", user.ID)
	return user, token, nil
}

// SignInWithGoogle verifies a federated ID token and looks up the provider
// account by subject, creating it from the token claims when the provider
// reports it does not exist. Any other provider error propagates unchanged.
func (s *AuthService) SignInWithGoogle(ctx context.Context, idToken, accessToken, device string) (*model.User, string, error) {
	claims, err := s.Provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", s.classify(err)
	}

	account, err := s.Provider.Account(ctx, claims.Subject)
	if err != nil {
		var coded providerCoder
		if !errors.As(err, &coded) || coded.ProviderCode() != CodeUserNotFound {
			return nil, "", s.classify(err)
		}
		log.Printf("Creating new user for subject: %s", claims.Subject)
		account, err = s.Provider.CreateAccount(ctx, NewProviderAccount{
			ID:          claims.Subject,
			Email:       claims.Email,
			DisplayName: claims.Name,
			PhotoURL:    claims.Picture,
		})
		if err != nil {
			return nil, "", s.classify(err)
		}
	}

	user := userFromProviderAccount(account)
	if err := s.UserRepo.Save(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.Provider.IssueCustomToken(ctx, account.ID, device)
	if err != nil {
		return nil, "", s.classify(err)
	}

	log.Printf("Google sign-in successful for user: %s", user.ID)
	return user, token, nil
}

// Logout revokes all of the subject's active sessions at the provider,
// clears the local lastPasswordChange metadata and bumps updatedAt.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return utils.InvalidArgument("user ID is required")
	}

	if err := s.Provider.RevokeSessions(ctx, userID); err != nil {
		return s.classify(err)
	}
	if err := s.UserRepo.UpdateMetadata(ctx, userID, time.Now().UTC(), nil); err != nil {
		return err
	}

	log.Printf("Logout successful for user: %s", userID)
	return nil
}

// GetUser fetches the local account. Any failure is reported as not found.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, &utils.AppError{Kind: utils.KindNotFound, Message: "user-not-found", Err: err}
	}
	return user, nil
}

// ChangePassword sets the new password at the provider and records the
// change locally. The provider cannot verify the current password; the
// caller's client is responsible for prior re-authentication.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if userID == "" {
		return utils.InvalidArgument("user ID is required")
	}

	if err := s.Provider.UpdatePassword(ctx, userID, newPassword); err != nil {
		return s.classify(err)
	}

	now := time.Now().UTC()
	if err := s.UserRepo.UpdateMetadata(ctx, userID, now, &now); err != nil {
		return err
	}

	log.Printf("Password changed for user: %s", userID)
	return nil
}

// SendPasswordReset generates a reset link at the provider and stamps the
// matching local account. Delivering the link by email is out of scope.
func (s *AuthService) SendPasswordReset(ctx context.Context, email string) (string, error) {
	link, err := s.Provider.PasswordResetLink(ctx, email)
	if err != nil {
		return "", s.classify(err)
	}

	account, err := s.Provider.AccountByEmail(ctx, email)
	if err != nil {
		return "", s.classify(err)
	}
	if err := s.UserRepo.UpdateMetadata(ctx, account.ID, time.Now().UTC(), nil); err != nil {
		return "", err
	}

	log.Printf("Password reset link generated for user: %s", account.ID)
	return link, nil
}

// classify turns provider failures into taxonomy errors. Errors already
// classified pass through unchanged.
func (s *AuthService) classify(err error) error {
	var coded providerCoder
	if errors.As(err, &coded) {
		return ClassifyProviderError(coded.ProviderCode())
	}
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return utils.AuthProviderError("auth-error", err)
}

func userFromProviderAccount(account *ProviderAccount) *model.User {
	now := time.Now().UTC()
	return &model.User{
		ID:          account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		PhotoURL:    account.PhotoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
