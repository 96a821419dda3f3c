package dto

type LoginRequest struct {
	Email   string `json:"email" binding:"required,email"`
	IDToken string `json:"idToken" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
}

type GoogleSignInRequest struct {
	IDToken     string `json:"idToken" binding:"required"`
	AccessToken string `json:"accessToken"`
}

type LogoutRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}
