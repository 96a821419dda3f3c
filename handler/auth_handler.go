package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func LoginHandler(c *gin.Context, authService *usecase.AuthService) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	user, token, err := authService.Login(c.Request.Context(),
		request.Email, request.IDToken, c.Request.UserAgent())
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	utils.Success(c, gin.H{"user": user, "token": token})
}

func RegistrationHandler(c *gin.Context, authService *usecase.AuthService) {
	var request dto.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	user, token, err := authService.Register(c.Request.Context(),
		request.Email, request.Password, request.FullName)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}

	utils.Created(c, gin.H{"user": user, "token": token})
}

func GoogleSignInHandler(c *gin.Context, authService *usecase.AuthService) {
	var request dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	user, token, err := authService.SignInWithGoogle(c.Request.Context(),
		request.IDToken, request.AccessToken, c.Request.UserAgent())
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}

	utils.Success(c, gin.H{"user": user, "token": token})
}

func LogoutHandler(c *gin.Context, authService *usecase.AuthService) {
	var request dto.LogoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if err := authService.Logout(c.Request.Context(), request.UserID); err != nil {
		respondError(c, err, "Logout failed")
		return
	}

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}

func GetUserHandler(c *gin.Context, authService *usecase.AuthService) {
	userID := c.Param("id")

	user, err := authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}

	utils.Success(c, user)
}

func ChangePasswordHandler(c *gin.Context, authService *usecase.AuthService) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var request dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	err := authService.ChangePassword(c.Request.Context(),
		userID, request.CurrentPassword, request.NewPassword)
	if err != nil {
		respondError(c, err, "Failed to change password")
		return
	}

	utils.Success(c, gin.H{"message": "Password changed successfully"})
}

func PasswordResetHandler(c *gin.Context, authService *usecase.AuthService) {
	var request dto.PasswordResetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if _, err := authService.SendPasswordReset(c.Request.Context(), request.Email); err != nil {
		respondError(c, err, "Failed to generate password reset")
		return
	}

	utils.Success(c, gin.H{"message": "Password reset link generated"})
}
