package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spotme/spotme-api/internal/application/usecase/auth"
	"github.com/spotme/spotme-api/pkg/apperror"
)

type AuthHandler struct {
	signUpUC *auth.SignUpUseCase
	loginUC  *auth.LoginUseCase
	confirmUC *auth.ConfirmEmailUseCase
	logoutUC *auth.LogoutUseCase
	resetUC  *auth.ResetPasswordUseCase
}

func NewAuthHandler(
	signUpUC *auth.SignUpUseCase,
	loginUC *auth.LoginUseCase,
	confirmUC *auth.ConfirmEmailUseCase,
	logoutUC *auth.LogoutUseCase,
	resetUC *auth.ResetPasswordUseCase,
) *AuthHandler {
	return &AuthHandler{
		signUpUC:  signUpUC,
		loginUC:   loginUC,
		confirmUC: confirmUC,
		logoutUC:  logoutUC,
		resetUC:   resetUC,
	}
}

type signUpRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("email and password are required", err))
		return
	}

	output, err := h.signUpUC.Execute(c.Request.Context(), auth.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id":              output.UserID,
		"confirmation_pending": output.ConfirmationPending,
		"message":              "Check your email to confirm your account.",
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("email and password are required", err))
		return
	}

	output, err := h.loginUC.Execute(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": output.AccessToken})
}

func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Query("token")

	err := h.confirmUC.Execute(c.Request.Context(), auth.ConfirmEmailInput{Token: token})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email confirmed. You can now sign in."})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := GetClaimsFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("claims not found in context"))
		return
	}

	err := h.logoutUC.Execute(c.Request.Context(), auth.LogoutInput{
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out."})
}

type resetRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("email is required", err))
		return
	}

	if err := h.resetUC.ExecuteRequest(c.Request.Context(), auth.RequestResetInput{Email: req.Email}); err != nil {
		c.Error(err)
		return
	}

	// same answer whether or not the account exists
	c.JSON(http.StatusOK, gin.H{"message": "If that email is registered, a reset link is on its way."})
}

type resetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("token and new_password are required", err))
		return
	}

	err := h.resetUC.ExecuteConfirm(c.Request.Context(), auth.ConfirmResetInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated. Sign in with your new password."})
}
