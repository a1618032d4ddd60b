package handler

import (
	"github.com/gin-gonic/gin"

	authapp "github.com/societyhub/backend/internal/application/auth"
	"github.com/societyhub/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles OTP login and logout requests
type AuthHandler struct {
	BaseHandler
	authService    *authapp.AuthService
	authMiddleware gin.HandlerFunc
}

// NewAuthHandler creates a new auth handler. authMiddleware protects the
// logout route; send-otp and verify-otp stay public.
func NewAuthHandler(authService *authapp.AuthService, authMiddleware gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/send-otp", h.SendOtp)
		auth.POST("/verify-otp", h.VerifyOtp)
		auth.POST("/logout", h.authMiddleware, h.Logout)
	}
}

// SendOtp godoc
// @Summary      Request a login code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body auth.SendOtpRequest true "Phone number"
// @Success      200 {object} dto.Response{data=auth.SendOtpResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/send-otp [post]
func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req authapp.SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.SendOtp(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// VerifyOtp godoc
// @Summary      Exchange a login code for an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body auth.VerifyOtpRequest true "Phone number and code"
// @Success      200 {object} dto.Response{data=auth.VerifyOtpResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req authapp.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.VerifyOtp(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout godoc
// @Summary      Revoke the current access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Logged out"})
}
