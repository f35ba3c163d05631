package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/rurasogoodo/notes_app/internal/dto"
	"github.com/rurasogoodo/notes_app/internal/middleware"
)

// authHandler handles account, session and recovery requests.
type authHandler struct {
	sessionService  portssvc.SessionSvc
	recoveryService portssvc.RecoverySvc
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(session portssvc.SessionSvc, recovery portssvc.RecoverySvc) *authHandler {
	return &authHandler{
		sessionService:  session,
		recoveryService: recovery,
	}
}

// registerAuthRoutes registers the /auth routes. requireAuth guards the ones acting on the current user.
func registerAuthRoutes(rg *gin.RouterGroup, session portssvc.SessionSvc, recovery portssvc.RecoverySvc, requireAuth gin.HandlerFunc) {
	h := newAuthHandler(session, recovery)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/accessToken", h.refreshAccessToken)

		auth.POST("/email-verification", h.sendEmailVerification)
		auth.GET("/email-verification", h.verifyEmail)

		auth.POST("/reset-password", h.requestPasswordReset)
		auth.GET("/reset-password/verify", h.verifyResetToken)
		auth.POST("/recover", h.recoverAccount)

		auth.GET("/me", requireAuth, h.getCurrentUser)
		auth.DELETE("/logout", requireAuth, h.logout)
	}
}

// register godoc
// @Summary Register a new user
// @Description Creates a user and starts a session
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   user body dto.RegisterRequest true "Registration details"
// @Success 200 {object} dto.DataResponse[dto.LoginResponse]
// @Failure 400 {object} dto.ErrorResponse "Validation error, password mismatch or email taken"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.sessionService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "register user")
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse[dto.LoginResponse]{Data: dto.ToLoginResponse(result)})
}

// login godoc
// @Summary Log in
// @Description Authenticates with email and password and starts a session
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.DataResponse[dto.LoginResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials or email not verified"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.sessionService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "log in")
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse[dto.LoginResponse]{Data: dto.ToLoginResponse(result)})
}

// refreshAccessToken godoc
// @Summary Refresh the session
// @Description Exchanges a refresh token for a new access and refresh token pair. Refresh tokens are single use.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   token body dto.AccessTokenRequest true "Refresh token"
// @Success 200 {object} dto.DataResponse[dto.AccessTokenResponse]
// @Failure 401 {object} dto.ErrorResponse "Refresh token expired"
// @Failure 404 {object} dto.ErrorResponse "Refresh token or user not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/accessToken [post]
func (h *authHandler) refreshAccessToken(c *gin.Context) {
	var req dto.AccessTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.sessionService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "refresh session")
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse[dto.AccessTokenResponse]{Data: dto.ToAccessTokenResponse(*session)})
}

// getCurrentUser godoc
// @Summary Current user
// @Tags auth
// @Produce  json
// @Success 200 {object} dto.DataResponse[dto.UserResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) getCurrentUser(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.sessionService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "load current user")
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse[dto.UserResponse]{Data: dto.ToUserResponse(user)})
}

// logout godoc
// @Summary Log out
// @Description Revokes the caller's refresh token. Access tokens stay valid until they expire.
// @Tags auth
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No active session"
// @Security BearerAuth
// @Router /auth/logout [delete]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.sessionService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err, "log out")
		return
	}

	c.Status(http.StatusNoContent)
}

// sendEmailVerification godoc
// @Summary Send an email verification link
// @Description Always succeeds for well-formed input, whether or not the address is registered
// @Tags auth
// @Accept  json
// @Param   email body dto.EmailRequest true "Email address"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/email-verification [post]
func (h *authHandler) sendEmailVerification(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.recoveryService.SendEmailVerification(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "send email verification")
		return
	}

	c.Status(http.StatusNoContent)
}

// verifyEmail godoc
// @Summary Confirm an email address
// @Tags auth
// @Param   token query string true "Verification token"
// @Success 200 "OK"
// @Failure 404 {object} dto.ErrorResponse "Token not found"
// @Failure 410 {object} dto.ErrorResponse "Token expired"
// @Router /auth/email-verification [get]
func (h *authHandler) verifyEmail(c *gin.Context) {
	var q dto.TokenQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.recoveryService.VerifyEmail(c.Request.Context(), q.Token); err != nil {
		respondError(c, err, "verify email")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Email verification completed")
	c.Status(http.StatusOK)
}

// requestPasswordReset godoc
// @Summary Request a password reset link
// @Description Always succeeds for well-formed input, whether or not the address is registered
// @Tags auth
// @Accept  json
// @Param   email body dto.EmailRequest true "Email address"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/reset-password [post]
func (h *authHandler) requestPasswordReset(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.recoveryService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "request password reset")
		return
	}

	c.Status(http.StatusNoContent)
}

// verifyResetToken godoc
// @Summary Check a password reset token
// @Description Does not consume the token
// @Tags auth
// @Param   token query string true "Reset token"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Invalid token"
// @Failure 410 {object} dto.ErrorResponse "Token expired"
// @Router /auth/reset-password/verify [get]
func (h *authHandler) verifyResetToken(c *gin.Context) {
	var q dto.TokenQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.recoveryService.VerifyResetToken(c.Request.Context(), q.Token); err != nil {
		respondError(c, err, "verify reset token")
		return
	}

	c.Status(http.StatusNoContent)
}

// recoverAccount godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept  json
// @Param   recovery body dto.RecoverAccountRequest true "Token and new password"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Validation error or password mismatch"
// @Failure 404 {object} dto.ErrorResponse "Invalid token"
// @Failure 410 {object} dto.ErrorResponse "Token expired"
// @Router /auth/recover [post]
func (h *authHandler) recoverAccount(c *gin.Context) {
	var req dto.RecoverAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.recoveryService.RecoverAccount(c.Request.Context(), req); err != nil {
		respondError(c, err, "recover account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account recovered")
	c.Status(http.StatusNoContent)
}
