package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/centsible/centsible_backend/internal/apperrors"
	portssvc "github.com/centsible/centsible_backend/internal/core/ports/services"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration, login and Google sign-in.
type authHandler struct {
	authService   portssvc.AuthSvcFacade
	googleService portssvc.GoogleOAuthSvcFacade
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := &authHandler{
		authService:   services.Auth,
		googleService: services.GoogleOAuth,
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/google/exchange-code", h.exchangeCodeGoogle)
	}
}

// register godoc
// @Summary Register a new user
// @Description Creates a local user account and returns an access token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   user body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// login godoc
// @Summary Log in with email and password
// @Description Verifies credentials and returns an access token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			// Deliberately vague: do not reveal which part was wrong.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		respondError(c, logger, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// exchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for an access token
// @Description Validates the Google sign-in code, creating the user on first login
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid authorization code"
// @Failure 500 {object} map[string]string "Failed to exchange authorization code"
// @Router /auth/google/exchange-code [post]
func (h *authHandler) exchangeCodeGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	user, token, err := h.googleService.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		respondError(c, logger, err, "Failed to exchange authorization code")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}
