package api

import (
	"net/http"

	"github.com/blog-platform-api/internal/apperr"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// stateCookie guards the OAuth callback against forged redirects
const stateCookie = "oauth_state"

// AuthHandler handles registration, login and social login endpoints
type AuthHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "Registration failed", apperr.Validation("invalid request body"))
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Registration failed", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// VerifyEmail handles GET /auth/verify-email?token=...
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respondError(c, "Email verification failed", apperr.Validation("token is required"))
		return
	}

	res, err := h.services.Auth.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		respondError(c, "Email verification failed", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "Login failed", apperr.Validation("invalid request body"))
		return
	}

	res, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "Login failed", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GoogleRedirect handles GET /auth/google
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	state := uuid.NewString()

	authURL, err := h.services.Auth.GoogleAuthURL(state)
	if err != nil {
		respondError(c, "Google login failed", err)
		return
	}

	c.SetCookie(stateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback handles GET /auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		respondError(c, "Google login failed", apperr.Unauthorized("state mismatch"))
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		respondError(c, "Google login failed", apperr.Validation("code is required"))
		return
	}

	res, err := h.services.Auth.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		respondError(c, "Google login failed", err)
		return
	}

	c.JSON(http.StatusOK, res)
}
