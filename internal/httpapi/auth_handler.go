package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/user"
)

// AuthService is the slice of the auth flow the handlers need.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*user.User, string, error)
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	Me(ctx context.Context, userID string) (*user.User, error)
}

type AuthHandler struct {
	svc AuthService
	cfg *config.Config
	log *slog.Logger
}

func NewAuthHandler(svc AuthService, cfg *config.Config, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg, log: log}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token,omitempty"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c)
		return
	}
	u, token, err := h.svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, h.session(c, u, token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c)
		return
	}
	u, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, h.session(c, u, token))
}

// Logout clears the session cookie when the cookie transport is active.
// With bearer transport the server holds no session state, so the client
// discarding its token is the whole operation.
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.cfg.AuthTransport == config.TransportCookie {
		c.SetCookie(h.cfg.CookieName, "", -1, "/", "", false, true)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}
	u, err := h.svc.Me(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// session shapes a login/signup response for the configured transport:
// cookie mode sets the token as an HTTP-only cookie, bearer mode returns
// it in the body for the client to attach itself.
func (h *AuthHandler) session(c *gin.Context, u *user.User, token string) sessionResponse {
	if h.cfg.AuthTransport == config.TransportCookie {
		c.SetCookie(h.cfg.CookieName, token, int(h.cfg.TokenTTL.Seconds()), "/", "", false, true)
		return sessionResponse{User: u}
	}
	return sessionResponse{User: u, Token: token}
}
