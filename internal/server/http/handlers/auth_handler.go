package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// AuthHandler processes registration, login, profile and logout.
type AuthHandler struct {
	facade  AuthFacade
	cookies middleware.CookieConfig
	logger  *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, cookies middleware.CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, cookies: cookies, logger: logger}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	_, err := h.facade.Register(c.Request.Context(), model.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Role:     model.Role(req.Role),
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Invalid request")
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "registration failed",
			slog.String("username", req.Username), slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Registration successful"})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	user, token, err := h.facade.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login failed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	middleware.SetSessionCookie(c, h.cookies, token)
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Profile handles GET /profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == 0 {
		respondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}

	user, err := h.facade.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "fetch profile failed",
			slog.Int64("user_id", userID), slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout handles POST /logout. Requests without a session still succeed.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.SessionToken(c, h.cookies)
	if err := h.facade.Logout(c.Request.Context(), token); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "logout failed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Logout failed")
		return
	}

	middleware.ClearSessionCookie(c, h.cookies)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
