package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"account-service/internal/domain"
	"account-service/internal/service"
)

const userIDKey = "userID"

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	sessions   service.SessionService
	cookieName string
	refreshTTL time.Duration
	production bool
	logger     *logrus.Logger
}

func NewHandler(users service.UserService, sessions service.SessionService, cookieName string, refreshTTL time.Duration, production bool, logger *logrus.Logger) *Handler {
	return &Handler{
		users:      users,
		sessions:   sessions,
		cookieName: cookieName,
		refreshTTL: refreshTTL,
		production: production,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.POST("/users", h.register)
	router.POST("/sessions", h.authenticate)
	router.PATCH("/token/refresh", h.refresh)
	router.GET("/me", h.requireAccessToken(), h.profile)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type authenticateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAccessToken rejects the request with 401 before the use case runs
// unless a valid bearer access token resolves to a user id.
func (h *Handler) requireAccessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
			return
		}

		userID, err := h.sessions.VerifyAccess(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error.", "issues": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "E-mail already exists."})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": userToResponse(user)})
}

func (h *Handler) authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error.", "issues": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials."})
			return
		}
		h.internalError(c, err)
		return
	}

	pair, err := h.sessions.IssueSession(user.ID)
	if err != nil {
		h.internalError(c, err)
		return
	}

	h.setRefreshCookie(c, pair.Refresh)
	c.JSON(http.StatusOK, gin.H{"token": pair.Access})
}

func (h *Handler) refresh(c *gin.Context) {
	raw, err := c.Cookie(h.cookieName)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
		return
	}

	_, pair, err := h.sessions.Refresh(raw)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
			return
		}
		h.internalError(c, err)
		return
	}

	h.setRefreshCookie(c, pair.Refresh)
	c.JSON(http.StatusOK, gin.H{"token": pair.Access})
}

func (h *Handler) profile(c *gin.Context) {
	userID := c.GetString(userIDKey)

	user, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Resource not found."})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user)})
}

// setRefreshCookie delivers the refresh token exclusively through an HTTP-only
// cookie; it never appears in a JSON body.
func (h *Handler) setRefreshCookie(c *gin.Context, refresh string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookieName, refresh, int(h.refreshTTL.Seconds()), "/", "", true, true)
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.WithError(err).Error("internal error")

	if h.production {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error.", "error": err.Error()})
}

func userToResponse(user *domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
