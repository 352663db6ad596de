package api

import (
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"card_system/internal/domain"  // Domain models
	"card_system/internal/service" // Business operations
	"card_system/internal/utils"   // JWT helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// RegisterRequest creates an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest authenticates by email
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries the account and a bearer token
type AuthResponse struct {
	Token string      `json:"token"` // JWT token
	User  domain.User `json:"user"`  // Account, without the password hash
}

// TokenIssuer signs access tokens for authenticated accounts
type TokenIssuer struct {
	Secret string        // HMAC secret
	TTL    time.Duration // Token lifetime
}

func (ti TokenIssuer) issue(c *gin.Context, status int, user domain.User) {
	token, err := utils.GenerateJWT(user.ID, ti.Secret, ti.TTL)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		}).Error("Token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(status, AuthResponse{Token: token, User: user})
}

// RegisterHandler creates an account with the starting wallet and returns a token
func RegisterHandler(svc *service.Service, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		user, err := svc.CreateUser(c.Request.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		tokens.issue(c, http.StatusCreated, user)
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(svc *service.Service, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		user, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		tokens.issue(c, http.StatusOK, user)
	}
}
