package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"card_system/internal/domain" // Domain error types

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// respondError maps a service error onto a status code and JSON body
func respondError(c *gin.Context, err error) {
	var (
		vErr  *domain.ValidationError
		nfErr *domain.NotFoundError
		cErr  *domain.ConflictError
	)
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Kind.String()})
	case errors.As(err, &cErr):
		c.JSON(http.StatusConflict, gin.H{"error": cErr.Error(), "field": cErr.Field})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		logrus.WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("requestID"),
			"error":      err.Error(),
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// badRequest answers a malformed body or path
func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}
