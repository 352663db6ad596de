package api

import (
	"net/http" // HTTP status codes

	"card_system/internal/domain"  // Update parsing
	"card_system/internal/service" // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListUsersHandler returns every account's public view
func ListUsersHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// GetUserHandler returns the account
func GetUserHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		user, err := svc.GetUser(c.Request.Context(), uri.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateUserHandler applies a partial update. The wallet field accepts any
// JSON value; invalid amounts are stored as zero.
func UpdateUserHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		fields, ok := bindPatch(c)
		if !ok {
			return
		}
		update, err := domain.ParseUserUpdate(fields)
		if err != nil {
			respondError(c, err)
			return
		}
		user, err := svc.UpdateUser(c.Request.Context(), uri.UserID, update)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DeleteUserHandler removes the account with its inventory and decks
func DeleteUserHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		if err := svc.DeleteUser(c.Request.Context(), uri.UserID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
