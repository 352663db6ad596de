package api

import (
	"net/http" // HTTP status codes

	"card_system/internal/service" // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// InventoryAddRequest grants copies of a card
type InventoryAddRequest struct {
	CardID   uint `json:"card_id" binding:"required"` // Catalog card
	Quantity *int `json:"quantity"`                   // Copies to add, 1 when omitted
}

// quantityQuery reads ?quantity= on removals
type quantityQuery struct {
	Quantity *int `form:"quantity"`
}

// ListInventoryHandler returns every owned card with its quantity
func ListInventoryHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		items, err := svc.ListInventory(c.Request.Context(), uri.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetInventoryItemHandler returns the holding of one card
func GetInventoryItemHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		item, err := svc.GetInventoryItem(c.Request.Context(), uri.UserID, uri.CardID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// AddInventoryHandler merges copies of a card into the inventory
func AddInventoryHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		var req InventoryAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		item, err := svc.AddToInventory(c.Request.Context(), uri.UserID, req.CardID, quantityOrDefault(req.Quantity))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// RemoveInventoryHandler takes copies away, deleting the row once none remain
func RemoveInventoryHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		var q quantityQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			badRequest(c)
			return
		}
		remaining, err := svc.RemoveFromInventory(c.Request.Context(), uri.UserID, uri.CardID, quantityOrDefault(q.Quantity))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"card_id": uri.CardID, "quantity": remaining})
	}
}
