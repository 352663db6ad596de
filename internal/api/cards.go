package api

import (
	"net/http" // HTTP status codes

	"card_system/internal/service" // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListCardsHandler returns the catalog
func ListCardsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cards, err := svc.ListCards(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cards)
	}
}

// GetCardHandler returns one catalog entry
func GetCardHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		card, err := svc.GetCard(c.Request.Context(), uri.CardID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, card)
	}
}
