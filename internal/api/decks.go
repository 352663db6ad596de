package api

import (
	"net/http" // HTTP status codes

	"card_system/internal/domain"  // Deck defaults and update parsing
	"card_system/internal/service" // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// DeckCreateRequest names a new deck
type DeckCreateRequest struct {
	Name   string `json:"name"`
	Volume *int   `json:"volume"` // Defaults to 20
}

// DeckCardRequest adds copies of an owned card to a deck
type DeckCardRequest struct {
	CardID   uint `json:"card_id" binding:"required"` // Card to add
	Quantity *int `json:"quantity"`                   // Copies, 1 when omitted
}

// ListDecksHandler returns the user's decks
func ListDecksHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		decks, err := svc.ListDecks(c.Request.Context(), uri.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, decks)
	}
}

// CreateDeckHandler creates a deck for the user
func CreateDeckHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		var req DeckCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		volume := domain.DefaultDeckVolume
		if req.Volume != nil {
			volume = *req.Volume
		}
		deck, err := svc.CreateDeck(c.Request.Context(), uri.UserID, req.Name, volume)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, deck)
	}
}

// GetDeckHandler returns one deck
func GetDeckHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		deck, err := svc.GetDeck(c.Request.Context(), uri.UserID, uri.DeckID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, deck)
	}
}

// UpdateDeckHandler renames a deck or changes its volume
func UpdateDeckHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		fields, ok := bindPatch(c)
		if !ok {
			return
		}
		update, err := domain.ParseDeckUpdate(fields)
		if err != nil {
			respondError(c, err)
			return
		}
		deck, err := svc.UpdateDeck(c.Request.Context(), uri.UserID, uri.DeckID, update)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, deck)
	}
}

// DeleteDeckHandler removes a deck and its contents
func DeleteDeckHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		if err := svc.DeleteDeck(c.Request.Context(), uri.UserID, uri.DeckID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deck deleted"})
	}
}

// ListDeckCardsHandler returns deck contents with full card definitions
func ListDeckCardsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		items, err := svc.ListDeckCards(c.Request.Context(), uri.UserID, uri.DeckID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// AddDeckCardHandler puts copies of an owned card into a deck
func AddDeckCardHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, ok := bindURI(c)
		if !ok {
			return
		}
		var req DeckCardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		item, err := svc.AddCardToDeck(c.Request.Context(), uri.UserID, uri.DeckID, req.CardID, quantityOrDefault(req.Quantity))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}
