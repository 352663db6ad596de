package api

import (
	"card_system/internal/service" // Default quantity

	"github.com/gin-gonic/gin" // Gin web framework
)

// resourceURI holds the numeric path parameters used across routes. Absent
// parameters stay zero.
type resourceURI struct {
	UserID uint `uri:"user_id"`
	DeckID uint `uri:"deck_id"`
	CardID uint `uri:"card_id"`
}

func bindURI(c *gin.Context) (resourceURI, bool) {
	var uri resourceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c)
		return uri, false
	}
	return uri, true
}

// quantityOrDefault applies the transport default when a caller omits the quantity
func quantityOrDefault(q *int) int {
	if q == nil {
		return service.DefaultQuantity
	}
	return *q
}

// bindPatch decodes a partial update body into a field map
func bindPatch(c *gin.Context) (map[string]any, bool) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil || fields == nil {
		badRequest(c)
		return nil, false
	}
	return fields, true
}
