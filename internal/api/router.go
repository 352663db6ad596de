package api

import (
	"card_system/internal/middleware" // Auth, ownership and logging middleware
	"card_system/internal/service"    // Business operations

	"github.com/gin-contrib/cors" // CORS handling
	"github.com/gin-gonic/gin"    // Gin web framework
)

// RouterConfig carries the transport settings of the HTTP API
type RouterConfig struct {
	Tokens         TokenIssuer // JWT signing for register and login
	CORSOrigins    []string    // Allowed browser origins, CORS disabled when empty
	TrustedProxies []string    // Proxies whose forwarding headers are trusted
}

// NewRouter registers every route of the card API
func NewRouter(svc *service.Service, cfg RouterConfig) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
		}))
	}

	// Public routes
	r.POST("/users", RegisterHandler(svc, cfg.Tokens))
	r.POST("/auth/login", LoginHandler(svc, cfg.Tokens))
	r.GET("/cards", ListCardsHandler(svc))
	r.GET("/cards/:card_id", GetCardHandler(svc))

	// Player directory, any authenticated account
	r.GET("/users", middleware.JWTAuthMiddleware(cfg.Tokens.Secret), ListUsersHandler(svc))

	// Account routes, only reachable by the account owner
	user := r.Group("/users/:user_id")
	user.Use(middleware.JWTAuthMiddleware(cfg.Tokens.Secret), middleware.SelfOnlyMiddleware())
	user.GET("", GetUserHandler(svc))
	user.PATCH("", UpdateUserHandler(svc))
	user.DELETE("", DeleteUserHandler(svc))

	user.GET("/inventory", ListInventoryHandler(svc))
	user.POST("/inventory", AddInventoryHandler(svc))
	user.GET("/inventory/:card_id", GetInventoryItemHandler(svc))
	user.DELETE("/inventory/:card_id", RemoveInventoryHandler(svc))

	user.GET("/decks", ListDecksHandler(svc))
	user.POST("/decks", CreateDeckHandler(svc))
	user.GET("/decks/:deck_id", GetDeckHandler(svc))
	user.PATCH("/decks/:deck_id", UpdateDeckHandler(svc))
	user.DELETE("/decks/:deck_id", DeleteDeckHandler(svc))
	user.GET("/decks/:deck_id/cards", ListDeckCardsHandler(svc))
	user.POST("/decks/:deck_id/cards", AddDeckCardHandler(svc))

	return r, nil
}
