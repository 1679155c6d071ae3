package httpapi

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/config"
)

// Deps carries everything the router needs, constructed once in main and
// passed by reference. Nothing here lives in package globals.
type Deps struct {
	Config   *config.Config
	Log      *slog.Logger
	Issuer   *auth.Issuer
	Auth     AuthService
	Cart     CartService
	Catalog  CatalogService
	Wishlist WishlistStore
}

// NewRouter wires middleware and routes. The auth transport picks which
// extractor feeds the verifier; everything past extraction is identical.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(d.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	extract := auth.BearerExtractor
	if d.Config.AuthTransport == config.TransportCookie {
		extract = auth.CookieExtractor(d.Config.CookieName)
	}
	authed := auth.Middleware(d.Issuer, extract)

	authHandler := NewAuthHandler(d.Auth, d.Config, d.Log)
	cartHandler := NewCartHandler(d.Cart, d.Log)
	productHandler := NewProductHandler(d.Catalog, d.Log)
	wishlistHandler := NewWishlistHandler(d.Wishlist, d.Log)

	api := r.Group("/api")
	{
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", authed, authHandler.Me)

		api.GET("/products", productHandler.List)
		api.GET("/products/categories", productHandler.Categories)
		api.GET("/products/:id", productHandler.Get)
		api.POST("/products/seed", productHandler.Seed)

		crt := api.Group("/cart", authed)
		{
			crt.GET("", cartHandler.Get)
			crt.POST("", cartHandler.Add)
			crt.PUT("", cartHandler.SetQuantity)
			crt.DELETE("/:productId", cartHandler.Remove)
			crt.DELETE("", cartHandler.Empty)
		}

		wl := api.Group("/wishlist", authed)
		{
			wl.GET("", wishlistHandler.Get)
			wl.POST("", wishlistHandler.Add)
			wl.DELETE("/:productId", wishlistHandler.Remove)
		}
	}
	return r
}
