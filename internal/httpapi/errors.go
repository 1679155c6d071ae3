// Package httpapi exposes the storefront over REST with gin. Handlers
// validate typed request structs at the boundary, call the services, and
// map sentinel errors onto HTTP statuses.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/user"
)

// respondError translates service errors into responses. Anything outside
// the known taxonomy becomes a generic 500: unexpected failures never leak
// details and never crash the request-handling process.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, user.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, cart.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not in cart"})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
	case errors.Is(err, catalog.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"message": "Catalog source unavailable"})
	default:
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func respondInvalid(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
}
