package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/user"
)

// WishlistStore is the slice of the user repository the wishlist
// endpoints need. Product ids are numeric catalog keys stored as a set on
// the user document.
type WishlistStore interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
	AddToWishlist(ctx context.Context, userID string, productID int) (*user.User, error)
	RemoveFromWishlist(ctx context.Context, userID string, productID int) (*user.User, error)
}

type WishlistHandler struct {
	store WishlistStore
	log   *slog.Logger
}

func NewWishlistHandler(store WishlistStore, log *slog.Logger) *WishlistHandler {
	return &WishlistHandler{store: store, log: log}
}

type wishlistRequest struct {
	ProductID int `json:"productId" binding:"required"`
}

func (h *WishlistHandler) Get(c *gin.Context) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}
	u, err := h.store.FindByID(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": u.Wishlist})
}

func (h *WishlistHandler) Add(c *gin.Context) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c)
		return
	}
	u, err := h.store.AddToWishlist(c.Request.Context(), id.UserID, req.ProductID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": u.Wishlist})
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		respondInvalid(c)
		return
	}
	u, err := h.store.RemoveFromWishlist(c.Request.Context(), id.UserID, productID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": u.Wishlist})
}
