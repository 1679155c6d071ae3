package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/auth"
	"storefront/internal/cart"
)

// CartService is the slice of the cart business logic the handlers need.
type CartService interface {
	GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*cart.Cart, error)
	AddItem(ctx context.Context, userID primitive.ObjectID, item cart.Item) (*cart.Cart, error)
	SetQuantity(ctx context.Context, userID primitive.ObjectID, productID, quantity int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, userID primitive.ObjectID, productID int) (*cart.Cart, error)
	Empty(ctx context.Context, userID primitive.ObjectID) error
}

type CartHandler struct {
	svc CartService
	log *slog.Logger
}

func NewCartHandler(svc CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: log}
}

type addItemRequest struct {
	ProductID int     `json:"productId" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type setQuantityRequest struct {
	ProductID int  `json:"productId" binding:"required"`
	Quantity  *int `json:"quantity" binding:"required"` // pointer: zero is a valid value and removes the line
}

// callerID resolves the authenticated user's ObjectID out of the verified
// token identity.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(id.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return primitive.NilObjectID, false
	}
	return oid, true
}

func (h *CartHandler) Get(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	crt, err := h.svc.GetOrCreate(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, crt)
}

func (h *CartHandler) Add(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c)
		return
	}
	crt, err := h.svc.AddItem(c.Request.Context(), uid, cart.Item{
		ProductID: req.ProductID,
		Title:     req.Title,
		Price:     req.Price,
		Image:     req.Image,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, crt)
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c)
		return
	}
	crt, err := h.svc.SetQuantity(c.Request.Context(), uid, req.ProductID, *req.Quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, crt)
}

func (h *CartHandler) Remove(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		respondInvalid(c)
		return
	}
	crt, err := h.svc.RemoveItem(c.Request.Context(), uid, productID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, crt)
}

func (h *CartHandler) Empty(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.svc.Empty(c.Request.Context(), uid); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart emptied"})
}
