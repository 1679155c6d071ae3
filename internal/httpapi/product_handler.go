package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
)

// CatalogService is the slice of the catalog the handlers need.
type CatalogService interface {
	List(ctx context.Context, q catalog.Query) ([]catalog.Product, error)
	Get(ctx context.Context, productID int) (*catalog.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Seed(ctx context.Context) (int, error)
}

type ProductHandler struct {
	svc CatalogService
	log *slog.Logger
}

func NewProductHandler(svc CatalogService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

func (h *ProductHandler) List(c *gin.Context) {
	q := catalog.Query{
		Category: c.Query("category"),
		Text:     c.Query("q"),
		Sort:     c.Query("sort"),
	}
	q.MinPrice, _ = strconv.ParseFloat(c.Query("minPrice"), 64)
	q.MaxPrice, _ = strconv.ParseFloat(c.Query("maxPrice"), 64)
	q.Limit, _ = strconv.ParseInt(c.Query("limit"), 10, 64)
	q.Skip, _ = strconv.ParseInt(c.Query("skip"), 10, 64)

	products, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondInvalid(c)
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) Seed(c *gin.Context) {
	inserted, err := h.svc.Seed(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Seed complete", "inserted": inserted})
}
