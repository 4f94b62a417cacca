package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/dhc007/bolt91/internal/database"
)

// CatalogHandler serves the root info endpoint and the product catalog
type CatalogHandler struct {
	products       *database.ProductRepository
	whatsAppNumber string
	logger         *logrus.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products *database.ProductRepository, whatsAppNumber string, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		products:       products,
		whatsAppNumber: whatsAppNumber,
		logger:         logger,
	}
}

// Root handles GET /api/
func (h *CatalogHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "Bolt91 API",
		"whatsapp": h.whatsAppNumber,
	})
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.products.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	c.JSON(http.StatusOK, products)
}
