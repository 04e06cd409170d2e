package report

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) LowStock(c *gin.Context) {
	low, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute low stock"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"low_stock": low})
}

func (h *Handler) Usage(c *gin.Context) {
	usage, err := h.service.UsageSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute usage summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

// --------------------------------------------------
// Combined inventory report
// --------------------------------------------------
func (h *Handler) Inventory(c *gin.Context) {
	low, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute low stock"})
		return
	}
	usage, err := h.service.UsageSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute usage summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"low_stock": low, "usage": usage})
}
