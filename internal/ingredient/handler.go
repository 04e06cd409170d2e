package ingredient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rasoi/internal/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Create ingredient
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name              string   `json:"name"`
		Unit              string   `json:"unit"`
		Category          string   `json:"category"`
		CostPerUnit       float64  `json:"cost_per_unit"`
		LowStockThreshold *float64 `json:"low_stock_threshold"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.Create(
		c.Request.Context(),
		req.Name,
		req.Unit,
		req.Category,
		req.CostPerUnit,
		req.LowStockThreshold,
	)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ing)
}

// --------------------------------------------------
// List ingredients
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	ing, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ing)
}

// --------------------------------------------------
// Full-field update
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req struct {
		Name              string  `json:"name"`
		Unit              string  `json:"unit"`
		Category          string  `json:"category"`
		CostPerUnit       float64 `json:"cost_per_unit"`
		LowStockThreshold float64 `json:"low_stock_threshold"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.Update(
		c.Request.Context(),
		c.Param("id"),
		req.Name,
		req.Unit,
		req.Category,
		req.CostPerUnit,
		req.LowStockThreshold,
	)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ing)
}

// --------------------------------------------------
// Manual stock adjustment
// --------------------------------------------------
func (h *Handler) Adjust(c *gin.Context) {
	var req struct {
		Delta  float64 `json:"delta"`
		Reason string  `json:"reason"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.Adjust(c.Request.Context(), c.Param("id"), req.Delta, req.Reason)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ing)
}

// --------------------------------------------------
// Adjustment trail for one ingredient
// --------------------------------------------------
func (h *Handler) Adjustments(c *gin.Context) {
	adjustments, err := h.service.Adjustments(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, adjustments)
}
