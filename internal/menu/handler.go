package menu

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
// Create menu item with recipe
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name     string       `json:"name"`
		Category string       `json:"category"`
		Price    float64      `json:"price"`
		Recipe   []RecipeLine `json:"recipe"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.Create(c.Request.Context(), req.Name, req.Category, req.Price, req.Recipe)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateRecipe(c *gin.Context) {
	var req struct {
		Recipe []RecipeLine `json:"recipe"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.UpdateRecipe(c.Request.Context(), c.Param("id"), req.Recipe)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}
