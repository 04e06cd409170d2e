package purchase

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
// Create purchase order
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		SupplierID string   `json:"supplier_id"`
		Items      []POItem `json:"items"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	po, err := h.service.Create(c.Request.Context(), req.SupplierID, req.Items)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, po)
}

// --------------------------------------------------
// Receive purchase order (idempotent)
// --------------------------------------------------
func (h *Handler) Receive(c *gin.Context) {
	result, err := h.service.Receive(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Cancel(c *gin.Context) {
	po, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, po)
}

func (h *Handler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch purchase orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) Get(c *gin.Context) {
	po, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, po)
}

// --------------------------------------------------
// Suppliers
// --------------------------------------------------
func (h *Handler) CreateSupplier(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sup, err := h.service.CreateSupplier(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sup)
}

func (h *Handler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.service.ListSuppliers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch suppliers"})
		return
	}
	c.JSON(http.StatusOK, suppliers)
}
