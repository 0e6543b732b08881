package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/service/products"
)

// ProductHandler handles the food catalog endpoints.
type ProductHandler struct {
	svc    ProductService
	logger *zap.Logger
}

// NewProductHandler constructs the products HTTP adapter.
func NewProductHandler(svc ProductService, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{svc: svc, logger: logger}
}

// List returns global products plus the caller's custom ones.
func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": items})
}

// Create stores a new catalog entry. Admins may pass ?global=true to create
// a shared entry instead of a personal one.
func (h *ProductHandler) Create(c *gin.Context) {
	var input products.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid product payload")
		return
	}

	user := CurrentUser(c)
	isGlobal := c.Query("global") == "true"
	if isGlobal && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "only admins can create global products"})
		return
	}

	product, err := h.svc.Create(c.Request.Context(), input, user.ID, isGlobal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

// Update edits a catalog entry owned by the caller.
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := parseObjectID(c.Param("productId"))
	if err != nil {
		badRequest(c, "invalid productId")
		return
	}

	var input products.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid product payload")
		return
	}

	product, err := h.svc.Update(c.Request.Context(), productID, input, CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// Delete removes a catalog entry owned by the caller.
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := parseObjectID(c.Param("productId"))
	if err != nil {
		badRequest(c, "invalid productId")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), productID, CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "product deleted"})
}

type importRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// Import fetches a product from the external catalog by barcode and stores
// it as a custom entry.
func (h *ProductHandler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "barcode is required")
		return
	}

	product, err := h.svc.ImportByBarcode(c.Request.Context(), req.Barcode, CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}
