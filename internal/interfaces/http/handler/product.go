package handler

import (
	appcatalog "github.com/breezehub/backend/internal/application/catalog"
	appinventory "github.com/breezehub/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles catalog browsing and admin catalog management
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
	ledgerService  *appinventory.LedgerService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *appcatalog.ProductService, ledgerService *appinventory.LedgerService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		ledgerService:  ledgerService,
	}
}

// AdjustStockRequest overwrites the stock level of one variant
type AdjustStockRequest struct {
	Stock *int64 `json:"stock" binding:"required"`
}

// List returns products matching the query
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}
	if brand := c.Query("brand"); brand != "" {
		filter.Filters["brand"] = brand
	}

	resp, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Products, resp.Total, resp.Page, resp.PageSize)
}

// Get returns a single product
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Create adds a product with its variants
// POST /api/v1/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update changes the display fields of a product
// PUT /api/v1/admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a product and its variants
// DELETE /api/v1/admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AdjustStock overwrites the stock level of one variant
// PUT /api/v1/admin/products/:id/variants/:variantId/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := h.parseIDParam(c, "variantId")
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.ledgerService.AdjustStock(c.Request.Context(), productID, variantID, *req.Stock)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := appcatalog.ToProductResponse(product)
	h.Success(c, resp)
}
