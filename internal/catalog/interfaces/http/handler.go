package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prostore/storefront/internal/catalog/application"
	"github.com/prostore/storefront/internal/catalog/domain"
	"github.com/prostore/storefront/pkg/logger"
	"github.com/prostore/storefront/pkg/response"
	"github.com/shopspring/decimal"
)

// CatalogHandler 商品目录 HTTP 处理器
type CatalogHandler struct {
	app *application.CatalogApplicationService
	// 首页最新商品数量
	latestLimit int
	// 列表分页大小
	pageSize int
}

// NewCatalogHandler 创建商品目录 HTTP 处理器实例
func NewCatalogHandler(app *application.CatalogApplicationService, latestLimit, pageSize int) *CatalogHandler {
	return &CatalogHandler{app: app, latestLimit: latestLimit, pageSize: pageSize}
}

// RegisterRoutes 注册公开路由
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/products")
	{
		api.GET("", h.ListProducts)          // 商品列表
		api.GET("/latest", h.ListLatest)     // 最新商品
		api.GET("/:slug", h.GetProduct)      // 商品详情
	}
}

// RegisterAdminRoutes 注册管理端路由（调用方需挂载鉴权中间件）
func (h *CatalogHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	api := router.Group("/products")
	{
		api.POST("", h.CreateProduct)       // 创建商品
		api.PUT("/:id", h.UpdateProduct)    // 更新商品
		api.DELETE("/:id", h.DeleteProduct) // 删除商品
	}
}

// ListProducts 分页获取商品列表
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	category := c.Query("category")

	products, total, err := h.app.ListProducts(c.Request.Context(), category, page, h.pageSize)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list products", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to list products")
		return
	}

	response.Success(c, gin.H{
		"products":    application.NewProductDTOs(products),
		"total":       total,
		"page":        page,
		"total_pages": (total + int64(h.pageSize) - 1) / int64(h.pageSize),
	})
}

// ListLatest 获取最新上架商品
func (h *CatalogHandler) ListLatest(c *gin.Context) {
	products, err := h.app.ListLatestProducts(c.Request.Context(), h.latestLimit)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list latest products", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to list latest products")
		return
	}

	response.Success(c, application.NewProductDTOs(products))
}

// GetProduct 根据 slug 获取商品详情
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.app.GetProductBySlug(c.Request.Context(), slug)
	if errors.Is(err, domain.ErrProductNotFound) {
		response.Error(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get product", "slug", slug, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to get product")
		return
	}

	response.Success(c, application.NewProductDTO(product))
}

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name        string   `json:"name" binding:"required,min=3"`
	Slug        string   `json:"slug" binding:"required,min=3"`
	Category    string   `json:"category" binding:"required,min=3"`
	Brand       string   `json:"brand" binding:"required,min=3"`
	Description string   `json:"description" binding:"required,min=3"`
	Images      []string `json:"images" binding:"required,min=1"`
	Price       string   `json:"price" binding:"required"`
	Stock       int      `json:"stock" binding:"min=0"`
	IsFeatured  bool     `json:"is_featured"`
	Banner      string   `json:"banner"`
}

// CreateProduct 创建商品
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid price")
		return
	}

	cmd := application.CreateProductCommand{
		Name:        req.Name,
		Slug:        req.Slug,
		Category:    req.Category,
		Brand:       req.Brand,
		Description: req.Description,
		Images:      req.Images,
		Price:       price,
		Stock:       req.Stock,
		IsFeatured:  req.IsFeatured,
		Banner:      req.Banner,
	}

	id, err := h.app.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to create product", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	response.SuccessWithMessage(c, "Product created successfully", gin.H{"product_id": id})
}

// UpdateProduct 更新商品
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid price")
		return
	}

	cmd := application.UpdateProductCommand{
		ID:          uint(id),
		Name:        req.Name,
		Slug:        req.Slug,
		Category:    req.Category,
		Brand:       req.Brand,
		Description: req.Description,
		Images:      req.Images,
		Price:       price,
		Stock:       req.Stock,
		IsFeatured:  req.IsFeatured,
		Banner:      req.Banner,
	}

	if err := h.app.UpdateProduct(c.Request.Context(), cmd); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to update product", "product_id", id, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	response.SuccessWithMessage(c, "Product updated successfully", nil)
}

// DeleteProduct 删除商品
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.app.DeleteProduct(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to delete product", "product_id", id, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	response.SuccessWithMessage(c, "Product deleted successfully", nil)
}
