package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"cartroyal/internal/models"
	"cartroyal/internal/repository"
	"cartroyal/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductHandler struct {
	products   *repository.ProductRepository
	cloudinary cloudinary.Client
}

func NewProductHandler(products *repository.ProductRepository, cld cloudinary.Client) *ProductHandler {
	return &ProductHandler{products: products, cloudinary: cld}
}

// List returns non-archived products. Public.
func (h *ProductHandler) List(c *gin.Context) {
	limit, page, offset := pagination(c)
	products, total, err := h.products.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg": "Products Retrieved",
		"data": gin.H{
			"limit":       limit,
			"currentPage": page,
			"totalPages":  (total + int64(limit) - 1) / int64(limit),
			"totalItems":  total,
			"products":    products,
		},
	})
}

// Get returns a single product. Public.
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.products.GetByUUID(c.Param("productId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to retrieve product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Product Retrieved", "data": p})
}

// Create adds a product from a multipart form with an optional thumbnail
// image. Admin only.
func (h *ProductHandler) Create(c *gin.Context) {
	p := &models.Product{
		UUID:            uuid.NewString(),
		Name:            c.PostForm("name"),
		Category:        c.PostForm("category"),
		Currency:        c.PostForm("currency"),
		Description:     c.PostForm("description"),
		DeliveryRegions: c.PostForm("delivery_regions"),
		SellerID:        c.PostForm("seller_id"),
	}
	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "name is required"})
		return
	}
	p.Price, _ = strconv.ParseFloat(c.PostForm("price"), 64)
	p.OldPrice, _ = strconv.ParseFloat(c.PostForm("old_price"), 64)
	p.Quantity, _ = strconv.Atoi(c.PostForm("quantity"))
	if p.OldPrice > p.Price && p.OldPrice > 0 {
		p.PercentageDiscount = (p.OldPrice - p.Price) / p.OldPrice * 100
	}

	if url, ok := h.uploadThumbnail(c, p.UUID); ok {
		p.Thumbnail = url
	}

	if err := h.products.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "Product created", "data": p})
}

// Update modifies an existing product. Form fields left empty keep their
// stored values. Admin only.
func (h *ProductHandler) Update(c *gin.Context) {
	p, err := h.products.GetByUUID(c.Param("productId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to retrieve product"})
		return
	}

	if v := c.PostForm("name"); v != "" {
		p.Name = v
	}
	if v := c.PostForm("category"); v != "" {
		p.Category = v
	}
	if v := c.PostForm("description"); v != "" {
		p.Description = v
	}
	if v := c.PostForm("delivery_regions"); v != "" {
		p.DeliveryRegions = v
	}
	if v := c.PostForm("price"); v != "" {
		p.Price, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.PostForm("old_price"); v != "" {
		p.OldPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.PostForm("quantity"); v != "" {
		p.Quantity, _ = strconv.Atoi(v)
	}
	if v := c.PostForm("is_archived"); v != "" {
		p.IsArchived = v == "true"
	}
	if p.OldPrice > p.Price && p.OldPrice > 0 {
		p.PercentageDiscount = (p.OldPrice - p.Price) / p.OldPrice * 100
	}

	if url, ok := h.uploadThumbnail(c, p.UUID); ok {
		p.Thumbnail = url
	}

	if err := h.products.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Product updated", "data": p})
}

func (h *ProductHandler) uploadThumbnail(c *gin.Context, productID string) (string, bool) {
	if h.cloudinary == nil {
		return "", false
	}
	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		return "", false
	}
	f, err := fileHeader.Open()
	if err != nil {
		log.Printf("[products] thumbnail open failed: %v", err)
		return "", false
	}
	defer f.Close()
	_, thumbURL, err := h.cloudinary.UploadImage(c.Request.Context(), f, "products", productID)
	if err != nil {
		log.Printf("[products] thumbnail upload failed: %v", err)
		return "", false
	}
	return thumbURL, true
}
