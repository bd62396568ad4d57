package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"cartroyal/internal/domain"
	"cartroyal/internal/middleware"
	"cartroyal/internal/repository"
	"cartroyal/internal/service"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

type OrderHandler struct {
	orderRepo *repository.OrderRepository
	orderSvc  *service.OrderService
	checkout  *service.CheckoutService
}

func NewOrderHandler(orderRepo *repository.OrderRepository, orderSvc *service.OrderService, checkout *service.CheckoutService) *OrderHandler {
	return &OrderHandler{orderRepo: orderRepo, orderSvc: orderSvc, checkout: checkout}
}

func pagination(c *gin.Context) (limit, page, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return limit, page, (page - 1) * limit
}

// List returns all orders, newest first. Admin only.
func (h *OrderHandler) List(c *gin.Context) {
	limit, page, offset := pagination(c)
	orders, total, err := h.orderRepo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg": "Orders Retrieved",
		"data": gin.H{
			"limit":       limit,
			"currentPage": page,
			"totalPages":  (total + int64(limit) - 1) / int64(limit),
			"totalItems":  total,
			"orders":      orders,
		},
	})
}

// MyOrders returns the authenticated user's orders.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	limit, page, offset := pagination(c)
	orders, total, err := h.orderRepo.ListByUser(middleware.GetUserID(c), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg": "Orders Retrieved",
		"data": gin.H{
			"limit":       limit,
			"currentPage": page,
			"totalPages":  (total + int64(limit) - 1) / int64(limit),
			"totalItems":  total,
			"orders":      orders,
		},
	})
}

type CheckoutRequest struct {
	Items []service.CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

// Checkout opens an order and returns the hosted payment link.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	result, err := h.checkout.Checkout(c.Request.Context(), middleware.GetUserID(c), req.Items)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			log.Printf("[orders] checkout failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "checkout failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Checkout created", "data": result})
}

// SentForDelivery marks a paid order as out for delivery. Admin only.
func (h *OrderHandler) SentForDelivery(c *gin.Context) {
	orderID := c.Param("orderId")
	shipped, err := h.orderSvc.MarkSentForDelivery(c.Request.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Order not found"})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			log.Printf("[orders] mark shipped failed for %s: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to mark order as sent for delivery"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg": "Order marked as sent for delivery",
		"data": gin.H{
			"orderId":                  shipped.OrderID,
			"status":                   shipped.Status,
			"deliveryConfirmationLink": shipped.ConfirmationLink,
		},
	})
}

// ConfirmReceived consumes an emailed confirmation token. Unauthenticated:
// the capability token is the proof of ownership.
func (h *OrderHandler) ConfirmReceived(c *gin.Context) {
	token := c.Query("token")
	rawType := c.Query("type")
	if token == "" || rawType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "token and type are required"})
		return
	}
	result, err := h.orderSvc.ConfirmReceived(token, rawType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid confirmation type"})
		case errors.Is(err, domain.ErrExpired):
			c.JSON(http.StatusGone, gin.H{"msg": "Token has expired"})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Order not found"})
		default:
			log.Printf("[orders] confirm received failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "confirmation failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg": "Order marked as received",
		"data": gin.H{
			"orderId": result.OrderID,
			"status":  result.Status,
		},
	})
}
