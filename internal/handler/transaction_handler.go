package handler

import (
	"errors"
	"net/http"

	"cartroyal/internal/domain"
	"cartroyal/internal/middleware"
	"cartroyal/internal/models"
	"cartroyal/internal/repository"
	"cartroyal/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TransactionHandler struct {
	transactions *repository.TransactionRepository
	users        *repository.UserRepository
}

func NewTransactionHandler(transactions *repository.TransactionRepository, users *repository.UserRepository) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, users: users}
}

// GetByID returns a transaction receipt looked up by gateway transaction id.
func (h *TransactionHandler) GetByID(c *gin.Context) {
	tx, err := h.transactions.GetByTransactionID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to retrieve transaction"})
		return
	}
	h.respond(c, tx)
}

// GetByReference returns a transaction receipt looked up by our own ref.
func (h *TransactionHandler) GetByReference(c *gin.Context) {
	tx, err := h.transactions.GetByRef(c.Param("reference"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to retrieve transaction"})
		return
	}
	h.respond(c, tx)
}

// respond enforces owner-or-staff access, then renders the receipt.
func (h *TransactionHandler) respond(c *gin.Context, tx *models.Transaction) {
	requesterID := middleware.GetUserID(c)
	role := middleware.GetRole(c)
	elevated := role == domain.RoleAdmin || role == domain.RoleModerator
	if tx.UserID != requesterID && !elevated {
		c.JSON(http.StatusForbidden, gin.H{"msg": domain.ErrForbidden.Error()})
		return
	}

	customer, err := h.users.GetByUUID(tx.UserID)
	if err != nil {
		customer = nil
	}

	msg := "Transaction Retrieved"
	if tx.Status == domain.PaymentFailed {
		msg = "Transaction Retrieved (Failed)"
	}
	c.JSON(http.StatusOK, gin.H{"msg": msg, "data": service.NewReceipt(tx, customer)})
}
