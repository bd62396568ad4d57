package handler

import (
	"log"
	"net/http"

	"cartroyal/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentWebhookHandler terminates the gateway's payment redirect. The
// response is always a redirect: the caller is the customer's browser coming
// back from checkout, not an API client.
type PaymentWebhookHandler struct {
	reconciler *service.ReconcileService
}

func NewPaymentWebhookHandler(reconciler *service.ReconcileService) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{reconciler: reconciler}
}

func (h *PaymentWebhookHandler) Callback(c *gin.Context) {
	status := c.Query("status")
	txRef := c.Query("tx_ref")
	transactionID := c.Query("transaction_id")

	outcome := h.reconciler.Reconcile(c.Request.Context(), status, txRef, transactionID)
	if !outcome.Success {
		log.Printf("[webhook] callback failed: status=%s tx_ref=%s", status, txRef)
	}
	c.Redirect(http.StatusFound, outcome.RedirectURL)
}
