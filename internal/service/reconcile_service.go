package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"cartroyal/internal/domain"
	"cartroyal/internal/models"
	"cartroyal/internal/repository"
	"cartroyal/pkg/gateway"
	"cartroyal/pkg/notify"
)

// ReconcileConfig is the reconciler's explicit configuration; there are no
// hidden globals behind the redirect destinations.
type ReconcileConfig struct {
	SuccessURL     string
	FailureURL     string
	CurrencySymbol string
}

// Outcome is the terminal result of a callback: a redirect destination, with
// the success URL carrying the receipt as query parameters.
type Outcome struct {
	Success     bool
	RedirectURL string
}

// PaidMarker is the order-lifecycle hand-off for a settled payment.
type PaidMarker interface {
	MarkPaid(orderID string) (bool, error)
}

// ReconcileService drives payment-callback reconciliation. The gateway
// redelivers callbacks at least once, so every step is written to be safe
// under duplicate and concurrent deliveries of the same ref.
type ReconcileService struct {
	cfg          ReconcileConfig
	transactions TransactionStore
	orders       OrderStore
	users        UserStore
	paid         PaidMarker
	gateway      gateway.Verifier
	notifier     notify.AdminNotifier
}

func NewReconcileService(
	cfg ReconcileConfig,
	transactions TransactionStore,
	orders OrderStore,
	users UserStore,
	paid PaidMarker,
	verifier gateway.Verifier,
	notifier notify.AdminNotifier,
) *ReconcileService {
	return &ReconcileService{
		cfg:          cfg,
		transactions: transactions,
		orders:       orders,
		users:        users,
		paid:         paid,
		gateway:      verifier,
		notifier:     notifier,
	}
}

// Reconcile processes one gateway callback. It never returns an error to the
// caller; every internal failure collapses to the failure redirect. Nothing
// is retried here — retries arrive as fresh callback deliveries, which the
// settled-status short-circuit absorbs.
func (s *ReconcileService) Reconcile(ctx context.Context, callerStatus, txRef, gatewayTxID string) Outcome {
	fail := Outcome{Success: false, RedirectURL: s.cfg.FailureURL}

	// Cheap pre-filter: gateway-initiated failure redirects carry a
	// non-success status; reject them with zero store or gateway access.
	if !domain.IsSuccessStatus(callerStatus) {
		return fail
	}

	tx, err := s.transactions.GetByRef(txRef)
	if err != nil {
		log.Printf("[webhook] no transaction for ref=%s", txRef)
		return fail
	}

	// Idempotency short-circuit: a duplicate delivery after a completed
	// reconciliation rebuilds the receipt from stored state and leaves.
	if tx.IsSettled() {
		return s.successOutcome(tx)
	}

	result, err := s.gateway.Verify(ctx, gatewayTxID)
	if err != nil {
		var apiErr *gateway.APIError
		switch {
		case isAlreadyVerified(err):
			// a concurrent reconciliation may have just completed it
			if fresh, ferr := s.transactions.GetByRef(txRef); ferr == nil {
				return s.successOutcome(fresh)
			}
			return fail
		case errors.As(err, &apiErr) && apiErr.ServerSide():
			// Upstream outage, not a failed charge: the redirect already
			// reported success, so commit the last known-good local fields.
			// Availability is traded for a re-verification we never do.
			log.Printf("[webhook] gateway unavailable (%d), falling back to stored fields for ref=%s", apiErr.StatusCode, txRef)
			result = fallbackResult(tx)
		default:
			log.Printf("[webhook] verify failed for ref=%s: %v", txRef, err)
			return fail
		}
	}

	// The gateway is authoritative: a non-success verification outcome fails
	// the callback even though the caller reported success.
	if !domain.IsSuccessStatus(result.Status) {
		log.Printf("[webhook] %v for ref=%s status=%s", domain.ErrUpstreamRejected, txRef, result.Status)
		return fail
	}

	won, err := s.transactions.MarkVerified(txRef, repository.VerifiedFields{
		TransactionID: gatewayTransactionID(result, gatewayTxID),
		Status:        domain.NormalizePaymentStatus(result.Data.Status),
		Amount:        result.Data.Amount,
		Fee:           result.Data.AppFee,
		AmountSettled: result.Data.AmountSettled,
		IP:            result.Data.IP,
	})
	if err != nil {
		log.Printf("[webhook] commit failed for ref=%s: %v", txRef, err)
		return fail
	}
	if !won {
		// lost the race to a concurrent reconciliation; its commit stands
		return s.successOutcome(tx)
	}

	// tx.UUID doubles as the order uuid (1:1 transaction-order convention)
	if _, err := s.paid.MarkPaid(tx.UUID); err != nil {
		log.Printf("[webhook] order transition failed for order=%s: %v", tx.UUID, err)
		return fail
	}

	s.notifyAdmin(ctx, tx, result.Data.Amount)

	return s.successOutcome(tx)
}

// successOutcome rebuilds the receipt from the freshest persisted state, so
// the redirect reflects durable values rather than pre-commit memory.
func (s *ReconcileService) successOutcome(tx *models.Transaction) Outcome {
	if fresh, err := s.transactions.GetByRef(tx.Ref); err == nil {
		tx = fresh
	}
	var customer *models.User
	if u, err := s.users.GetByUUID(tx.UserID); err == nil {
		customer = u
	}
	return Outcome{Success: true, RedirectURL: NewReceipt(tx, customer).AppendTo(s.cfg.SuccessURL)}
}

// notifyAdmin sends the new-order alert. Best-effort: failures are logged
// and swallowed, they never affect the callback outcome.
func (s *ReconcileService) notifyAdmin(ctx context.Context, tx *models.Transaction, amount float64) {
	if s.notifier == nil {
		return
	}
	order, err := s.orders.GetByUUID(tx.UUID)
	if err != nil {
		log.Printf("[webhook] admin alert skipped, order %s not found: %v", tx.UUID, err)
		return
	}
	items, err := order.LineItems()
	if err != nil {
		log.Printf("[webhook] admin alert skipped: %v", err)
		return
	}

	var customerEmail string
	if u, err := s.users.GetByUUID(tx.UserID); err == nil {
		customerEmail = u.Email
	}

	var lines []string
	var imageURLs []string
	seen := map[string]bool{}
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s | Qty: %d | %s%.2f",
			i+1, item.ProductName, item.Quantity, s.cfg.CurrencySymbol, item.UnitPrice()))
		if strings.HasPrefix(item.ProductImage, "http") && !seen[item.ProductImage] {
			seen[item.ProductImage] = true
			imageURLs = append(imageURLs, item.ProductImage)
		}
	}

	message := fmt.Sprintf("🛒 NEW STORE ORDER\n\nCustomer: %s\nOrder ID: %s\nAmount Paid: %s%.2f\n\nItems:\n%s\n\nPlease process this order.",
		customerEmail, tx.UUID, s.cfg.CurrencySymbol, amount, strings.Join(lines, "\n"))

	if err := s.notifier.SendAdminAlert(ctx, message, imageURLs, nil); err != nil {
		log.Printf("[webhook] admin notification failed: %v", err)
	}
}

// fallbackResult synthesizes a verification from the stored transaction when
// the gateway itself is down.
func fallbackResult(tx *models.Transaction) *gateway.VerificationResult {
	return &gateway.VerificationResult{
		Status: "success",
		Data: gateway.VerificationData{
			TxRef:         tx.Ref,
			Status:        string(domain.PaymentSuccessful),
			Amount:        tx.Amount,
			AppFee:        tx.Fee,
			AmountSettled: tx.AmountSettled,
			Currency:      tx.Currency,
			IP:            tx.IP,
		},
	}
}

func gatewayTransactionID(result *gateway.VerificationResult, fallback string) string {
	if result.Data.ID != 0 {
		return strconv.FormatInt(result.Data.ID, 10)
	}
	return fallback
}

// isAlreadyVerified matches the gateway's "already verified" rejection by a
// case-insensitive substring check on the error message.
func isAlreadyVerified(err error) bool {
	msg := err.Error()
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	return strings.Contains(strings.ToLower(msg), "already verified")
}
