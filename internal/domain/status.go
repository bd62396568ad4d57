package domain

import "strings"

// PaymentStatus is the canonical transaction status. The gateway reports
// success under several raw spellings; they collapse to PaymentSuccessful at
// the boundary so the rest of the code never compares raw strings.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentSuccessful PaymentStatus = "successful"
	PaymentFailed     PaymentStatus = "failed"
)

// successSynonyms are the raw gateway spellings of a successful payment.
var successSynonyms = map[string]bool{
	"successful": true,
	"completed":  true,
	"paid":       true,
	"success":    true,
}

// IsSuccessStatus reports whether a raw status string denotes success.
func IsSuccessStatus(raw string) bool {
	return successSynonyms[strings.ToLower(strings.TrimSpace(raw))]
}

// NormalizePaymentStatus maps a raw gateway status onto the canonical enum.
func NormalizePaymentStatus(raw string) PaymentStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case successSynonyms[s]:
		return PaymentSuccessful
	case s == "failed":
		return PaymentFailed
	default:
		return PaymentPending
	}
}

type OrderStatus string

const (
	OrderCreated        OrderStatus = "created"
	OrderPaid           OrderStatus = "paid"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
)

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)
