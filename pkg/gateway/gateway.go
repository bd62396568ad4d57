package gateway

import (
	"context"
	"fmt"
)

// VerificationData mirrors the data object of the gateway's verify response.
type VerificationData struct {
	ID            int64   `json:"id"`
	TxRef         string  `json:"tx_ref"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	AppFee        float64 `json:"app_fee"`
	AmountSettled float64 `json:"amount_settled"`
	Currency      string  `json:"currency"`
	PaymentType   string  `json:"payment_type"`
	IP            string  `json:"ip"`
}

type VerificationResult struct {
	Status  string
	Message string
	Data    VerificationData
}

// Verifier confirms a charge against the gateway by its internal id.
type Verifier interface {
	Verify(ctx context.Context, transactionID string) (*VerificationResult, error)
}

type PaymentRequest struct {
	TxRef         string
	Amount        float64
	Currency      string
	RedirectURL   string
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	Narration     string
}

// Initiator creates a hosted checkout and returns its payment link.
type Initiator interface {
	InitiatePayment(ctx context.Context, req PaymentRequest) (string, error)
}

// APIError is a gateway rejection carrying the HTTP status it came with.
// Server-side (5xx) errors signal upstream unavailability, not a failed
// charge, and callers may recover from them.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) ServerSide() bool {
	return e.StatusCode >= 500
}
