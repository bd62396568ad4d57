package service

import (
	"net/url"
	"strconv"
	"time"

	"cartroyal/internal/domain"
	"cartroyal/internal/models"
)

// Receipt is the flattened payment summary exposed to the customer, both as
// JSON (transactions API) and as success-redirect query parameters.
type Receipt struct {
	TransactionID  string  `json:"transactionId"`
	Reference      string  `json:"reference"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	Status         string  `json:"status"`
	PaymentChannel string  `json:"paymentChannel"`
	Fees           float64 `json:"fees"`
	NetAmount      float64 `json:"netAmount"`
	PaidAt         string  `json:"paidAt,omitempty"`
	CustomerEmail  string  `json:"customerEmail,omitempty"`
	CustomerName   string  `json:"customerName,omitempty"`
	CustomerPhone  string  `json:"customerPhone,omitempty"`
	Description    string  `json:"description"`
}

// NewReceipt builds a Receipt from a persisted transaction and its owner.
// customer may be nil when the profile could not be resolved.
func NewReceipt(tx *models.Transaction, customer *models.User) Receipt {
	net := tx.AmountSettled
	if net == 0 {
		net = tx.Amount - tx.Fee
	}
	r := Receipt{
		TransactionID:  tx.TransactionID,
		Reference:      tx.Ref,
		Amount:         tx.Amount,
		Currency:       tx.Currency,
		Status:         string(tx.Status),
		PaymentChannel: tx.Type,
		Fees:           tx.Fee,
		NetAmount:      net,
		Description:    tx.Narration,
	}
	if r.TransactionID == "" {
		r.TransactionID = tx.UUID
	}
	if r.Description == "" {
		r.Description = "Transaction payment"
	}
	if tx.Status == domain.PaymentSuccessful {
		r.PaidAt = tx.UpdatedAt.Format(time.RFC3339)
	}
	if customer != nil {
		r.CustomerEmail = customer.Email
		r.CustomerName = customer.FullName()
		r.CustomerPhone = customer.Phone
	}
	return r
}

// AppendTo attaches the receipt as query parameters to a redirect URL.
func (r Receipt) AppendTo(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	q := u.Query()
	q.Set("transactionId", r.TransactionID)
	q.Set("reference", r.Reference)
	q.Set("amount", strconv.FormatFloat(r.Amount, 'f', -1, 64))
	q.Set("currency", r.Currency)
	q.Set("status", r.Status)
	q.Set("paymentChannel", r.PaymentChannel)
	q.Set("fees", strconv.FormatFloat(r.Fees, 'f', -1, 64))
	q.Set("netAmount", strconv.FormatFloat(r.NetAmount, 'f', -1, 64))
	q.Set("paidAt", r.PaidAt)
	q.Set("customerEmail", r.CustomerEmail)
	q.Set("customerName", r.CustomerName)
	q.Set("customerPhone", r.CustomerPhone)
	q.Set("description", r.Description)
	u.RawQuery = q.Encode()
	return u.String()
}
