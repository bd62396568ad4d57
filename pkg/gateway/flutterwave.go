package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"
)

// FlutterwaveClient talks to the Flutterwave v3 API.
type FlutterwaveClient struct {
	BaseURL   string
	SecretKey string
	client    *http.Client
}

func NewFlutterwaveClient(baseURL, secretKey string) *FlutterwaveClient {
	if baseURL == "" {
		baseURL = "https://api.flutterwave.com"
	}
	return &FlutterwaveClient{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type flwEnvelope struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Data    VerificationData `json:"data"`
}

// Verify fetches the gateway's record of a charge. Non-2xx responses become
// *APIError so callers can distinguish 5xx outages from rejections.
func (c *FlutterwaveClient) Verify(ctx context.Context, transactionID string) (*VerificationResult, error) {
	url := fmt.Sprintf("%s/v3/transactions/%s/verify", c.BaseURL, transactionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: apiMessage(body)}
	}
	var out flwEnvelope
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("flutterwave verify: decode: %w", err)
	}
	return &VerificationResult{Status: out.Status, Message: out.Message, Data: out.Data}, nil
}

type flwPaymentReq struct {
	TxRef       string      `json:"tx_ref"`
	Amount      string      `json:"amount"`
	Currency    string      `json:"currency"`
	RedirectURL string      `json:"redirect_url"`
	Customer    flwCustomer `json:"customer"`
	Narration   string      `json:"narration,omitempty"`
}

type flwCustomer struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phonenumber,omitempty"`
}

type flwPaymentResp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

// InitiatePayment creates a hosted checkout session and returns the link the
// customer is sent to.
func (c *FlutterwaveClient) InitiatePayment(ctx context.Context, r PaymentRequest) (string, error) {
	payload := flwPaymentReq{
		TxRef:       r.TxRef,
		Amount:      strconv.FormatFloat(r.Amount, 'f', 2, 64),
		Currency:    r.Currency,
		RedirectURL: r.RedirectURL,
		Customer: flwCustomer{
			Email:       r.CustomerEmail,
			Name:        r.CustomerName,
			PhoneNumber: r.CustomerPhone,
		},
		Narration: r.Narration,
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v3/payments", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	log.Printf("[flutterwave] POST /v3/payments tx_ref=%s amount=%s", r.TxRef, payload.Amount)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: apiMessage(respBody)}
	}
	var out flwPaymentResp
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("flutterwave payments: decode: %w", err)
	}
	if out.Data.Link == "" {
		return "", fmt.Errorf("flutterwave payments: no checkout link (%s)", out.Message)
	}
	return out.Data.Link, nil
}

// apiMessage pulls a human-readable message out of an error body, falling
// back to the raw body when it is not the usual envelope.
func apiMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Msg != "" {
			return e.Msg
		}
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
