package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ResendClient delivers email through the Resend HTTP API.
type ResendClient struct {
	APIKey string
	From   string
	client *http.Client
}

func NewResendClient(apiKey, from string) *ResendClient {
	return &ResendClient{
		APIKey: apiKey,
		From:   from,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type resendReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResp struct {
	ID string `json:"id"`
}

func (c *ResendClient) Send(ctx context.Context, msg Message) error {
	if c.APIKey == "" {
		return fmt.Errorf("resend: missing API key")
	}
	html, err := Render(msg.TemplateRef, msg.Data)
	if err != nil {
		return err
	}
	body, _ := json.Marshal(resendReq{
		From:    c.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    html,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(respBody) > 200 {
			respBody = respBody[:200]
		}
		return fmt.Errorf("resend: %d %s", resp.StatusCode, string(respBody))
	}
	var out resendResp
	if json.Unmarshal(respBody, &out) == nil && out.ID != "" {
		log.Printf("[mailer] sent %s to=%s id=%s", msg.TemplateRef, msg.To, out.ID)
	}
	return nil
}
