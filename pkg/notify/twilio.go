package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TwilioWhatsApp sends admin alerts over the Twilio WhatsApp API.
type TwilioWhatsApp struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
	ContentSID string // optional template; falls back to a plain body
	client     *http.Client
}

func NewTwilioWhatsApp(accountSID, authToken, from, to string) *TwilioWhatsApp {
	return &TwilioWhatsApp{
		AccountSID: accountSID,
		AuthToken:  authToken,
		From:       from,
		To:         to,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *TwilioWhatsApp) SendAdminAlert(ctx context.Context, text string, imageURLs []string, templateVars map[string]string) error {
	if t.AccountSID == "" || t.AuthToken == "" || t.From == "" || t.To == "" {
		return fmt.Errorf("twilio whatsapp not configured")
	}
	form := url.Values{}
	form.Set("From", t.From)
	form.Set("To", t.To)
	if t.ContentSID != "" {
		vars := map[string]string{"1": text}
		for k, v := range templateVars {
			vars[k] = v
		}
		b, _ := json.Marshal(vars)
		form.Set("ContentSid", t.ContentSID)
		form.Set("ContentVariables", string(b))
	} else {
		form.Set("Body", text)
	}
	for _, u := range imageURLs {
		form.Add("MediaUrl", u)
	}
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", t.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.AccountSID, t.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		if len(body) > 200 {
			body = body[:200]
		}
		return fmt.Errorf("twilio: %d %s", resp.StatusCode, string(body))
	}
	return nil
}
