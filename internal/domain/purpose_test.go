package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTokenPurpose(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    TokenPurpose
		wantErr bool
	}{
		{name: "reset", raw: "reset", want: PasswordReset()},
		{name: "delivery confirmation", raw: "order-received:O1", want: DeliveryConfirmation("O1")},
		{name: "surrounding whitespace", raw: "  reset  ", want: PasswordReset()},
		{name: "empty", raw: "", wantErr: true},
		{name: "bare delivery kind", raw: "order-received", wantErr: true},
		{name: "empty order id", raw: "order-received:", wantErr: true},
		{name: "unknown kind", raw: "giftcard:O1", wantErr: true},
		{name: "reset with suffix", raw: "reset:O1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTokenPurpose(tt.raw)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidInput), "want ErrInvalidInput, got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenPurposeRoundTrip(t *testing.T) {
	for _, p := range []TokenPurpose{PasswordReset(), DeliveryConfirmation("abc-123")} {
		parsed, err := ParseTokenPurpose(p.String())
		assert.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
}
