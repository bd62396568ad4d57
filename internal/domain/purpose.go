package domain

import (
	"fmt"
	"strings"
)

type TokenKind string

const (
	KindPasswordReset        TokenKind = "reset"
	KindDeliveryConfirmation TokenKind = "order-received"
)

// TokenPurpose identifies what a capability token authorizes. It is stored as
// a string (the Token.Type column) but only serialized/parsed here, so a
// malformed type surfaces as ErrInvalidInput instead of leaking through.
type TokenPurpose struct {
	Kind    TokenKind
	OrderID string // set only for KindDeliveryConfirmation
}

func PasswordReset() TokenPurpose {
	return TokenPurpose{Kind: KindPasswordReset}
}

func DeliveryConfirmation(orderID string) TokenPurpose {
	return TokenPurpose{Kind: KindDeliveryConfirmation, OrderID: orderID}
}

func (p TokenPurpose) String() string {
	if p.Kind == KindDeliveryConfirmation {
		return string(KindDeliveryConfirmation) + ":" + p.OrderID
	}
	return string(p.Kind)
}

// ParseTokenPurpose parses a stored purpose string. A delivery-confirmation
// purpose must carry a non-empty order id after the colon.
func ParseTokenPurpose(raw string) (TokenPurpose, error) {
	raw = strings.TrimSpace(raw)
	if raw == string(KindPasswordReset) {
		return PasswordReset(), nil
	}
	prefix, orderID, found := strings.Cut(raw, ":")
	if !found || prefix != string(KindDeliveryConfirmation) || orderID == "" {
		return TokenPurpose{}, fmt.Errorf("%w: unrecognized token type %q", ErrInvalidInput, raw)
	}
	return DeliveryConfirmation(orderID), nil
}
