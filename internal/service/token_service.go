package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"cartroyal/internal/domain"
	"cartroyal/internal/models"

	"github.com/google/uuid"
)

const tokenLength = 48

// TokenService is the capability token store. A token is an unguessable
// string that authorizes the action named by its purpose; at most one live
// token exists per purpose (scoped by owner for shared kinds like password
// reset). Expiry is enforced lazily on lookup, never swept.
type TokenService struct {
	tokens TokenStore
	now    func() time.Time
}

func NewTokenService(tokens TokenStore) *TokenService {
	return &TokenService{tokens: tokens, now: time.Now}
}

// Issue destroys any live token for the purpose and mints a fresh one.
// ttl <= 0 issues a token with no expiry.
func (s *TokenService) Issue(purpose domain.TokenPurpose, userID string, ttl time.Duration) (*models.Token, error) {
	tokenType := purpose.String()
	if purpose.Kind == domain.KindDeliveryConfirmation {
		// type embeds the order id, so the invariant is global per type
		if err := s.tokens.DeleteByType(tokenType); err != nil {
			return nil, err
		}
	} else {
		if err := s.tokens.DeleteByUserAndType(userID, tokenType); err != nil {
			return nil, err
		}
	}
	tk := &models.Token{
		UUID:   uuid.NewString(),
		Type:   tokenType,
		Token:  randomToken(tokenLength),
		UserID: userID,
	}
	if ttl > 0 {
		expires := s.now().Add(ttl)
		tk.ExpiresOn = &expires
	}
	if err := s.tokens.Create(tk); err != nil {
		return nil, err
	}
	return tk, nil
}

// Lookup resolves a token by (purpose, value). An expired token is destroyed
// on sight and reported as ErrExpired, so the next identical request sees
// ErrNotFound.
func (s *TokenService) Lookup(purpose domain.TokenPurpose, value string) (*models.Token, error) {
	tokenType := purpose.String()
	tk, err := s.tokens.GetByTypeAndToken(tokenType, value)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if tk.Expired(s.now()) {
		_ = s.tokens.DeleteByTypeAndToken(tokenType, value)
		return nil, domain.ErrExpired
	}
	return tk, nil
}

// Destroy removes a token. Idempotent.
func (s *TokenService) Destroy(purpose domain.TokenPurpose, value string) error {
	return s.tokens.DeleteByTypeAndToken(purpose.String(), value)
}

// randomToken returns n hex chars of cryptographic randomness.
func randomToken(n int) string {
	b := make([]byte, (n+1)/2)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("token entropy unavailable: %v", err))
	}
	return hex.EncodeToString(b)[:n]
}
