package models

import "time"

// Token is a single-use capability: the unguessable Token string itself
// authorizes the action named by Type. At most one live row exists per Type;
// issuing destroys any predecessor.
type Token struct {
	UUID      string     `gorm:"primaryKey;size:64" json:"uuid"`
	Type      string     `gorm:"size:128;not null;index:idx_tokens_type_token" json:"type"`
	Token     string     `gorm:"size:128;not null;index:idx_tokens_type_token" json:"-"`
	UserID    string     `gorm:"size:64;not null;index" json:"user_id"`
	ExpiresOn *time.Time `json:"expires_on"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Token) TableName() string {
	return "tokens"
}

// Expired reports whether the token is past its validity at t. Tokens with no
// expiry never expire.
func (tk *Token) Expired(t time.Time) bool {
	return tk.ExpiresOn != nil && t.After(*tk.ExpiresOn)
}
