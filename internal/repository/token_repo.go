package repository

import (
	"cartroyal/internal/models"

	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(t *models.Token) error {
	return r.db.Create(t).Error
}

func (r *TokenRepository) GetByTypeAndToken(tokenType, token string) (*models.Token, error) {
	var t models.Token
	err := r.db.Where("type = ? AND token = ?", tokenType, token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteByType enforces the single-live-token invariant for composite types
// (the type string embeds the order, so it is unique to one capability).
func (r *TokenRepository) DeleteByType(tokenType string) error {
	return r.db.Where("type = ?", tokenType).Delete(&models.Token{}).Error
}

// DeleteByUserAndType scopes the invariant by owner for shared types such as
// password reset, where many users hold tokens of the same type.
func (r *TokenRepository) DeleteByUserAndType(userID, tokenType string) error {
	return r.db.Where("user_id = ? AND type = ?", userID, tokenType).Delete(&models.Token{}).Error
}

func (r *TokenRepository) DeleteByTypeAndToken(tokenType, token string) error {
	return r.db.Where("type = ? AND token = ?", tokenType, token).Delete(&models.Token{}).Error
}
