package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"cartroyal/config"
	"cartroyal/internal/auth"
	"cartroyal/internal/domain"
	"cartroyal/internal/models"
	"cartroyal/pkg/mailer"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

const resetTokenTTL = time.Hour

type AuthService struct {
	cfg    *config.Config
	users  UserStore
	tokens *TokenService
	mail   mailer.Sender
}

func NewAuthService(cfg *config.Config, users UserStore, tokens *TokenService, mail mailer.Sender) *AuthService {
	return &AuthService{cfg: cfg, users: users, tokens: tokens, mail: mail}
}

func (s *AuthService) Register(email, firstName, lastName, phone, password string) (*models.User, string, string, error) {
	_, err := s.users.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		UUID:         uuid.NewString(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(u); err != nil {
		return nil, "", "", err
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.UUID, u.Email, u.Role)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.UUID)
	if err != nil {
		return u, access, "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.UUID, u.Email, u.Role)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.UUID)
	return u, access, refresh, nil
}

func (s *AuthService) Refresh(refreshToken string) (string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	u, err := s.users.GetByUUID(userID)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.UUID, u.Email, u.Role)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.UUID)
	return access, refresh, nil
}

// ForgotPassword issues a single-active reset token and emails the link. The
// email send is best-effort: the account's existence was already disclosed by
// the NotFound path, and the user can simply retry.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("%w: no account with associated email", domain.ErrNotFound)
	}
	tk, err := s.tokens.Issue(domain.PasswordReset(), u.UUID, resetTokenTTL)
	if err != nil {
		return err
	}
	link := s.resetLink(tk.Token)
	err = s.mail.Send(ctx, mailer.Message{
		To:          u.Email,
		Subject:     s.cfg.App.BrandName + " • Reset Your Password",
		TemplateRef: mailer.TemplateResetPassword,
		Data: map[string]interface{}{
			"brandName": s.cfg.App.BrandName,
			"name":      u.FullName(),
			"link":      link,
		},
	})
	if err != nil {
		log.Printf("[auth] reset email failed for %s: %v", email, err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *AuthService) ResetPassword(tokenValue, newPassword string) error {
	tk, err := s.tokens.Lookup(domain.PasswordReset(), tokenValue)
	if err != nil {
		return err
	}
	u, err := s.users.GetByUUID(tk.UserID)
	if err != nil {
		return domain.ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	if err := s.users.Update(u); err != nil {
		return err
	}
	return s.tokens.Destroy(domain.PasswordReset(), tokenValue)
}

// ChangePassword updates the user's password after verifying the current one.
func (s *AuthService) ChangePassword(userID, currentPassword, newPassword string) error {
	u, err := s.users.GetByUUID(userID)
	if err != nil {
		return ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.users.Update(u)
}

func (s *AuthService) resetLink(token string) string {
	base := strings.TrimRight(s.cfg.App.FrontendBaseURL, "/")
	path := s.cfg.App.ResetPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s%s?token=%s&type=%s", base, path, token, url.QueryEscape(domain.PasswordReset().String()))
}
