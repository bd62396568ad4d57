package service

import (
	"context"
	"errors"
	"testing"

	"cartroyal/config"
	"cartroyal/internal/domain"
	"cartroyal/internal/models"
	"cartroyal/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func authFixture() (*mockUserStore, *mockTokenStore, *mockMailer, *AuthService) {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access",
			RefreshSecret: "test-refresh",
			Issuer:        "cartroyal-test",
		},
		App: config.AppConfig{
			BrandName:       "Cart Royal",
			FrontendBaseURL: "https://shop.example.com",
			ResetPath:       "/reset",
		},
	}
	users := new(mockUserStore)
	tokens := new(mockTokenStore)
	mail := new(mockMailer)
	svc := NewAuthService(cfg, users, NewTokenService(tokens), mail)
	return users, tokens, mail, svc
}

func TestRegisterHashesPasswordAndIssuesTokens(t *testing.T) {
	users, _, _, svc := authFixture()

	users.On("GetByEmail", "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "jane@example.com" &&
			u.Role == domain.RoleUser &&
			u.PasswordHash != "secret-pass" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-pass")) == nil
	})).Return(nil).Once()

	u, access, refresh, err := svc.Register("jane@example.com", "Jane", "Doe", "+234", "secret-pass")

	assert.NoError(t, err)
	assert.NotEmpty(t, u.UUID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	users.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users, _, _, svc := authFixture()

	users.On("GetByEmail", "jane@example.com").Return(customerU1(), nil)

	_, _, _, err := svc.Register("jane@example.com", "", "", "", "secret-pass")

	assert.ErrorIs(t, err, ErrEmailExists)
	users.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLoginWrongPassword(t *testing.T) {
	users, _, _, svc := authFixture()

	hash, _ := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.DefaultCost)
	u := customerU1()
	u.PasswordHash = string(hash)
	users.On("GetByEmail", "jane@example.com").Return(u, nil)

	_, _, _, err := svc.Login("jane@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	users, _, _, svc := authFixture()
	users.On("GetByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := svc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestForgotPasswordIssuesTokenAndEmailsLink(t *testing.T) {
	users, tokens, mail, svc := authFixture()

	users.On("GetByEmail", "jane@example.com").Return(customerU1(), nil).Once()
	tokens.On("DeleteByUserAndType", "U1", "reset").Return(nil).Once()
	var minted string
	tokens.On("Create", mock.MatchedBy(func(tk *models.Token) bool {
		minted = tk.Token
		return tk.Type == "reset" && tk.UserID == "U1" && tk.ExpiresOn != nil
	})).Return(nil).Once()
	mail.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		link, _ := msg.Data["link"].(string)
		return msg.To == "jane@example.com" &&
			msg.TemplateRef == mailer.TemplateResetPassword &&
			link == "https://shop.example.com/reset?token="+minted+"&type=reset"
	})).Return(nil).Once()

	err := svc.ForgotPassword(context.Background(), "jane@example.com")

	assert.NoError(t, err)
	tokens.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	users, tokens, _, svc := authFixture()
	users.On("GetByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	tokens.AssertNotCalled(t, "Create", mock.Anything)
}

func TestForgotPasswordEmailFailureIsSwallowed(t *testing.T) {
	users, tokens, mail, svc := authFixture()

	users.On("GetByEmail", "jane@example.com").Return(customerU1(), nil)
	tokens.On("DeleteByUserAndType", mock.Anything, mock.Anything).Return(nil)
	tokens.On("Create", mock.Anything).Return(nil)
	mail.On("Send", mock.Anything, mock.Anything).Return(errors.New("resend down"))

	assert.NoError(t, svc.ForgotPassword(context.Background(), "jane@example.com"))
}

func TestResetPasswordConsumesToken(t *testing.T) {
	users, tokens, _, svc := authFixture()

	tokens.On("GetByTypeAndToken", "reset", "tok").Return(&models.Token{
		UUID: "T1", Type: "reset", Token: "tok", UserID: "U1",
	}, nil).Once()
	users.On("GetByUUID", "U1").Return(customerU1(), nil).Once()
	users.On("Update", mock.MatchedBy(func(u *models.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-pass-123")) == nil
	})).Return(nil).Once()
	tokens.On("DeleteByTypeAndToken", "reset", "tok").Return(nil).Once()

	assert.NoError(t, svc.ResetPassword("tok", "new-pass-123"))
	tokens.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	users, tokens, _, svc := authFixture()
	tokens.On("GetByTypeAndToken", "reset", "tok").Return(nil, errors.New("record not found"))

	err := svc.ResetPassword("tok", "new-pass-123")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	users.AssertNotCalled(t, "Update", mock.Anything)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	users, _, _, svc := authFixture()

	hash, _ := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.DefaultCost)
	u := customerU1()
	u.PasswordHash = string(hash)
	users.On("GetByUUID", "U1").Return(u, nil)

	err := svc.ChangePassword("U1", "wrong-pass", "new-pass")
	assert.ErrorIs(t, err, ErrInvalidCreds)
	users.AssertNotCalled(t, "Update", mock.Anything)
}
