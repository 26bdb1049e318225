package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/auth"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const accessTokenName = "auth_token"

var (
	errLoginInvalid    = apperr.Unauthenticated("Login information is invalid.")
	errUnauthenticated = apperr.Unauthenticated("Unauthenticated.")
)

type AuthService struct {
	db            *gorm.DB
	signer        *auth.LinkSigner
	verifications *Verifications
}

// Register creates an unverified user and sends the verification link.
func (s *AuthService) Register(ctx context.Context, input UserInput) (*models.User, error) {
	user, err := createUser(s.db.WithContext(ctx), input, models.RoleUser)
	if err != nil {
		return nil, err
	}

	s.verifications.Send(user)
	return user, nil
}

// Login checks the credentials and issues a new bearer token. The raw token
// is returned once and only its hash is stored.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errLoginInvalid
		}
		return "", apperr.Internal(err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("unreadable password hash")
		return "", errLoginInvalid
	}
	if !ok {
		return "", errLoginInvalid
	}

	raw, hash, err := auth.GenerateToken()
	if err != nil {
		return "", apperr.Internal(err)
	}

	token := models.AccessToken{UserID: user.ID, Name: accessTokenName, TokenHash: hash}
	if err := db.Create(&token).Error; err != nil {
		return "", apperr.Internal(err)
	}
	return raw, nil
}

// Authenticate resolves a raw bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*models.User, *models.AccessToken, error) {
	if raw == "" {
		return nil, nil, errUnauthenticated
	}

	db := s.db.WithContext(ctx)

	var token models.AccessToken
	if err := db.Where("token_hash = ?", auth.HashToken(raw)).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errUnauthenticated
		}
		return nil, nil, apperr.Internal(err)
	}

	var user models.User
	if err := db.First(&user, token.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errUnauthenticated
		}
		return nil, nil, apperr.Internal(err)
	}

	now := time.Now()
	if err := db.Model(&token).UpdateColumn("last_used_at", now).Error; err != nil {
		log.Warn().Err(err).Uint("token_id", token.ID).Msg("failed to touch access token")
	}
	token.LastUsedAt = &now

	return &user, &token, nil
}

// Logout revokes a single access token.
func (s *AuthService) Logout(ctx context.Context, tokenID uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.AccessToken{}, tokenID).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// VerifyEmail marks the user as verified when the signed link is valid and
// still matches the user's current email. Verifying twice is a no-op.
func (s *AuthService) VerifyEmail(ctx context.Context, id, hash, signature string) error {
	if err := s.signer.Verify(id, hash, signature); err != nil {
		return apperr.ForbiddenMessage(err.Error())
	}

	userID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return apperr.NotFound("user")
	}

	db := s.db.WithContext(ctx)
	user, err := findByID[models.User](db, uint(userID), "user")
	if err != nil {
		return err
	}

	if auth.EmailHash(user.Email) != hash {
		return apperr.Forbidden()
	}
	if user.HasVerifiedEmail() {
		return nil
	}

	now := time.Now()
	if err := db.Model(user).Update("email_verified_at", now).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// SendVerification queues a fresh verification link for an unverified user.
func (s *AuthService) SendVerification(user *models.User) {
	if user.HasVerifiedEmail() {
		return
	}
	s.verifications.Send(user)
}
