package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/auth"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/monocle-dev/tracker/internal/policy"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserInput struct {
	Name     string
	Email    string
	Password string
}

// UserPatch fields are applied only when present and non-empty.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

type UserService struct {
	db            *gorm.DB
	policy        *policy.Enforcer
	verifications *Verifications
}

func (s *UserService) List(ctx context.Context, p policy.Principal) ([]models.User, error) {
	if err := s.policy.User(policy.ViewAny, p, nil); err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// Find resolves the user and checks capability c on it.
func (s *UserService) Find(ctx context.Context, p policy.Principal, id uint, c policy.Capability) (*models.User, error) {
	user, err := findByID[models.User](s.db.WithContext(ctx), id, "user")
	if err != nil {
		return nil, err
	}
	if err := s.policy.User(c, p, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Create adds an unverified user on behalf of an admin and sends them a
// verification link.
func (s *UserService) Create(ctx context.Context, p policy.Principal, input UserInput) (*models.User, error) {
	if err := s.policy.User(policy.Create, p, nil); err != nil {
		return nil, err
	}

	user, err := createUser(s.db.WithContext(ctx), input, models.RoleUser)
	if err != nil {
		return nil, err
	}

	s.verifications.Send(user)
	return user, nil
}

// Update applies patch and reports whether the email changed, in which case
// the user has to verify it again.
func (s *UserService) Update(ctx context.Context, user *models.User, patch UserPatch) (bool, error) {
	db := s.db.WithContext(ctx)
	fields := map[string]any{}

	if patch.Name != nil && *patch.Name != "" {
		fields["name"] = *patch.Name
	}

	emailChanged := false
	if patch.Email != nil && *patch.Email != "" {
		email := normalizeEmail(*patch.Email)
		taken, err := emailTaken(db, email, user.ID)
		if err != nil {
			return false, apperr.Internal(err)
		}
		if taken {
			return false, errEmailTaken
		}
		if email != user.Email {
			emailChanged = true
			fields["email"] = email
			fields["email_verified_at"] = nil
		}
	}

	if patch.Password != nil && *patch.Password != "" {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return false, apperr.Internal(err)
		}
		fields["password_hash"] = hash
	}

	if len(fields) == 0 {
		return false, nil
	}

	if err := db.Model(user).Omit(clause.Associations).Updates(fields).Error; err != nil {
		return false, wrap(err)
	}

	if emailChanged {
		user.Email = fields["email"].(string)
		user.EmailVerifiedAt = nil
		s.verifications.Send(user)
	}
	return emailChanged, nil
}

// Delete removes the user and their access tokens. Projects the user owns
// are kept.
func (s *UserService) Delete(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.AccessToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, user.ID).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// PromoteToAdmin gives the user with email the admin role.
func (s *UserService) PromoteToAdmin(ctx context.Context, email string) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(http.StatusNotFound, fmt.Sprintf("User with email %s not found", email), nil)
		}
		return nil, apperr.Internal(err)
	}

	if err := db.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	user.Role = models.RoleAdmin
	return &user, nil
}

func createUser(db *gorm.DB, input UserInput, role models.Role) (*models.User, error) {
	email := normalizeEmail(input.Email)

	taken, err := emailTaken(db, email, 0)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, errEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := models.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}
