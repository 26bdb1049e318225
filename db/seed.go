package db

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/monocle-dev/tracker/internal/auth"
	"github.com/monocle-dev/tracker/internal/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var defaultSeed []byte

type SeedUser struct {
	Name     string      `yaml:"name"`
	Email    string      `yaml:"email"`
	Password string      `yaml:"password"`
	Role     models.Role `yaml:"role"`
	Verified bool        `yaml:"verified"`
}

type SeedCategory struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type SeedData struct {
	Users      []SeedUser     `yaml:"users"`
	Categories []SeedCategory `yaml:"categories"`
}

// LoadSeed reads seed data from path, or the built-in data when path is empty.
func LoadSeed(path string) (*SeedData, error) {
	raw := defaultSeed
	if path != "" {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("reading seed file: %w", err)
		}
	}

	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &data, nil
}

// SeedResult counts the records Seed inserted.
type SeedResult struct {
	Users      int
	Categories int
}

// Seed inserts the users and categories that do not exist yet, matching users
// by email and categories by name.
func Seed(database *gorm.DB, data *SeedData) (SeedResult, error) {
	var result SeedResult

	err := database.Transaction(func(tx *gorm.DB) error {
		for _, u := range data.Users {
			email := strings.ToLower(strings.TrimSpace(u.Email))

			err := tx.Where("email = ?", email).First(&models.User{}).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			hash, err := auth.HashPassword(u.Password)
			if err != nil {
				return err
			}

			role := u.Role
			if role == "" {
				role = models.RoleUser
			}

			user := models.User{Name: u.Name, Email: email, PasswordHash: hash, Role: role}
			if u.Verified {
				now := time.Now()
				user.EmailVerifiedAt = &now
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("seeding user %s: %w", email, err)
			}
			result.Users++
		}

		for _, c := range data.Categories {
			var count int64
			if err := tx.Model(&models.Category{}).Where("name = ?", c.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			category := models.Category{Name: c.Name, Description: c.Description}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("seeding category %s: %w", c.Name, err)
			}
			result.Categories++
		}

		return nil
	})

	return result, err
}
