// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/monocle-dev/tracker/db"
	"github.com/monocle-dev/tracker/internal/auth"
	"github.com/monocle-dev/tracker/internal/config"
	"github.com/monocle-dev/tracker/internal/mail"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a migrated sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.ConnectDatabase(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "tracker.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.MigrateDatabase(database))

	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return database
}

func NewSigner() *auth.LinkSigner {
	return auth.NewLinkSigner("test-secret", "http://localhost:3000", time.Hour)
}

// Outbox records dispatched mail synchronously.
type Outbox struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (o *Outbox) Dispatch(msg mail.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
}

func (o *Outbox) Send(_ context.Context, msg mail.Message) error {
	o.Dispatch(msg)
	return nil
}

func (o *Outbox) Messages() []mail.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]mail.Message(nil), o.messages...)
}

// Notifications records project change notifications.
type Notifications struct {
	mu  sync.Mutex
	ids []uint
}

func (n *Notifications) ProjectChanged(projectID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, projectID)
}

func (n *Notifications) IDs() []uint {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]uint(nil), n.ids...)
}

// CreateUser inserts a user with password "12345678".
func CreateUser(t *testing.T, database *gorm.DB, email string, role models.Role, verified bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("12345678")
	require.NoError(t, err)

	user := models.User{Name: email, Email: email, PasswordHash: hash, Role: role}
	if verified {
		now := time.Now()
		user.EmailVerifiedAt = &now
	}
	require.NoError(t, database.Create(&user).Error)
	return &user
}

func CreateCategory(t *testing.T, database *gorm.DB, name string) *models.Category {
	t.Helper()
	category := models.Category{Name: name, Description: "Description of " + name}
	require.NoError(t, database.Create(&category).Error)
	return &category
}

// CreateProject inserts a project owned by ownerID and linked to categories.
func CreateProject(t *testing.T, database *gorm.DB, ownerID uint, name string, categories ...*models.Category) *models.Project {
	t.Helper()
	project := models.Project{Name: name, UserID: ownerID}
	for _, c := range categories {
		project.Categories = append(project.Categories, *c)
	}
	require.NoError(t, database.Omit("Categories.*").Create(&project).Error)
	return &project
}

func CreateSituation(t *testing.T, database *gorm.DB, projectID uint, name string, status models.SituationStatus) *models.Situation {
	t.Helper()
	situation := models.Situation{Name: name, Status: status, ProjectID: projectID}
	require.NoError(t, database.Omit("Project").Create(&situation).Error)
	return &situation
}
