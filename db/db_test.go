package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/monocle-dev/tracker/internal/config"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := ConnectDatabase(config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "seed.db")})
	require.NoError(t, err)
	require.NoError(t, MigrateDatabase(database))
	return database
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("a.db"))
	assert.Equal(t, "a.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=journal_mode(WAL)", sqliteDSN("a.db?_pragma=journal_mode(WAL)"))
}

func TestConnectDatabase_UnknownDriver(t *testing.T) {
	_, err := ConnectDatabase(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestSeed_DefaultDataIsIdempotent(t *testing.T) {
	database := openTestDB(t)

	data, err := LoadSeed("")
	require.NoError(t, err)

	result, err := Seed(database, data)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Users: 2, Categories: 5}, result)

	var admin models.User
	require.NoError(t, database.Where("email = ?", "admin@example.com").First(&admin).Error)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.HasVerifiedEmail())

	var category models.Category
	require.NoError(t, database.Where("name = ?", "Category 3").First(&category).Error)
	assert.Equal(t, "Description 3", category.Description)

	result, err = Seed(database, data)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, result)
}

func TestLoadSeed_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: Ops\n"), 0o600))

	data, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Empty(t, data.Users)
	require.Len(t, data.Categories, 1)
	assert.Equal(t, "Ops", data.Categories[0].Name)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
