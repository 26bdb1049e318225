package cli

import (
	"bytes"
	"testing"

	"github.com/monocle-dev/tracker/internal/config"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/monocle-dev/tracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(app)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func newApp(t *testing.T) *App {
	t.Helper()
	return &App{Config: &config.Config{}, DB: testutil.NewDB(t)}
}

func TestMakeAdmin(t *testing.T) {
	app := newApp(t)
	testutil.CreateUser(t, app.DB, "user@example.com", models.RoleUser, true)

	_, err := run(t, app, "make-admin", "ghost@example.com")
	require.Error(t, err)
	assert.Equal(t, "User with email ghost@example.com not found", err.Error())

	out, err := run(t, app, "make-admin", "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "User with email user@example.com was promoted to admin\n", out)

	var user models.User
	require.NoError(t, app.DB.Where("email = ?", "user@example.com").First(&user).Error)
	assert.True(t, user.IsAdmin())
}

func TestMakeAdmin_RequiresEmail(t *testing.T) {
	_, err := run(t, newApp(t), "make-admin")
	assert.Error(t, err)
}

func TestSeedAndMigrate(t *testing.T) {
	app := newApp(t)

	out, err := run(t, app, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "Database migrated\n", out)

	out, err = run(t, app, "seed")
	require.NoError(t, err)
	assert.Equal(t, "Seeded 2 users and 5 categories\n", out)

	var count int64
	require.NoError(t, app.DB.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)
}
