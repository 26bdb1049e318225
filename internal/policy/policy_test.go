package policy

import (
	"testing"

	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = Principal{ID: 1, Role: models.RoleAdmin}
	owner = Principal{ID: 2, Role: models.RoleUser}
	other = Principal{ID: 3, Role: models.RoleUser}
)

func newEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	e, err := NewEnforcer()
	require.NoError(t, err)
	return e
}

func assertForbidden(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperr.Is(err, 403), err.Error())
}

func TestCategoryPolicy(t *testing.T) {
	e := newEnforcer(t)

	for _, c := range []Capability{ViewAny, View} {
		assert.NoError(t, e.Category(c, owner), c)
		assert.NoError(t, e.Category(c, admin), c)
	}
	for _, c := range []Capability{Create, Update, Delete} {
		assertForbidden(t, e.Category(c, owner))
		assert.NoError(t, e.Category(c, admin), c)
	}
}

func TestProjectPolicy(t *testing.T) {
	e := newEnforcer(t)
	project := &models.Project{BaseModel: models.BaseModel{ID: 10}, UserID: owner.ID}

	assert.NoError(t, e.Project(Create, other, nil))
	assert.NoError(t, e.Project(ViewAny, other, nil))

	for _, c := range []Capability{View, Update, Delete} {
		assert.NoError(t, e.Project(c, owner, project), c)
		assert.NoError(t, e.Project(c, admin, project), c)
		assertForbidden(t, e.Project(c, other, project))
	}
}

func TestSituationPolicy_UsesParentOwner(t *testing.T) {
	e := newEnforcer(t)
	parent := &models.Project{BaseModel: models.BaseModel{ID: 10}, UserID: owner.ID}

	for _, c := range []Capability{Create, View, Update, Delete} {
		assert.NoError(t, e.Situation(c, owner, parent), c)
		assert.NoError(t, e.Situation(c, admin, parent), c)
		assertForbidden(t, e.Situation(c, other, parent))
	}
}

func TestUserPolicy(t *testing.T) {
	e := newEnforcer(t)
	self := &models.User{BaseModel: models.BaseModel{ID: owner.ID}}
	someone := &models.User{BaseModel: models.BaseModel{ID: other.ID}}

	for _, c := range []Capability{View, Update, Delete} {
		assert.NoError(t, e.User(c, owner, self), c)
		assertForbidden(t, e.User(c, owner, someone))
		assert.NoError(t, e.User(c, admin, someone), c)
	}

	assertForbidden(t, e.User(ViewAny, owner, nil))
	assertForbidden(t, e.User(Create, owner, nil))
	assert.NoError(t, e.User(ViewAny, admin, nil))
	assert.NoError(t, e.User(Create, admin, nil))
}

func TestEmptyRoleIsTreatedAsUser(t *testing.T) {
	e := newEnforcer(t)
	assert.NoError(t, e.Category(View, Principal{ID: 9}))
	assertForbidden(t, e.Category(Create, Principal{ID: 9}))
}
