package policy

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/casbin/casbin/v3"
	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/models"
)

//go:embed model.conf policy.csv
var embedFS embed.FS

type Capability string

const (
	ViewAny Capability = "viewAny"
	View    Capability = "view"
	Create  Capability = "create"
	Update  Capability = "update"
	Delete  Capability = "delete"
)

// Relation between the principal and the resource, matched against the
// last column of the policy table.
type relation string

const (
	relNone  relation = "none"
	relOwner relation = "owner"
	relSelf  relation = "self"
	relOther relation = "other"
)

// Principal is the authenticated user a decision is made for.
type Principal struct {
	ID   uint
	Role models.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

type Enforcer struct {
	enforcer *casbin.Enforcer
}

// NewEnforcer loads the embedded model and policy table.
func NewEnforcer() (*Enforcer, error) {
	dir, err := os.MkdirTemp("", "tracker-casbin-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	for _, name := range []string{"model.conf", "policy.csv"} {
		data, err := embedFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0600); err != nil {
			return nil, err
		}
	}

	enforcer, err := casbin.NewEnforcer(filepath.Join(dir, "model.conf"), filepath.Join(dir, "policy.csv"))
	if err != nil {
		return nil, fmt.Errorf("loading policy: %w", err)
	}

	return &Enforcer{enforcer: enforcer}, nil
}

func (e *Enforcer) allows(p Principal, object string, c Capability, rel relation) (bool, error) {
	role := p.Role
	if role == "" {
		role = models.RoleUser
	}
	return e.enforcer.Enforce(string(role), object, string(c), string(rel))
}

func (e *Enforcer) authorize(p Principal, object string, c Capability, rel relation) error {
	allowed, err := e.allows(p, object, c, rel)
	if err != nil {
		return apperr.Internal(err)
	}
	if !allowed {
		return apperr.Forbidden()
	}
	return nil
}

func ownership(p Principal, ownerID uint) relation {
	if ownerID != 0 && ownerID == p.ID {
		return relOwner
	}
	return relOther
}

// Category checks a capability on categories. Categories carry no owner.
func (e *Enforcer) Category(c Capability, p Principal) error {
	return e.authorize(p, "category", c, relNone)
}

// Project checks a capability on project. project is nil for viewAny and create.
func (e *Enforcer) Project(c Capability, p Principal, project *models.Project) error {
	rel := relNone
	if project != nil {
		rel = ownership(p, project.UserID)
	}
	return e.authorize(p, "project", c, rel)
}

// Situation checks a capability through the owner of the situation's parent
// project, which must be loaded.
func (e *Enforcer) Situation(c Capability, p Principal, parent *models.Project) error {
	rel := relNone
	if parent != nil {
		rel = ownership(p, parent.UserID)
	}
	return e.authorize(p, "situation", c, rel)
}

func (e *Enforcer) User(c Capability, p Principal, target *models.User) error {
	rel := relNone
	if target != nil {
		rel = relOther
		if target.ID == p.ID {
			rel = relSelf
		}
	}
	return e.authorize(p, "user", c, rel)
}
