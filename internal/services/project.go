package services

import (
	"context"

	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/monocle-dev/tracker/internal/policy"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectInput struct {
	Name        string
	Description string
	Categories  []uint
}

// ProjectPatch holds the fields present in a partial update. A nil field is
// left untouched; an empty Categories list keeps the current set.
type ProjectPatch struct {
	Name        *string
	Description *string
	Categories  []uint
}

type ProjectService struct {
	db       *gorm.DB
	policy   *policy.Enforcer
	notifier Notifier
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// List returns the caller's projects, or every project for an admin.
func (s *ProjectService) List(ctx context.Context, p policy.Principal) ([]models.Project, error) {
	if err := s.policy.Project(policy.ViewAny, p, nil); err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Preload("Categories", orderByID).Order("id")
	if !p.IsAdmin() {
		query = query.Where("user_id = ?", p.ID)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return projects, nil
}

// Find resolves the project with its categories and situations, then checks
// capability c on it.
func (s *ProjectService) Find(ctx context.Context, p policy.Principal, id uint, c policy.Capability) (*models.Project, error) {
	tx := s.db.WithContext(ctx).Preload("Categories", orderByID).Preload("Situations", orderByID)
	project, err := findByID[models.Project](tx, id, "project")
	if err != nil {
		return nil, err
	}
	if err := s.policy.Project(c, p, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, p policy.Principal, input ProjectInput) (*models.Project, error) {
	db := s.db.WithContext(ctx)

	if err := s.policy.Project(policy.Create, p, nil); err != nil {
		return nil, err
	}
	categories, err := resolveCategories(db, input.Categories)
	if err != nil {
		return nil, err
	}

	project := models.Project{
		Name:        input.Name,
		Description: input.Description,
		UserID:      p.ID,
		Categories:  categories,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Categories.*").Create(&project).Error
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &project, nil
}

// Update applies patch to project. Fields and the category set change in one
// transaction.
func (s *ProjectService) Update(ctx context.Context, project *models.Project, patch ProjectPatch) error {
	db := s.db.WithContext(ctx)

	var categories []models.Category
	if len(patch.Categories) > 0 {
		var err error
		if categories, err = resolveCategories(db, patch.Categories); err != nil {
			return err
		}
	}

	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(project).Omit(clause.Associations).Updates(fields).Error; err != nil {
				return err
			}
		}
		if categories != nil {
			if err := tx.Model(project).Association("Categories").Replace(categories); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperr.Internal(err)
	}

	s.notifier.ProjectChanged(project.ID)
	return nil
}

// Delete removes the project together with its situations and category links.
func (s *ProjectService) Delete(ctx context.Context, project *models.Project) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Situation{}).Error; err != nil {
			return err
		}
		if err := tx.Model(project).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}

	s.notifier.ProjectChanged(project.ID)
	return nil
}

// resolveCategories loads the categories for ids, dropping unknown ones. At
// least one must exist.
func resolveCategories(db *gorm.DB, ids []uint) ([]models.Category, error) {
	var categories []models.Category
	if len(ids) > 0 {
		if err := db.Where("id IN ?", ids).Order("id").Find(&categories).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}
	if len(categories) == 0 {
		return nil, apperr.Validation("Categories not found")
	}
	return categories, nil
}
