package services

import (
	"context"

	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/monocle-dev/tracker/internal/policy"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string
	Description string
}

type CategoryService struct {
	db       *gorm.DB
	policy   *policy.Enforcer
	notifier Notifier
}

func (s *CategoryService) List(ctx context.Context, p policy.Principal) ([]models.Category, error) {
	if err := s.policy.Category(policy.ViewAny, p); err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}

// Find resolves the category and checks capability c on it.
func (s *CategoryService) Find(ctx context.Context, p policy.Principal, id uint, c policy.Capability) (*models.Category, error) {
	category, err := findByID[models.Category](s.db.WithContext(ctx), id, "category")
	if err != nil {
		return nil, err
	}
	if err := s.policy.Category(c, p); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, p policy.Principal, input CategoryInput) (*models.Category, error) {
	if err := s.policy.Category(policy.Create, p); err != nil {
		return nil, err
	}

	category := models.Category{Name: input.Name, Description: input.Description}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &category, nil
}

// Replace overwrites every field of category.
func (s *CategoryService) Replace(ctx context.Context, category *models.Category, input CategoryInput) error {
	err := s.db.WithContext(ctx).Model(category).Select("Name", "Description").Updates(models.Category{
		Name:        input.Name,
		Description: input.Description,
	}).Error
	if err != nil {
		return apperr.Internal(err)
	}

	category.Name = input.Name
	category.Description = input.Description
	s.notifyProjects(ctx, category.ID)
	return nil
}

// Delete removes the category and detaches it from every project.
func (s *CategoryService) Delete(ctx context.Context, category *models.Category) error {
	projectIDs := s.projectIDs(ctx, category.ID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+models.ProjectCategoryTable+" WHERE category_id = ?", category.ID).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}

	for _, id := range projectIDs {
		s.notifier.ProjectChanged(id)
	}
	return nil
}

func (s *CategoryService) projectIDs(ctx context.Context, categoryID uint) []uint {
	var ids []uint
	s.db.WithContext(ctx).Table(models.ProjectCategoryTable).
		Where("category_id = ?", categoryID).
		Pluck("project_id", &ids)
	return ids
}

func (s *CategoryService) notifyProjects(ctx context.Context, categoryID uint) {
	for _, id := range s.projectIDs(ctx, categoryID) {
		s.notifier.ProjectChanged(id)
	}
}
