package services

import (
	"context"
	"net/http"

	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/monocle-dev/tracker/internal/policy"
	"gorm.io/gorm"
)

var errStatusNotAllowed = apperr.Validation("Status is not allowed")

type SituationInput struct {
	Name        string
	Description string
	Status      models.SituationStatus
	ProjectID   uint
}

type SituationPatch struct {
	Name        *string
	Description *string
	Status      *models.SituationStatus
}

type SituationService struct {
	db       *gorm.DB
	policy   *policy.Enforcer
	notifier Notifier
}

// ListForProject returns the situations of a project the caller can view,
// oldest first.
func (s *SituationService) ListForProject(ctx context.Context, p policy.Principal, projectID uint) ([]models.Situation, error) {
	db := s.db.WithContext(ctx)

	project, err := findByID[models.Project](db, projectID, "project")
	if err != nil {
		return nil, err
	}
	if err := s.policy.Project(policy.View, p, project); err != nil {
		return nil, err
	}

	var situations []models.Situation
	if err := db.Where("project_id = ?", project.ID).Order("id").Find(&situations).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return situations, nil
}

// Resolve loads the situation with its parent project without any
// authorization check.
func (s *SituationService) Resolve(ctx context.Context, id uint) (*models.Situation, error) {
	tx := s.db.WithContext(ctx).Preload("Project").Preload("Project.Categories", orderByID)
	return findByID[models.Situation](tx, id, "situation")
}

// Authorize checks capability c on situation through its project's owner.
func (s *SituationService) Authorize(p policy.Principal, c policy.Capability, situation *models.Situation) error {
	return s.policy.Situation(c, p, &situation.Project)
}

func (s *SituationService) Find(ctx context.Context, p policy.Principal, id uint, c policy.Capability) (*models.Situation, error) {
	situation, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(p, c, situation); err != nil {
		return nil, err
	}
	return situation, nil
}

func (s *SituationService) Create(ctx context.Context, p policy.Principal, input SituationInput) (*models.Situation, error) {
	if !input.Status.Valid() {
		return nil, errStatusNotAllowed
	}

	db := s.db.WithContext(ctx)

	project, err := findByID[models.Project](db, input.ProjectID, "project")
	if err != nil {
		if apperr.Is(err, http.StatusNotFound) {
			return nil, apperr.Validation("Project is not found")
		}
		return nil, err
	}
	if err := s.policy.Situation(policy.Create, p, project); err != nil {
		return nil, err
	}

	situation := models.Situation{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		ProjectID:   project.ID,
	}
	if err := db.Omit("Project").Create(&situation).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	s.notifier.ProjectChanged(project.ID)
	return &situation, nil
}

func (s *SituationService) Update(ctx context.Context, situation *models.Situation, patch SituationPatch) error {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return errStatusNotAllowed
		}
		fields["status"] = *patch.Status
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(situation).Omit("Project").Updates(fields).Error; err != nil {
			return apperr.Internal(err)
		}
	}

	s.notifier.ProjectChanged(situation.ProjectID)
	return nil
}

func (s *SituationService) Delete(ctx context.Context, situation *models.Situation) error {
	if err := s.db.WithContext(ctx).Delete(&models.Situation{}, situation.ID).Error; err != nil {
		return apperr.Internal(err)
	}

	s.notifier.ProjectChanged(situation.ProjectID)
	return nil
}
