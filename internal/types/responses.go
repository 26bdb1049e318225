package types

import (
	"time"

	"github.com/monocle-dev/tracker/internal/models"
)

type IDResponse struct {
	ID uint `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID              uint        `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Role            models.Role `json:"role"`
	EmailVerifiedAt *time.Time  `json:"email_verified_at"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProjectResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	UserID      uint               `json:"user_id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Categories  []CategoryResponse `json:"categories"`
}

// ProjectDetailResponse is the single-project view, which also embeds the
// project's situations.
type ProjectDetailResponse struct {
	ProjectResponse
	Situations []SituationResponse `json:"situations"`
}

type SituationResponse struct {
	ID          uint                   `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Status      models.SituationStatus `json:"status"`
	ProjectID   uint                   `json:"project_id"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Project     *ProjectResponse       `json:"project,omitempty"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	response := make([]UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, NewUserResponse(u))
	}
	return response
}

func NewCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCategoryResponses(categories []models.Category) []CategoryResponse {
	response := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, NewCategoryResponse(c))
	}
	return response
}

func NewProjectResponse(p models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Categories:  NewCategoryResponses(p.Categories),
	}
}

func NewProjectDetailResponse(p models.Project) ProjectDetailResponse {
	return ProjectDetailResponse{
		ProjectResponse: NewProjectResponse(p),
		Situations:      NewSituationResponses(p.Situations),
	}
}

func NewProjectResponses(projects []models.Project) []ProjectResponse {
	response := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		response = append(response, NewProjectResponse(p))
	}
	return response
}

func NewSituationResponse(s models.Situation, withProject bool) SituationResponse {
	response := SituationResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Status:      s.Status,
		ProjectID:   s.ProjectID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if withProject {
		project := NewProjectResponse(s.Project)
		response.Project = &project
	}

	return response
}

func NewSituationResponses(situations []models.Situation) []SituationResponse {
	response := make([]SituationResponse, 0, len(situations))
	for _, s := range situations {
		response = append(response, NewSituationResponse(s, false))
	}
	return response
}
