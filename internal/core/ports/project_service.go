package ports

import (
	"context"
	"time"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

// CreateProjectInput carries all data needed to register a new project.
type CreateProjectInput struct {
	Name        string
	City        string
	Address     string
	Track       string
	Description string
	UnitsBefore int
	UnitsAfter  int
	DeveloperID string
}

// UpdateProjectInput is a partial update; nil fields are left untouched.
type UpdateProjectInput struct {
	Name        *string
	City        *string
	Address     *string
	Status      *string
	Description *string
	UnitsAfter  *int
}

// ProjectSummary is the lightweight view used in list responses.
type ProjectSummary struct {
	ID          string
	Name        string
	City        string
	Track       string
	Status      string
	UnitsBefore int
	UnitsAfter  int
	CreatedAt   time.Time
}

// ListProjectsInput carries all parameters for the list endpoint.
type ListProjectsInput struct {
	City        string
	Status      string
	Track       string
	DeveloperID string
	Page        int
	Limit       int
}

// ListProjectsResult is returned by ListProjects.
type ListProjectsResult struct {
	Items      []ProjectSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	UpdateProject(ctx context.Context, id string, in UpdateProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ListProjects(ctx context.Context, in ListProjectsInput) (*ListProjectsResult, error)
}
