package ports

import (
	"context"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

// ListProjectsFilter carries query parameters for listing projects.
type ListProjectsFilter struct {
	City        string // optional: filter by city
	Status      string // optional: filter by lifecycle status
	Track       string // optional: filter by statutory track
	DeveloperID string // optional: scope to one developer
	Page        int    // 1-based
	Limit       int    // capped at 100 by the service
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)
}
