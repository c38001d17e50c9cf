package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

const maxPageLimit = 100

type ProjectService struct {
	repo ports.ProjectRepository
	log  zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, log: log}
}

// CreateProject registers a new renewal project in the planning stage.
func (s *ProjectService) CreateProject(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project := &domain.Project{
		ID:          uuid.NewString(),
		Name:        in.Name,
		City:        in.City,
		Address:     in.Address,
		Track:       domain.ProjectTrack(in.Track),
		Status:      domain.ProjectPlanning,
		Description: in.Description,
		UnitsBefore: in.UnitsBefore,
		UnitsAfter:  in.UnitsAfter,
		DeveloperID: in.DeveloperID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		s.log.Error().Err(err).Str("name", in.Name).Msg("failed to create project")
		return nil, err
	}

	s.log.Info().Str("project_id", project.ID).Str("city", project.City).Msg("project created")
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProject applies a partial update; nil fields are left untouched.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, in ports.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.City != nil {
		project.City = *in.City
	}
	if in.Address != nil {
		project.Address = *in.Address
	}
	if in.Status != nil {
		project.Status = domain.ProjectStatus(*in.Status)
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.UnitsAfter != nil {
		project.UnitsAfter = *in.UnitsAfter
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProjectService) ListProjects(ctx context.Context, in ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListProjectsFilter{
		City:        in.City,
		Status:      in.Status,
		Track:       in.Track,
		DeveloperID: in.DeveloperID,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.ProjectSummary, 0, len(items))
	for _, p := range items {
		summaries = append(summaries, ports.ProjectSummary{
			ID:          p.ID,
			Name:        p.Name,
			City:        p.City,
			Track:       string(p.Track),
			Status:      string(p.Status),
			UnitsBefore: p.UnitsBefore,
			UnitsAfter:  p.UnitsAfter,
			CreatedAt:   p.CreatedAt,
		})
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListProjectsResult{
		Items:      summaries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
