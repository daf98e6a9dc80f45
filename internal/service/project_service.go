package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/cache"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// ProjectInput carries the mutable fields of a project. A nil Featured
// means true; an empty ProjectURL is stored as null.
type ProjectInput struct {
	Title        string
	Description  string
	Gradient     string
	ProjectURL   *string
	Technologies []string
	Featured     *bool
	Order        int
}

// ProjectService manages the projects list.
type ProjectService interface {
	List(ctx context.Context) ([]model.Project, error)
	Create(ctx context.Context, in ProjectInput) (*model.Project, error)
	Update(ctx context.Context, id string, in ProjectInput) (*model.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	repo  repository.ProjectRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository, cache *cache.Client, ttl time.Duration) ProjectService {
	return &projectService{repo: repo, cache: cache, ttl: ttlOrDefault(ttl)}
}

func (in ProjectInput) normalize() (ProjectInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Gradient = strings.TrimSpace(in.Gradient)

	technologies := make([]string, 0, len(in.Technologies))
	for _, tech := range in.Technologies {
		if tech = strings.TrimSpace(tech); tech != "" {
			technologies = append(technologies, tech)
		}
	}
	in.Technologies = technologies

	if in.Title == "" || in.Description == "" || len(in.Technologies) == 0 {
		return in, apperrors.NewValidationError("title, description, and technologies are required")
	}
	if in.Gradient == "" {
		in.Gradient = model.DefaultGradient
	}
	if in.ProjectURL != nil {
		url := strings.TrimSpace(*in.ProjectURL)
		if url == "" {
			in.ProjectURL = nil
		} else {
			in.ProjectURL = &url
		}
	}
	if in.Featured == nil {
		featured := true
		in.Featured = &featured
	}
	return in, nil
}

func (in ProjectInput) apply(project *model.Project) {
	project.Title = in.Title
	project.Description = in.Description
	project.Gradient = in.Gradient
	project.ProjectURL = in.ProjectURL
	project.Technologies = in.Technologies
	project.Featured = *in.Featured
	project.Order = in.Order
}

// List returns all projects ordered by (order, createdAt).
func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	return loadCached(ctx, s.cache, projectsCacheKey, s.ttl, s.repo.List)
}

// Create validates the input and stores a new project.
func (s *projectService) Create(ctx context.Context, in ProjectInput) (*model.Project, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	project := &model.Project{}
	in.apply(project)
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	s.invalidate(ctx)
	return project, nil
}

// Update replaces every mutable field of the project, technologies
// included, and returns the stored record.
func (s *projectService) Update(ctx context.Context, id string, in ProjectInput) (*model.Project, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	project := &model.Project{ID: id}
	in.apply(project)
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("project")
		}
		return nil, fmt.Errorf("reload project: %w", err)
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes the project. Unknown IDs succeed.
func (s *projectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *projectService) invalidate(ctx context.Context) {
	invalidateCached(ctx, s.cache, projectsCacheKey)
}
