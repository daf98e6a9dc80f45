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

// SkillInput carries the mutable fields of a skill. Zero values of the
// optional fields are replaced by defaults.
type SkillInput struct {
	Name        string
	Description string
	IconURL     string
	Type        model.SkillType
	Color       string
	Category    string
	Order       int
}

// SkillService manages the skills list.
type SkillService interface {
	List(ctx context.Context) ([]model.Skill, error)
	Create(ctx context.Context, in SkillInput) (*model.Skill, error)
	Update(ctx context.Context, id string, in SkillInput) (*model.Skill, error)
	Delete(ctx context.Context, id string) error
}

type skillService struct {
	repo  repository.SkillRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewSkillService creates a new skill service.
func NewSkillService(repo repository.SkillRepository, cache *cache.Client, ttl time.Duration) SkillService {
	return &skillService{repo: repo, cache: cache, ttl: ttlOrDefault(ttl)}
}

// normalize trims the input, validates it and applies defaults.
func (in SkillInput) normalize() (SkillInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.IconURL = strings.TrimSpace(in.IconURL)
	in.Color = strings.TrimSpace(in.Color)
	in.Category = strings.TrimSpace(in.Category)

	if in.Name == "" || in.Description == "" || in.IconURL == "" {
		return in, apperrors.NewValidationError("name, description, and iconUrl are required")
	}
	if in.Type == "" {
		in.Type = model.SkillTypeImage
	}
	if in.Type != model.SkillTypeImage && in.Type != model.SkillTypeFontAwesome {
		return in, apperrors.NewValidationError("type must be one of: image, font-awesome")
	}
	if in.Color == "" {
		in.Color = model.DefaultGradient
	}
	if in.Category == "" {
		in.Category = model.DefaultSkillCategory
	}
	if !model.IsSkillCategory(in.Category) {
		return in, apperrors.NewValidationError("category must be one of: " + strings.Join(model.SkillCategories, ", "))
	}
	return in, nil
}

func (in SkillInput) apply(skill *model.Skill) {
	skill.Name = in.Name
	skill.Description = in.Description
	skill.IconURL = in.IconURL
	skill.Type = in.Type
	skill.Color = in.Color
	skill.Category = in.Category
	skill.Order = in.Order
}

// List returns all skills ordered by (order, createdAt).
func (s *skillService) List(ctx context.Context) ([]model.Skill, error) {
	return loadCached(ctx, s.cache, skillsCacheKey, s.ttl, s.repo.List)
}

// Create validates the input and stores a new skill.
func (s *skillService) Create(ctx context.Context, in SkillInput) (*model.Skill, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	skill := &model.Skill{}
	in.apply(skill)
	if err := s.repo.Create(ctx, skill); err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}
	s.invalidate(ctx)
	return skill, nil
}

// Update replaces every mutable field of the skill and returns the stored
// record. Existence is checked by reading back after the write.
func (s *skillService) Update(ctx context.Context, id string, in SkillInput) (*model.Skill, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	skill := &model.Skill{ID: id}
	in.apply(skill)
	if err := s.repo.Update(ctx, skill); err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("skill")
		}
		return nil, fmt.Errorf("reload skill: %w", err)
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes the skill. Unknown IDs succeed.
func (s *skillService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *skillService) invalidate(ctx context.Context) {
	invalidateCached(ctx, s.cache, skillsCacheKey)
}
