package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/model"
)

// SkillRepository defines skill persistence operations.
type SkillRepository interface {
	List(ctx context.Context) ([]model.Skill, error)
	FindByID(ctx context.Context, id string) (*model.Skill, error)
	Create(ctx context.Context, skill *model.Skill) error
	Update(ctx context.Context, skill *model.Skill) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new skill repository.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

// List returns every skill in display order.
func (r *skillRepository) List(ctx context.Context) ([]model.Skill, error) {
	skills := []model.Skill{}
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Order("created_at ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// FindByID finds a skill by ID.
func (r *skillRepository) FindByID(ctx context.Context, id string) (*model.Skill, error) {
	var skill model.Skill
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// Create creates a new skill.
func (r *skillRepository) Create(ctx context.Context, skill *model.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

// Update overwrites every mutable column of the skill with skill.ID. Updating
// an unknown ID affects no rows and is not an error.
func (r *skillRepository) Update(ctx context.Context, skill *model.Skill) error {
	return r.db.WithContext(ctx).Model(&model.Skill{}).
		Where("id = ?", skill.ID).
		Updates(map[string]interface{}{
			"name":        skill.Name,
			"description": skill.Description,
			"icon_url":    skill.IconURL,
			"type":        skill.Type,
			"color":       skill.Color,
			"category":    skill.Category,
			"sort_order":  skill.Order,
			"updated_at":  time.Now(),
		}).Error
}

// Delete removes the skill if present.
func (r *skillRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Skill{}).Error
}

// Count returns the number of stored skills.
func (r *skillRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Skill{}).Count(&n).Error
	return n, err
}
