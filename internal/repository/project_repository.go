package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/model"
)

// ProjectRepository defines project persistence operations. Technologies are
// stored as ordered child rows and loaded back into Project.Technologies.
type ProjectRepository interface {
	List(ctx context.Context) ([]model.Project, error)
	FindByID(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProjectRepository) error) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func orderedTechnologies(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// List returns every project in display order.
func (r *projectRepository) List(ctx context.Context) ([]model.Project, error) {
	projects := []model.Project{}
	if err := r.db.WithContext(ctx).
		Preload("TechnologyRows", orderedTechnologies).
		Order("sort_order ASC").Order("created_at ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].SyncTechnologies()
	}
	return projects, nil
}

// FindByID finds a project by ID.
func (r *projectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).
		Preload("TechnologyRows", orderedTechnologies).
		Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	project.SyncTechnologies()
	return &project, nil
}

// Create creates a project together with its technology rows.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	project.SetTechnologies(project.Technologies)
	return r.db.WithContext(ctx).Create(project).Error
}

// Update overwrites the project's columns and replaces its technology rows
// in one transaction. Updating an unknown ID writes nothing.
func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.WithTransaction(ctx, func(ctx context.Context, repo ProjectRepository) error {
		tx := repo.(*projectRepository).db.WithContext(ctx)
		var n int64
		if err := tx.Model(&model.Project{}).Where("id = ?", project.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		err := tx.Model(&model.Project{}).
			Where("id = ?", project.ID).
			Updates(map[string]interface{}{
				"title":       project.Title,
				"description": project.Description,
				"gradient":    project.Gradient,
				"project_url": project.ProjectURL,
				"featured":    project.Featured,
				"sort_order":  project.Order,
				"updated_at":  time.Now(),
			}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&model.ProjectTechnology{}).Error; err != nil {
			return err
		}
		project.SetTechnologies(project.Technologies)
		if len(project.TechnologyRows) == 0 {
			return nil
		}
		return tx.Create(&project.TechnologyRows).Error
	})
}

// Delete removes the project and its technology rows if present.
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	return r.WithTransaction(ctx, func(ctx context.Context, repo ProjectRepository) error {
		tx := repo.(*projectRepository).db.WithContext(ctx)
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectTechnology{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Project{}).Error
	})
}

// Count returns the number of stored projects.
func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Count(&n).Error
	return n, err
}

// WithTransaction executes a function within a database transaction.
func (r *projectRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProjectRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &projectRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
