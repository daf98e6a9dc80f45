package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a portfolio entry shown on the projects page.
type Project struct {
	ID          string    `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Gradient    string    `json:"gradient" gorm:"size:255;not null"`
	ProjectURL  *string   `json:"projectUrl" gorm:"column:project_url;size:1024"`
	Featured    bool      `json:"featured" gorm:"not null"`
	Order       int       `json:"order" gorm:"column:sort_order;not null;default:0;index:idx_projects_ordering,priority:1"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index:idx_projects_ordering,priority:2"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Technologies is the ordered list exposed over the API. It is rebuilt
	// from TechnologyRows after every read.
	Technologies []string `json:"technologies" gorm:"-"`

	// Relations
	TechnologyRows []ProjectTechnology `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// ProjectTechnology stores one entry of a project's technology list.
type ProjectTechnology struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	ProjectID string `json:"-" gorm:"type:char(36);not null;index:idx_project_technologies_position,priority:1"`
	Position  int    `json:"-" gorm:"not null;index:idx_project_technologies_position,priority:2"`
	Name      string `json:"-" gorm:"size:255;not null"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	for i := range p.TechnologyRows {
		p.TechnologyRows[i].ProjectID = p.ID
	}
	return nil
}

// SetTechnologies replaces TechnologyRows with names in the given order.
func (p *Project) SetTechnologies(names []string) {
	rows := make([]ProjectTechnology, 0, len(names))
	for i, name := range names {
		rows = append(rows, ProjectTechnology{ProjectID: p.ID, Position: i, Name: name})
	}
	p.TechnologyRows = rows
	p.Technologies = append([]string(nil), names...)
}

// SyncTechnologies fills Technologies from the loaded TechnologyRows.
func (p *Project) SyncTechnologies() {
	rows := append([]ProjectTechnology(nil), p.TechnologyRows...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	p.Technologies = names
}
