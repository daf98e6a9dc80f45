package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SkillType tells the front end how to render a skill icon.
type SkillType string

const (
	SkillTypeImage       SkillType = "image"
	SkillTypeFontAwesome SkillType = "font-awesome"
)

// DefaultGradient is the neutral gradient token used when none is given.
const DefaultGradient = "from-primary to-accent"

// DefaultSkillCategory is applied to skills created without a category.
const DefaultSkillCategory = "Backend"

// SkillCategories lists the labels the skills page groups by.
var SkillCategories = []string{
	"Backend",
	"Frontend",
	"Database",
	"Cloud",
	"DevOps",
	"Tooling",
	"Design",
}

// Skill is a technology or competence shown on the skills page.
type Skill struct {
	ID          string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	IconURL     string    `json:"iconUrl" gorm:"column:icon_url;size:1024;not null"`
	Type        SkillType `json:"type" gorm:"type:varchar(20);not null;default:'image'"`
	Color       string    `json:"color" gorm:"size:255;not null"`
	Category    string    `json:"category" gorm:"size:50;not null;index"`
	Order       int       `json:"order" gorm:"column:sort_order;not null;default:0;index:idx_skills_ordering,priority:1"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index:idx_skills_ordering,priority:2"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// IsSkillCategory reports whether category is one of SkillCategories.
func IsSkillCategory(category string) bool {
	for _, c := range SkillCategories {
		if c == category {
			return true
		}
	}
	return false
}
