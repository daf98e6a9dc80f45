package model

import "time"

// AboutInfo is one labelled field of the about page.
type AboutInfo struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	Key       string    `json:"key" gorm:"column:info_key;size:191;not null;uniqueIndex:idx_about_info_key"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName keeps the singular table name used by the front end tooling.
func (AboutInfo) TableName() string {
	return "about_info"
}

// ContactInfo is one labelled field of the contact page.
type ContactInfo struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	Key       string    `json:"key" gorm:"column:info_key;size:191;not null;uniqueIndex:idx_contact_info_key"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName keeps the singular table name used by the front end tooling.
func (ContactInfo) TableName() string {
	return "contact_info"
}

// InfoEntry is the key/value projection shared by AboutInfo and ContactInfo.
type InfoEntry struct {
	Key   string `gorm:"column:info_key"`
	Value string `gorm:"column:value"`
}
