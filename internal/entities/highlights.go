package entities

import (
	"time"

	"gorm.io/gorm"
)

type Source struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:50" json:"name"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type Book struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Title      string      `gorm:"index;size:512" json:"title"`
	Author     string      `gorm:"index;size:256" json:"author"`
	ExternalID string      `gorm:"size:256" json:"external_id,omitempty"`
	SourceID   uint        `gorm:"index" json:"source_id"`
	Source     Source      `gorm:"foreignKey:SourceID" json:"source,omitempty"`
	Highlights []Highlight `gorm:"foreignKey:BookID" json:"highlights,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Highlight struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	BookID uint   `gorm:"index" json:"book_id"`
	Text   string `gorm:"type:text" json:"text"`
	Note   string `gorm:"type:text" json:"note,omitempty"`

	// Chapter is the TOC heading the highlight was reconciled under;
	// empty for uncategorized highlights.
	Chapter string `gorm:"size:512" json:"chapter,omitempty"`
	// Percent is the 0.0-1.0 position within the chapter.
	Percent float64 `json:"percent,omitempty"`

	HighlightedAt time.Time `json:"highlighted_at,omitempty"`
	ExternalID    string    `gorm:"size:256" json:"external_id,omitempty"`
	SourceID      uint      `gorm:"index" json:"source_id"`
	Source        Source    `gorm:"foreignKey:SourceID" json:"source,omitempty"`

	Book Book `gorm:"foreignKey:BookID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Source) TableName() string {
	return "sources"
}
