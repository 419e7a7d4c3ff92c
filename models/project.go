package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visibility controls who can read a project
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityPublic  Visibility = "PUBLIC"
)

// Valid reports whether v is one of the known visibilities
func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// Project represents a writing work owned by one user
type Project struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID    string     `json:"ownerId" gorm:"type:varchar(36);not null;index"`
	Title      string     `json:"title" gorm:"not null"`
	Synopsis   *string    `json:"synopsis" gorm:"type:text;default:null"`
	Visibility Visibility `json:"visibility" gorm:"type:varchar(10);not null;default:'PRIVATE';index"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// Relations
	Owner    User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Chapters []Chapter `json:"chapters,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID and the default visibility
func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Visibility == "" {
		p.Visibility = VisibilityPrivate
	}
	return nil
}

// IsPublic reports whether everyone may read the project
func (p *Project) IsPublic() bool {
	return p.Visibility == VisibilityPublic
}
