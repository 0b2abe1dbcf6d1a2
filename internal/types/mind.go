package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mind is a persona/knowledge profile. Artifact and prompt documents hang
// off a mind through the content_mind join; a mind can also be credited as
// a book's author.
type Mind struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug      string         `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Role      string         `gorm:"column:role" json:"role"`
	AvatarURL string         `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Mind) TableName() string { return "mind" }
