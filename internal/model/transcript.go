package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transcript status values.
const (
	TranscriptStatusPending   = "pending"
	TranscriptStatusProcessed = "processed"
)

// Transcript is raw or lightly edited dictated text awaiting structuring.
type Transcript struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	FullText  string    `gorm:"type:text;not null" json:"full_text"`
	Status    string    `gorm:"size:20;not null;default:pending" json:"status"`

	// Deleting the linked recipe nulls RecipeID rather than removing this
	// row; the constraint lives in the schema, not in handler code.
	RecipeID *uuid.UUID `gorm:"type:uuid;index" json:"recipe_id,omitempty"`
	Recipe   *Recipe    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

func (t *Transcript) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TranscriptStatusPending
	}
	return nil
}
