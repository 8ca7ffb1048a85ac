package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recipe is a user-authored dish. Nutrient values are absolute totals for
// the whole recipe, unlike the per-gram catalog values. Ingredients are an
// opaque JSON array owned by the frontend.
type Recipe struct {
	ID          string         `gorm:"primaryKey;size:36" json:"_id"`
	UserID      string         `gorm:"index;not null" json:"user_id"`
	Name        string         `gorm:"not null" json:"name"`
	Ingredients datatypes.JSON `json:"ingredients"`
	Calorias    float64        `json:"calorias"`
	Proteinas   float64        `json:"proteinas"`
	Carbo       float64        `json:"carbo"`
	Gordura     float64        `json:"gordura"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
