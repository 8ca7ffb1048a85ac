package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodLog is one consumption event in the daily working set. Nutrient
// values are absolute, already scaled from the per-gram catalog data when
// the entry was created. Dates are calendar days in YYYY-MM-DD form.
type FoodLog struct {
	ID          string  `gorm:"primaryKey;size:36" json:"_id"`
	UserID      string  `gorm:"index;not null" json:"user_id"`
	Date        string  `gorm:"index;size:10;not null" json:"date"`
	Description string  `json:"description"`
	Grams       float64 `json:"grams"`
	Calorias    float64 `json:"calorias"`
	Proteinas   float64 `json:"proteinas"`
	Carbo       float64 `json:"carbo"`
	Gordura     float64 `json:"gordura"`
}

func (f *FoodLog) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// HistoricalFoodLog is the archived partition. Rows keep the id they had in
// the working set so a replayed rollover cannot duplicate them.
type HistoricalFoodLog FoodLog

func (HistoricalFoodLog) TableName() string { return "historical_food_logs" }
