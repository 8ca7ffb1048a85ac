package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string  `json:"name"`
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	Password string  `gorm:"not null" json:"-"`
	Age      int     `json:"age"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`

	Goals Goals `gorm:"embedded;embeddedPrefix:goal_" json:"goals"`

	ResetCode    string    `json:"-"`
	ResetCodeExp time.Time `json:"-"`
}

// Goals are the user's daily macro targets.
type Goals struct {
	Calorias  float64 `json:"calorias"`
	Proteinas float64 `json:"proteinas"`
	Carbo     float64 `json:"carbo"`
	Gordura   float64 `json:"gordura"`
}

// DefaultGoals are applied at registration, same defaults the frontend
// shows before the user edits them.
func DefaultGoals() Goals {
	return Goals{Calorias: 2704, Proteinas: 176, Carbo: 320, Gordura: 80}
}
