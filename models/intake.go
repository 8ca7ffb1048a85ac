package models

// DailyIntake caches the nutrient sum of the working-set entries for one
// (user, date). It is derived data: recompute always overwrites it with a
// fresh sum, so it can be rebuilt from the logs at any time.
type DailyIntake struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	UserID    string  `gorm:"uniqueIndex:ux_daily_intake_key;not null" json:"user_id"`
	Date      string  `gorm:"uniqueIndex:ux_daily_intake_key;size:10;not null" json:"date"`
	Calorias  float64 `json:"calorias"`
	Proteinas float64 `json:"proteinas"`
	Carbo     float64 `json:"carbo"`
	Gordura   float64 `json:"gordura"`
}

// HistoricalIntake is the long-term counterpart, keyed the same way. It
// tracks the date's recorded consumption regardless of which partition
// currently holds the rows.
type HistoricalIntake struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	UserID    string  `gorm:"uniqueIndex:ux_historical_intake_key;not null" json:"user_id"`
	Date      string  `gorm:"uniqueIndex:ux_historical_intake_key;size:10;not null" json:"date"`
	Calorias  float64 `json:"calorias"`
	Proteinas float64 `json:"proteinas"`
	Carbo     float64 `json:"carbo"`
	Gordura   float64 `json:"gordura"`
}
