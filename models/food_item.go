package models

// FoodItem is one row of the TACO reference table. The integer code is
// assigned by the table itself, so there is no autoincrement; nutrient
// values are stored per gram and may be absent in the source spreadsheet.
// The catalog is written only by the loader, never by the API.
type FoodItem struct {
	ID           int      `gorm:"primaryKey;autoIncrement:false" json:"_id"`
	Description  string   `gorm:"not null" json:"description"`
	CaloriasKcal *float64 `json:"calorias_kcal"`
	ProteinasG   *float64 `json:"proteinas_g"`
	GorduraG     *float64 `json:"gordura_g"`
	CarboG       *float64 `json:"carbo_g"`
}
