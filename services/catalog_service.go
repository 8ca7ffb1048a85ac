package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/julio-sa/DieTI/models"
)

// CatalogService reads the TACO reference table. The catalog is immutable
// from the API's point of view; only the loader writes it.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// FoodByCode looks a food up by its TACO table code.
func (s *CatalogService) FoodByCode(code int) (*models.FoodItem, error) {
	var food models.FoodItem
	if err := s.db.First(&food, "id = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("load food item", err)
	}
	return &food, nil
}
