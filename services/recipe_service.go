package services

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/julio-sa/DieTI/models"
	"github.com/julio-sa/DieTI/utils"
)

// RecipeService manages the user-authored recipe catalog. Recipes belong to
// exactly one user; update and delete verify ownership.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

type SaveRecipeRequest struct {
	UserID      string         `json:"user_id"`
	Name        string         `json:"name"`
	Ingredients datatypes.JSON `json:"ingredients"`
	Calorias    *float64       `json:"calorias"`
	Proteinas   *float64       `json:"proteinas"`
	Carbo       *float64       `json:"carbo"`
	Gordura     *float64       `json:"gordura"`
}

func (s *RecipeService) Save(req SaveRecipeRequest) (string, error) {
	if req.UserID == "" {
		return "", validationErr("User ID is required")
	}
	recipe := models.Recipe{
		UserID:      req.UserID,
		Name:        req.Name,
		Ingredients: req.Ingredients,
		Calorias:    utils.SafeFloat(req.Calorias),
		Proteinas:   utils.SafeFloat(req.Proteinas),
		Carbo:       utils.SafeFloat(req.Carbo),
		Gordura:     utils.SafeFloat(req.Gordura),
	}
	if err := s.db.Create(&recipe).Error; err != nil {
		return "", storeErr("insert recipe", err)
	}
	return recipe.ID, nil
}

func (s *RecipeService) List(userID string) ([]models.Recipe, error) {
	if userID == "" {
		return nil, validationErr("User ID is required")
	}
	var recipes []models.Recipe
	if err := s.db.Where("user_id = ?", userID).Find(&recipes).Error; err != nil {
		return nil, storeErr("scan recipes", err)
	}
	return recipes, nil
}

// Update replaces the editable fields of a recipe. The owner field itself
// is never part of the update.
func (s *RecipeService) Update(id string, req SaveRecipeRequest) error {
	if req.UserID == "" {
		return validationErr("User ID is required")
	}

	stored, err := s.load(id)
	if err != nil {
		return err
	}
	if stored.UserID != req.UserID {
		return ErrForbidden
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"ingredients": req.Ingredients,
		"calorias":    utils.SafeFloat(req.Calorias),
		"proteinas":   utils.SafeFloat(req.Proteinas),
		"carbo":       utils.SafeFloat(req.Carbo),
		"gordura":     utils.SafeFloat(req.Gordura),
	}
	if err := s.db.Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return storeErr("update recipe", err)
	}
	return nil
}

func (s *RecipeService) Delete(id, userID string) error {
	stored, err := s.load(id)
	if err != nil {
		return err
	}
	if stored.UserID != userID {
		return ErrForbidden
	}
	if err := s.db.Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
		return storeErr("delete recipe", err)
	}
	return nil
}

func (s *RecipeService) load(id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("load recipe", err)
	}
	return &recipe, nil
}
