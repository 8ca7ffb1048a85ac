package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/julio-sa/DieTI/logger"
	"github.com/julio-sa/DieTI/models"
	"github.com/julio-sa/DieTI/utils"
)

const (
	// searchScanCap bounds the full-catalog scan per source. Both catalogs
	// are small and static, so a linear scan beats maintaining an index.
	searchScanCap = 1000

	fuzzyMaxDistance = 2
)

// SearchHit is one entry of the combined ranked result list. Nutrient
// values are per-gram equivalents, already coerced so the frontend never
// sees null or NaN.
type SearchHit struct {
	ID           string  `json:"_id"`
	Description  string  `json:"description"`
	Type         string  `json:"type"` // "taco" or "recipe"
	CaloriasKcal float64 `json:"calorias_kcal"`
	ProteinasG   float64 `json:"proteinas_g"`
	CarboG       float64 `json:"carbo_g"`
	GorduraG     float64 `json:"gordura_g"`
}

// SearchService answers fuzzy name lookups over the TACO table and the
// user recipe catalog.
type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Combined searches both catalogs and returns one ranked list, TACO hits
// before recipe hits, prefix matches first. The two scans run concurrently;
// everything after the join is sequential.
func (s *SearchService) Combined(q string) ([]SearchHit, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < 2 {
		return nil, validationErr("query must have at least 2 characters")
	}
	normalizedQuery := utils.NormalizeText(q)

	var (
		wg         sync.WaitGroup
		tacoHits   []SearchHit
		recipeHits []SearchHit
		tacoErr    error
		recipeErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		tacoHits, tacoErr = s.searchTaco(normalizedQuery)
	}()
	go func() {
		defer wg.Done()
		recipeHits, recipeErr = s.searchRecipes(normalizedQuery)
	}()
	wg.Wait()

	if tacoErr != nil {
		return nil, tacoErr
	}
	if recipeErr != nil {
		return nil, recipeErr
	}

	results := append(tacoHits, recipeHits...)
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no food or recipe matches '%s'", ErrNotFound, q)
	}

	rankByPrefix(results, normalizedQuery)
	return results, nil
}

func (s *SearchService) searchTaco(normalizedQuery string) ([]SearchHit, error) {
	var foods []models.FoodItem
	if err := s.db.Limit(searchScanCap).Find(&foods).Error; err != nil {
		return nil, storeErr("scan food catalog", err)
	}

	var hits []SearchHit
	for _, food := range foods {
		if !matchesQuery(normalizedQuery, utils.NormalizeText(food.Description)) {
			continue
		}
		hits = append(hits, SearchHit{
			ID:           fmt.Sprintf("%d", food.ID),
			Description:  food.Description,
			Type:         "taco",
			CaloriasKcal: utils.SafeFloat(food.CaloriasKcal),
			ProteinasG:   utils.SafeFloat(food.ProteinasG),
			CarboG:       utils.SafeFloat(food.CarboG),
			GorduraG:     utils.SafeFloat(food.GorduraG),
		})
	}
	return hits, nil
}

func (s *SearchService) searchRecipes(normalizedQuery string) ([]SearchHit, error) {
	var recipes []models.Recipe
	if err := s.db.Limit(searchScanCap).Find(&recipes).Error; err != nil {
		return nil, storeErr("scan recipe catalog", err)
	}

	var hits []SearchHit
	for _, recipe := range recipes {
		if !matchesQuery(normalizedQuery, utils.NormalizeText(recipe.Name)) {
			continue
		}
		hits = append(hits, SearchHit{
			ID:           recipe.ID,
			Description:  recipe.Name,
			Type:         "recipe",
			CaloriasKcal: utils.SafeFloat(&recipe.Calorias),
			ProteinasG:   utils.SafeFloat(&recipe.Proteinas),
			CarboG:       utils.SafeFloat(&recipe.Carbo),
			GorduraG:     utils.SafeFloat(&recipe.Gordura),
		})
	}
	return hits, nil
}

// matchesQuery is the cheap substring check first, fuzzy prefix match as the
// typo fallback.
func matchesQuery(normalizedQuery, normalizedName string) bool {
	return strings.Contains(normalizedName, normalizedQuery) ||
		utils.IsFuzzyMatch(normalizedQuery, normalizedName, fuzzyMaxDistance)
}

// rankByPrefix stable-sorts hits so names starting with the query lead; ties
// keep scan order, TACO before recipes. Ranking is best effort: if it blows
// up on a malformed entry the hits are served unsorted instead of failing
// the request.
func rankByPrefix(hits []SearchHit, normalizedQuery string) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Warn("search ranking failed, returning unsorted results", zap.Any("panic", r))
		}
	}()
	sort.SliceStable(hits, func(i, j int) bool {
		pi := strings.HasPrefix(utils.NormalizeText(hits[i].Description), normalizedQuery)
		pj := strings.HasPrefix(utils.NormalizeText(hits[j].Description), normalizedQuery)
		return pi && !pj
	})
}
