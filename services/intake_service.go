package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/julio-sa/DieTI/models"
	"github.com/julio-sa/DieTI/utils"
)

const dateLayout = "2006-01-02"

// IntakeService owns the consumption ledger and the derived intake caches.
// Every mutation resums the affected (user, date) from the ledger before it
// returns; the caches are never incremented in place, so they cannot drift
// from the entry sum.
type IntakeService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewIntakeService(db *gorm.DB) *IntakeService {
	return &IntakeService{db: db, now: time.Now}
}

func (s *IntakeService) today() string {
	return s.now().Format(dateLayout)
}

type AddFoodRequest struct {
	UserID      string   `json:"user_id"`
	Description string   `json:"description"`
	Grams       float64  `json:"grams"`
	Calorias    *float64 `json:"calorias"`
	Proteinas   *float64 `json:"proteinas"`
	Carbo       *float64 `json:"carbo"`
	Gordura     *float64 `json:"gordura"`
	Date        string   `json:"date"`
}

// AddFood records one consumption event. The entry always lands in the
// daily working set; a back-dated entry is mirrored into the historical log
// right away because no future rollover will reach it.
func (s *IntakeService) AddFood(req AddFoodRequest) (*models.FoodLog, error) {
	if req.UserID == "" {
		return nil, validationErr("User ID is required")
	}
	if req.Grams <= 0 {
		return nil, validationErr("Grams must be greater than 0")
	}

	today := s.today()
	date := req.Date
	if date == "" {
		date = today
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, validationErr("Invalid date format")
	}

	entry := models.FoodLog{
		UserID:      req.UserID,
		Date:        date,
		Description: req.Description,
		Grams:       req.Grams,
		Calorias:    utils.SafeFloat(req.Calorias),
		Proteinas:   utils.SafeFloat(req.Proteinas),
		Carbo:       utils.SafeFloat(req.Carbo),
		Gordura:     utils.SafeFloat(req.Gordura),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, storeErr("insert food log", err)
	}

	if date != today {
		archived := models.HistoricalFoodLog(entry)
		if err := s.db.Create(&archived).Error; err != nil {
			return nil, storeErr("mirror back-dated food log", err)
		}
	}

	if err := s.recomputeTotals(req.UserID, date); err != nil {
		return nil, err
	}
	return &entry, nil
}

// foodLogColumns are the patchable fields of a log entry. The identity
// field is stripped before apply, everything unknown is dropped.
var foodLogColumns = map[string]bool{
	"description": true,
	"grams":       true,
	"calorias":    true,
	"proteinas":   true,
	"carbo":       true,
	"gordura":     true,
	"date":        true,
}

// UpdateFood applies a partial field replacement to a working-set entry and
// resums the affected day (both days, when the patch moves the entry).
func (s *IntakeService) UpdateFood(id string, patch map[string]interface{}) error {
	delete(patch, "_id")
	delete(patch, "id")

	updates := map[string]interface{}{}
	for k, v := range patch {
		if foodLogColumns[k] {
			updates[k] = v
		}
	}

	if v, ok := updates["grams"]; ok {
		grams, ok := v.(float64)
		if !ok {
			return validationErr("Grams must be a number")
		}
		if grams <= 0 {
			return validationErr("Grams must be greater than 0")
		}
	}
	if v, ok := updates["date"]; ok {
		date, ok := v.(string)
		if !ok {
			return validationErr("Invalid date format")
		}
		if _, err := time.Parse(dateLayout, date); err != nil {
			return validationErr("Invalid date format")
		}
	}

	var entry models.FoodLog
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr("load food log", err)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.FoodLog{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return storeErr("update food log", err)
		}
	}

	if err := s.recomputeTotals(entry.UserID, entry.Date); err != nil {
		return err
	}
	if newDate, ok := updates["date"].(string); ok && newDate != entry.Date {
		return s.recomputeTotals(entry.UserID, newDate)
	}
	return nil
}

// DeleteFood removes a working-set entry and resums its day.
func (s *IntakeService) DeleteFood(id string) error {
	var entry models.FoodLog
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr("load food log", err)
	}

	if err := s.db.Delete(&models.FoodLog{}, "id = ?", id).Error; err != nil {
		return storeErr("delete food log", err)
	}
	return s.recomputeTotals(entry.UserID, entry.Date)
}

// DailyFoods lists today's working-set entries for the user.
func (s *IntakeService) DailyFoods(userID string) ([]models.FoodLog, error) {
	if userID == "" {
		return nil, validationErr("User ID is required")
	}
	var foods []models.FoodLog
	if err := s.db.Where("user_id = ? AND date = ?", userID, s.today()).Find(&foods).Error; err != nil {
		return nil, storeErr("scan daily food log", err)
	}
	return foods, nil
}

// FoodsForDate answers "what did the user eat on this day". Today reads the
// working set; past days read the archive, falling back to the working set
// when rollover has not reached that day yet. Empty is a normal answer.
func (s *IntakeService) FoodsForDate(userID, date string) ([]models.FoodLog, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, validationErr("Invalid date format")
	}
	if userID == "" {
		return nil, validationErr("User ID is required")
	}

	if date == s.today() {
		var foods []models.FoodLog
		if err := s.db.Where("user_id = ? AND date = ?", userID, date).Find(&foods).Error; err != nil {
			return nil, storeErr("scan daily food log", err)
		}
		return foods, nil
	}

	var archived []models.HistoricalFoodLog
	if err := s.db.Where("user_id = ? AND date = ?", userID, date).Find(&archived).Error; err != nil {
		return nil, storeErr("scan historical food log", err)
	}
	if len(archived) > 0 {
		foods := make([]models.FoodLog, 0, len(archived))
		for _, a := range archived {
			foods = append(foods, models.FoodLog(a))
		}
		return foods, nil
	}

	var foods []models.FoodLog
	if err := s.db.Where("user_id = ? AND date = ?", userID, date).Find(&foods).Error; err != nil {
		return nil, storeErr("scan daily food log", err)
	}
	return foods, nil
}

type AddIntakeRequest struct {
	UserID    string  `json:"user_id"`
	Calorias  float64 `json:"calorias"`
	Proteinas float64 `json:"proteinas"`
	Carbo     float64 `json:"carbo"`
	Gordura   float64 `json:"gordura"`
}

// QuickAdd records macro totals without a named food. It still goes through
// the ledger (a grams-less entry) and resums, so the cache stays equal to
// the entry sum instead of drifting like a raw counter increment would.
func (s *IntakeService) QuickAdd(req AddIntakeRequest) error {
	if req.UserID == "" {
		return validationErr("User ID is required")
	}
	entry := models.FoodLog{
		UserID:      req.UserID,
		Date:        s.today(),
		Description: "Quick add",
		Calorias:    req.Calorias,
		Proteinas:   req.Proteinas,
		Carbo:       req.Carbo,
		Gordura:     req.Gordura,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return storeErr("insert quick add", err)
	}
	return s.recomputeTotals(req.UserID, entry.Date)
}

// TodayIntake returns today's cached totals, zeros when nothing is logged.
func (s *IntakeService) TodayIntake(userID string) (*models.DailyIntake, error) {
	if userID == "" {
		return nil, validationErr("User ID is required")
	}
	today := s.today()
	var intake models.DailyIntake
	err := s.db.Where("user_id = ? AND date = ?", userID, today).First(&intake).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyIntake{UserID: userID, Date: today}, nil
	}
	if err != nil {
		return nil, storeErr("load daily intake", err)
	}
	return &intake, nil
}

// IntakeHistory returns the per-day historical totals of the last N days,
// oldest first.
func (s *IntakeService) IntakeHistory(userID string, days int) ([]models.HistoricalIntake, error) {
	if userID == "" {
		return nil, validationErr("User ID is required")
	}
	if days <= 0 {
		days = 7
	}
	cutoff := s.now().AddDate(0, 0, -days).Format(dateLayout)

	var history []models.HistoricalIntake
	err := s.db.
		Where("user_id = ? AND date >= ?", userID, cutoff).
		Order("date asc").
		Limit(days).
		Find(&history).Error
	if err != nil {
		return nil, storeErr("scan intake history", err)
	}
	return history, nil
}

// --- aggregator ---

type macroTotals struct {
	Calorias  float64
	Proteinas float64
	Carbo     float64
	Gordura   float64
}

// recomputeTotals re-derives both caches for one (user, date) from the
// current working set. Last recompute to finish wins and is self-consistent,
// which is all the concurrency model asks for.
func (s *IntakeService) recomputeTotals(userID, date string) error {
	if err := s.recomputeDaily(userID, date); err != nil {
		return err
	}
	return s.recomputeHistorical(userID, date)
}

func (s *IntakeService) recomputeDaily(userID, date string) error {
	total, err := s.sumWorkingSet(userID, date)
	if err != nil {
		return err
	}
	return s.upsertDaily(userID, date, total)
}

func (s *IntakeService) recomputeHistorical(userID, date string) error {
	total, err := s.sumWorkingSet(userID, date)
	if err != nil {
		return err
	}
	return s.upsertHistorical(userID, date, total)
}

// RecomputeHistoricalFromArchive resums the historical cache from the
// archived partition instead of the working set. Rollover calls this after
// moving a day's entries.
func (s *IntakeService) RecomputeHistoricalFromArchive(userID, date string) error {
	var entries []models.HistoricalFoodLog
	if err := s.db.Where("user_id = ? AND date = ?", userID, date).Find(&entries).Error; err != nil {
		return storeErr("scan historical food log", err)
	}
	var total macroTotals
	for _, e := range entries {
		total.Calorias += e.Calorias
		total.Proteinas += e.Proteinas
		total.Carbo += e.Carbo
		total.Gordura += e.Gordura
	}
	return s.upsertHistorical(userID, date, total)
}

func (s *IntakeService) sumWorkingSet(userID, date string) (macroTotals, error) {
	var entries []models.FoodLog
	if err := s.db.Where("user_id = ? AND date = ?", userID, date).Find(&entries).Error; err != nil {
		return macroTotals{}, storeErr("scan daily food log", err)
	}
	var total macroTotals
	for _, e := range entries {
		total.Calorias += e.Calorias
		total.Proteinas += e.Proteinas
		total.Carbo += e.Carbo
		total.Gordura += e.Gordura
	}
	return total, nil
}

var intakeConflictKey = clause.OnConflict{
	Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
	DoUpdates: clause.AssignmentColumns([]string{"calorias", "proteinas", "carbo", "gordura"}),
}

func (s *IntakeService) upsertDaily(userID, date string, total macroTotals) error {
	row := models.DailyIntake{
		UserID:    userID,
		Date:      date,
		Calorias:  total.Calorias,
		Proteinas: total.Proteinas,
		Carbo:     total.Carbo,
		Gordura:   total.Gordura,
	}
	if err := s.db.Clauses(intakeConflictKey).Create(&row).Error; err != nil {
		return storeErr("upsert daily intake", err)
	}
	return nil
}

func (s *IntakeService) upsertHistorical(userID, date string, total macroTotals) error {
	row := models.HistoricalIntake{
		UserID:    userID,
		Date:      date,
		Calorias:  total.Calorias,
		Proteinas: total.Proteinas,
		Carbo:     total.Carbo,
		Gordura:   total.Gordura,
	}
	if err := s.db.Clauses(intakeConflictKey).Create(&row).Error; err != nil {
		return storeErr("upsert historical intake", err)
	}
	return nil
}
