package services

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/julio-sa/DieTI/logger"
	"github.com/julio-sa/DieTI/models"
)

// RolloverService archives past working-set days into the historical log.
// It is run once a day, but running it again for the same boundary is safe:
// rows are moved keyed by their original id, so a retry finds nothing left
// to move and the totals come out the same.
type RolloverService struct {
	db     *gorm.DB
	intake *IntakeService
	now    func() time.Time
}

func NewRolloverService(db *gorm.DB, intake *IntakeService) *RolloverService {
	return &RolloverService{db: db, intake: intake, now: time.Now}
}

// RolloverYesterday runs Rollover with the usual boundary of one day ago.
func (s *RolloverService) RolloverYesterday() (int, error) {
	boundary := s.now().AddDate(0, 0, -1).Format(dateLayout)
	return s.Rollover(boundary)
}

type ledgerKey struct {
	userID string
	date   string
}

// Rollover moves every working-set entry dated on or before boundary into
// the historical log, then resums the historical totals of each touched
// (user, date). Including earlier dates lets a run catch up after missed
// schedules. Returns the number of entries moved.
//
// If interrupted mid-run the moved rows are already correctly archived; a
// retry re-runs the remaining moves and recomputes, both idempotent.
func (s *RolloverService) Rollover(boundary string) (int, error) {
	if _, err := time.Parse(dateLayout, boundary); err != nil {
		return 0, validationErr("Invalid date format")
	}

	var entries []models.FoodLog
	if err := s.db.Where("date <= ?", boundary).Find(&entries).Error; err != nil {
		return 0, storeErr("scan working set", err)
	}

	touched := map[ledgerKey]struct{}{}
	moved := 0
	for _, entry := range entries {
		archived := models.HistoricalFoodLog(entry)
		// same id as the working-set row; a replay hits the conflict and
		// does not duplicate
		err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&archived).Error
		if err != nil {
			return moved, storeErr("archive food log", err)
		}
		if err := s.db.Delete(&models.FoodLog{}, "id = ?", entry.ID).Error; err != nil {
			return moved, storeErr("remove archived food log", err)
		}
		touched[ledgerKey{entry.UserID, entry.Date}] = struct{}{}
		moved++
	}

	for key := range touched {
		if err := s.intake.RecomputeHistoricalFromArchive(key.userID, key.date); err != nil {
			return moved, err
		}
	}

	logger.L().Info("rollover completed",
		zap.String("boundary", boundary),
		zap.Int("moved", moved),
		zap.Int("affected_days", len(touched)))
	return moved, nil
}
