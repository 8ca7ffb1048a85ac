package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/julio-sa/DieTI/models"
)

func fixedClock(date string) func() time.Time {
	t, _ := time.Parse(dateLayout, date)
	return func() time.Time { return t }
}

func newIntakeService(t *testing.T, today string) *IntakeService {
	s := NewIntakeService(newTestDB(t))
	s.now = fixedClock(today)
	return s
}

func dailyTotal(t *testing.T, s *IntakeService, userID, date string) models.DailyIntake {
	t.Helper()
	var total models.DailyIntake
	if err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&total).Error; err != nil {
		t.Fatalf("load daily total: %v", err)
	}
	return total
}

func close0(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAddFoodValidation(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")

	var ve *ValidationError
	if _, err := s.AddFood(AddFoodRequest{Description: "x", Grams: 100}); !errors.As(err, &ve) {
		t.Errorf("missing user id: expected ValidationError, got %v", err)
	}
	if _, err := s.AddFood(AddFoodRequest{UserID: "u1", Grams: 0}); !errors.As(err, &ve) {
		t.Errorf("zero grams: expected ValidationError, got %v", err)
	}
	if _, err := s.AddFood(AddFoodRequest{UserID: "u1", Grams: 10, Date: "15/03/2024"}); !errors.As(err, &ve) {
		t.Errorf("bad date: expected ValidationError, got %v", err)
	}
}

func TestAddThenDeleteKeepsTotalsExact(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")

	entry, err := s.AddFood(AddFoodRequest{
		UserID: "u1", Description: "Batata frita", Grams: 100, Calorias: fptr(100),
	})
	if err != nil {
		t.Fatalf("AddFood: %v", err)
	}

	total := dailyTotal(t, s, "u1", "2024-03-15")
	if !close0(total.Calorias, 100) {
		t.Fatalf("expected 100 kcal after add, got %v", total.Calorias)
	}

	if err := s.DeleteFood(entry.ID); err != nil {
		t.Fatalf("DeleteFood: %v", err)
	}
	total = dailyTotal(t, s, "u1", "2024-03-15")
	if !close0(total.Calorias, 0) {
		t.Fatalf("expected 0 kcal after delete, got %v", total.Calorias)
	}
}

func TestTotalsEqualEntrySumUnderMutation(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")

	a, _ := s.AddFood(AddFoodRequest{UserID: "u1", Grams: 100, Calorias: fptr(120), Proteinas: fptr(4)})
	b, _ := s.AddFood(AddFoodRequest{UserID: "u1", Grams: 50, Calorias: fptr(80), Carbo: fptr(20)})
	if _, err := s.AddFood(AddFoodRequest{UserID: "u1", Grams: 30, Gordura: fptr(9)}); err != nil {
		t.Fatalf("AddFood: %v", err)
	}

	if err := s.UpdateFood(a.ID, map[string]interface{}{"calorias": 200.0}); err != nil {
		t.Fatalf("UpdateFood: %v", err)
	}
	if err := s.DeleteFood(b.ID); err != nil {
		t.Fatalf("DeleteFood: %v", err)
	}

	var entries []models.FoodLog
	if err := s.db.Where("user_id = ? AND date = ?", "u1", "2024-03-15").Find(&entries).Error; err != nil {
		t.Fatalf("scan entries: %v", err)
	}
	var wantCal, wantProt, wantCarbo, wantGord float64
	for _, e := range entries {
		wantCal += e.Calorias
		wantProt += e.Proteinas
		wantCarbo += e.Carbo
		wantGord += e.Gordura
	}

	total := dailyTotal(t, s, "u1", "2024-03-15")
	if !close0(total.Calorias, wantCal) || !close0(total.Proteinas, wantProt) ||
		!close0(total.Carbo, wantCarbo) || !close0(total.Gordura, wantGord) {
		t.Fatalf("cache drifted from entry sum: cache=%+v entries sum=(%v %v %v %v)",
			total, wantCal, wantProt, wantCarbo, wantGord)
	}
}

func TestBackdatedAddMirrorsToArchive(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")

	entry, err := s.AddFood(AddFoodRequest{
		UserID: "u1", Description: "Arroz", Grams: 100, Calorias: fptr(124), Date: "2024-03-10",
	})
	if err != nil {
		t.Fatalf("AddFood: %v", err)
	}

	var archived models.HistoricalFoodLog
	if err := s.db.First(&archived, "id = ?", entry.ID).Error; err != nil {
		t.Fatalf("back-dated entry missing from archive: %v", err)
	}

	foods, err := s.FoodsForDate("u1", "2024-03-10")
	if err != nil {
		t.Fatalf("FoodsForDate: %v", err)
	}
	if len(foods) != 1 || foods[0].ID != entry.ID {
		t.Fatalf("expected archived entry back, got %+v", foods)
	}
}

func TestUpdateFoodStripsIdentityAndValidates(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")
	entry, _ := s.AddFood(AddFoodRequest{UserID: "u1", Grams: 100, Calorias: fptr(50)})

	if err := s.UpdateFood(entry.ID, map[string]interface{}{"_id": "evil", "grams": 150.0}); err != nil {
		t.Fatalf("UpdateFood: %v", err)
	}
	var got models.FoodLog
	if err := s.db.First(&got, "id = ?", entry.ID).Error; err != nil {
		t.Fatalf("id was overwritten: %v", err)
	}
	if got.Grams != 150 {
		t.Errorf("grams not updated, got %v", got.Grams)
	}

	var ve *ValidationError
	if err := s.UpdateFood(entry.ID, map[string]interface{}{"grams": -1.0}); !errors.As(err, &ve) {
		t.Errorf("negative grams: expected ValidationError, got %v", err)
	}
	if err := s.UpdateFood("does-not-exist", map[string]interface{}{"grams": 10.0}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteFoodUnknownID(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")
	if err := s.DeleteFood("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFoodsForDateFallsBackToWorkingSet(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")

	// a past-dated row that rollover never reached: present only in the
	// working set
	stale := models.FoodLog{UserID: "u1", Date: "2024-03-14", Description: "Feijão", Grams: 80, Calorias: 60}
	if err := s.db.Create(&stale).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	foods, err := s.FoodsForDate("u1", "2024-03-14")
	if err != nil {
		t.Fatalf("FoodsForDate: %v", err)
	}
	if len(foods) != 1 || foods[0].ID != stale.ID {
		t.Fatalf("expected fallback to working set, got %+v", foods)
	}
}

func TestFoodsForDateValidatesDate(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")
	var ve *ValidationError
	if _, err := s.FoodsForDate("u1", "not-a-date"); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFoodsForDateEmptyIsNormal(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")
	foods, err := s.FoodsForDate("u1", "2024-01-01")
	if err != nil {
		t.Fatalf("empty day must not error: %v", err)
	}
	if len(foods) != 0 {
		t.Fatalf("expected no entries, got %d", len(foods))
	}
}

func TestTodayIntakeZeroWhenEmpty(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")
	intake, err := s.TodayIntake("u1")
	if err != nil {
		t.Fatalf("TodayIntake: %v", err)
	}
	if intake.Calorias != 0 || intake.Date != "2024-03-15" {
		t.Fatalf("expected zeroed intake for today, got %+v", intake)
	}
}

func TestQuickAddGoesThroughLedger(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")

	if err := s.QuickAdd(AddIntakeRequest{UserID: "u1", Calorias: 300, Proteinas: 20}); err != nil {
		t.Fatalf("QuickAdd: %v", err)
	}
	if err := s.QuickAdd(AddIntakeRequest{UserID: "u1", Calorias: 200}); err != nil {
		t.Fatalf("QuickAdd: %v", err)
	}

	total := dailyTotal(t, s, "u1", "2024-03-15")
	if !close0(total.Calorias, 500) || !close0(total.Proteinas, 20) {
		t.Fatalf("expected resummed totals 500/20, got %+v", total)
	}

	var count int64
	s.db.Model(&models.FoodLog{}).Where("user_id = ?", "u1").Count(&count)
	if count != 2 {
		t.Fatalf("quick adds must be ledger entries, found %d", count)
	}
}

func TestIntakeHistoryWindow(t *testing.T) {
	s := newIntakeService(t, "2024-03-15")
	rows := []models.HistoricalIntake{
		{UserID: "u1", Date: "2024-03-14", Calorias: 100},
		{UserID: "u1", Date: "2024-03-12", Calorias: 200},
		{UserID: "u1", Date: "2024-01-01", Calorias: 999}, // outside the window
	}
	if err := s.db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	history, err := s.IntakeHistory("u1", 7)
	if err != nil {
		t.Fatalf("IntakeHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 days inside the window, got %d", len(history))
	}
	if history[0].Date != "2024-03-12" {
		t.Errorf("expected oldest first, got %q", history[0].Date)
	}
}
