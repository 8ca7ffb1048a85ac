package services

import (
	"errors"
	"testing"

	"gorm.io/datatypes"

	"github.com/julio-sa/DieTI/models"
)

func TestRecipeSaveAndList(t *testing.T) {
	s := NewRecipeService(newTestDB(t))

	id, err := s.Save(SaveRecipeRequest{
		UserID:      "u1",
		Name:        "Batata recheada",
		Ingredients: datatypes.JSON(`["batata", "queijo"]`),
		Calorias:    fptr(450),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated recipe id")
	}

	recipes, err := s.List("u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Name != "Batata recheada" {
		t.Fatalf("unexpected list result: %+v", recipes)
	}

	other, err := s.List("u2")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("recipes leaked across users: %+v", other)
	}
}

func TestRecipeSaveRequiresUser(t *testing.T) {
	s := NewRecipeService(newTestDB(t))
	var ve *ValidationError
	if _, err := s.Save(SaveRecipeRequest{Name: "x"}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRecipeUpdateEnforcesOwnership(t *testing.T) {
	s := NewRecipeService(newTestDB(t))
	id, _ := s.Save(SaveRecipeRequest{UserID: "u1", Name: "Salada"})

	err := s.Update(id, SaveRecipeRequest{UserID: "intruder", Name: "Roubada"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := s.Update(id, SaveRecipeRequest{UserID: "u1", Name: "Salada verde", Calorias: fptr(120)}); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	var got models.Recipe
	if err := s.db.First(&got, "id = ?", id).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "Salada verde" || got.Calorias != 120 {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.UserID != "u1" {
		t.Fatalf("owner must never change, got %q", got.UserID)
	}
}

func TestRecipeDelete(t *testing.T) {
	s := NewRecipeService(newTestDB(t))
	id, _ := s.Save(SaveRecipeRequest{UserID: "u1", Name: "Sopa"})

	if err := s.Delete(id, "intruder"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := s.Delete("missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(id, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(id, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
