package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julio-sa/DieTI/models"
	"github.com/julio-sa/DieTI/services"
)

type FoodController struct {
	Intake *services.IntakeService
}

func NewFoodController(intake *services.IntakeService) *FoodController {
	return &FoodController{Intake: intake}
}

// POST /food/add
func (ctl *FoodController) Add(c *gin.Context) {
	var req services.AddFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if _, err := ctl.Intake.AddFood(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Food added"})
}

// PUT /food/update/:food_id
//
// The body is a partial patch; unknown fields are dropped and the id can
// never be overwritten.
func (ctl *FoodController) Update(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := ctl.Intake.UpdateFood(c.Param("food_id"), patch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Updated"})
}

// DELETE /food/delete/:food_id
func (ctl *FoodController) Delete(c *gin.Context) {
	if err := ctl.Intake.DeleteFood(c.Param("food_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Deleted and totals recalculated"})
}

// GET /food/daily?user_id=
func (ctl *FoodController) Daily(c *gin.Context) {
	foods, err := ctl.Intake.DailyFoods(c.Query("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if foods == nil {
		foods = []models.FoodLog{}
	}
	c.JSON(http.StatusOK, foods)
}

// GET /food/history/:date?user_id=
//
// An empty day is a normal answer, never a 404.
func (ctl *FoodController) History(c *gin.Context) {
	foods, err := ctl.Intake.FoodsForDate(c.Query("user_id"), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	if foods == nil {
		foods = []models.FoodLog{}
	}
	c.JSON(http.StatusOK, foods)
}
