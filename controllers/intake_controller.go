package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/julio-sa/DieTI/models"
	"github.com/julio-sa/DieTI/services"
)

type IntakeController struct {
	Intake *services.IntakeService
}

func NewIntakeController(intake *services.IntakeService) *IntakeController {
	return &IntakeController{Intake: intake}
}

// GET /intake/today?user_id=
func (ctl *IntakeController) Today(c *gin.Context) {
	intake, err := ctl.Intake.TodayIntake(c.Query("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intake)
}

// POST /intake/add
func (ctl *IntakeController) Add(c *gin.Context) {
	var req services.AddIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := ctl.Intake.QuickAdd(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Intake updated successfully"})
}

// GET /intake/history?user_id=&days=7
func (ctl *IntakeController) History(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	history, err := ctl.Intake.IntakeHistory(c.Query("user_id"), days)
	if err != nil {
		respondError(c, err)
		return
	}
	if history == nil {
		history = []models.HistoricalIntake{}
	}
	c.JSON(http.StatusOK, history)
}
