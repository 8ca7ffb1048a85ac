package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julio-sa/DieTI/services"
)

type CronController struct {
	Rollover *services.RolloverService
}

func NewCronController(rollover *services.RolloverService) *CronController {
	return &CronController{Rollover: rollover}
}

// POST /cron/rollover
//
// Invoked by an external scheduler; also wired to the in-process cron.
// Calling it twice for the same day moves nothing the second time.
func (ctl *CronController) RolloverDailyFood(c *gin.Context) {
	moved, err := ctl.Rollover.RolloverYesterday()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rollover completed", "moved": moved})
}
