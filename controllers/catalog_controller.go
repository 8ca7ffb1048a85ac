package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/julio-sa/DieTI/services"
)

type CatalogController struct {
	Catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// GET /taco_table/:food_id
func (ctl *CatalogController) FoodByCode(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("food_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food_id must be an integer"})
		return
	}

	food, err := ctl.Catalog.FoodByCode(code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}
