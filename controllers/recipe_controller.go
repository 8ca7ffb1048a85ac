package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julio-sa/DieTI/models"
	"github.com/julio-sa/DieTI/services"
)

type RecipeController struct {
	Recipes *services.RecipeService
}

func NewRecipeController(recipes *services.RecipeService) *RecipeController {
	return &RecipeController{Recipes: recipes}
}

// POST /recipes/save
func (ctl *RecipeController) Save(c *gin.Context) {
	var req services.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	id, err := ctl.Recipes.Save(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inserted_id": id})
}

// GET /recipes/list?user_id=
func (ctl *RecipeController) List(c *gin.Context) {
	recipes, err := ctl.Recipes.List(c.Query("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}

// PUT /recipes/update/:recipe_id
func (ctl *RecipeController) Update(c *gin.Context) {
	var req services.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := ctl.Recipes.Update(c.Param("recipe_id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Updated"})
}

// DELETE /recipes/delete/:recipe_id?user_id=
func (ctl *RecipeController) Delete(c *gin.Context) {
	if err := ctl.Recipes.Delete(c.Param("recipe_id"), c.Query("user_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Deleted"})
}
