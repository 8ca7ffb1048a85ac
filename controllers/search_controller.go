package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julio-sa/DieTI/services"
)

type SearchController struct {
	Search *services.SearchService
}

func NewSearchController(search *services.SearchService) *SearchController {
	return &SearchController{Search: search}
}

// GET /search/combined?q=batata
//
// Keeps the original API contract: 422 on a too-short query, 404 with a
// "detail" body when nothing matches.
func (ctl *SearchController) Combined(c *gin.Context) {
	q := c.Query("q")

	results, err := ctl.Search.Combined(q)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": ve.Msg})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("No food or recipe found for '%s'", q)})
		default:
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, results)
}
