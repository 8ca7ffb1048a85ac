package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julio-sa/DieTI/services"
)

type UserController struct {
	Auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{Auth: auth}
}

// GET /user/profile
func (ctl *UserController) GetProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	user, err := ctl.Auth.Profile(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /user/profile
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.Auth.UpdateProfile(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}
