package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imara/middleware"
	"imara/utils"
)

// UpdateFCMToken stores the caller's device push token.
func (hb *HandlerBundle) UpdateFCMToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	userID := middleware.AuthenticatedUserID(c)
	if err := hb.Users.UpdateFCMToken(c.Request.Context(), userID, input.Token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
