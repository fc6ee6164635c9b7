package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"imara/models"
	"imara/utils"
)

const businessListTTL = 5 * time.Minute

// ListBusinesses returns active businesses, optionally filtered by tag
// and city. Results are cached briefly since the discovery feed is the
// hottest read path.
func (hb *HandlerBundle) ListBusinesses(c *gin.Context) {
	cacheKey := fmt.Sprintf("businesses:%s:%s", c.Query("tag"), c.Query("city"))
	cache := utils.GetCacheClient()
	ctx := context.Background()

	if cached, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var businesses []models.Business
		if err := json.Unmarshal([]byte(cached), &businesses); err == nil {
			c.JSON(http.StatusOK, gin.H{"businesses": businesses})
			return
		}
	}

	businesses, err := hb.Businesses.ListActive(c.Request.Context(), c.Query("tag"), c.Query("city"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch businesses", err.Error())
		return
	}

	if data, err := json.Marshal(businesses); err == nil {
		cache.Set(ctx, cacheKey, data, businessListTTL)
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

// GetBusiness returns one business profile.
func (hb *HandlerBundle) GetBusiness(c *gin.Context) {
	business, err := hb.Businesses.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch business", err.Error())
		return
	}
	if business == nil {
		utils.JSONError(c, http.StatusNotFound, "business not found", "")
		return
	}
	c.JSON(http.StatusOK, business)
}
