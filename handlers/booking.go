package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"imara/middleware"
	"imara/models"
	bookingSvc "imara/services/booking"
	"imara/services/schedule"
	"imara/utils"
)

// GetDaySlots returns the bookable slots for a business on one day.
// Query params: date (required, "YYYY-MM-DD"), duration (minutes,
// defaults to the standard slot length).
func (hb *HandlerBundle) GetDaySlots(c *gin.Context) {
	businessID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing date", "date query parameter is required")
		return
	}

	duration := schedule.DefaultSlotDuration
	if d := c.Query("duration"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid duration", "duration must be a positive number of minutes")
			return
		}
		duration = parsed
	}

	slots, err := hb.Bookings.DaySlots(c.Request.Context(), businessID, date, duration)
	if err != nil {
		var vErr *bookingSvc.ValidationError
		if errors.As(err, &vErr) {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", vErr.Error())
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "failed to load slots", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// CheckAvailability reports whether a proposed interval is free.
// Query params: date, start ("HH:MM"), duration (minutes).
func (hb *HandlerBundle) CheckAvailability(c *gin.Context) {
	businessID := c.Param("id")
	date := c.Query("date")
	start := c.Query("start")
	duration, err := strconv.Atoi(c.Query("duration"))
	if date == "" || start == "" || err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date, start and duration query parameters are required")
		return
	}

	available, err := hb.Bookings.CheckAvailability(c.Request.Context(), businessID, date, start, duration)
	if err != nil {
		var vErr *bookingSvc.ValidationError
		if errors.As(err, &vErr) {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", vErr.Error())
			return
		}
		// Fetch failures report unavailable but still surface the error.
		c.JSON(http.StatusBadGateway, gin.H{"available": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

// CreateBooking creates a pending booking for the authenticated client.
func (hb *HandlerBundle) CreateBooking(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	clientID := middleware.AuthenticatedUserID(c)
	booking, err := hb.Bookings.Create(c.Request.Context(), clientID, input)
	if err != nil {
		switch {
		case errors.Is(err, bookingSvc.ErrSlotTaken):
			utils.JSONError(c, http.StatusConflict, "slot no longer available", "please pick another time")
		default:
			var vErr *bookingSvc.ValidationError
			if errors.As(err, &vErr) {
				utils.JSONError(c, http.StatusBadRequest, "invalid input", vErr.Error())
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ConfirmBooking moves a pending booking to confirmed.
func (hb *HandlerBundle) ConfirmBooking(c *gin.Context) {
	booking, err := hb.Bookings.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTransition(c, err, "failed to confirm booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBooking cancels a booking with a reason and the cancelling side.
func (hb *HandlerBundle) CancelBooking(c *gin.Context) {
	var input struct {
		Reason      string `json:"reason"`
		CancelledBy string `json:"cancelledBy" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := hb.Bookings.Cancel(c.Request.Context(), c.Param("id"), input.Reason, input.CancelledBy); err != nil {
		var vErr *bookingSvc.ValidationError
		if errors.As(err, &vErr) {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", vErr.Error())
			return
		}
		respondTransition(c, err, "failed to cancel booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(models.BookingCancelled)})
}

// CompleteBooking marks a confirmed booking completed.
func (hb *HandlerBundle) CompleteBooking(c *gin.Context) {
	if err := hb.Bookings.Complete(c.Request.Context(), c.Param("id")); err != nil {
		respondTransition(c, err, "failed to complete booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(models.BookingCompleted)})
}

// MarkNoShow marks a confirmed booking as a no-show.
func (hb *HandlerBundle) MarkNoShow(c *gin.Context) {
	if err := hb.Bookings.MarkNoShow(c.Request.Context(), c.Param("id")); err != nil {
		respondTransition(c, err, "failed to mark no-show")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(models.BookingNoShow)})
}

// GetClientBookings lists a client's bookings, optionally filtered by
// status.
func (hb *HandlerBundle) GetClientBookings(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid status", "unknown booking status filter")
		return
	}

	bookings, err := hb.Bookings.ClientBookings(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBusinessBookings lists all bookings for a business.
func (hb *HandlerBundle) GetBusinessBookings(c *gin.Context) {
	bookings, err := hb.Bookings.BusinessBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func respondTransition(c *gin.Context, err error, message string) {
	var tErr *bookingSvc.TransitionError
	if errors.As(err, &tErr) {
		utils.JSONError(c, http.StatusConflict, message, tErr.Error())
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, message, err.Error())
}
