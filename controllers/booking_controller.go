// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"meetingroom-backend/middleware"
	"meetingroom-backend/services"
	"meetingroom-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingPayload struct {
	RoomID    string `json:"roomId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Purpose   string `json:"purpose"`
}

type UpdateBookingPayload struct {
	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Purpose   *string `json:"purpose"`
}

type CancelBookingPayload struct {
	Reason string `json:"reason" binding:"required"`
}

type ReschedulePayload struct {
	RoomID    *string `json:"roomId"`
	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// respondBookingError maps service errors onto the stable error envelope.
// Unknown errors are storage faults: logged, reported opaquely.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Meeting room not found")
	case errors.Is(err, services.ErrRoomInactive):
		utils.JSONError(c, http.StatusBadRequest, "ROOM_INACTIVE", "This meeting room is currently inactive and cannot be booked")
	case errors.Is(err, services.ErrBookingOverlap):
		utils.JSONError(c, http.StatusBadRequest, "BOOKING_OVERLAP", "The selected time slot overlaps with an existing booking")
	case errors.Is(err, services.ErrNotConfirmable):
		utils.JSONError(c, http.StatusBadRequest, "BOOKING_NOT_CONFIRMABLE", "Only pending bookings can be confirmed")
	case errors.Is(err, services.ErrNotRejectable):
		utils.JSONError(c, http.StatusBadRequest, "BOOKING_NOT_REJECTABLE", "Only pending bookings can be rejected")
	case errors.Is(err, services.ErrNotReschedulable):
		utils.JSONError(c, http.StatusBadRequest, "BOOKING_NOT_RESCHEDULABLE", "Only confirmed or pending bookings can be rescheduled")
	case errors.Is(err, services.ErrNoRescheduleRequest):
		utils.JSONError(c, http.StatusBadRequest, "NO_RESCHEDULE_REQUEST", "No reschedule request found for this booking")
	case errors.Is(err, services.ErrAlreadyCancelled):
		utils.JSONError(c, http.StatusBadRequest, "BOOKING_ALREADY_CANCELLED", "Booking is already cancelled")
	case errors.Is(err, services.ErrNotEditable):
		utils.JSONError(c, http.StatusBadRequest, "BOOKING_NOT_EDITABLE", "Only pending bookings can be edited")
	case errors.Is(err, utils.ErrInvalidTimeFormat):
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Time must be in HH:MM format")
	case errors.Is(err, utils.ErrInvalidDateFormat):
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date must be in YYYY-MM-DD format")
	case errors.Is(err, services.ErrInvalidTimeRange):
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Start time must be before end time")
	case errors.Is(err, services.ErrBookingTooShort):
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Booking must be at least 30 minutes long")
	case errors.Is(err, services.ErrDateInPast):
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date must be today or in the future")
	default:
		log.Printf("booking error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// POST /api/bookings
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input data", err.Error())
		return
	}

	actor := middleware.CurrentActor(c)
	booking, err := ctrl.BookingSvc.Create(services.CreateBookingInput{
		RoomID:        payload.RoomID,
		UserID:        actor.UserID,
		Date:          payload.Date,
		StartTime:     payload.StartTime,
		EndTime:       payload.EndTime,
		Purpose:       payload.Purpose,
		CreatedByRole: actor.Role,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking": booking,
		"message": "Booking created successfully",
	})
}

// GET /api/bookings
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	q := services.UserBookingQuery{
		Scope:  c.DefaultQuery("scope", "upcoming"),
		Status: c.Query("status"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", 10),
	}

	bookings, total, err := ctrl.BookingSvc.ListForUser(actor.UserID, q)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": paginationBody(q.Page, q.Limit, total),
	})
}

// GET /api/bookings/:id
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	booking, err := ctrl.BookingSvc.GetByID(c.Param("id"), actor)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// PATCH /api/bookings/:id
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	var payload UpdateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input data", err.Error())
		return
	}

	actor := middleware.CurrentActor(c)
	booking, err := ctrl.BookingSvc.Update(c.Param("id"), actor, services.UpdateBookingInput{
		Date:      payload.Date,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
		Purpose:   payload.Purpose,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"message": "Booking updated successfully",
	})
}

// POST /api/bookings/:id/cancel
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	var payload CancelBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required", err.Error())
		return
	}

	actor := middleware.CurrentActor(c)
	booking, err := ctrl.BookingSvc.Cancel(c.Param("id"), actor, payload.Reason)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"message": "Booking cancelled successfully",
	})
}

// POST /api/bookings/:id/reschedule
func (ctrl *BookingController) RequestReschedule(c *gin.Context) {
	var payload ReschedulePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input data", err.Error())
		return
	}

	actor := middleware.CurrentActor(c)
	booking, err := ctrl.BookingSvc.RequestReschedule(c.Param("id"), actor, services.RescheduleInput{
		RoomID:    payload.RoomID,
		Date:      payload.Date,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"message": "Reschedule request submitted successfully",
	})
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func paginationBody(page, limit int, total int64) gin.H {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	return gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": pages,
	}
}
