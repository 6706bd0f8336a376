// controllers/admin_booking_controller.go
package controllers

import (
	"net/http"

	"meetingroom-backend/middleware"
	"meetingroom-backend/services"
	"meetingroom-backend/utils"

	"github.com/gin-gonic/gin"
)

type AdminCreateBookingPayload struct {
	RoomID    string `json:"roomId" binding:"required"`
	UserID    string `json:"userId"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Purpose   string `json:"purpose"`
}

type RejectBookingPayload struct {
	Reason string `json:"reason" binding:"required"`
}

type RejectReschedulePayload struct {
	Reason string `json:"reason"`
}

// AdminBookingController exposes the ADMIN/STAFF-only transitions. Role
// enforcement happens in the route guard; handlers assume a privileged
// actor.
type AdminBookingController struct {
	BookingSvc *services.BookingService
}

func NewAdminBookingController(svc *services.BookingService) *AdminBookingController {
	return &AdminBookingController{BookingSvc: svc}
}

// GET /api/admin/bookings
func (ctrl *AdminBookingController) GetBookings(c *gin.Context) {
	q := services.AdminBookingQuery{
		Status:   c.Query("status"),
		RoomID:   c.Query("roomId"),
		UserID:   c.Query("userId"),
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 10),
	}

	bookings, total, err := ctrl.BookingSvc.ListAll(q)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": paginationBody(q.Page, q.Limit, total),
	})
}

// POST /api/admin/bookings — create on behalf of any user; the booking
// keeps the creating admin/staff role as its audit snapshot.
func (ctrl *AdminBookingController) CreateBooking(c *gin.Context) {
	var payload AdminCreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input data", err.Error())
		return
	}

	actor := middleware.CurrentActor(c)
	userID := payload.UserID
	if userID == "" {
		userID = actor.UserID
	}

	booking, err := ctrl.BookingSvc.Create(services.CreateBookingInput{
		RoomID:        payload.RoomID,
		UserID:        userID,
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

// POST /api/admin/bookings/:id/confirm
func (ctrl *AdminBookingController) ConfirmBooking(c *gin.Context) {
	booking, err := ctrl.BookingSvc.Confirm(c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"message": "Booking confirmed successfully",
	})
}

// POST /api/admin/bookings/:id/reject
func (ctrl *AdminBookingController) RejectBooking(c *gin.Context) {
	var payload RejectBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required", err.Error())
		return
	}

	booking, err := ctrl.BookingSvc.Reject(c.Param("id"), payload.Reason)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"message": "Booking rejected successfully",
	})
}

// POST /api/admin/bookings/:id/approve-reschedule
func (ctrl *AdminBookingController) ApproveReschedule(c *gin.Context) {
	booking, err := ctrl.BookingSvc.ApproveReschedule(c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"message": "Reschedule request approved successfully",
	})
}

// POST /api/admin/bookings/:id/reject-reschedule
func (ctrl *AdminBookingController) RejectReschedule(c *gin.Context) {
	var payload RejectReschedulePayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			utils.JSONErrorDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input data", err.Error())
			return
		}
	}

	booking, err := ctrl.BookingSvc.RejectReschedule(c.Param("id"), payload.Reason)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"message": "Reschedule request rejected successfully",
	})
}
