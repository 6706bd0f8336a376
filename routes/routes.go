package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"meetingroom-backend/controllers"
	"meetingroom-backend/middleware"
	"meetingroom-backend/models"
)

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	bc *controllers.BookingController,
	abc *controllers.AdminBookingController,
	rc *controllers.RoomController,
	corsOrigins string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins(corsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.HeaderUserID, middleware.HeaderUserRole},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Room catalog reads and the slot calendar are public.
		rooms := api.Group("/meeting-rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoom)
			rooms.GET("/:id/booked-slots", rc.GetBookedSlots)
		}

		bookings := api.Group("/bookings")
		bookings.Use(middleware.Identity())
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.PATCH("/:id", bc.UpdateBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
			bookings.POST("/:id/reschedule", bc.RequestReschedule)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.Identity(), middleware.RequireRoles(models.RoleAdmin, models.RoleStaff))
		{
			adminBookings := admin.Group("/bookings")
			{
				adminBookings.GET("", abc.GetBookings)
				adminBookings.POST("", abc.CreateBooking)
				adminBookings.POST("/:id/confirm", abc.ConfirmBooking)
				adminBookings.POST("/:id/reject", abc.RejectBooking)
				adminBookings.POST("/:id/approve-reschedule", abc.ApproveReschedule)
				adminBookings.POST("/:id/reject-reschedule", abc.RejectReschedule)
			}

			adminRooms := admin.Group("/meeting-rooms")
			{
				adminRooms.GET("", rc.GetAllRooms)
				adminRooms.POST("", rc.CreateRoom)
				adminRooms.PATCH("/:id", rc.UpdateRoom)
			}
		}
	}

	return r
}
