// controllers/room_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"

	"meetingroom-backend/models"
	"meetingroom-backend/services"
	"meetingroom-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateRoomPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	Tables      *int   `json:"tables"`
	AC          *int   `json:"ac"`
	Washroom    *int   `json:"washroom"`
	Podium      bool   `json:"podium"`
	SoundSystem bool   `json:"soundSystem"`
	Projector   bool   `json:"projector"`
	Monitors    int    `json:"monitors"`
	TVs         int    `json:"tvs"`
	Ethernet    *bool  `json:"ethernet"`
	Wifi        *bool  `json:"wifi"`
}

type UpdateRoomPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
	Tables      *int    `json:"tables"`
	AC          *int    `json:"ac"`
	Washroom    *int    `json:"washroom"`
	Podium      *bool   `json:"podium"`
	SoundSystem *bool   `json:"soundSystem"`
	Projector   *bool   `json:"projector"`
	Monitors    *int    `json:"monitors"`
	TVs         *int    `json:"tvs"`
	Ethernet    *bool   `json:"ethernet"`
	Wifi        *bool   `json:"wifi"`
	IsActive    *bool   `json:"isActive"`
}

type RoomController struct {
	RoomSvc         *services.RoomService
	AvailabilitySvc *services.AvailabilityService
}

func NewRoomController(roomSvc *services.RoomService, availabilitySvc *services.AvailabilityService) *RoomController {
	return &RoomController{RoomSvc: roomSvc, AvailabilitySvc: availabilitySvc}
}

func respondRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Meeting room not found")
	case errors.Is(err, services.ErrRoomNameTaken):
		utils.JSONError(c, http.StatusConflict, "ROOM_NAME_TAKEN", "A meeting room with this name already exists")
	default:
		log.Printf("room error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// GET /api/meeting-rooms — only active rooms are offered for booking.
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll(true)
	if err != nil {
		respondRoomError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// GET /api/meeting-rooms/:id
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	room, err := ctrl.RoomSvc.GetByID(c.Param("id"))
	if err != nil {
		respondRoomError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// GET /api/meeting-rooms/:id/booked-slots?date=YYYY-MM-DD
// Display aid for calendars; the overlap check at write time stays
// authoritative.
func (ctrl *RoomController) GetBookedSlots(c *gin.Context) {
	date := c.Query("date")
	if err := utils.ValidateDate(date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date must be in YYYY-MM-DD format")
		return
	}

	slots, err := ctrl.AvailabilitySvc.GetBookedSlots(c.Param("id"), date)
	if err != nil {
		respondRoomError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookedSlots": slots})
}

// GET /api/admin/meeting-rooms — admins also see deactivated rooms.
func (ctrl *RoomController) GetAllRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll(false)
	if err != nil {
		respondRoomError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// POST /api/admin/meeting-rooms
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload CreateRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input data", err.Error())
		return
	}

	room := models.MeetingRoom{
		Name:        payload.Name,
		Description: payload.Description,
		Capacity:    payload.Capacity,
		Tables:      1,
		AC:          1,
		Washroom:    1,
		Podium:      payload.Podium,
		SoundSystem: payload.SoundSystem,
		Projector:   payload.Projector,
		Monitors:    payload.Monitors,
		TVs:         payload.TVs,
		Ethernet:    true,
		Wifi:        true,
		IsActive:    true,
	}
	if payload.Tables != nil {
		room.Tables = *payload.Tables
	}
	if payload.AC != nil {
		room.AC = *payload.AC
	}
	if payload.Washroom != nil {
		room.Washroom = *payload.Washroom
	}
	if payload.Ethernet != nil {
		room.Ethernet = *payload.Ethernet
	}
	if payload.Wifi != nil {
		room.Wifi = *payload.Wifi
	}

	if err := ctrl.RoomSvc.Create(&room); err != nil {
		respondRoomError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"room":    room,
		"message": "Meeting room created successfully",
	})
}

// PATCH /api/admin/meeting-rooms/:id
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	var payload UpdateRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input data", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.Capacity != nil {
		updates["capacity"] = *payload.Capacity
	}
	if payload.Tables != nil {
		updates["tables"] = *payload.Tables
	}
	if payload.AC != nil {
		updates["ac"] = *payload.AC
	}
	if payload.Washroom != nil {
		updates["washroom"] = *payload.Washroom
	}
	if payload.Podium != nil {
		updates["podium"] = *payload.Podium
	}
	if payload.SoundSystem != nil {
		updates["sound_system"] = *payload.SoundSystem
	}
	if payload.Projector != nil {
		updates["projector"] = *payload.Projector
	}
	if payload.Monitors != nil {
		updates["monitors"] = *payload.Monitors
	}
	if payload.TVs != nil {
		updates["tvs"] = *payload.TVs
	}
	if payload.Ethernet != nil {
		updates["ethernet"] = *payload.Ethernet
	}
	if payload.Wifi != nil {
		updates["wifi"] = *payload.Wifi
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}

	room, err := ctrl.RoomSvc.Update(c.Param("id"), updates)
	if err != nil {
		respondRoomError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room":    room,
		"message": "Meeting room updated successfully",
	})
}
