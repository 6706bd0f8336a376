package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking statuses. REJECTED and CANCELLED are terminal.
const (
	StatusPending             = "PENDING"
	StatusConfirmed           = "CONFIRMED"
	StatusRejected            = "REJECTED"
	StatusCancelled           = "CANCELLED"
	StatusRescheduleRequested = "RESCHEDULE_REQUESTED"
)

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
	RoleUser  = "USER"
)

// ActiveStatuses are the statuses that still hold a slot.
func ActiveStatuses() []string {
	return []string{StatusPending, StatusConfirmed, StatusRescheduleRequested}
}

// Reschedule holds an outstanding reschedule request. Only the fields the
// requester actually supplied are stored; nil means "same as the booking's
// current value". The record is considered present when RequestedAt is set.
type Reschedule struct {
	RequestedBy  *string    `gorm:"column:requested_by;size:36" json:"requestedBy,omitempty"`
	RequestedAt  *time.Time `gorm:"column:requested_at" json:"requestedAt,omitempty"`
	RoomID       *string    `gorm:"column:room_id;size:36" json:"roomId,omitempty"`
	Date         *string    `gorm:"column:date;size:10" json:"date,omitempty"`
	StartMinutes *int       `gorm:"column:start_minutes" json:"startMinutes,omitempty"`
	EndMinutes   *int       `gorm:"column:end_minutes" json:"endMinutes,omitempty"`
}

func (r Reschedule) Requested() bool {
	return r.RequestedAt != nil
}

// ResolvedTarget is the effective room/date/window of a reschedule request
// after filling unset fields from the booking.
type ResolvedTarget struct {
	RoomID       string
	Date         string
	StartMinutes int
	EndMinutes   int
}

// Resolve applies the override-or-fallback rule against the booking that
// carries the request.
func (r Reschedule) Resolve(b *Booking) ResolvedTarget {
	t := ResolvedTarget{
		RoomID:       b.RoomID,
		Date:         b.Date,
		StartMinutes: b.StartMinutes,
		EndMinutes:   b.EndMinutes,
	}
	if r.RoomID != nil {
		t.RoomID = *r.RoomID
	}
	if r.Date != nil {
		t.Date = *r.Date
	}
	if r.StartMinutes != nil {
		t.StartMinutes = *r.StartMinutes
	}
	if r.EndMinutes != nil {
		t.EndMinutes = *r.EndMinutes
	}
	return t
}

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	RoomID string `gorm:"column:room_id;size:36;index:idx_bookings_room_date,priority:1" json:"roomId"`
	UserID string `gorm:"column:user_id;size:36;index" json:"userId"`

	// Calendar day as YYYY-MM-DD; no timezone semantics.
	Date         string `gorm:"column:date;size:10;index:idx_bookings_room_date,priority:2" json:"date"`
	StartMinutes int    `gorm:"column:start_minutes" json:"startMinutes"`
	EndMinutes   int    `gorm:"column:end_minutes" json:"endMinutes"`

	Purpose string `gorm:"column:purpose;type:text" json:"purpose,omitempty"`
	Status  string `gorm:"column:status;size:32;index" json:"status"`

	Reschedule Reschedule `gorm:"embedded;embeddedPrefix:reschedule_" json:"reschedule"`

	CancelReason string `gorm:"column:cancel_reason;type:text" json:"cancelReason,omitempty"`
	RejectReason string `gorm:"column:reject_reason;type:text" json:"rejectReason,omitempty"`

	// Role snapshot taken at creation, kept for audit.
	CreatedByRole string `gorm:"column:created_by_role;size:16" json:"createdByRole"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Room MeetingRoom `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	User User        `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
