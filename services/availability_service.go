package services

import (
	"fmt"
	"sort"

	"meetingroom-backend/models"
	"meetingroom-backend/utils"

	"gorm.io/gorm"
)

// AvailabilityService answers occupancy questions for a room and date. It is
// read-only; the lifecycle transitions in BookingService run the same checks
// inside their transactions.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// BookedSlot is one occupied display interval for a room/date.
type BookedSlot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

// HasOverlap reports whether any active booking occupies part of
// [startMinutes, endMinutes) in the given room on the given date. A booking
// with an outstanding reschedule request holds both its original slot and
// its resolved target slot until the request is settled. excludeBookingID,
// when non-empty, removes that booking from consideration.
func (s *AvailabilityService) HasOverlap(roomID, date string, startMinutes, endMinutes int, excludeBookingID string) (bool, error) {
	return hasOverlap(s.DB, roomID, date, startMinutes, endMinutes, excludeBookingID)
}

func hasOverlap(db *gorm.DB, roomID, date string, startMinutes, endMinutes int, excludeBookingID string) (bool, error) {
	// Pass 1: own intervals of active bookings. Two half-open intervals
	// [s1,e1) and [s2,e2) intersect iff s1 < e2 && s2 < e1.
	own := db.Model(&models.Booking{}).
		Where("room_id = ? AND date = ? AND status IN ?", roomID, date, models.ActiveStatuses()).
		Where("start_minutes < ? AND end_minutes > ?", endMinutes, startMinutes)
	if excludeBookingID != "" {
		own = own.Where("id <> ?", excludeBookingID)
	}
	var count int64
	if err := own.Count(&count).Error; err != nil {
		return false, fmt.Errorf("overlap scan: %w", err)
	}
	if count > 0 {
		return true, nil
	}

	// Pass 2: resolved reschedule targets of in-flight requests. Unset
	// override fields fall back to the booking's own values.
	target := db.Model(&models.Booking{}).
		Where("status = ?", models.StatusRescheduleRequested).
		Where("COALESCE(reschedule_room_id, room_id) = ?", roomID).
		Where("COALESCE(reschedule_date, date) = ?", date).
		Where("COALESCE(reschedule_start_minutes, start_minutes) < ?", endMinutes).
		Where("COALESCE(reschedule_end_minutes, end_minutes) > ?", startMinutes)
	if excludeBookingID != "" {
		target = target.Where("id <> ?", excludeBookingID)
	}
	if err := target.Count(&count).Error; err != nil {
		return false, fmt.Errorf("reschedule target scan: %w", err)
	}
	return count > 0, nil
}

// GetBookedSlots projects the active bookings for a room/date into display
// intervals, ascending by start. A booking awaiting reschedule approval is
// reported at its resolved target slot only; its original slot still blocks
// HasOverlap but is not listed here.
func (s *AvailabilityService) GetBookedSlots(roomID, date string) ([]BookedSlot, error) {
	var bookings []models.Booking
	err := s.DB.
		Where(
			s.DB.Where("room_id = ? AND date = ? AND status IN ?", roomID, date, models.ActiveStatuses()).
				Or("status = ? AND COALESCE(reschedule_room_id, room_id) = ? AND COALESCE(reschedule_date, date) = ?",
					models.StatusRescheduleRequested, roomID, date),
		).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("booked slots query: %w", err)
	}

	type rawSlot struct {
		start, end int
		id, status string
	}
	raw := make([]rawSlot, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		if b.Status != models.StatusRescheduleRequested {
			if b.RoomID == roomID && b.Date == date {
				raw = append(raw, rawSlot{b.StartMinutes, b.EndMinutes, b.ID, b.Status})
			}
			continue
		}
		t := b.Reschedule.Resolve(b)
		if t.RoomID == roomID && t.Date == date {
			raw = append(raw, rawSlot{t.StartMinutes, t.EndMinutes, b.ID, models.StatusRescheduleRequested})
		}
	}
	sort.Slice(raw, func(i, j int) bool { return raw[i].start < raw[j].start })

	slots := make([]BookedSlot, 0, len(raw))
	for _, r := range raw {
		slots = append(slots, BookedSlot{
			Start:     utils.MustFormatTime(r.start),
			End:       utils.MustFormatTime(r.end),
			BookingID: r.id,
			Status:    r.status,
		})
	}
	return slots, nil
}
