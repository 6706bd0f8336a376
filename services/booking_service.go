package services

import (
	"errors"
	"fmt"

	"meetingroom-backend/models"
	"meetingroom-backend/utils"

	"gorm.io/gorm"
)

// MinBookingMinutes is the shortest window Create and Update accept.
const MinBookingMinutes = 30

// Actor is the already-authenticated caller; identity verification happens
// upstream and the id/role pair arrives trusted.
type Actor struct {
	UserID string
	Role   string
}

// IsPrivileged reports whether the actor may act on other users' bookings.
func (a Actor) IsPrivileged() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleStaff
}

// BookingService owns the booking status state machine. Every transition
// runs inside a single transaction so a failed precondition or storage
// fault never leaves a partially applied state change. The overlap scan and
// the commit are not serialized against concurrent writers; the approve
// step re-validates the overlap to catch requests gone stale in between.
type BookingService struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewBookingService(db *gorm.DB, clock utils.Clock) *BookingService {
	if clock == nil {
		clock = utils.SystemClock()
	}
	return &BookingService{DB: db, Clock: clock}
}

type CreateBookingInput struct {
	RoomID        string
	UserID        string
	Date          string
	StartTime     string
	EndTime       string
	Purpose       string
	CreatedByRole string
}

type UpdateBookingInput struct {
	Date      *string
	StartTime *string
	EndTime   *string
	Purpose   *string
}

type RescheduleInput struct {
	RoomID    *string
	Date      *string
	StartTime *string
	EndTime   *string
}

// validateWindow runs the create-time checks: real calendar day that is not
// in the past, strict HH:MM times, ordered, and at least the minimum length.
func (s *BookingService) validateWindow(date, startTime, endTime string) (int, int, error) {
	if err := utils.ValidateDate(date); err != nil {
		return 0, 0, err
	}
	if !utils.IsTodayOrFuture(date, s.Clock.Now()) {
		return 0, 0, ErrDateInPast
	}
	startMinutes, err := utils.ParseTime(startTime)
	if err != nil {
		return 0, 0, err
	}
	endMinutes, err := utils.ParseTime(endTime)
	if err != nil {
		return 0, 0, err
	}
	if !utils.IsOrdered(startMinutes, endMinutes) {
		return 0, 0, ErrInvalidTimeRange
	}
	if endMinutes-startMinutes < MinBookingMinutes {
		return 0, 0, ErrBookingTooShort
	}
	return startMinutes, endMinutes, nil
}

// findForActor loads a booking applying ownership scoping: a plain USER
// gets the same not-found for a foreign booking as for a missing one.
func findForActor(tx *gorm.DB, bookingID string, actor Actor) (*models.Booking, error) {
	q := tx.Where("id = ?", bookingID)
	if !actor.IsPrivileged() {
		q = q.Where("user_id = ?", actor.UserID)
	}
	var booking models.Booking
	if err := q.First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &booking, nil
}

func findByID(tx *gorm.DB, bookingID string) (*models.Booking, error) {
	return findForActor(tx, bookingID, Actor{Role: models.RoleAdmin})
}

// reload fetches the booking with its room and user for response payloads.
func (s *BookingService) reload(bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").Preload("User").First(&booking, "id = ?", bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &booking, nil
}

// Create makes a new PENDING booking after checking the room is active and
// the window is free.
func (s *BookingService) Create(in CreateBookingInput) (*models.Booking, error) {
	startMinutes, endMinutes, err := s.validateWindow(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	var bookingID string
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.MeetingRoom
		if err := tx.First(&room, "id = ?", in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to load room: %w", err)
		}
		if !room.IsActive {
			return ErrRoomInactive
		}

		overlap, err := hasOverlap(tx, in.RoomID, in.Date, startMinutes, endMinutes, "")
		if err != nil {
			return err
		}
		if overlap {
			return ErrBookingOverlap
		}

		booking := models.Booking{
			RoomID:        in.RoomID,
			UserID:        in.UserID,
			Date:          in.Date,
			StartMinutes:  startMinutes,
			EndMinutes:    endMinutes,
			Purpose:       in.Purpose,
			Status:        models.StatusPending,
			CreatedByRole: in.CreatedByRole,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		bookingID = booking.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reload(bookingID)
}

// Confirm moves a PENDING booking to CONFIRMED.
func (s *BookingService) Confirm(bookingID string) (*models.Booking, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := findByID(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.StatusPending {
			return ErrNotConfirmable
		}
		return tx.Model(booking).Update("status", models.StatusConfirmed).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(bookingID)
}

// Reject moves a PENDING booking to the terminal REJECTED state.
func (s *BookingService) Reject(bookingID, reason string) (*models.Booking, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := findByID(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.StatusPending {
			return ErrNotRejectable
		}
		return tx.Model(booking).Updates(map[string]interface{}{
			"status":        models.StatusRejected,
			"reject_reason": reason,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(bookingID)
}

// Cancel moves any non-cancelled booking to the terminal CANCELLED state.
func (s *BookingService) Cancel(bookingID string, actor Actor, reason string) (*models.Booking, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := findForActor(tx, bookingID, actor)
		if err != nil {
			return err
		}
		if booking.Status == models.StatusCancelled {
			return ErrAlreadyCancelled
		}
		return tx.Model(booking).Updates(map[string]interface{}{
			"status":        models.StatusCancelled,
			"cancel_reason": reason,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(bookingID)
}

// Update edits a PENDING booking's date, times or purpose, re-running the
// create-time checks against the resolved window.
func (s *BookingService) Update(bookingID string, actor Actor, in UpdateBookingInput) (*models.Booking, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := findForActor(tx, bookingID, actor)
		if err != nil {
			return err
		}
		if booking.Status != models.StatusPending {
			return ErrNotEditable
		}

		updates := map[string]interface{}{}
		if in.Date != nil || in.StartTime != nil || in.EndTime != nil {
			date := booking.Date
			if in.Date != nil {
				date = *in.Date
			}
			startTime := utils.MustFormatTime(booking.StartMinutes)
			if in.StartTime != nil {
				startTime = *in.StartTime
			}
			endTime := utils.MustFormatTime(booking.EndMinutes)
			if in.EndTime != nil {
				endTime = *in.EndTime
			}

			startMinutes, endMinutes, err := s.validateWindow(date, startTime, endTime)
			if err != nil {
				return err
			}
			overlap, err := hasOverlap(tx, booking.RoomID, date, startMinutes, endMinutes, booking.ID)
			if err != nil {
				return err
			}
			if overlap {
				return ErrBookingOverlap
			}
			updates["date"] = date
			updates["start_minutes"] = startMinutes
			updates["end_minutes"] = endMinutes
		}
		if in.Purpose != nil {
			updates["purpose"] = *in.Purpose
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(booking).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(bookingID)
}

// RequestReschedule records a reschedule request on a PENDING or CONFIRMED
// booking. Only the fields the caller supplied are stored as overrides; the
// booking's own slot stays untouched (and still occupied) until an admin
// settles the request.
func (s *BookingService) RequestReschedule(bookingID string, actor Actor, in RescheduleInput) (*models.Booking, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := findForActor(tx, bookingID, actor)
		if err != nil {
			return err
		}
		if booking.Status != models.StatusPending && booking.Status != models.StatusConfirmed {
			return ErrNotReschedulable
		}

		intent := models.Reschedule{RoomID: in.RoomID, Date: in.Date}
		if in.Date != nil {
			if err := utils.ValidateDate(*in.Date); err != nil {
				return err
			}
			if !utils.IsTodayOrFuture(*in.Date, s.Clock.Now()) {
				return ErrDateInPast
			}
		}
		if in.StartTime != nil {
			m, err := utils.ParseTime(*in.StartTime)
			if err != nil {
				return err
			}
			intent.StartMinutes = &m
		}
		if in.EndTime != nil {
			m, err := utils.ParseTime(*in.EndTime)
			if err != nil {
				return err
			}
			intent.EndMinutes = &m
		}

		target := intent.Resolve(booking)
		if !utils.IsOrdered(target.StartMinutes, target.EndMinutes) {
			return ErrInvalidTimeRange
		}

		var room models.MeetingRoom
		if err := tx.First(&room, "id = ?", target.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to load room: %w", err)
		}
		if !room.IsActive {
			return ErrRoomInactive
		}

		overlap, err := hasOverlap(tx, target.RoomID, target.Date, target.StartMinutes, target.EndMinutes, booking.ID)
		if err != nil {
			return err
		}
		if overlap {
			return ErrBookingOverlap
		}

		now := s.Clock.Now()
		return tx.Model(booking).Updates(map[string]interface{}{
			"status":                   models.StatusRescheduleRequested,
			"reschedule_requested_by":  actor.UserID,
			"reschedule_requested_at":  now,
			"reschedule_room_id":       in.RoomID,
			"reschedule_date":          in.Date,
			"reschedule_start_minutes": intent.StartMinutes,
			"reschedule_end_minutes":   intent.EndMinutes,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(bookingID)
}

// ApproveReschedule re-validates the resolved target against the current
// bookings (the slot may have been taken since the request was filed) and,
// on success, rewrites the booking onto the target slot, clears the request
// and confirms the booking in one commit.
func (s *BookingService) ApproveReschedule(bookingID string) (*models.Booking, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := findByID(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.StatusRescheduleRequested || !booking.Reschedule.Requested() {
			return ErrNoRescheduleRequest
		}

		target := booking.Reschedule.Resolve(booking)
		overlap, err := hasOverlap(tx, target.RoomID, target.Date, target.StartMinutes, target.EndMinutes, booking.ID)
		if err != nil {
			return err
		}
		if overlap {
			return ErrBookingOverlap
		}

		updates := clearedRescheduleColumns()
		updates["status"] = models.StatusConfirmed
		updates["room_id"] = target.RoomID
		updates["date"] = target.Date
		updates["start_minutes"] = target.StartMinutes
		updates["end_minutes"] = target.EndMinutes
		return tx.Model(booking).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(bookingID)
}

// RejectReschedule clears the request and sets the booking back to
// CONFIRMED. This matches the reference behavior even when the booking was
// PENDING before the request was filed.
func (s *BookingService) RejectReschedule(bookingID, reason string) (*models.Booking, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := findByID(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.StatusRescheduleRequested || !booking.Reschedule.Requested() {
			return ErrNoRescheduleRequest
		}

		updates := clearedRescheduleColumns()
		updates["status"] = models.StatusConfirmed
		if reason != "" {
			updates["reject_reason"] = reason
		}
		return tx.Model(booking).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(bookingID)
}

func clearedRescheduleColumns() map[string]interface{} {
	return map[string]interface{}{
		"reschedule_requested_by":  nil,
		"reschedule_requested_at":  nil,
		"reschedule_room_id":       nil,
		"reschedule_date":          nil,
		"reschedule_start_minutes": nil,
		"reschedule_end_minutes":   nil,
	}
}

// GetByID returns a booking with ownership scoping applied.
func (s *BookingService) GetByID(bookingID string, actor Actor) (*models.Booking, error) {
	if _, err := findForActor(s.DB, bookingID, actor); err != nil {
		return nil, err
	}
	return s.reload(bookingID)
}

type UserBookingQuery struct {
	Scope  string // "upcoming" (default) or "history"
	Status string
	From   string
	To     string
	Page   int
	Limit  int
}

// ListForUser pages through a user's own bookings. The upcoming scope shows
// bookings from today on that still hold a slot; history shows past days.
func (s *BookingService) ListForUser(userID string, q UserBookingQuery) ([]models.Booking, int64, error) {
	today := utils.DateOf(s.Clock.Now())

	db := s.DB.Model(&models.Booking{}).Where("user_id = ?", userID)
	order := "date ASC, start_minutes ASC"
	if q.Scope == "history" {
		db = db.Where("date < ?", today)
		order = "date DESC, start_minutes ASC"
	} else {
		db = db.Where("date >= ?", today)
		if q.Status == "" {
			db = db.Where("status IN ?", models.ActiveStatuses())
		}
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.From != "" {
		db = db.Where("date >= ?", q.From)
	}
	if q.To != "" {
		db = db.Where("date <= ?", q.To)
	}

	return s.page(db, q.Page, q.Limit, order)
}

type AdminBookingQuery struct {
	Status   string
	RoomID   string
	UserID   string
	DateFrom string
	DateTo   string
	Page     int
	Limit    int
}

// ListAll pages through every booking with the admin filters.
func (s *BookingService) ListAll(q AdminBookingQuery) ([]models.Booking, int64, error) {
	db := s.DB.Model(&models.Booking{})
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.RoomID != "" {
		db = db.Where("room_id = ?", q.RoomID)
	}
	if q.UserID != "" {
		db = db.Where("user_id = ?", q.UserID)
	}
	if q.DateFrom != "" {
		db = db.Where("date >= ?", q.DateFrom)
	}
	if q.DateTo != "" {
		db = db.Where("date <= ?", q.DateTo)
	}
	return s.page(db, q.Page, q.Limit, "created_at DESC")
}

func (s *BookingService) page(db *gorm.DB, page, limit int, order string) ([]models.Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookings []models.Booking
	err := db.Preload("Room").Preload("User").
		Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}
