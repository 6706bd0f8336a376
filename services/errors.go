package services

import "errors"

// Business-rule errors. Controllers map these to stable HTTP error codes;
// anything else coming out of a service is a storage fault and surfaces as
// an opaque internal error.
var (
	ErrBookingNotFound     = errors.New("booking_not_found")
	ErrRoomNotFound        = errors.New("room_not_found")
	ErrRoomInactive        = errors.New("room_inactive")
	ErrRoomNameTaken       = errors.New("room_name_taken")
	ErrBookingOverlap      = errors.New("booking_overlap")
	ErrNotConfirmable      = errors.New("booking_not_confirmable")
	ErrNotRejectable       = errors.New("booking_not_rejectable")
	ErrNotReschedulable    = errors.New("booking_not_reschedulable")
	ErrNoRescheduleRequest = errors.New("no_reschedule_request")
	ErrAlreadyCancelled    = errors.New("booking_already_cancelled")
	ErrNotEditable         = errors.New("booking_not_editable")

	ErrInvalidTimeRange = errors.New("invalid_time_range")
	ErrBookingTooShort  = errors.New("booking_too_short")
	ErrDateInPast       = errors.New("date_in_past")
)
