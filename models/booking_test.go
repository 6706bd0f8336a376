package models

import (
	"testing"
	"time"
)

func TestRescheduleResolve(t *testing.T) {
	booking := &Booking{
		RoomID:       "room-a",
		Date:         "2025-06-01",
		StartMinutes: 540,
		EndMinutes:   600,
	}

	t.Run("empty request falls back to booking", func(t *testing.T) {
		got := Reschedule{}.Resolve(booking)
		want := ResolvedTarget{RoomID: "room-a", Date: "2025-06-01", StartMinutes: 540, EndMinutes: 600}
		if got != want {
			t.Errorf("Resolve() = %+v, want %+v", got, want)
		}
	})

	t.Run("partial override keeps the rest", func(t *testing.T) {
		start := 660
		got := Reschedule{StartMinutes: &start}.Resolve(booking)
		want := ResolvedTarget{RoomID: "room-a", Date: "2025-06-01", StartMinutes: 660, EndMinutes: 600}
		if got != want {
			t.Errorf("Resolve() = %+v, want %+v", got, want)
		}
	})

	t.Run("full override", func(t *testing.T) {
		roomB, date := "room-b", "2025-06-02"
		start, end := 660, 720
		r := Reschedule{RoomID: &roomB, Date: &date, StartMinutes: &start, EndMinutes: &end}
		got := r.Resolve(booking)
		want := ResolvedTarget{RoomID: "room-b", Date: "2025-06-02", StartMinutes: 660, EndMinutes: 720}
		if got != want {
			t.Errorf("Resolve() = %+v, want %+v", got, want)
		}
	})
}

func TestRescheduleRequested(t *testing.T) {
	if (Reschedule{}).Requested() {
		t.Error("zero value must not read as requested")
	}
	now := time.Now()
	if !(Reschedule{RequestedAt: &now}).Requested() {
		t.Error("RequestedAt set must read as requested")
	}
	// Overrides without a timestamp do not count; presence is keyed on
	// RequestedAt alone.
	start := 660
	if (Reschedule{StartMinutes: &start}).Requested() {
		t.Error("override without RequestedAt must not read as requested")
	}
}
