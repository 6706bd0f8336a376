package services

import (
	"testing"
	"time"

	"meetingroom-backend/models"
	"meetingroom-backend/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tests pin "today" to 2025-05-01 so the fixture dates stay in the future.
var testNow = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	// One in-memory database per test; a second pooled connection would see
	// an empty schema.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.MeetingRoom{}, &models.Booking{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestBookingService(db *gorm.DB) *BookingService {
	return NewBookingService(db, utils.FixedClock{T: testNow})
}

func seedRoom(t *testing.T, db *gorm.DB, name string, active bool) models.MeetingRoom {
	t.Helper()
	room := models.MeetingRoom{Name: name, Capacity: 8, IsActive: active}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room %s: %v", name, err)
	}
	if !active {
		// GORM skips the zero-value false on insert, letting the column's
		// default:true win; force the flag so the fixture matches intent.
		if err := db.Model(&room).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate room %s: %v", name, err)
		}
	}
	return room
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	user := models.User{Email: email, Role: role, IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func mustCreateBooking(t *testing.T, svc *BookingService, in CreateBookingInput) *models.Booking {
	t.Helper()
	booking, err := svc.Create(in)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return booking
}
