package services

import (
	"errors"
	"fmt"

	"meetingroom-backend/models"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// RoomService is catalog plumbing around the rooms table. The booking engine
// itself only ever reads a room's is_active flag.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) GetAll(activeOnly bool) ([]models.MeetingRoom, error) {
	var rooms []models.MeetingRoom
	q := s.DB.Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id string) (*models.MeetingRoom, error) {
	var room models.MeetingRoom
	if err := s.DB.First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) Create(room *models.MeetingRoom) error {
	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateEntry(err) {
			return ErrRoomNameTaken
		}
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *RoomService) Update(id string, updates map[string]interface{}) (*models.MeetingRoom, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(room).Updates(updates).Error; err != nil {
			if isDuplicateEntry(err) {
				return nil, ErrRoomNameTaken
			}
			return nil, fmt.Errorf("failed to update room: %w", err)
		}
	}
	return s.GetByID(id)
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysqldrv.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
