package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MeetingRoom struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name        string `gorm:"column:name;uniqueIndex;size:191" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
	Capacity    int    `gorm:"column:capacity" json:"capacity"`

	Tables      int  `gorm:"column:tables;default:1" json:"tables"`
	AC          int  `gorm:"column:ac;default:1" json:"ac"`
	Washroom    int  `gorm:"column:washroom;default:1" json:"washroom"`
	Podium      bool `gorm:"column:podium;default:false" json:"podium"`
	SoundSystem bool `gorm:"column:sound_system;default:false" json:"soundSystem"`
	Projector   bool `gorm:"column:projector;default:false" json:"projector"`
	Monitors    int  `gorm:"column:monitors;default:0" json:"monitors"`
	TVs         int  `gorm:"column:tvs;default:0" json:"tvs"`
	Ethernet    bool `gorm:"column:ethernet;default:true" json:"ethernet"`
	Wifi        bool `gorm:"column:wifi;default:true" json:"wifi"`

	// [{fileName, fileSize, url}] managed outside the booking engine.
	Images datatypes.JSON `gorm:"column:images" json:"images,omitempty"`

	IsActive bool `gorm:"column:is_active;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *MeetingRoom) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
