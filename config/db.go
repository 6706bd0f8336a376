package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"meetingroom-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN(cfg Config) (string, error) {
	raw := strings.TrimSpace(cfg.MySQLURL)
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
	), nil
}

// ConnectDatabase opens the MySQL connection, runs migrations and seeds the
// baseline data.
func ConnectDatabase(cfg Config) (*gorm.DB, error) {
	dsn, err := resolveMySQLDSN(cfg)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.MeetingRoom{},
		&models.Booking{},
	); err != nil {
		return nil, err
	}

	if cfg.SeedDemo {
		SeedDatabase(db)
	}
	return db, nil
}

// SeedDatabase creates one account per role and a couple of rooms so a
// fresh install is usable. Each block is skipped when rows already exist.
func SeedDatabase(db *gorm.DB) {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		accounts := []struct {
			email    string
			role     string
			password string
		}{
			{"admin@example.com", models.RoleAdmin, "admin123"},
			{"staff@example.com", models.RoleStaff, "staff123"},
			{"user@example.com", models.RoleUser, "user123"},
		}
		for _, a := range accounts {
			hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("warning: failed to hash seed password for %s: %v", a.email, err)
				continue
			}
			user := models.User{
				Email:        a.email,
				PasswordHash: string(hash),
				Role:         a.role,
				IsActive:     true,
			}
			if err := db.Create(&user).Error; err != nil {
				log.Printf("warning: failed to seed user %s: %v", a.email, err)
			}
		}
		log.Println("Users seeded")
	}

	var roomCount int64
	db.Model(&models.MeetingRoom{}).Count(&roomCount)
	if roomCount == 0 {
		noImages, _ := json.Marshal([]any{})
		rooms := []models.MeetingRoom{
			{
				Name:        "Boardroom A",
				Description: "Large boardroom on the ground floor",
				Capacity:    16,
				Tables:      4,
				AC:          2,
				Washroom:    1,
				Podium:      true,
				SoundSystem: true,
				Projector:   true,
				Monitors:    1,
				Ethernet:    true,
				Wifi:        true,
				Images:      datatypes.JSON(noImages),
				IsActive:    true,
			},
			{
				Name:        "Huddle Room 1",
				Description: "Small huddle space for quick syncs",
				Capacity:    4,
				Tables:      1,
				AC:          1,
				Washroom:    0,
				TVs:         1,
				Ethernet:    true,
				Wifi:        true,
				Images:      datatypes.JSON(noImages),
				IsActive:    true,
			},
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Meeting rooms seeded")
		}
	}
}
