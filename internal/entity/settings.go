package entity

import "time"

// Per-user singleton rows, auto-created on first access.

type UserSettings struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Theme        string    `gorm:"size:20;default:dark" json:"theme"`
	SoundEffects bool      `gorm:"default:true" json:"sound_effects"`
	AutoScan     bool      `gorm:"default:false" json:"auto_scan"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (UserSettings) TableName() string { return "user_settings" }

type UserStatistics struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalScans      int        `gorm:"default:0" json:"total_scans"`
	ThreatsDetected int        `gorm:"default:0" json:"threats_detected"`
	SafeResults     int        `gorm:"default:0" json:"safe_results"`
	LastScanAt      *time.Time `json:"last_scan_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (UserStatistics) TableName() string { return "user_statistics" }

type UserCredits struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Balance   int       `gorm:"default:0" json:"balance"`
	FreeScans int       `gorm:"default:5" json:"free_scans"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserCredits) TableName() string { return "user_credits" }
