package entity

import "time"

// Notification types written by the fan-out paths.
const (
	NotificationTypeComment     = "comment"
	NotificationTypeAIComment   = "ai_comment"
	NotificationTypeNewsComment = "news_comment"
	NotificationTypeMessage     = "message"
)

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"size:255" json:"content"`
	Link      string    `gorm:"size:255" json:"link"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
