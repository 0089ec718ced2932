package entity

import "time"

// MessageThread is a 1:1 consultation channel between a user and an expert.
type MessageThread struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	ExpertID    uint      `gorm:"not null;index" json:"expert_id"`
	LastMessage string    `gorm:"type:text" json:"last_message"`
	UnreadCount int       `gorm:"default:0" json:"unread_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MessageThread) TableName() string { return "message_threads" }

type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ThreadID    uint      `gorm:"not null;index" json:"thread_id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	MessageText string    `gorm:"type:text" json:"message_text"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	FileURL     *string   `gorm:"size:500" json:"file_url"`
	FileName    *string   `gorm:"size:255" json:"file_name"`
	FileSize    *int64    `json:"file_size"`
	FileType    *string   `gorm:"size:100" json:"file_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Message) TableName() string { return "messages" }
