package entity

import "time"

const (
	DefaultNewsTag     = "보안 뉴스"
	DefaultNewsBgColor = "bg-gradient-to-br from-blue-900 to-indigo-900"
)

type News struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Summary     string    `gorm:"type:text;not null" json:"summary"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Tag         string    `gorm:"size:50" json:"tag"`
	BgColor     string    `gorm:"size:100" json:"bg_color"`
	Affiliation *string   `gorm:"size:100" json:"affiliation"`
	Views       int       `gorm:"default:0" json:"views"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (News) TableName() string { return "expert_news" }

type NewsComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NewsID    uint      `gorm:"not null;index" json:"news_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (NewsComment) TableName() string { return "expert_news_comments" }
