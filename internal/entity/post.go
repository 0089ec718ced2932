package entity

import "time"

type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AuthorID     uint      `gorm:"not null;index" json:"author_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Category     string    `gorm:"size:50;index" json:"category"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ScanResultID *uint     `gorm:"index" json:"scan_result_id"`
	Views        int       `gorm:"default:0" json:"views"`
	CommentCount int       `gorm:"default:0" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Author     *User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ScanResult *ScanRecord `gorm:"foreignKey:ScanResultID" json:"scan_result,omitempty"`
}

func (Post) TableName() string { return "community_posts" }

type PostComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (PostComment) TableName() string { return "post_comments" }
