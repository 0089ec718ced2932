package entity

import "time"

const (
	AccountStatusActive    = "active"
	AccountStatusWithdrawn = "withdrawn"
	AccountStatusSuspended = "suspended"
)

type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Email            string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Nickname         string     `gorm:"size:50;uniqueIndex;not null" json:"nickname"`
	Password         string     `gorm:"size:255;not null" json:"-"`
	IsExpert         bool       `gorm:"default:false" json:"is_expert"`
	IsBot            bool       `gorm:"default:false" json:"is_bot"`
	AccountStatus    string     `gorm:"size:20;default:active;index" json:"account_status"`
	EmailVerified    bool       `gorm:"default:false" json:"email_verified"`
	ExpertField      *string    `gorm:"size:100" json:"expert_field"`
	CareerInfo       *string    `gorm:"type:text" json:"career_info"`
	ExpertVerifiedAt *time.Time `json:"expert_verified_at"`
	ProfileImageURL  *string    `gorm:"size:500" json:"profile_image_url"`
	LastLoginAt      *time.Time `json:"last_login_at"`
	WithdrawnAt      *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TosConsent records terms-of-service agreement at signup time.
type TosConsent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	ConsentType string    `gorm:"size:50;not null" json:"consent_type"`
	IPAddress   *string   `gorm:"size:45" json:"ip_address"`
	CreatedAt   time.Time `json:"created_at"`
}

func (TosConsent) TableName() string { return "tos_consent" }
