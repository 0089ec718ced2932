package entity

type ExpertProfile struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	UserID            uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	Specialty         string  `gorm:"size:100" json:"specialty"`
	ExperienceYears   int     `gorm:"default:0" json:"experience_years"`
	Certifications    *string `gorm:"type:text" json:"certifications"`
	Introduction      *string `gorm:"type:text" json:"introduction"`
	ConsultationCount int     `gorm:"default:0" json:"consultation_count"`
	Rating            float64 `gorm:"default:0" json:"rating"`
	IsFeatured        bool    `gorm:"default:false" json:"is_featured"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ExpertProfile) TableName() string { return "expert_profiles" }
