package dto

type ExpertItem struct {
	ID                uint    `json:"id"`
	Specialty         string  `json:"specialty"`
	ExperienceYears   int     `json:"experience_years"`
	Certifications    *string `json:"certifications"`
	Introduction      *string `json:"introduction"`
	ConsultationCount int     `json:"consultation_count"`
	Rating            float64 `json:"rating"`
	IsFeatured        bool    `json:"is_featured"`
	Nickname          string  `json:"nickname"`
	ProfileImageURL   *string `json:"profile_image_url"`
}
