package dto

type UpdateProfileRequest struct {
	Nickname        string  `json:"nickname" binding:"omitempty,max=20"`
	ProfileImageURL *string `json:"profile_image_url"`
	ExpertField     *string `json:"expert_field" binding:"omitempty,max=100"`
	CareerInfo      *string `json:"career_info" binding:"omitempty,max=1000"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
