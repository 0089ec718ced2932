package dto

type SignupRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	AgreedToTerms bool   `json:"agreedToTerms"`
}

type SignupResponse struct {
	Message  string `json:"message"`
	UserID   uint   `json:"userId"`
	Nickname string `json:"nickname"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      SessionUser  `json:"user"`
}

type SessionUser struct {
	ID              uint    `json:"id"`
	Email           string  `json:"email"`
	Nickname        string  `json:"nickname"`
	IsExpert        bool    `json:"is_expert"`
	ProfileImageURL *string `json:"profile_image_url"`
}
