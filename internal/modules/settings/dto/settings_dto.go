package dto

import "cslab.kr/securityhub/internal/entity"

// UpdateSettingsRequest carries a partial update: nil fields stay untouched.
type UpdateSettingsRequest struct {
	Theme        *string `json:"theme"`
	SoundEffects *bool   `json:"sound_effects"`
	AutoScan     *bool   `json:"auto_scan"`
}

type UpdateSettingsResponse struct {
	Message  string              `json:"message"`
	Settings entity.UserSettings `json:"settings"`
}
