package service

import (
	"context"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/modules/settings/dto"
	"cslab.kr/securityhub/internal/modules/settings/repository"
	"cslab.kr/securityhub/pkg/apperror"
)

type SettingsService interface {
	GetSettings(ctx context.Context, userID uint) (*entity.UserSettings, error)
	UpdateSettings(ctx context.Context, userID uint, req dto.UpdateSettingsRequest) (*dto.UpdateSettingsResponse, error)
	GetStatistics(ctx context.Context, userID uint) (*entity.UserStatistics, error)
	GetCredits(ctx context.Context, userID uint) (*entity.UserCredits, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) GetSettings(ctx context.Context, userID uint) (*entity.UserSettings, error) {
	settings, err := s.repo.GetOrCreateSettings(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("설정 조회 중 오류가 발생했습니다.", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID uint, req dto.UpdateSettingsRequest) (*dto.UpdateSettingsResponse, error) {
	fields := map[string]interface{}{}
	if req.Theme != nil {
		fields["theme"] = *req.Theme
	}
	if req.SoundEffects != nil {
		fields["sound_effects"] = *req.SoundEffects
	}
	if req.AutoScan != nil {
		fields["auto_scan"] = *req.AutoScan
	}
	if len(fields) == 0 {
		return nil, apperror.BadRequest("업데이트할 항목이 없습니다.")
	}

	// Make sure the row exists before the partial update hits it.
	if _, err := s.repo.GetOrCreateSettings(ctx, userID); err != nil {
		return nil, apperror.Internal("설정 업데이트 중 오류가 발생했습니다.", err)
	}

	settings, err := s.repo.UpdateSettings(ctx, userID, fields)
	if err != nil {
		return nil, apperror.Internal("설정 업데이트 중 오류가 발생했습니다.", err)
	}

	return &dto.UpdateSettingsResponse{
		Message:  "설정이 업데이트되었습니다.",
		Settings: *settings,
	}, nil
}

func (s *settingsService) GetStatistics(ctx context.Context, userID uint) (*entity.UserStatistics, error) {
	stats, err := s.repo.GetOrCreateStatistics(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("통계 조회 중 오류가 발생했습니다.", err)
	}
	return stats, nil
}

func (s *settingsService) GetCredits(ctx context.Context, userID uint) (*entity.UserCredits, error) {
	credits, err := s.repo.GetOrCreateCredits(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("크레딧 조회 중 오류가 발생했습니다.", err)
	}
	return credits, nil
}
