package service

import (
	"context"

	"cslab.kr/securityhub/internal/modules/expert/dto"
	"cslab.kr/securityhub/internal/modules/expert/repository"
	"cslab.kr/securityhub/pkg/apperror"
)

const featuredLimit = 3

type ExpertService interface {
	List(ctx context.Context, featuredOnly bool) ([]dto.ExpertItem, error)
}

type expertService struct {
	repo repository.ExpertRepository
}

func NewExpertService(repo repository.ExpertRepository) ExpertService {
	return &expertService{repo: repo}
}

func (s *expertService) List(ctx context.Context, featuredOnly bool) ([]dto.ExpertItem, error) {
	profiles, err := s.repo.List(ctx, featuredOnly, featuredLimit)
	if err != nil {
		return nil, apperror.Internal("전문가 목록을 불러오는데 실패했습니다.", err)
	}

	items := make([]dto.ExpertItem, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		item := dto.ExpertItem{
			ID:                p.ID,
			Specialty:         p.Specialty,
			ExperienceYears:   p.ExperienceYears,
			Certifications:    p.Certifications,
			Introduction:      p.Introduction,
			ConsultationCount: p.ConsultationCount,
			Rating:            p.Rating,
			IsFeatured:        p.IsFeatured,
		}
		if p.User != nil {
			item.Nickname = p.User.Nickname
			item.ProfileImageURL = p.User.ProfileImageURL
		}
		items = append(items, item)
	}
	return items, nil
}
