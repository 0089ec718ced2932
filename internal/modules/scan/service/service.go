package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/guard"
	"cslab.kr/securityhub/internal/modules/scan/dto"
	"cslab.kr/securityhub/internal/modules/scan/repository"
	userRepo "cslab.kr/securityhub/internal/modules/user/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"gorm.io/gorm"
)

const (
	defaultHistoryLimit = 10
	userScansLimit      = 20
	expertFeedLimit     = 100
	dashboardMonths     = 6
)

type ScanService interface {
	History(ctx context.Context, userID uint, limit, offset int) (*dto.ScanHistoryResponse, error)
	HistoryDetail(ctx context.Context, id, userID uint) (*entity.ScanRecord, error)
	UserScans(ctx context.Context, email string) ([]dto.ScanSummary, error)
	ExpertFeed(ctx context.Context, limit, offset int) ([]dto.ScanSummary, error)
	DashboardStats(ctx context.Context, userID uint) (*dto.DashboardStatsResponse, error)
}

type scanService struct {
	scanRepo repository.ScanRepository
	userRepo userRepo.UserRepository
}

func NewScanService(scanRepo repository.ScanRepository, userRepo userRepo.UserRepository) ScanService {
	return &scanService{
		scanRepo: scanRepo,
		userRepo: userRepo,
	}
}

func (s *scanService) History(ctx context.Context, userID uint, limit, offset int) (*dto.ScanHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := s.scanRepo.HistoryByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperror.Internal("스캔 히스토리 조회 중 오류가 발생했습니다.", err)
	}

	return &dto.ScanHistoryResponse{
		History: records,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

func (s *scanService) HistoryDetail(ctx context.Context, id, userID uint) (*entity.ScanRecord, error) {
	record, err := s.scanRepo.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("기록을 찾을 수 없습니다.")
		}
		return nil, apperror.Internal("스캔 히스토리 조회 중 오류가 발생했습니다.", err)
	}
	return record, nil
}

func (s *scanService) UserScans(ctx context.Context, email string) ([]dto.ScanSummary, error) {
	user, err := guard.ResolveIdentity(ctx, s.userRepo, email)
	if err != nil {
		return nil, err
	}

	records, err := s.scanRepo.LatestByUserID(ctx, user.ID, userScansLimit)
	if err != nil {
		return nil, apperror.Internal("스캔 히스토리 조회 중 오류가 발생했습니다.", err)
	}

	summaries := make([]dto.ScanSummary, 0, len(records))
	for i := range records {
		r := &records[i]
		summaries = append(summaries, dto.ScanSummary{
			ID:            r.ID,
			ScanType:      r.ScanType,
			ScanTarget:    r.ScanTarget,
			Result:        r.Result,
			RiskScore:     r.RiskScore,
			CreatedAt:     r.CreatedAt.Format(time.RFC3339),
			EasySummary:   r.EasySummary,
			ExpertSummary: r.ExpertSummary,
		})
	}
	return summaries, nil
}

func (s *scanService) ExpertFeed(ctx context.Context, limit, offset int) ([]dto.ScanSummary, error) {
	if limit <= 0 || limit > expertFeedLimit {
		limit = expertFeedLimit
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.scanRepo.GlobalFeed(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Internal("스캔 히스토리 조회 중 오류가 발생했습니다.", err)
	}

	summaries := make([]dto.ScanSummary, 0, len(records))
	for i := range records {
		r := &records[i]
		summaries = append(summaries, dto.ScanSummary{
			ID:            r.ID,
			ScanType:      r.ScanType,
			ScanTarget:    r.ScanTarget,
			Result:        r.Result,
			RiskScore:     r.RiskScore,
			CreatedAt:     r.CreatedAt.Format(time.RFC3339),
			EasySummary:   r.EasySummary,
			ExpertSummary: r.ExpertSummary,
		})
	}
	return summaries, nil
}

func (s *scanService) DashboardStats(ctx context.Context, userID uint) (*dto.DashboardStatsResponse, error) {
	profile, err := s.scanRepo.ExpertProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("전문가 프로필을 찾을 수 없습니다.")
		}
		return nil, apperror.Internal("통계 조회 중 오류가 발생했습니다.", err)
	}

	now := time.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(dashboardMonths - 1), 0)

	counts, err := s.scanRepo.ConsultationCountsSince(ctx, profile.UserID, since)
	if err != nil {
		return nil, apperror.Internal("통계 조회 중 오류가 발생했습니다.", err)
	}

	byMonth := make(map[string]int64, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c.Count
	}

	// Zero-fill the trailing window so the chart always has 6 points.
	stats := make([]dto.MonthlyStat, 0, dashboardMonths)
	for i := dashboardMonths - 1; i >= 0; i-- {
		m := now.AddDate(0, -i, 0)
		key := m.Format("2006-01")
		stats = append(stats, dto.MonthlyStat{
			Month: fmt.Sprintf("%d월", int(m.Month())),
			Count: byMonth[key],
		})
	}

	return &dto.DashboardStatsResponse{
		TotalConsultations: profile.ConsultationCount,
		AverageRating:      profile.Rating,
		MonthlyStats:       stats,
	}, nil
}
