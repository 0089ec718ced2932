package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/modules/scan/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func (r *fakeUserRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) CreateWithConsent(ctx context.Context, u *entity.User, c *entity.TosConsent) error {
	return nil
}
func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return nil
}
func (r *fakeUserRepo) TouchLastLogin(ctx context.Context, id uint) error { return nil }
func (r *fakeUserRepo) Withdraw(ctx context.Context, id uint) error       { return nil }

type fakeScanRepo struct {
	records  map[uint]*entity.ScanRecord
	profiles map[uint]*entity.ExpertProfile
	counts   []repository.MonthlyCount
	since    time.Time
	latest   struct {
		userID uint
		limit  int
	}
}

func newFakeScanRepo() *fakeScanRepo {
	return &fakeScanRepo{
		records:  map[uint]*entity.ScanRecord{},
		profiles: map[uint]*entity.ExpertProfile{},
	}
}

func (r *fakeScanRepo) HistoryByUserID(ctx context.Context, userID uint, limit, offset int) ([]entity.ScanRecord, int64, error) {
	var out []entity.ScanRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	total := int64(len(out))
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeScanRepo) FindByIDAndUserID(ctx context.Context, id, userID uint) (*entity.ScanRecord, error) {
	if rec, ok := r.records[id]; ok && rec.UserID == userID {
		return rec, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeScanRepo) LatestByUserID(ctx context.Context, userID uint, limit int) ([]entity.ScanRecord, error) {
	r.latest.userID = userID
	r.latest.limit = limit
	var out []entity.ScanRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeScanRepo) GlobalFeed(ctx context.Context, limit, offset int) ([]entity.ScanRecord, error) {
	var out []entity.ScanRecord
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *fakeScanRepo) ExpertProfileByUserID(ctx context.Context, userID uint) (*entity.ExpertProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeScanRepo) ConsultationCountsSince(ctx context.Context, expertID uint, since time.Time) ([]repository.MonthlyCount, error) {
	r.since = since
	return r.counts, nil
}

func TestHistoryDefaultsAndDetail(t *testing.T) {
	repo := newFakeScanRepo()
	repo.records[1] = &entity.ScanRecord{ID: 1, UserID: 7, ScanType: "url", ScanTarget: "http://phish.example"}
	svc := NewScanService(repo, &fakeUserRepo{})

	resp, err := svc.History(context.Background(), 7, 0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Limit != 10 || resp.Offset != 0 {
		t.Errorf("invalid paging must fall back to defaults: limit=%d offset=%d", resp.Limit, resp.Offset)
	}
	if resp.Total != 1 {
		t.Errorf("total mismatch: %d", resp.Total)
	}

	record, err := svc.HistoryDetail(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ScanTarget != "http://phish.example" {
		t.Errorf("wrong record %+v", record)
	}

	_, err = svc.HistoryDetail(context.Background(), 1, 8)
	if apperror.MapErrorToStatus(err) != http.StatusNotFound {
		t.Errorf("another user's record should read as missing, got %v", err)
	}
}

func TestUserScansResolvesEmail(t *testing.T) {
	repo := newFakeScanRepo()
	repo.records[1] = &entity.ScanRecord{ID: 1, UserID: 7, ScanType: "sms"}
	users := &fakeUserRepo{byEmail: map[string]*entity.User{
		"known@example.com": {ID: 7, Email: "known@example.com"},
	}}
	svc := NewScanService(repo, users)

	summaries, err := svc.UserScans(context.Background(), "known@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one summary, got %d", len(summaries))
	}
	if repo.latest.userID != 7 || repo.latest.limit != 20 {
		t.Errorf("unexpected query args: %+v", repo.latest)
	}

	_, err = svc.UserScans(context.Background(), "")
	if apperror.MapErrorToStatus(err) != http.StatusBadRequest {
		t.Errorf("missing email should be 400, got %v", err)
	}
	_, err = svc.UserScans(context.Background(), "ghost@example.com")
	if apperror.MapErrorToStatus(err) != http.StatusNotFound {
		t.Errorf("unknown email should be 404, got %v", err)
	}
}

func TestDashboardStatsZeroFills(t *testing.T) {
	repo := newFakeScanRepo()
	repo.profiles[2] = &entity.ExpertProfile{UserID: 2, ConsultationCount: 12, Rating: 4.5}

	now := time.Now()
	repo.counts = []repository.MonthlyCount{
		{Month: now.Format("2006-01"), Count: 3},
		{Month: now.AddDate(0, -2, 0).Format("2006-01"), Count: 1},
	}

	svc := NewScanService(repo, &fakeUserRepo{})
	stats, err := svc.DashboardStats(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalConsultations != 12 || stats.AverageRating != 4.5 {
		t.Errorf("profile totals not carried over: %+v", stats)
	}
	if len(stats.MonthlyStats) != 6 {
		t.Fatalf("chart needs 6 points, got %d", len(stats.MonthlyStats))
	}

	last := stats.MonthlyStats[5]
	if last.Month != fmt.Sprintf("%d월", int(now.Month())) || last.Count != 3 {
		t.Errorf("current month must be last: %+v", last)
	}

	var total int64
	for _, s := range stats.MonthlyStats {
		total += s.Count
	}
	if total != 4 {
		t.Errorf("missing months must be zero, not dropped: %+v", stats.MonthlyStats)
	}

	wantSince := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)
	if !repo.since.Equal(wantSince) {
		t.Errorf("window start mismatch: got %v want %v", repo.since, wantSince)
	}
}

func TestDashboardStatsRequiresProfile(t *testing.T) {
	svc := NewScanService(newFakeScanRepo(), &fakeUserRepo{})

	_, err := svc.DashboardStats(context.Background(), 9)
	if apperror.MapErrorToStatus(err) != http.StatusNotFound {
		t.Fatalf("missing profile should be 404, got %v", err)
	}
	if err.Error() != "전문가 프로필을 찾을 수 없습니다." {
		t.Errorf("message mismatch: %q", err.Error())
	}
}
