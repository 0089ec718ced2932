package guard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/pkg/apperror"
	"gorm.io/gorm"
)

func TestRequireOwner(t *testing.T) {
	if err := RequireOwner(7, 7); err != nil {
		t.Fatalf("owner should pass, got %v", err)
	}
	if err := RequireOwner(7, 8); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestDemoAccounts(t *testing.T) {
	demo := NewDemoAccounts([]string{"user@example.com", "expert@example.com"})

	if !demo.Contains("user@example.com") {
		t.Error("listed account should be recognized")
	}
	if demo.Contains("other@example.com") {
		t.Error("unlisted account should not be recognized")
	}

	var nilDemo *DemoAccounts
	if nilDemo.Contains("user@example.com") {
		t.Error("nil allowlist should match nothing")
	}
}

type emailOnlyRepo struct {
	users map[string]*entity.User
}

func (r *emailOnlyRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *emailOnlyRepo) CreateWithConsent(ctx context.Context, user *entity.User, consent *entity.TosConsent) error {
	return nil
}
func (r *emailOnlyRepo) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *emailOnlyRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (r *emailOnlyRepo) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	return false, nil
}
func (r *emailOnlyRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return nil
}
func (r *emailOnlyRepo) TouchLastLogin(ctx context.Context, id uint) error { return nil }
func (r *emailOnlyRepo) Withdraw(ctx context.Context, id uint) error       { return nil }

func TestResolveIdentity(t *testing.T) {
	repo := &emailOnlyRepo{users: map[string]*entity.User{
		"known@example.com": {ID: 3, Email: "known@example.com"},
	}}

	user, err := ResolveIdentity(context.Background(), repo, "known@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 3 {
		t.Errorf("resolved wrong user: %d", user.ID)
	}
}

func TestResolveIdentityMissingEmail(t *testing.T) {
	repo := &emailOnlyRepo{users: map[string]*entity.User{}}

	_, err := ResolveIdentity(context.Background(), repo, "")
	if apperror.MapErrorToStatus(err) != http.StatusBadRequest {
		t.Fatalf("empty email should be a 400, got %v", err)
	}
}

func TestResolveIdentityUnknownEmailIsNotFound(t *testing.T) {
	repo := &emailOnlyRepo{users: map[string]*entity.User{}}

	_, err := ResolveIdentity(context.Background(), repo, "ghost@example.com")
	if apperror.MapErrorToStatus(err) != http.StatusNotFound {
		t.Fatalf("unknown email should be a 404, not a 401: %v", err)
	}
}
