package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/modules/user/dto"
	"cslab.kr/securityhub/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail        map[string]*entity.User
	nicknames      map[string]bool
	nicknameChecks int
	created        []*entity.User
	consents       []*entity.TosConsent
	nextID         uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:   map[string]*entity.User{},
		nicknames: map[string]bool{},
		nextID:    1,
	}
}

func (r *fakeUserRepo) CreateWithConsent(ctx context.Context, user *entity.User, consent *entity.TosConsent) error {
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = user
	r.nicknames[user.Nickname] = true
	r.created = append(r.created, user)
	consent.UserID = user.ID
	r.consents = append(r.consents, consent)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok && u.AccountStatus == entity.AccountStatusActive {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeUserRepo) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	r.nicknameChecks++
	return r.nicknames[nickname], nil
}

func (r *fakeUserRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(ctx context.Context, id uint) error {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) Withdraw(ctx context.Context, id uint) error {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	user.AccountStatus = entity.AccountStatusWithdrawn
	user.WithdrawnAt = &now
	return nil
}

func newAuthService(repo *fakeUserRepo) AuthService {
	return NewAuthService(repo, "test-secret", time.Hour)
}

func TestSignupValidation(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	cases := []struct {
		name    string
		req     dto.SignupRequest
		message string
	}{
		{
			name:    "terms not agreed",
			req:     dto.SignupRequest{Email: "a@b.co", Password: "longenough"},
			message: "서비스 이용 약관에 동의해야 합니다.",
		},
		{
			name:    "empty fields",
			req:     dto.SignupRequest{AgreedToTerms: true},
			message: "모든 필드를 입력해주세요.",
		},
		{
			name:    "bad email",
			req:     dto.SignupRequest{AgreedToTerms: true, Email: "not-an-email", Password: "longenough"},
			message: "올바른 이메일 형식이 아닙니다.",
		},
		{
			name:    "short password",
			req:     dto.SignupRequest{AgreedToTerms: true, Email: "a@b.co", Password: "short"},
			message: "비밀번호는 최소 8자 이상이어야 합니다.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.req, "127.0.0.1")
			if apperror.MapErrorToStatus(err) != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
			if err.Error() != tc.message {
				t.Errorf("message mismatch: got %q want %q", err.Error(), tc.message)
			}
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byEmail["taken@example.com"] = &entity.User{ID: 1, Email: "taken@example.com"}
	svc := newAuthService(repo)

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		AgreedToTerms: true,
		Email:         "taken@example.com",
		Password:      "longenough",
	}, "127.0.0.1")
	if apperror.MapErrorToStatus(err) != http.StatusConflict {
		t.Fatalf("duplicate email should be 409, got %v", err)
	}
}

func TestSignupRecordsConsentAndNickname(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	resp, err := svc.Signup(context.Background(), dto.SignupRequest{
		AgreedToTerms: true,
		Email:         "new@example.com",
		Password:      "longenough",
	}, "203.0.113.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Message != "회원가입이 완료되었습니다." {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Nickname == "" {
		t.Error("a nickname must be generated")
	}

	if len(repo.consents) != 1 {
		t.Fatalf("expected one consent row, got %d", len(repo.consents))
	}
	consent := repo.consents[0]
	if consent.UserID != resp.UserID {
		t.Error("consent not linked to the new user")
	}
	if consent.IPAddress == nil || *consent.IPAddress != "203.0.113.9" {
		t.Error("client IP not recorded on consent")
	}

	stored := repo.byEmail["new@example.com"]
	if stored.Password == "longenough" {
		t.Error("password must be hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("longenough")) != nil {
		t.Error("stored hash does not match the password")
	}
}

type collidingNicknameRepo struct {
	*fakeUserRepo
}

func (r *collidingNicknameRepo) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	r.nicknameChecks++
	return true, nil
}

func TestSignupNicknameCollisionFallback(t *testing.T) {
	repo := &collidingNicknameRepo{fakeUserRepo: newFakeUserRepo()}
	svc := NewAuthService(repo, "test-secret", time.Hour)

	resp, err := svc.Signup(context.Background(), dto.SignupRequest{
		AgreedToTerms: true,
		Email:         "crowded@example.com",
		Password:      "longenough",
	}, "")
	if err != nil {
		t.Fatalf("signup must still succeed when every nickname collides: %v", err)
	}
	if resp.Nickname == "" {
		t.Error("fallback nickname missing")
	}
	if repo.nicknameChecks != 10 {
		t.Errorf("expected exactly 10 collision checks, got %d", repo.nicknameChecks)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	repo.byEmail["user@example.com"] = &entity.User{
		ID:            1,
		Email:         "user@example.com",
		Nickname:      "성실한호랑이",
		Password:      string(hashed),
		AccountStatus: entity.AccountStatusActive,
	}
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "user@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("login must issue a token")
	}
	if resp.User.Nickname != "성실한호랑이" {
		t.Errorf("unexpected session user %+v", resp.User)
	}
	if repo.byEmail["user@example.com"].LastLoginAt == nil {
		t.Error("last_login_at not stamped")
	}
}

func TestLoginRejectsBadCredentialsAndWithdrawn(t *testing.T) {
	repo := newFakeUserRepo()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	repo.byEmail["user@example.com"] = &entity.User{
		ID: 1, Email: "user@example.com", Password: string(hashed),
		AccountStatus: entity.AccountStatusActive,
	}
	repo.byEmail["gone@example.com"] = &entity.User{
		ID: 2, Email: "gone@example.com", Password: string(hashed),
		AccountStatus: entity.AccountStatusWithdrawn,
	}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	if apperror.MapErrorToStatus(err) != http.StatusUnauthorized {
		t.Errorf("wrong password should be 401, got %v", err)
	}

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "gone@example.com", Password: "correct-horse"})
	if apperror.MapErrorToStatus(err) != http.StatusUnauthorized {
		t.Errorf("withdrawn account should be 401, got %v", err)
	}
}
