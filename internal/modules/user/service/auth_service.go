package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/middleware"
	"cslab.kr/securityhub/internal/modules/user/dto"
	"cslab.kr/securityhub/internal/modules/user/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const nicknameMaxAttempts = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest, clientIP string) (*dto.SignupResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo repository.UserRepository, jwtSecret string, jwtTTL time.Duration) AuthService {
	return &authService{
		repo:      repo,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest, clientIP string) (*dto.SignupResponse, error) {
	if !req.AgreedToTerms {
		return nil, apperror.BadRequest("서비스 이용 약관에 동의해야 합니다.")
	}
	if req.Email == "" || req.Password == "" {
		return nil, apperror.BadRequest("모든 필드를 입력해주세요.")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, apperror.BadRequest("올바른 이메일 형식이 아닙니다.")
	}
	if len(req.Password) < 8 {
		return nil, apperror.BadRequest("비밀번호는 최소 8자 이상이어야 합니다.")
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal("회원가입 처리 중 오류가 발생했습니다.", err)
	}
	if exists {
		return nil, apperror.Conflict("이미 사용 중인 이메일입니다.")
	}

	nickname, err := s.uniqueNickname(ctx)
	if err != nil {
		return nil, apperror.Internal("회원가입 처리 중 오류가 발생했습니다.", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal("회원가입 처리 중 오류가 발생했습니다.", err)
	}

	user := &entity.User{
		Email:         req.Email,
		Password:      string(hashed),
		Nickname:      nickname,
		AccountStatus: entity.AccountStatusActive,
	}

	var ip *string
	if clientIP != "" {
		ip = &clientIP
	}
	consent := &entity.TosConsent{
		ConsentType: "privacy_and_tos",
		IPAddress:   ip,
	}

	if err := s.repo.CreateWithConsent(ctx, user, consent); err != nil {
		return nil, apperror.Internal("회원가입 처리 중 오류가 발생했습니다.", err)
	}

	return &dto.SignupResponse{
		Message:  "회원가입이 완료되었습니다.",
		UserID:   user.ID,
		Nickname: user.Nickname,
	}, nil
}

// uniqueNickname retries generation up to nicknameMaxAttempts times on
// collision, then falls back to a suffixed variant.
func (s *authService) uniqueNickname(ctx context.Context) (string, error) {
	nickname := generateNickname()
	for attempt := 0; attempt < nicknameMaxAttempts; attempt++ {
		taken, err := s.repo.ExistsByNickname(ctx, nickname)
		if err != nil {
			return "", err
		}
		if !taken {
			return nickname, nil
		}
		nickname = generateSuffixedNickname()
	}
	return nickname, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindActiveByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("이메일 또는 비밀번호가 올바르지 않습니다.")
		}
		return nil, apperror.Internal("로그인 처리 중 오류가 발생했습니다.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("이메일 또는 비밀번호가 올바르지 않습니다.")
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, apperror.Internal("로그인 처리 중 오류가 발생했습니다.", err)
	}

	token, expiresAt, err := middleware.NewToken(s.jwtSecret, user.ID, user.Email, user.IsExpert, s.jwtTTL)
	if err != nil {
		return nil, apperror.Internal("로그인 처리 중 오류가 발생했습니다.", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User: dto.SessionUser{
			ID:              user.ID,
			Email:           user.Email,
			Nickname:        user.Nickname,
			IsExpert:        user.IsExpert,
			ProfileImageURL: user.ProfileImageURL,
		},
	}, nil
}
