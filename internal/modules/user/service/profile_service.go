package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/guard"
	"cslab.kr/securityhub/internal/modules/user/dto"
	"cslab.kr/securityhub/internal/modules/user/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"cslab.kr/securityhub/pkg/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxProfileImageSize = 5 * 1024 * 1024

type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint, email string, req dto.UpdateProfileRequest) error
	ChangePassword(ctx context.Context, userID uint, email string, req dto.ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, userID uint, email string) error
	UploadProfileImage(ctx context.Context, userID uint, email string, r io.Reader, fileName, contentType string, size int64) (string, error)
	DeleteProfileImage(ctx context.Context, userID uint, email string) error
}

type profileService struct {
	repo         repository.UserRepository
	imageStorage storage.ImageStorage
	demoAccounts *guard.DemoAccounts
}

func NewProfileService(repo repository.UserRepository, imageStorage storage.ImageStorage, demoAccounts *guard.DemoAccounts) ProfileService {
	return &profileService{
		repo:         repo,
		imageStorage: imageStorage,
		demoAccounts: demoAccounts,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("사용자를 찾을 수 없습니다.")
		}
		return nil, apperror.Internal("사용자 정보 조회 중 오류가 발생했습니다.", err)
	}
	return user, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uint, email string, req dto.UpdateProfileRequest) error {
	if s.demoAccounts.Contains(email) && (req.Nickname != "" || req.ProfileImageURL != nil) {
		return apperror.Forbidden("데모 계정은 닉네임 및 프로필 이미지를 변경할 수 없습니다.")
	}

	fields := map[string]interface{}{}
	if req.Nickname != "" {
		fields["nickname"] = req.Nickname
	}
	if req.ProfileImageURL != nil {
		fields["profile_image_url"] = *req.ProfileImageURL
	}
	if req.ExpertField != nil {
		fields["expert_field"] = *req.ExpertField
	}
	if req.CareerInfo != nil {
		fields["career_info"] = *req.CareerInfo
	}

	if len(fields) == 0 {
		return apperror.BadRequest("수정할 내용이 없습니다.")
	}

	if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
		return apperror.Internal("프로필 수정 중 오류가 발생했습니다.", err)
	}
	return nil
}

func (s *profileService) ChangePassword(ctx context.Context, userID uint, email string, req dto.ChangePasswordRequest) error {
	if s.demoAccounts.Contains(email) {
		return apperror.Forbidden("데모 계정은 비밀번호를 변경할 수 없습니다.")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperror.BadRequest("현재 비밀번호와 새 비밀번호를 입력해주세요.")
	}
	if len(req.NewPassword) < 8 {
		return apperror.BadRequest("새 비밀번호는 최소 8자 이상이어야 합니다.")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("사용자를 찾을 수 없습니다.")
		}
		return apperror.Internal("비밀번호 변경 중 오류가 발생했습니다.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return apperror.Unauthorized("현재 비밀번호가 일치하지 않습니다.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal("비밀번호 변경 중 오류가 발생했습니다.", err)
	}

	if err := s.repo.UpdateFields(ctx, userID, map[string]interface{}{"password": string(hashed)}); err != nil {
		return apperror.Internal("비밀번호 변경 중 오류가 발생했습니다.", err)
	}
	return nil
}

// DeleteAccount is a soft delete: the row stays, status flips to withdrawn.
func (s *profileService) DeleteAccount(ctx context.Context, userID uint, email string) error {
	if s.demoAccounts.Contains(email) {
		return apperror.Forbidden("데모 계정은 탈퇴할 수 없습니다.")
	}

	if err := s.repo.Withdraw(ctx, userID); err != nil {
		return apperror.Internal("회원 탈퇴 처리 중 오류가 발생했습니다.", err)
	}
	return nil
}

func (s *profileService) UploadProfileImage(ctx context.Context, userID uint, email string, r io.Reader, fileName, contentType string, size int64) (string, error) {
	if s.demoAccounts.Contains(email) {
		return "", apperror.Forbidden("데모 계정은 프로필 이미지를 변경할 수 없습니다.")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperror.BadRequest("이미지 파일만 업로드 가능합니다.")
	}
	if size > maxProfileImageSize {
		return "", apperror.BadRequest("파일 크기는 5MB 이하여야 합니다.")
	}

	imageURL, err := s.imageStorage.UploadImage(ctx, r, "profile", fileName)
	if err != nil {
		return "", apperror.Internal("프로필 이미지 업로드 중 오류가 발생했습니다.", err)
	}

	if err := s.repo.UpdateFields(ctx, userID, map[string]interface{}{"profile_image_url": imageURL}); err != nil {
		return "", apperror.Internal("프로필 이미지 업로드 중 오류가 발생했습니다.", err)
	}
	return imageURL, nil
}

func (s *profileService) DeleteProfileImage(ctx context.Context, userID uint, email string) error {
	if s.demoAccounts.Contains(email) {
		return apperror.Forbidden("데모 계정은 프로필 이미지를 변경할 수 없습니다.")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("사용자를 찾을 수 없습니다.")
		}
		return apperror.Internal("프로필 이미지 삭제 중 오류가 발생했습니다.", err)
	}

	if err := s.repo.UpdateFields(ctx, userID, map[string]interface{}{"profile_image_url": nil}); err != nil {
		return apperror.Internal("프로필 이미지 삭제 중 오류가 발생했습니다.", err)
	}

	// Best effort: the DB column is already cleared.
	if user.ProfileImageURL != nil {
		if err := s.imageStorage.DeleteImage(ctx, *user.ProfileImageURL); err != nil {
			log.Printf("failed to delete profile image from storage: %v", err)
		}
	}
	return nil
}
