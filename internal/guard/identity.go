package guard

import (
	"context"
	"errors"

	"cslab.kr/securityhub/internal/entity"
	userRepo "cslab.kr/securityhub/internal/modules/user/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"gorm.io/gorm"
)

// ResolveIdentity maps a request email to the matching active account. The
// 404 here is deliberately distinct from a 401: the request may carry a valid
// session that points at a withdrawn or renamed account.
func ResolveIdentity(ctx context.Context, repo userRepo.UserRepository, email string) (*entity.User, error) {
	if email == "" {
		return nil, apperror.BadRequest("필수 정보가 누락되었습니다.")
	}

	user, err := repo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("사용자를 찾을 수 없습니다.")
		}
		return nil, err
	}
	return user, nil
}
