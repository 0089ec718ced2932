package service

import (
	"context"
	"encoding/json"
	"fmt"

	"cslab.kr/securityhub/internal/entity"
	notifRepo "cslab.kr/securityhub/internal/modules/notification/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

const (
	listLimit          = 50
	contentTruncateLen = 100
)

type NotificationService interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
	List(ctx context.Context, userID uint) ([]entity.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID uint) error
	MarkAllAsRead(ctx context.Context, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// TruncateContent caps notification bodies at 100 characters with a trailing
// ellipsis marker.
func TruncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= contentTruncateLen {
		return content
	}
	return string(runes[:contentTruncateLen]) + "..."
}

// Channel is the redis pub/sub channel a user's live notifications go to.
func Channel(userID uint) string {
	return fmt.Sprintf("user_notifications:%d", userID)
}

func (s *notificationService) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	notification.Content = TruncateContent(notification.Content)

	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	// Publish for the websocket bridge if redis is available.
	if s.redisClient != nil {
		if payload, err := json.Marshal(notification); err == nil {
			s.redisClient.Publish(ctx, Channel(notification.UserID), payload)
		}
	}

	return nil
}

func (s *notificationService) List(ctx context.Context, userID uint) ([]entity.Notification, int64, error) {
	notifications, err := s.repo.GetByUserID(ctx, userID, listLimit)
	if err != nil {
		return nil, 0, apperror.Internal("알림을 불러오는데 실패했습니다.", err)
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, apperror.Internal("알림을 불러오는데 실패했습니다.", err)
	}

	return notifications, unread, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID uint) error {
	if err := s.repo.MarkAsRead(ctx, id, userID); err != nil {
		return apperror.Internal("알림 처리에 실패했습니다.", err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uint) error {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return apperror.Internal("알림 처리에 실패했습니다.", err)
	}
	return nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperror.Internal("알림을 불러오는데 실패했습니다.", err)
	}
	return count, nil
}
