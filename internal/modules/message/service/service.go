package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/modules/message/dto"
	"cslab.kr/securityhub/internal/modules/message/repository"
	notifService "cslab.kr/securityhub/internal/modules/notification/service"
	userRepo "cslab.kr/securityhub/internal/modules/user/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"gorm.io/gorm"
)

type MessageService interface {
	ListThreads(ctx context.Context, userID uint) ([]dto.ThreadItem, error)
	GetOrCreateThread(ctx context.Context, userID, expertID uint) (uint, error)
	Messages(ctx context.Context, threadID, userID uint) ([]dto.MessageItem, error)
	Send(ctx context.Context, threadID, userID uint, req dto.SendMessageRequest) (*dto.MessageItem, error)
}

type messageService struct {
	messageRepo  repository.MessageRepository
	userRepo     userRepo.UserRepository
	notification notifService.NotificationService
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo userRepo.UserRepository, notification notifService.NotificationService) MessageService {
	return &messageService{
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		notification: notification,
	}
}

func (s *messageService) ListThreads(ctx context.Context, userID uint) ([]dto.ThreadItem, error) {
	threads, err := s.messageRepo.ThreadsByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("메시지 목록을 불러오는데 실패했습니다.", err)
	}

	items := make([]dto.ThreadItem, 0, len(threads))
	for i := range threads {
		t := &threads[i]

		counterpartID := t.ExpertID
		if t.UserID != userID {
			counterpartID = t.UserID
		}

		item := dto.ThreadItem{
			ID:          t.ID,
			UserID:      t.UserID,
			ExpertID:    t.ExpertID,
			LastMessage: t.LastMessage,
			UnreadCount: t.UnreadCount,
			UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
			TimeAgo:     relativeTime(t.UpdatedAt),
		}

		if counterpart, err := s.userRepo.FindByID(ctx, counterpartID); err == nil {
			item.ExpertName = counterpart.Nickname
			item.ExpertAvatar = counterpart.ProfileImageURL
		}
		if specialty, err := s.messageRepo.SpecialtyByUserID(ctx, t.ExpertID); err == nil {
			item.Specialty = specialty
		}

		items = append(items, item)
	}
	return items, nil
}

func (s *messageService) GetOrCreateThread(ctx context.Context, userID, expertID uint) (uint, error) {
	if expertID == 0 {
		return 0, apperror.BadRequest("필수 정보가 누락되었습니다.")
	}

	thread, err := s.messageRepo.FindThreadByPair(ctx, userID, expertID)
	if err == nil {
		return thread.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperror.Internal("메시지 스레드를 생성하는데 실패했습니다.", err)
	}

	thread = &entity.MessageThread{
		UserID:   userID,
		ExpertID: expertID,
	}
	if err := s.messageRepo.CreateThread(ctx, thread); err != nil {
		return 0, apperror.Internal("메시지 스레드를 생성하는데 실패했습니다.", err)
	}
	return thread.ID, nil
}

func (s *messageService) Messages(ctx context.Context, threadID, userID uint) ([]dto.MessageItem, error) {
	thread, err := s.messageRepo.FindThreadForParticipant(ctx, threadID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Forbidden("접근 권한이 없습니다.")
		}
		return nil, apperror.Internal("메시지를 불러오는데 실패했습니다.", err)
	}

	messages, err := s.messageRepo.MessagesByThreadID(ctx, threadID)
	if err != nil {
		return nil, apperror.Internal("메시지를 불러오는데 실패했습니다.", err)
	}

	counterpartID := thread.ExpertID
	if thread.UserID != userID {
		counterpartID = thread.UserID
	}
	if err := s.messageRepo.MarkThreadRead(ctx, threadID, counterpartID); err != nil {
		log.Printf("failed to mark thread %d read: %v", threadID, err)
	}

	items := make([]dto.MessageItem, 0, len(messages))
	for i := range messages {
		items = append(items, toMessageItem(&messages[i], userID))
	}
	return items, nil
}

func (s *messageService) Send(ctx context.Context, threadID, userID uint, req dto.SendMessageRequest) (*dto.MessageItem, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" && req.FileURL == nil {
		return nil, apperror.BadRequest("메시지 또는 파일을 입력해주세요.")
	}

	thread, err := s.messageRepo.FindThreadForParticipant(ctx, threadID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Forbidden("접근 권한이 없습니다.")
		}
		return nil, apperror.Internal("메시지 전송에 실패했습니다.", err)
	}

	message := &entity.Message{
		ThreadID:    threadID,
		SenderID:    userID,
		MessageText: text,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		FileType:    req.FileType,
	}
	if err := s.messageRepo.CreateMessage(ctx, message, text); err != nil {
		return nil, apperror.Internal("메시지 전송에 실패했습니다.", err)
	}

	s.notifyCounterpart(ctx, thread, userID, text)

	item := toMessageItem(message, userID)
	return &item, nil
}

func (s *messageService) notifyCounterpart(ctx context.Context, thread *entity.MessageThread, senderID uint, text string) {
	recipientID := thread.ExpertID
	if thread.UserID != senderID {
		recipientID = thread.UserID
	}

	senderName := "알 수 없음"
	if sender, err := s.userRepo.FindByID(ctx, senderID); err == nil {
		senderName = sender.Nickname
	}

	err := s.notification.CreateNotification(ctx, &entity.Notification{
		UserID:  recipientID,
		Type:    entity.NotificationTypeMessage,
		Title:   fmt.Sprintf("%s님이 메시지를 보냈습니다", senderName),
		Content: text,
		Link:    "/messages",
	})
	if err != nil {
		log.Printf("failed to create message notification for thread %d: %v", thread.ID, err)
	}
}

func toMessageItem(m *entity.Message, viewerID uint) dto.MessageItem {
	senderType := "other"
	if m.SenderID == viewerID {
		senderType = "me"
	}
	return dto.MessageItem{
		ID:            m.ID,
		MessageText:   m.MessageText,
		SenderID:      m.SenderID,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		IsRead:        m.IsRead,
		FileURL:       m.FileURL,
		FileName:      m.FileName,
		FileSize:      m.FileSize,
		FileType:      m.FileType,
		TimeFormatted: formatMessageTime(m.CreatedAt),
		SenderType:    senderType,
	}
}

// relativeTime renders thread recency the way the message list shows it.
func relativeTime(t time.Time) string {
	elapsed := time.Since(t)
	switch {
	case elapsed < time.Hour:
		return fmt.Sprintf("%d분 전", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%d시간 전", int(elapsed.Hours()))
	case isYesterday(t):
		return "어제"
	default:
		return t.Format("01/02")
	}
}

func formatMessageTime(t time.Time) string {
	clock := t.Format("PM 3:04")
	now := time.Now()
	switch {
	case sameDay(t, now):
		return clock
	case isYesterday(t):
		return "어제 " + clock
	default:
		return t.Format("01/02 ") + clock
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func isYesterday(t time.Time) bool {
	return sameDay(t, time.Now().AddDate(0, 0, -1))
}
