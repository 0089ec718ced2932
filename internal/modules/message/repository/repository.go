package repository

import (
	"context"
	"errors"
	"time"

	"cslab.kr/securityhub/internal/entity"
	"gorm.io/gorm"
)

type MessageRepository interface {
	ThreadsByUserID(ctx context.Context, userID uint) ([]entity.MessageThread, error)
	FindThreadForParticipant(ctx context.Context, threadID, userID uint) (*entity.MessageThread, error)
	FindThreadByPair(ctx context.Context, userID, expertID uint) (*entity.MessageThread, error)
	CreateThread(ctx context.Context, thread *entity.MessageThread) error
	MessagesByThreadID(ctx context.Context, threadID uint) ([]entity.Message, error)
	// MarkThreadRead flags the counterpart's messages read and zeroes the
	// thread's unread counter.
	MarkThreadRead(ctx context.Context, threadID, counterpartID uint) error
	// CreateMessage inserts the message and bumps the thread's last_message
	// in one transaction.
	CreateMessage(ctx context.Context, message *entity.Message, lastMessage string) error
	SpecialtyByUserID(ctx context.Context, userID uint) (*string, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) ThreadsByUserID(ctx context.Context, userID uint) ([]entity.MessageThread, error) {
	var threads []entity.MessageThread
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR expert_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&threads).Error
	return threads, err
}

func (r *messageRepository) FindThreadForParticipant(ctx context.Context, threadID, userID uint) (*entity.MessageThread, error) {
	var thread entity.MessageThread
	err := r.db.WithContext(ctx).
		Where("id = ? AND (user_id = ? OR expert_id = ?)", threadID, userID, userID).
		First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *messageRepository) FindThreadByPair(ctx context.Context, userID, expertID uint) (*entity.MessageThread, error) {
	var thread entity.MessageThread
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND expert_id = ?", userID, expertID).
		First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *messageRepository) CreateThread(ctx context.Context, thread *entity.MessageThread) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

func (r *messageRepository) MessagesByThreadID(ctx context.Context, threadID uint) ([]entity.Message, error) {
	var messages []entity.Message
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) MarkThreadRead(ctx context.Context, threadID, counterpartID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entity.Message{}).
			Where("thread_id = ? AND sender_id = ? AND is_read = ?", threadID, counterpartID, false).
			Update("is_read", true).Error
		if err != nil {
			return err
		}
		return tx.Model(&entity.MessageThread{}).
			Where("id = ?", threadID).
			Update("unread_count", 0).Error
	})
}

func (r *messageRepository) SpecialtyByUserID(ctx context.Context, userID uint) (*string, error) {
	var profile entity.ExpertProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile.Specialty, nil
}

func (r *messageRepository) CreateMessage(ctx context.Context, message *entity.Message, lastMessage string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&entity.MessageThread{}).
			Where("id = ?", message.ThreadID).
			Updates(map[string]interface{}{
				"last_message": lastMessage,
				"updated_at":   time.Now(),
			}).Error
	})
}
