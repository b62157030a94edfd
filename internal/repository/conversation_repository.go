package repository

import (
	"time"

	"gorm.io/gorm"

	"roommate_finder/internal/models"
)

type ConversationRepository interface {
	Create(conversation *models.Conversation) error
	FindByID(id uint) (*models.Conversation, error)
	FindByPair(userA, userB uint) (*models.Conversation, error)
	FindForUser(userID uint) ([]models.Conversation, error)
	UpdateSnapshot(id uint, lastMessage string, at time.Time) error
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

func (r *conversationRepository) FindByID(id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.First(&conversation, id).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindByPair 依正規化後的參與者對查詢對話。呼叫端不需要在意方向，
// 這裡會先把 ID 排序成儲存形式再比對。
func (r *conversationRepository) FindByPair(userA, userB uint) (*models.Conversation, error) {
	low, high := models.NormalizePair(userA, userB)
	var conversation models.Conversation
	err := r.db.Where("user_a_id = ? AND user_b_id = ?", low, high).First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindForUser 查詢某個用戶參與的所有對話，依最新活動排序
func (r *conversationRepository) FindForUser(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&conversations).Error
	return conversations, err
}

// UpdateSnapshot 更新對話上冗餘儲存的最新訊息快照。
// 採 last-write-wins，不做並發順序保證（見訊息服務的說明）。
func (r *conversationRepository) UpdateSnapshot(id uint, lastMessage string, at time.Time) error {
	return r.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_message":    lastMessage,
			"last_message_at": at,
		}).Error
}
