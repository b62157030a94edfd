package repository

import (
	"time"

	"gorm.io/gorm"

	"roommate_finder/internal/models"
)

type MessageRepository interface {
	Create(message *models.Message) error
	FindByID(id uint) (*models.Message, error)
	FindPage(conversationID uint, offset, limit int) ([]models.Message, error)
	CountByConversation(conversationID uint) (int64, error)
	MarkRead(conversationID, receiverID uint, at time.Time) error
	CountUnread(receiverID uint) (int64, error)
	Delete(id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) FindByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").Preload("Receiver").First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// FindPage 以新到舊的儲存順序取出一頁訊息。
// 分頁邊界以「最近程度」定義：offset 0 是最新的一頁。
// 呼叫端（訊息服務）會把整頁反轉成舊到新再回傳。
func (r *messageRepository) FindPage(conversationID uint, offset, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) CountByConversation(conversationID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	return count, err
}

// MarkRead 把對話中寄給某收件者的所有未讀訊息一次標記為已讀，
// 並蓋上已讀時間。已讀的訊息不會被重複更新。
func (r *messageRepository) MarkRead(conversationID, receiverID uint, at time.Time) error {
	return r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, receiverID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": at,
		}).Error
}

// CountUnread 計算某用戶在所有對話中未讀訊息的總數
func (r *messageRepository) CountUnread(receiverID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

// Delete 硬刪除訊息，不留墓碑
func (r *messageRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Message{}, id).Error
}
