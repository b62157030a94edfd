package models

import (
	"time"

	"gorm.io/gorm"
)

// Message 表示對話中的一則訊息。
// 訊息建立後內容不可修改；唯一的狀態變化是收件者讀取時的已讀標記，
// 以及發送者的硬刪除。
type Message struct {
	gorm.Model
	ConversationID uint       `gorm:"index;not null" json:"conversationId"`
	SenderID       uint       `gorm:"not null" json:"senderId"`
	ReceiverID     uint       `gorm:"index;not null" json:"receiverId"`
	Sender         User       `gorm:"foreignKey:SenderID" json:"sender"`
	Receiver       User       `gorm:"foreignKey:ReceiverID" json:"receiver"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	IsRead         bool       `gorm:"not null;default:false" json:"isRead"`
	ReadAt         *time.Time `json:"readAt,omitempty"` // 只在轉為已讀時設置一次
}
