package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation 表示兩個用戶之間唯一的對話串。
// 參與者不分方向：UserAID 恆為較小的用戶 ID，UserBID 為較大的，
// 搭配 (UserAID, UserBID) 的唯一索引，同一對用戶在儲存層最多只會有一筆對話，
// 即使兩邊同時發出第一則訊息也不會產生重複的對話。
type Conversation struct {
	gorm.Model
	UserAID       uint      `gorm:"uniqueIndex:idx_conversation_pair;not null" json:"userAId"`
	UserBID       uint      `gorm:"uniqueIndex:idx_conversation_pair;not null" json:"userBId"`
	ListingID     *uint     `json:"listingId,omitempty"` // 對話起源的刊登，可為空
	LastMessage   string    `json:"lastMessage"`         // 最新訊息的快取副本，供列表顯示
	LastMessageAt time.Time `gorm:"index" json:"lastMessageAt"`
}

// NormalizePair 將一對用戶 ID 排序成儲存用的正規形式（小的在前）
func NormalizePair(userA, userB uint) (uint, uint) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

// HasParticipant 回報某個用戶是否為這個對話的參與者
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// OtherParticipant 回傳對話中另一位參與者的 ID
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}
