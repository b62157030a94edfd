package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"roommate_finder/internal/models"
	"roommate_finder/internal/repository"
)

type MessageService struct {
	messageRepo      repository.MessageRepository
	conversationRepo repository.ConversationRepository
	resolver         *ConversationService
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	conversationRepo repository.ConversationRepository,
	resolver *ConversationService,
) *MessageService {
	return &MessageService{
		messageRepo:      messageRepo,
		conversationRepo: conversationRepo,
		resolver:         resolver,
	}
}

// Send 發送一則訊息：先透過 resolver 找出（或建立）兩人的對話，
// 更新對話上的最新訊息快照，再寫入訊息本體。
// 快照更新與訊息寫入是兩筆獨立的寫入，中間失敗時不回滾，
// 可能留下快照已更新但訊息不存在的短暫不一致，屬已接受的行為。
func (s *MessageService) Send(senderID, receiverID uint, content string, listingID *uint) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w：訊息內容不可為空", ErrValidation)
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("%w：不能發送訊息給自己", ErrInvalidOperation)
	}

	conversation, err := s.resolver.Resolve(senderID, receiverID, listingID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.conversationRepo.UpdateSnapshot(conversation.ID, content, now); err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		IsRead:         false,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	// 回傳帶出寄件者與收件者資料的完整訊息
	return s.messageRepo.FindByID(message.ID)
}

// List 取得對話中的一頁訊息，呼叫者必須是參與者。
// 分頁以最近程度為基準：第 1 頁是最新的 pageSize 則，
// 第 2 頁是更早的訊息；但每一頁內部反轉成舊到新回傳。
// 讀取的副作用：對話中寄給呼叫者的未讀訊息全部標記為已讀，
// 已讀回執是讀取串的隱含結果，不是獨立的操作。
func (s *MessageService) List(conversationID, callerID uint, page, pageSize int) ([]models.Message, int64, error) {
	conversation, err := s.conversationRepo.FindByID(conversationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, fmt.Errorf("%w：對話不存在", ErrNotFound)
	}
	if err != nil {
		return nil, 0, err
	}
	if !conversation.HasParticipant(callerID) {
		return nil, 0, fmt.Errorf("%w：你不是這個對話的參與者", ErrForbidden)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	offset := (page - 1) * pageSize
	messages, err := s.messageRepo.FindPage(conversationID, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.messageRepo.CountByConversation(conversationID)
	if err != nil {
		return nil, 0, err
	}

	if err := s.messageRepo.MarkRead(conversationID, callerID, time.Now()); err != nil {
		return nil, 0, err
	}

	// 儲存順序是新到舊，反轉成舊到新再回傳
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, total, nil
}

// UnreadCount 計算用戶在所有對話中的未讀訊息總數
func (s *MessageService) UnreadCount(userID uint) (int64, error) {
	return s.messageRepo.CountUnread(userID)
}

// Delete 硬刪除一則訊息，僅限原寄件者。
// 對話上的最新訊息快照不會重算，刪掉最後一則訊息後
// 快照會停留在已刪除的內容上，這是刻意保留的已知行為。
func (s *MessageService) Delete(messageID, callerID uint) error {
	message, err := s.messageRepo.FindByID(messageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w：訊息不存在", ErrNotFound)
	}
	if err != nil {
		return err
	}
	if message.SenderID != callerID {
		return fmt.Errorf("%w：只能刪除自己發送的訊息", ErrForbidden)
	}

	return s.messageRepo.Delete(messageID)
}
