package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"roommate_finder/internal/models"
	"roommate_finder/internal/repository"
)

type ConversationService struct {
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
	listingRepo      repository.ListingRepository
}

func NewConversationService(
	conversationRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
) *ConversationService {
	return &ConversationService{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		listingRepo:      listingRepo,
	}
}

// Resolve 找出（或建立）兩個用戶之間唯一的對話。
// 參與者對不分方向：(A,B) 和 (B,A) 解析到同一筆對話。
// 只有在找不到時才會寫入新對話；重複呼叫是冪等的。
// 兩邊同時首次聯絡時，落敗的一方會撞到唯一索引，改為重查既有的那筆。
func (s *ConversationService) Resolve(userA, userB uint, listingID *uint) (*models.Conversation, error) {
	if userA == userB {
		return nil, fmt.Errorf("%w：不能與自己建立對話", ErrInvalidOperation)
	}

	for _, id := range []uint{userA, userB} {
		if _, err := s.userRepo.FindByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w：用戶不存在", ErrNotFound)
			}
			return nil, err
		}
	}

	conversation, err := s.conversationRepo.FindByPair(userA, userB)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	low, high := models.NormalizePair(userA, userB)
	conversation = &models.Conversation{
		UserAID:       low,
		UserBID:       high,
		ListingID:     listingID,
		LastMessageAt: time.Now(),
	}
	if createErr := s.conversationRepo.Create(conversation); createErr != nil {
		// 並發的首次聯絡：另一個請求剛建立了同一對的對話
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return s.conversationRepo.FindByPair(userA, userB)
		}
		if existing, findErr := s.conversationRepo.FindByPair(userA, userB); findErr == nil {
			return existing, nil
		}
		return nil, createErr
	}

	return conversation, nil
}

// ConversationSummary 是對話列表的一列：對話本身加上
// 對方的公開資料與起源刊登的摘要，讓前端不用逐筆再查。
type ConversationSummary struct {
	ID            uint            `json:"id"`
	Participant   *models.User    `json:"participant"`
	LastMessage   string          `json:"lastMessage"`
	LastMessageAt time.Time       `json:"lastMessageAt"`
	Listing       *models.Listing `json:"listing,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListForUser 取得某個用戶參與的所有對話，最新活動在前
func (s *ConversationService) ListForUser(userID uint) ([]ConversationSummary, error) {
	conversations, err := s.conversationRepo.FindForUser(userID)
	if err != nil {
		return nil, err
	}

	// 批次撈出所有對方用戶與起源刊登
	otherIDs := make([]uint, 0, len(conversations))
	listingIDs := make([]uint, 0, len(conversations))
	for i := range conversations {
		otherIDs = append(otherIDs, conversations[i].OtherParticipant(userID))
		if conversations[i].ListingID != nil {
			listingIDs = append(listingIDs, *conversations[i].ListingID)
		}
	}

	users, err := s.userRepo.FindByIDs(otherIDs)
	if err != nil {
		return nil, err
	}
	userByID := make(map[uint]*models.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	listings, err := s.listingRepo.FindByIDs(listingIDs)
	if err != nil {
		return nil, err
	}
	listingByID := make(map[uint]*models.Listing, len(listings))
	for i := range listings {
		listingByID[listings[i].ID] = &listings[i]
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for i := range conversations {
		c := &conversations[i]
		summary := ConversationSummary{
			ID:            c.ID,
			Participant:   userByID[c.OtherParticipant(userID)],
			LastMessage:   c.LastMessage,
			LastMessageAt: c.LastMessageAt,
			CreatedAt:     c.CreatedAt,
		}
		if c.ListingID != nil {
			summary.Listing = listingByID[*c.ListingID]
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// Get 依 ID 取得對話
func (s *ConversationService) Get(id uint) (*models.Conversation, error) {
	conversation, err := s.conversationRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w：對話不存在", ErrNotFound)
	}
	return conversation, err
}
