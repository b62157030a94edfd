package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roommate_finder/internal/service"
)

// MessageHandler 處理站內訊息相關的請求
type MessageHandler struct {
	messageService      *service.MessageService
	conversationService *service.ConversationService
}

// NewMessageHandler 創建一個新的 MessageHandler 實例
func NewMessageHandler(messageService *service.MessageService, conversationService *service.ConversationService) *MessageHandler {
	return &MessageHandler{
		messageService:      messageService,
		conversationService: conversationService,
	}
}

// SendInput 定義發送訊息請求的結構
type SendInput struct {
	ReceiverID uint   `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
	ListingID  *uint  `json:"listingId"`
}

// Send 發送訊息給另一個用戶。
// 兩人之間的對話不存在時會自動建立，存在則沿用同一串。
func (h *MessageHandler) Send(c *gin.Context) {
	var input SendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	message, err := h.messageService.Send(currentUserID(c), input.ReceiverID, input.Content, input.ListingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "訊息發送成功",
		"data":    message,
	})
}

// Conversations 回傳目前用戶參與的所有對話，最新活動在前
func (h *MessageHandler) Conversations(c *gin.Context) {
	conversations, err := h.conversationService.ListForUser(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"count":         len(conversations),
		"conversations": conversations,
	})
}

// Messages 回傳對話中的一頁訊息（頁內由舊到新）。
// 讀取的同時，寄給目前用戶的未讀訊息會被標記為已讀。
func (h *MessageHandler) Messages(c *gin.Context) {
	conversationID, err := paramID(c, "conversationId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "無效的對話 ID"})
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 50)

	messages, total, err := h.messageService.List(conversationID, currentUserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(messages),
		"total":    total,
		"page":     page,
		"pages":    pageCount(total, limit),
		"messages": messages,
	})
}

// UnreadCount 回傳目前用戶所有對話的未讀訊息總數
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.messageService.UnreadCount(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "unreadCount": count})
}

// Delete 刪除一則訊息，僅限原寄件者
func (h *MessageHandler) Delete(c *gin.Context) {
	messageID, err := paramID(c, "messageId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "無效的訊息 ID"})
		return
	}

	if err := h.messageService.Delete(messageID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "訊息已刪除"})
}
