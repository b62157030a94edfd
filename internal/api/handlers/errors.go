package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roommate_finder/internal/service"
)

// respondError 把服務層的錯誤分類轉成對應的 HTTP 狀態碼，
// 錯誤文字原樣放進 message 欄位
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidOperation):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}

// currentUserID 從 gin 上下文取出中間件放入的已驗證用戶 ID
func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	return userID.(uint)
}
