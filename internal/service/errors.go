package service

import "errors"

// 服務層的錯誤分類。handler 用 errors.Is 辨認類別後轉成對應的
// HTTP 狀態碼；包裝後的錯誤文字會原樣放進回應的 message 欄位。
var (
	ErrNotFound         = errors.New("資源不存在")
	ErrForbidden        = errors.New("沒有權限執行此操作")
	ErrValidation       = errors.New("驗證失敗")
	ErrInvalidOperation = errors.New("無效的操作")
)
