// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 目前只有 JWT 身份驗證：解析 Authorization 頭裡的 Bearer token，
// 驗證通過後把用戶 ID 放進請求上下文，供後續的處理器使用。
package middleware
