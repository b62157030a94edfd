package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
)

type Claims struct {
	UserID uint `json:"user_id"`
	jwt.StandardClaims
}

// TokenMaker 負責簽發與驗證 JWT token。
// 密鑰與有效期限來自配置，在程式啟動時注入。
type TokenMaker struct {
	secret []byte
	expire time.Duration
}

func NewTokenMaker(secret string, expireHours int) *TokenMaker {
	return &TokenMaker{
		secret: []byte(secret),
		expire: time.Duration(expireHours) * time.Hour,
	}
}

// Generate 生成一個新的 JWT token
func (m *TokenMaker) Generate(userID uint) (string, error) {
	nowTime := time.Now()
	expireTime := nowTime.Add(m.expire)

	claims := Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expireTime.Unix(),
			IssuedAt:  nowTime.Unix(),
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenClaims.SignedString(m.secret)
}

// Parse 解析和驗證 JWT token
func (m *TokenMaker) Parse(token string) (*Claims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})

	if tokenClaims != nil {
		if claims, ok := tokenClaims.Claims.(*Claims); ok && tokenClaims.Valid {
			return claims, nil
		}
	}

	return nil, err
}
