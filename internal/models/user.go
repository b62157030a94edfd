package models

import (
	"gorm.io/gorm"
)

// User 表示系統中的用戶
type User struct {
	gorm.Model                 // 內嵌 gorm.Model，提供 ID、CreatedAt、UpdatedAt 和 DeletedAt 字段
	Name        string         `gorm:"not null" json:"name"`              // 顯示名稱
	Email       string         `gorm:"uniqueIndex;not null" json:"email"` // 電子郵件，必須唯一
	Password    string         `gorm:"not null" json:"-"`                 // 密碼雜湊，json 序列化時會被忽略
	Phone       string         `gorm:"not null" json:"phone"`             // 10 位數電話號碼
	Avatar      string         `json:"avatar"`                            // 頭像 URL
	Age         int            `json:"age"`
	Gender      Gender         `gorm:"not null" json:"gender"`
	Occupation  string         `json:"occupation"`
	Bio         string         `gorm:"type:text" json:"bio"`
	Preferences RoomPreference `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"` // 找房偏好設定
}

// Gender 定義性別的類型
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// RoomPreference 表示用戶尋找房間或室友時的偏好
type RoomPreference struct {
	Location   string  `json:"location"`  // 希望的地區
	BudgetMin  float64 `json:"budgetMin"` // 預算下限
	BudgetMax  float64 `json:"budgetMax"` // 預算上限
	RoomType   string  `json:"roomType"`  // Private、Shared 或 Any
	Smoking    bool    `json:"smoking"`
	Pets       bool    `json:"pets"`
	Vegetarian bool    `json:"vegetarian"`
}

// DefaultAvatar 新用戶的預設頭像
const DefaultAvatar = "https://via.placeholder.com/150"
