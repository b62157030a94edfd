package models

import (
	"time"

	"gorm.io/gorm"
)

// Listing 表示一則找房/找室友的刊登
type Listing struct {
	gorm.Model
	UserID        uint               `gorm:"index;not null" json:"userId"` // 刊登者，建立後不可變更
	User          User               `gorm:"foreignKey:UserID" json:"user"`
	Title         string             `gorm:"not null" json:"title"`
	Description   string             `gorm:"type:text;not null" json:"description"`
	Type          ListingType        `gorm:"not null" json:"type"`
	RoomType      RoomType           `gorm:"not null" json:"roomType"`
	Rent          float64            `gorm:"not null" json:"rent"` // 每月租金，不可為負
	Location      Location           `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Amenities     Amenities          `gorm:"embedded;embeddedPrefix:amenity_" json:"amenities"`
	Preferences   ListingPreferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
	AvailableFrom time.Time          `json:"availableFrom"`
	Images        []string           `gorm:"serializer:json" json:"images"`
	ContactPhone  string             `gorm:"not null" json:"contactPhone"`
	Status        ListingStatus      `gorm:"not null;default:Active" json:"status"`
	Views         int64              `gorm:"not null;default:0" json:"views"` // 瀏覽次數，只增不減
}

// ListingType 定義刊登類別的類型
type ListingType string

const (
	ListingTypeRoomAvailable      ListingType = "Room Available"
	ListingTypeLookingForRoom     ListingType = "Looking for Room"
	ListingTypeLookingForRoommate ListingType = "Looking for Roommate"
)

// RoomType 定義房型的類型
type RoomType string

const (
	RoomTypePrivate   RoomType = "Private"
	RoomTypeShared    RoomType = "Shared"
	RoomTypeStudio    RoomType = "Studio"
	RoomTypeApartment RoomType = "Apartment"
)

// ListingStatus 定義刊登狀態的類型
type ListingStatus string

const (
	ListingStatusActive   ListingStatus = "Active"
	ListingStatusInactive ListingStatus = "Inactive"
	ListingStatusClosed   ListingStatus = "Closed"
)

// Location 表示刊登的地點資訊
type Location struct {
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Pincode   string   `json:"pincode"` // 6 位數郵遞區號
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Amenities 表示房源提供的設施
type Amenities struct {
	Wifi      bool `json:"wifi"`
	AC        bool `json:"ac"`
	Parking   bool `json:"parking"`
	Kitchen   bool `json:"kitchen"`
	Laundry   bool `json:"laundry"`
	Furnished bool `json:"furnished"`
}

// ListingPreferences 表示刊登者對室友的條件
type ListingPreferences struct {
	Gender     string `gorm:"default:Any" json:"gender"` // Male、Female 或 Any
	Smoking    bool   `json:"smoking"`
	Pets       bool   `json:"pets"`
	Vegetarian bool   `json:"vegetarian"`
}

// ListingInterest 表示某個用戶對某則刊登表達的興趣。
// (ListingID, UserID) 上的唯一索引保證同一用戶最多出現一次，
// 切換興趣因此是儲存層的原子集合操作，而不是讀取後改寫。
type ListingInterest struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ListingID uint      `gorm:"uniqueIndex:idx_listing_interest;not null" json:"listingId"`
	UserID    uint      `gorm:"uniqueIndex:idx_listing_interest;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
