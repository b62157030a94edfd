package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roommate_finder/internal/models"
)

// ListingFilter 表示刊登搜尋的條件集合。
// 零值代表不限制；布林旗標只有 true 會被當成條件（false 表示不過濾）。
type ListingFilter struct {
	City       string
	Type       models.ListingType
	RoomType   models.RoomType
	MinRent    *float64
	MaxRent    *float64
	Gender     string
	Smoking    bool
	Pets       bool
	Vegetarian bool
	Wifi       bool
	AC         bool
	Parking    bool
	Furnished  bool
}

type ListingRepository interface {
	Create(listing *models.Listing) error
	FindByID(id uint) (*models.Listing, error)
	FindByIDs(ids []uint) ([]models.Listing, error)
	FindByUser(userID uint) ([]models.Listing, error)
	Search(filter ListingFilter, offset, limit int) ([]models.Listing, int64, error)
	Update(listing *models.Listing) error
	Delete(id uint) error
	IncrementViews(id uint) (int64, error)
	AddInterest(listingID, userID uint) (bool, error)
	RemoveInterest(listingID, userID uint) error
	CountInterested(listingID uint) (int64, error)
	InterestedUserIDs(listingID uint) ([]uint, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

func (r *listingRepository) FindByID(id uint) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.Preload("User").First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) FindByIDs(ids []uint) ([]models.Listing, error) {
	var listings []models.Listing
	if len(ids) == 0 {
		return listings, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&listings).Error
	return listings, err
}

// FindByUser 查詢某個用戶自己的所有刊登（不限狀態），新的在前
func (r *listingRepository) FindByUser(userID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&listings).Error
	return listings, err
}

// Search 依條件查詢 Active 狀態的刊登，回傳當頁結果與總筆數。
// 所有條件以 AND 組合；城市是不分大小寫的子字串比對。
func (r *listingRepository) Search(filter ListingFilter, offset, limit int) ([]models.Listing, int64, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []models.Listing
	err := r.filtered(filter).Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

// filtered 把搜尋條件展開成查詢。每次呼叫都建一條新的鏈，
// 讓計數和取頁不共用同一個 statement。
func (r *listingRepository) filtered(filter ListingFilter) *gorm.DB {
	query := r.db.Model(&models.Listing{}).Where("status = ?", models.ListingStatusActive)

	if filter.City != "" {
		query = query.Where("LOWER(location_city) LIKE ?", "%"+strings.ToLower(filter.City)+"%")
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.RoomType != "" {
		query = query.Where("room_type = ?", filter.RoomType)
	}
	if filter.MinRent != nil {
		query = query.Where("rent >= ?", *filter.MinRent)
	}
	if filter.MaxRent != nil {
		query = query.Where("rent <= ?", *filter.MaxRent)
	}
	if filter.Gender != "" {
		query = query.Where("pref_gender = ?", filter.Gender)
	}
	if filter.Smoking {
		query = query.Where("pref_smoking = ?", true)
	}
	if filter.Pets {
		query = query.Where("pref_pets = ?", true)
	}
	if filter.Vegetarian {
		query = query.Where("pref_vegetarian = ?", true)
	}
	if filter.Wifi {
		query = query.Where("amenity_wifi = ?", true)
	}
	if filter.AC {
		query = query.Where("amenity_ac = ?", true)
	}
	if filter.Parking {
		query = query.Where("amenity_parking = ?", true)
	}
	if filter.Furnished {
		query = query.Where("amenity_furnished = ?", true)
	}

	return query
}

func (r *listingRepository) Update(listing *models.Listing) error {
	return r.db.Save(listing).Error
}

func (r *listingRepository) Delete(id uint) error {
	if err := r.db.Where("listing_id = ?", id).Delete(&models.ListingInterest{}).Error; err != nil {
		return err
	}
	return r.db.Unscoped().Delete(&models.Listing{}, id).Error
}

// IncrementViews 以 views = views + 1 的原子更新累加瀏覽次數，
// 避免讀取再寫回造成的計數遺失。回傳受影響的筆數。
func (r *listingRepository) IncrementViews(id uint) (int64, error) {
	result := r.db.Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	return result.RowsAffected, result.Error
}

// AddInterest 嘗試把用戶加入興趣集合。
// 靠 (listing_id, user_id) 唯一索引加上 ON CONFLICT DO NOTHING，
// 同一用戶重複加入不會產生第二筆，也不需要先讀再寫。
// 回傳是否真的新增了一筆。
func (r *listingRepository) AddInterest(listingID, userID uint) (bool, error) {
	interest := models.ListingInterest{ListingID: listingID, UserID: userID}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&interest)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *listingRepository) RemoveInterest(listingID, userID uint) error {
	return r.db.Where("listing_id = ? AND user_id = ?", listingID, userID).
		Delete(&models.ListingInterest{}).Error
}

func (r *listingRepository) CountInterested(listingID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ListingInterest{}).
		Where("listing_id = ?", listingID).
		Count(&count).Error
	return count, err
}

func (r *listingRepository) InterestedUserIDs(listingID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.ListingInterest{}).
		Where("listing_id = ?", listingID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
