package service

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"roommate_finder/internal/models"
	"roommate_finder/internal/repository"
)

var (
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
	phoneRe   = regexp.MustCompile(`^[0-9]{10}$`)
)

type ListingService struct {
	listingRepo repository.ListingRepository
}

func NewListingService(listingRepo repository.ListingRepository) *ListingService {
	return &ListingService{listingRepo: listingRepo}
}

// CreateListing 建立一則新刊登。擁有者一律取自呼叫者身份，
// 不信任請求內容裡的 userID。
func (s *ListingService) CreateListing(userID uint, listing *models.Listing) (*models.Listing, error) {
	listing.ID = 0
	listing.UserID = userID
	listing.Views = 0
	if listing.Status == "" {
		listing.Status = models.ListingStatusActive
	}

	if err := validateListing(listing); err != nil {
		return nil, err
	}

	if err := s.listingRepo.Create(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func validateListing(listing *models.Listing) error {
	if listing.Rent < 0 {
		return fmt.Errorf("%w：租金不可為負數", ErrValidation)
	}
	if !pincodeRe.MatchString(listing.Location.Pincode) {
		return fmt.Errorf("%w：郵遞區號必須是 6 位數字", ErrValidation)
	}
	if !phoneRe.MatchString(listing.ContactPhone) {
		return fmt.Errorf("%w：聯絡電話必須是 10 位數字", ErrValidation)
	}
	return nil
}

// SearchListings 依條件搜尋刊登。無論呼叫端給什麼條件，
// 結果一律限定 Active 狀態；排序固定為新刊登在前。
func (s *ListingService) SearchListings(filter repository.ListingFilter, page, pageSize int) ([]models.Listing, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	offset := (page - 1) * pageSize
	return s.listingRepo.Search(filter, offset, pageSize)
}

// GetListing 取得單一刊登的詳細內容。
// 每次成功的讀取都會讓瀏覽次數原子性地加一，
// 這是讀取操作契約裡明確的副作用，重複讀取會累加計數。
func (s *ListingService) GetListing(id uint) (*models.Listing, error) {
	affected, err := s.listingRepo.IncrementViews(id)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w：房源不存在", ErrNotFound)
	}

	listing, err := s.listingRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w：房源不存在", ErrNotFound)
	}
	return listing, err
}

// GetMyListings 取得用戶自己的刊登，包含非 Active 狀態的
func (s *ListingService) GetMyListings(userID uint) ([]models.Listing, error) {
	return s.listingRepo.FindByUser(userID)
}

// UpdateListing 更新刊登內容。先確認刊登存在（不存在回 NotFound），
// 再檢查擁有權（不符回 Forbidden）。擁有者與瀏覽次數不會被覆寫。
func (s *ListingService) UpdateListing(id, callerID uint, updated *models.Listing) (*models.Listing, error) {
	listing, err := s.findOwned(id, callerID)
	if err != nil {
		return nil, err
	}

	if err := validateListing(updated); err != nil {
		return nil, err
	}

	listing.Title = updated.Title
	listing.Description = updated.Description
	listing.Type = updated.Type
	listing.RoomType = updated.RoomType
	listing.Rent = updated.Rent
	listing.Location = updated.Location
	listing.Amenities = updated.Amenities
	listing.Preferences = updated.Preferences
	listing.AvailableFrom = updated.AvailableFrom
	listing.Images = updated.Images
	listing.ContactPhone = updated.ContactPhone
	if updated.Status != "" {
		listing.Status = updated.Status
	}

	if err := s.listingRepo.Update(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// DeleteListing 刪除刊登，僅限擁有者
func (s *ListingService) DeleteListing(id, callerID uint) error {
	if _, err := s.findOwned(id, callerID); err != nil {
		return err
	}
	return s.listingRepo.Delete(id)
}

// findOwned 套用擁有權檢查：NotFound 先於 Forbidden 判斷
func (s *ListingService) findOwned(id, callerID uint) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w：房源不存在", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if listing.UserID != callerID {
		return nil, fmt.Errorf("%w：只有刊登者本人可以修改或刪除", ErrForbidden)
	}
	return listing, nil
}

// ToggleInterest 切換用戶對刊登的興趣狀態。
// 不在興趣集合中則加入並回傳 true，已在集合中則移除並回傳 false。
// 加入走唯一索引上的 insert-if-absent，是儲存層的原子集合操作。
func (s *ListingService) ToggleInterest(listingID, userID uint) (bool, error) {
	if _, err := s.listingRepo.FindByID(listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w：房源不存在", ErrNotFound)
		}
		return false, err
	}

	added, err := s.listingRepo.AddInterest(listingID, userID)
	if err != nil {
		return false, err
	}
	if added {
		return true, nil
	}

	// 已經在集合中，這次呼叫改為移除
	if err := s.listingRepo.RemoveInterest(listingID, userID); err != nil {
		return false, err
	}
	return false, nil
}

// InterestedUsers 取得對刊登表達興趣的用戶 ID 清單
func (s *ListingService) InterestedUsers(listingID uint) ([]uint, error) {
	return s.listingRepo.InterestedUserIDs(listingID)
}
