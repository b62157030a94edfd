package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"roommate_finder/internal/models"
	"roommate_finder/internal/repository"
	"roommate_finder/internal/service"
)

// ListingHandler 處理與房源刊登相關的請求
type ListingHandler struct {
	listingService *service.ListingService
}

// NewListingHandler 創建一個新的 ListingHandler 實例
func NewListingHandler(listingService *service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// LocationInput 定義刊登地點的請求結構
type LocationInput struct {
	Address   string   `json:"address" binding:"required"`
	City      string   `json:"city" binding:"required"`
	State     string   `json:"state" binding:"required"`
	Pincode   string   `json:"pincode" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// ListingInput 定義建立與更新刊登的請求結構
type ListingInput struct {
	Title         string                    `json:"title" binding:"required,max=100"`
	Description   string                    `json:"description" binding:"required,max=1000"`
	Type          models.ListingType        `json:"type" binding:"required,oneof='Room Available' 'Looking for Room' 'Looking for Roommate'"`
	RoomType      models.RoomType           `json:"roomType" binding:"required,oneof=Private Shared Studio Apartment"`
	Rent          float64                   `json:"rent" binding:"min=0"`
	Location      LocationInput             `json:"location" binding:"required"`
	Amenities     models.Amenities          `json:"amenities"`
	Preferences   models.ListingPreferences `json:"preferences"`
	AvailableFrom time.Time                 `json:"availableFrom" binding:"required"`
	Images        []string                  `json:"images"`
	ContactPhone  string                    `json:"contactPhone" binding:"required"`
	Status        models.ListingStatus      `json:"status" binding:"omitempty,oneof=Active Inactive Closed"`
}

func (input *ListingInput) toModel() *models.Listing {
	return &models.Listing{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		RoomType:    input.RoomType,
		Rent:        input.Rent,
		Location: models.Location{
			Address:   input.Location.Address,
			City:      input.Location.City,
			State:     input.Location.State,
			Pincode:   input.Location.Pincode,
			Latitude:  input.Location.Latitude,
			Longitude: input.Location.Longitude,
		},
		Amenities:     input.Amenities,
		Preferences:   input.Preferences,
		AvailableFrom: input.AvailableFrom,
		Images:        input.Images,
		ContactPhone:  input.ContactPhone,
		Status:        input.Status,
	}
}

// Create 處理建立刊登的請求，擁有者為目前登入的用戶
func (h *ListingHandler) Create(c *gin.Context) {
	var input ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	listing, err := h.listingService.CreateListing(currentUserID(c), input.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "刊登建立成功",
		"listing": listing,
	})
}

// Search 處理刊登搜尋，所有條件都是可選的，結果固定只含 Active 狀態
func (h *ListingHandler) Search(c *gin.Context) {
	filter := repository.ListingFilter{
		City:       c.Query("city"),
		Type:       models.ListingType(c.Query("type")),
		RoomType:   models.RoomType(c.Query("roomType")),
		Gender:     c.Query("gender"),
		Smoking:    c.Query("smoking") == "true",
		Pets:       c.Query("pets") == "true",
		Vegetarian: c.Query("vegetarian") == "true",
		Wifi:       c.Query("wifi") == "true",
		AC:         c.Query("ac") == "true",
		Parking:    c.Query("parking") == "true",
		Furnished:  c.Query("furnished") == "true",
	}
	if v := c.Query("minRent"); v != "" {
		if rent, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinRent = &rent
		}
	}
	if v := c.Query("maxRent"); v != "" {
		if rent, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxRent = &rent
		}
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	listings, total, err := h.listingService.SearchListings(filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(listings),
		"total":    total,
		"page":     page,
		"pages":    pageCount(total, limit),
		"listings": listings,
	})
}

// Get 處理單一刊登的查詢。
// 每次成功查詢都會讓瀏覽次數加一，這是契約內的副作用。
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "無效的刊登 ID"})
		return
	}

	listing, err := h.listingService.GetListing(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "listing": listing})
}

// MyListings 回傳目前用戶自己的所有刊登
func (h *ListingHandler) MyListings(c *gin.Context) {
	listings, err := h.listingService.GetMyListings(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(listings),
		"listings": listings,
	})
}

// Update 處理刊登更新，僅限擁有者
func (h *ListingHandler) Update(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "無效的刊登 ID"})
		return
	}

	var input ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	listing, err := h.listingService.UpdateListing(id, currentUserID(c), input.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "刊登更新成功",
		"listing": listing,
	})
}

// Delete 處理刊登刪除，僅限擁有者
func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "無效的刊登 ID"})
		return
	}

	if err := h.listingService.DeleteListing(id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "刊登已刪除"})
}

// ToggleInterest 切換目前用戶對刊登的興趣狀態
func (h *ListingHandler) ToggleInterest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "無效的刊登 ID"})
		return
	}

	interested, err := h.listingService.ToggleInterest(id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	message := "已取消興趣"
	if interested {
		message = "已標記興趣"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    message,
		"interested": interested,
	})
}

// paramID 解析路徑參數中的數字 ID
func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}

// queryInt 解析查詢字串中的正整數，缺少或無效時用預設值
func queryInt(c *gin.Context, name string, def int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// pageCount 計算總頁數
func pageCount(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
