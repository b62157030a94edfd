package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"roommate_finder/internal/models"
	"roommate_finder/internal/service"
	"roommate_finder/pkg/utils"
)

// AuthHandler 處理與認證和個人資料相關的請求
type AuthHandler struct {
	userService *service.UserService
	tokenMaker  *utils.TokenMaker
}

// NewAuthHandler 創建一個新的 AuthHandler 實例
func NewAuthHandler(userService *service.UserService, tokenMaker *utils.TokenMaker) *AuthHandler {
	return &AuthHandler{userService: userService, tokenMaker: tokenMaker}
}

// RegisterInput 定義註冊請求的結構
type RegisterInput struct {
	Name        string                 `json:"name" binding:"required,max=50"`
	Email       string                 `json:"email" binding:"required,email"`
	Password    string                 `json:"password" binding:"required,min=6"`
	Phone       string                 `json:"phone" binding:"required,len=10,numeric"`
	Age         int                    `json:"age" binding:"omitempty,gte=18,lte=100"`
	Gender      models.Gender          `json:"gender" binding:"required,oneof=Male Female Other"`
	Occupation  string                 `json:"occupation"`
	Bio         string                 `json:"bio" binding:"max=500"`
	Preferences *models.RoomPreference `json:"preferences"`
}

// LoginInput 定義登入請求的結構
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 處理用戶註冊
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	// 解析並驗證請求體
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	// 對密碼進行加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "建立使用者失敗"})
		return
	}

	user := models.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   string(hashedPassword),
		Phone:      input.Phone,
		Age:        input.Age,
		Gender:     input.Gender,
		Occupation: input.Occupation,
		Bio:        input.Bio,
	}
	if input.Preferences != nil {
		user.Preferences = *input.Preferences
	}

	// 創建新用戶
	if err := h.userService.CreateUser(&user); err != nil {
		respondError(c, err)
		return
	}

	// 註冊成功直接簽發 token，省去再登入一次
	token, err := h.tokenMaker.Generate(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "獲取token失敗"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "使用者註冊成功",
		"token":   token,
		"user":    user,
	})
}

// Login 處理用戶登入
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	// 解析並驗證請求體
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	// 檢查用戶是否存在
	user, err := h.userService.GetUserByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	// 驗證密碼
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	// 生成 JWT token
	token, err := h.tokenMaker.Generate(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "獲取token失敗"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
}

// Profile 回傳目前登入用戶的個人資料
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.userService.GetUserByID(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateProfileInput 定義個人資料更新請求的結構，所有欄位皆可省略
type UpdateProfileInput struct {
	Name        string                 `json:"name" binding:"omitempty,max=50"`
	Phone       string                 `json:"phone" binding:"omitempty,len=10,numeric"`
	Avatar      string                 `json:"avatar"`
	Age         int                    `json:"age" binding:"omitempty,gte=18,lte=100"`
	Gender      models.Gender          `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	Occupation  string                 `json:"occupation"`
	Bio         string                 `json:"bio" binding:"max=500"`
	Preferences *models.RoomPreference `json:"preferences"`
}

// UpdateProfile 處理個人資料更新，Email 與密碼不在此路徑修改
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(currentUserID(c), service.ProfileUpdate{
		Name:        input.Name,
		Phone:       input.Phone,
		Avatar:      input.Avatar,
		Age:         input.Age,
		Gender:      input.Gender,
		Occupation:  input.Occupation,
		Bio:         input.Bio,
		Preferences: input.Preferences,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "個人資料更新成功", "user": user})
}

// Logout 登出。認證走 token，伺服器端沒有狀態要清，
// 回應成功讓客戶端丟棄手上的 token 即可
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "已登出"})
}
