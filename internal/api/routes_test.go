package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"roommate_finder/internal/models"
	"roommate_finder/internal/repository"
	"roommate_finder/internal/service"
	"roommate_finder/pkg/utils"
)

// setupTestRouter 組出一個跑在記憶體 SQLite 上的完整 API
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.ListingInterest{},
		&models.Conversation{},
		&models.Message{},
	))

	services := service.NewServices(repository.NewRepositories(db))
	tokenMaker := utils.NewTokenMaker("test-secret", 1)

	r := gin.New()
	SetupRoutes(r, services, tokenMaker)
	return r
}

// doRequest 發出一個 JSON 請求並回傳解碼後的回應
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func registerTestUser(t *testing.T, r *gin.Engine, name, email string) (token string, userID uint) {
	t.Helper()
	status, resp := doRequest(t, r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"phone":    "9876543210",
		"gender":   "Other",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, true, resp["success"])

	user := resp["user"].(map[string]interface{})
	return resp["token"].(string), uint(user["ID"].(float64))
}

var testListingBody = map[string]interface{}{
	"title":       "Lucknow 市區單人房",
	"description": "近地鐵站，含水電",
	"type":        "Room Available",
	"roomType":    "Private",
	"rent":        8000,
	"location": map[string]interface{}{
		"address": "12 Hazratganj",
		"city":    "Lucknow",
		"state":   "Uttar Pradesh",
		"pincode": "226001",
	},
	"availableFrom": "2026-10-01T00:00:00Z",
	"contactPhone":  "9876543210",
}

// 走一遍完整流程：註冊、刊登、搜尋、傳訊息、未讀數歸零
func TestEndToEndScenario(t *testing.T) {
	r := setupTestRouter(t)

	token1, user1ID := registerTestUser(t, r, "U1", "u1@example.com")
	token2, _ := registerTestUser(t, r, "U2", "u2@example.com")

	// U1 刊登一間 Lucknow 的房源，租金 8000
	status, resp := doRequest(t, r, http.MethodPost, "/api/listings/create", token1, testListingBody)
	require.Equal(t, http.StatusCreated, status)
	listing := resp["listing"].(map[string]interface{})
	listingID := uint(listing["ID"].(float64))

	// U2 不用登入就能搜尋，條件符合時找得到這筆
	status, resp = doRequest(t, r, http.MethodGet, "/api/listings?city=Lucknow&maxRent=10000", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), resp["total"])
	assert.Equal(t, float64(1), resp["pages"])

	// U2 針對這筆刊登傳 "Hi" 給 U1
	status, _ = doRequest(t, r, http.MethodPost, "/api/messages/send", token2, map[string]interface{}{
		"receiverId": user1ID,
		"content":    "Hi",
		"listingId":  listingID,
	})
	require.Equal(t, http.StatusCreated, status)

	// U1 的未讀數變成 1
	status, resp = doRequest(t, r, http.MethodGet, "/api/messages/unread-count", token1, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), resp["unreadCount"])

	// U1 的對話列表出現這串對話，對方是 U2
	status, resp = doRequest(t, r, http.MethodGet, "/api/messages/conversations", token1, nil)
	require.Equal(t, http.StatusOK, status)
	conversations := resp["conversations"].([]interface{})
	require.Len(t, conversations, 1)
	conversation := conversations[0].(map[string]interface{})
	conversationID := uint(conversation["id"].(float64))
	assert.Equal(t, "Hi", conversation["lastMessage"])
	assert.Equal(t, "U2", conversation["participant"].(map[string]interface{})["name"])

	// U1 打開對話看到訊息
	status, resp = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/messages/conversation/%d", conversationID), token1, nil)
	require.Equal(t, http.StatusOK, status)
	messages := resp["messages"].([]interface{})
	require.Len(t, messages, 1)
	assert.Equal(t, "Hi", messages[0].(map[string]interface{})["content"])

	// 讀取的副作用：未讀數歸零
	status, resp = doRequest(t, r, http.MethodGet, "/api/messages/unread-count", token1, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), resp["unreadCount"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupTestRouter(t)

	status, resp := doRequest(t, r, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, resp["success"])

	status, _ = doRequest(t, r, http.MethodGet, "/api/messages/unread-count", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUpdateListingForbiddenForNonOwner(t *testing.T) {
	r := setupTestRouter(t)

	token1, _ := registerTestUser(t, r, "owner", "owner@example.com")
	token2, _ := registerTestUser(t, r, "stranger", "stranger@example.com")

	status, resp := doRequest(t, r, http.MethodPost, "/api/listings/create", token1, testListingBody)
	require.Equal(t, http.StatusCreated, status)
	listingID := uint(resp["listing"].(map[string]interface{})["ID"].(float64))

	status, resp = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/listings/%d", listingID), token2, testListingBody)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, false, resp["success"])

	// 不存在的刊登是 404 而不是 403
	status, _ = doRequest(t, r, http.MethodPut, "/api/listings/99999", token2, testListingBody)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListingDetailIncrementsViews(t *testing.T) {
	r := setupTestRouter(t)

	token, _ := registerTestUser(t, r, "owner", "owner@example.com")
	status, resp := doRequest(t, r, http.MethodPost, "/api/listings/create", token, testListingBody)
	require.Equal(t, http.StatusCreated, status)
	listingID := uint(resp["listing"].(map[string]interface{})["ID"].(float64))

	var views float64
	for i := 0; i < 3; i++ {
		status, resp = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/listings/%d", listingID), "", nil)
		require.Equal(t, http.StatusOK, status)
		views = resp["listing"].(map[string]interface{})["views"].(float64)
	}
	assert.Equal(t, float64(3), views)
}

func TestRegisterValidation(t *testing.T) {
	r := setupTestRouter(t)

	// 電話要 10 位數字
	status, _ := doRequest(t, r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "U1",
		"email":    "u1@example.com",
		"password": "secret123",
		"phone":    "12345",
		"gender":   "Other",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Email 不能重複註冊
	registerTestUser(t, r, "U1", "dup@example.com")
	status, _ = doRequest(t, r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "U2",
		"email":    "dup@example.com",
		"password": "secret123",
		"phone":    "9876543210",
		"gender":   "Other",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}
