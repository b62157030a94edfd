package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"roommate_finder/internal/models"
	"roommate_finder/internal/repository"
)

// newTestDB 建立一個只存在於記憶體的 SQLite 資料庫供測試使用。
// 連線池限制為 1，避免 in-memory 資料庫在多連線下各自為政。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	return db
}

// newTestServices 在測試資料庫上組出完整的服務層
func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	repos := repository.NewRepositories(db)
	return NewServices(repos), db
}

var testUserSeq int

// createTestUser 建立一個測試用戶，email 自動唯一化
func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	testUserSeq++
	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s%d@example.com", name, testUserSeq),
		Password: "hashed-password",
		Phone:    "9876543210",
		Gender:   models.GenderOther,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestListing 建立一則測試刊登
func createTestListing(t *testing.T, db *gorm.DB, ownerID uint, city string, rent float64) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		UserID:      ownerID,
		Title:       "測試房源 " + city,
		Description: "近車站，採光好",
		Type:        models.ListingTypeRoomAvailable,
		RoomType:    models.RoomTypePrivate,
		Rent:        rent,
		Location: models.Location{
			Address: "1 Test Street",
			City:    city,
			State:   "Uttar Pradesh",
			Pincode: "226001",
		},
		AvailableFrom: time.Now().AddDate(0, 1, 0),
		ContactPhone:  "9876543210",
		Status:        models.ListingStatusActive,
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}
