package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roommate_finder/internal/models"
	"roommate_finder/internal/repository"
)

func TestSearchCityIsCaseInsensitiveSubstring(t *testing.T) {
	services, db := newTestServices(t)
	owner := createTestUser(t, db, "alice")
	createTestListing(t, db, owner.ID, "Lucknow", 8000)
	createTestListing(t, db, owner.ID, "Mumbai", 12000)

	listings, total, err := services.Listing.SearchListings(repository.ListingFilter{City: "luck"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, listings, 1)
	assert.Equal(t, "Lucknow", listings[0].Location.City)
}

func TestSearchRentRange(t *testing.T) {
	services, db := newTestServices(t)
	owner := createTestUser(t, db, "alice")
	createTestListing(t, db, owner.ID, "Lucknow", 8000)
	createTestListing(t, db, owner.ID, "Lucknow", 15000)

	maxRent := 10000.0
	listings, _, err := services.Listing.SearchListings(repository.ListingFilter{MaxRent: &maxRent}, 1, 10)
	require.NoError(t, err)
	for _, listing := range listings {
		assert.LessOrEqual(t, listing.Rent, maxRent)
	}
	require.Len(t, listings, 1)

	// 上下限都是含邊界的
	minRent := 8000.0
	listings, _, err = services.Listing.SearchListings(repository.ListingFilter{MinRent: &minRent, MaxRent: &minRent}, 1, 10)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, 8000.0, listings[0].Rent)
}

func TestSearchOnlyReturnsActiveListings(t *testing.T) {
	services, db := newTestServices(t)
	owner := createTestUser(t, db, "alice")
	createTestListing(t, db, owner.ID, "Lucknow", 8000)

	inactive := createTestListing(t, db, owner.ID, "Lucknow", 9000)
	require.NoError(t, db.Model(inactive).Update("status", models.ListingStatusInactive).Error)

	listings, total, err := services.Listing.SearchListings(repository.ListingFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, listings, 1)
	assert.Equal(t, models.ListingStatusActive, listings[0].Status)
}

func TestSearchBooleanFlagMeansMustBeTrue(t *testing.T) {
	services, db := newTestServices(t)
	owner := createTestUser(t, db, "alice")

	withWifi := createTestListing(t, db, owner.ID, "Lucknow", 8000)
	require.NoError(t, db.Model(withWifi).Update("amenity_wifi", true).Error)
	createTestListing(t, db, owner.ID, "Lucknow", 9000)

	// 帶旗標表示「必須為真」
	listings, _, err := services.Listing.SearchListings(repository.ListingFilter{Wifi: true}, 1, 10)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, withWifi.ID, listings[0].ID)

	// 不帶旗標表示不限制，兩筆都會出現
	listings, _, err = services.Listing.SearchListings(repository.ListingFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}

func TestSearchPagination(t *testing.T) {
	services, db := newTestServices(t)
	owner := createTestUser(t, db, "alice")
	for i := 0; i < 5; i++ {
		createTestListing(t, db, owner.ID, "Lucknow", float64(8000+i))
	}

	listings, total, err := services.Listing.SearchListings(repository.ListingFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, listings, 2)
}

func TestViewCounterIncrementsPerFetch(t *testing.T) {
	services, db := newTestServices(t)
	owner := createTestUser(t, db, "alice")
	listing := createTestListing(t, db, owner.ID, "Lucknow", 8000)

	// 讀 K 次就加 K，重複讀取不是冪等的
	const k = 4
	for i := 0; i < k; i++ {
		_, err := services.Listing.GetListing(listing.ID)
		require.NoError(t, err)
	}

	fetched, err := services.Listing.GetListing(listing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(k+1), fetched.Views)
}

func TestGetListingNotFound(t *testing.T) {
	services, _ := newTestServices(t)

	_, err := services.Listing.GetListing(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleInterest(t *testing.T) {
	services, db := newTestServices(t)
	owner := createTestUser(t, db, "alice")
	viewer := createTestUser(t, db, "bob")
	listing := createTestListing(t, db, owner.ID, "Lucknow", 8000)

	var before int64
	require.NoError(t, db.Model(&models.ListingInterest{}).Where("listing_id = ?", listing.ID).Count(&before).Error)

	// 連續切換兩次：加入再移除，集合大小回到原點
	interested, err := services.Listing.ToggleInterest(listing.ID, viewer.ID)
	require.NoError(t, err)
	assert.True(t, interested)

	interested, err = services.Listing.ToggleInterest(listing.ID, viewer.ID)
	require.NoError(t, err)
	assert.False(t, interested)

	var after int64
	require.NoError(t, db.Model(&models.ListingInterest{}).Where("listing_id = ?", listing.ID).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestToggleInterestUnknownListing(t *testing.T) {
	services, db := newTestServices(t)
	viewer := createTestUser(t, db, "bob")

	_, err := services.Listing.ToggleInterest(9999, viewer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateListingOwnershipGuard(t *testing.T) {
	services, db := newTestServices(t)
	owner := createTestUser(t, db, "alice")
	stranger := createTestUser(t, db, "mallory")
	listing := createTestListing(t, db, owner.ID, "Lucknow", 8000)

	updated := &models.Listing{
		Title:         "改過的標題",
		Description:   listing.Description,
		Type:          listing.Type,
		RoomType:      listing.RoomType,
		Rent:          9000,
		Location:      listing.Location,
		AvailableFrom: listing.AvailableFrom,
		ContactPhone:  listing.ContactPhone,
	}

	// 不存在的刊登先回 NotFound，再談權限
	_, err := services.Listing.UpdateListing(9999, stranger.ID, updated)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = services.Listing.UpdateListing(listing.ID, stranger.ID, updated)
	assert.ErrorIs(t, err, ErrForbidden)

	result, err := services.Listing.UpdateListing(listing.ID, owner.ID, updated)
	require.NoError(t, err)
	assert.Equal(t, "改過的標題", result.Title)
	assert.Equal(t, 9000.0, result.Rent)
	// 擁有者不因更新而改變
	assert.Equal(t, owner.ID, result.UserID)
}

func TestDeleteListingOwnershipGuard(t *testing.T) {
	services, db := newTestServices(t)
	owner := createTestUser(t, db, "alice")
	stranger := createTestUser(t, db, "mallory")
	listing := createTestListing(t, db, owner.ID, "Lucknow", 8000)

	err := services.Listing.DeleteListing(9999, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = services.Listing.DeleteListing(listing.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, services.Listing.DeleteListing(listing.ID, owner.ID))

	_, err = services.Listing.GetListing(listing.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMyListingsIncludesInactive(t *testing.T) {
	services, db := newTestServices(t)
	owner := createTestUser(t, db, "alice")
	createTestListing(t, db, owner.ID, "Lucknow", 8000)
	inactive := createTestListing(t, db, owner.ID, "Lucknow", 9000)
	require.NoError(t, db.Model(inactive).Update("status", models.ListingStatusInactive).Error)

	listings, err := services.Listing.GetMyListings(owner.ID)
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}

func TestCreateListingValidation(t *testing.T) {
	services, db := newTestServices(t)
	owner := createTestUser(t, db, "alice")

	base := func() *models.Listing {
		return &models.Listing{
			Title:       "房源",
			Description: "描述",
			Type:        models.ListingTypeRoomAvailable,
			RoomType:    models.RoomTypePrivate,
			Rent:        8000,
			Location: models.Location{
				Address: "1 Test Street",
				City:    "Lucknow",
				State:   "Uttar Pradesh",
				Pincode: "226001",
			},
			AvailableFrom: time.Now(),
			ContactPhone:  "9876543210",
		}
	}

	bad := base()
	bad.Rent = -1
	_, err := services.Listing.CreateListing(owner.ID, bad)
	assert.ErrorIs(t, err, ErrValidation)

	bad = base()
	bad.Location.Pincode = "12ab56"
	_, err = services.Listing.CreateListing(owner.ID, bad)
	assert.ErrorIs(t, err, ErrValidation)

	bad = base()
	bad.ContactPhone = "12345"
	_, err = services.Listing.CreateListing(owner.ID, bad)
	assert.ErrorIs(t, err, ErrValidation)

	good := base()
	created, err := services.Listing.CreateListing(owner.ID, good)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, created.UserID)
	assert.Equal(t, models.ListingStatusActive, created.Status)
	assert.Equal(t, int64(0), created.Views)
}
