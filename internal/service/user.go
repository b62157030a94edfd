package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"roommate_finder/internal/models"
	"roommate_finder/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser 建立新用戶。Email 重複時回傳驗證錯誤而不是資料庫錯誤。
func (s *UserService) CreateUser(user *models.User) error {
	if _, err := s.userRepo.FindByEmail(user.Email); err == nil {
		return fmt.Errorf("%w：此 Email 已經被註冊", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if user.Avatar == "" {
		user.Avatar = models.DefaultAvatar
	}
	return s.userRepo.Create(user)
}

func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w：用戶不存在", ErrNotFound)
	}
	return user, err
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w：用戶不存在", ErrNotFound)
	}
	return user, err
}

// ProfileUpdate 表示個人資料更新時可以異動的欄位。
// Email 與密碼不在此路徑修改；零值欄位會被略過。
type ProfileUpdate struct {
	Name        string
	Phone       string
	Avatar      string
	Age         int
	Gender      models.Gender
	Occupation  string
	Bio         string
	Preferences *models.RoomPreference
}

// UpdateProfile 套用個人資料的部分更新
func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}
	if update.Age != 0 {
		user.Age = update.Age
	}
	if update.Gender != "" {
		user.Gender = update.Gender
	}
	if update.Occupation != "" {
		user.Occupation = update.Occupation
	}
	if update.Bio != "" {
		user.Bio = update.Bio
	}
	if update.Preferences != nil {
		user.Preferences = *update.Preferences
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
