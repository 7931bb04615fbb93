package repositories

import (
	"github.com/Amala4/Chat-App/internal/errs"
	"github.com/Amala4/Chat-App/internal/models"
	"github.com/Amala4/Chat-App/internal/utils"
	"gorm.io/gorm"
)

type AuthenticationRepository struct {
	db *gorm.DB
}

func NewAuthenticationRepository(db *gorm.DB) *AuthenticationRepository {
	return &AuthenticationRepository{
		db: db,
	}
}

func (ar *AuthenticationRepository) CreateUser(user *models.User) (*models.User, []error) {
	var errors []error
	result := ar.db.Create(user)
	if result.Error != nil {
		errors = append(errors, result.Error)
		return nil, errors
	}
	if result.RowsAffected == 0 {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	return user, nil
}

func (ar *AuthenticationRepository) CheckIfUserExists(email string) *models.User {
	var user models.User
	result := ar.db.Where("email = ?", email).First(&user)
	if result.Error == nil && result.RowsAffected > 0 {
		return &user
	}
	return nil
}

func (ar *AuthenticationRepository) Login(login *models.LoginRequestBody) (*models.User, []error) {
	var errors []error
	user := ar.CheckIfUserExists(login.Email)
	if user == nil {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	if err := utils.CompareHashAndPassword(user.PasswordHash, login.Password); err != nil {
		errors = append(errors, errs.ErrWrongPassword)
		return nil, errors
	}
	return user, nil
}

func (ar *AuthenticationRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	result := ar.db.First(&user, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errs.ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (ar *AuthenticationRepository) GetAllUsersWithPagination(excludeUserID uint, page, size int) (*models.GetUsersResponse, []error) {
	var errors []error
	var users []models.User
	var total int64

	transactionErr := ar.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Where("id <> ?", excludeUserID).
			Order("first_name ASC, last_name ASC").
			Find(&users).Error; err != nil {
			return err
		}

		if err := tx.
			Model(&models.User{}).
			Where("id <> ?", excludeUserID).
			Count(&total).Error; err != nil {
			return err
		}

		return nil
	})
	if transactionErr != nil {
		errors = append(errors, transactionErr)
		return nil, errors
	}

	userResponses := []models.UserResponse{}
	for _, user := range users {
		userResponses = append(userResponses, *user.ToUserResponse())
	}

	return &models.GetUsersResponse{
		Users: userResponses,
		Page:  page,
		Size:  size,
		Total: total,
	}, nil
}

// SearchUsers filters the directory the way the user-search endpoint needs:
// case-insensitive substring match on name and email, excluding the caller.
func (ar *AuthenticationRepository) SearchUsers(excludeUserID uint, query string) ([]models.UserResponse, []error) {
	var errors []error
	var users []models.User

	like := "%" + query + "%"
	if err := ar.db.
		Where("id <> ?", excludeUserID).
		Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like).
		Order("first_name ASC, last_name ASC").
		Find(&users).Error; err != nil {
		errors = append(errors, err)
		return nil, errors
	}

	userResponses := []models.UserResponse{}
	for _, user := range users {
		userResponses = append(userResponses, *user.ToUserResponse())
	}
	return userResponses, nil
}
