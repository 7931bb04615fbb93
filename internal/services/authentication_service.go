package services

import (
	"time"

	"github.com/Amala4/Chat-App/configs"
	"github.com/Amala4/Chat-App/internal/errs"
	"github.com/Amala4/Chat-App/internal/models"
	"github.com/Amala4/Chat-App/internal/utils"
	"github.com/Amala4/Chat-App/internal/validators"
)

// AuthenticationRepository is the persistence surface the service
// needs. Implemented by repositories.AuthenticationRepository; mocked
// in tests.
type AuthenticationRepository interface {
	CreateUser(user *models.User) (*models.User, []error)
	CheckIfUserExists(email string) *models.User
	Login(login *models.LoginRequestBody) (*models.User, []error)
	GetUserByID(id uint) (*models.User, error)
	GetAllUsersWithPagination(excludeUserID uint, page, size int) (*models.GetUsersResponse, []error)
	SearchUsers(excludeUserID uint, query string) ([]models.UserResponse, []error)
}

type AuthenticationService struct {
	authRepo AuthenticationRepository
	config   *configs.Config
}

func NewAuthenticationService(
	authRepo AuthenticationRepository,
	config *configs.Config,
) *AuthenticationService {
	return &AuthenticationService{
		authRepo: authRepo,
		config:   config,
	}
}

func (as *AuthenticationService) Register(user *models.User) (*models.User, []error) {
	var errList []error
	if as.CheckIfUserExists(user.Email) {
		errList = append(errList, errs.ErrUserAlreadyExists)
		return nil, errList
	}
	validationErrs := validators.ValidateUser(user)
	if len(validationErrs) > 0 {
		errList = append(errList, validationErrs...)
		return nil, errList
	}
	password, err := utils.HashPassword(user.Password)
	if err != nil {
		errList = append(errList, err)
		return nil, errList
	}
	user.PasswordHash = password
	return as.authRepo.CreateUser(user)
}

func (as *AuthenticationService) Login(loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	var errList []error

	user, loginErrs := as.authRepo.Login(loginData)
	if len(loginErrs) > 0 {
		errList = append(errList, loginErrs...)
		return nil, errList
	}

	expiration := time.Now().Add(time.Duration(as.config.Viper.GetInt("jwt.expiration_time")) * time.Second)
	token, jwtErr := utils.CreateJwtToken(
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		utils.GetJwtKey(),
		expiration,
	)
	if jwtErr != nil {
		errList = append(errList, jwtErr)
		return nil, errList
	}

	return &models.LoginResponse{
		User:  *user,
		Token: token,
	}, nil
}

func (as *AuthenticationService) CheckIfUserExists(email string) bool {
	return as.authRepo.CheckIfUserExists(email) != nil
}

func (as *AuthenticationService) GetUserByID(id uint) (*models.User, error) {
	return as.authRepo.GetUserByID(id)
}

func (as *AuthenticationService) GetAllUsersWithPagination(excludeUserID uint, page, size int) (*models.GetUsersResponse, []error) {
	var errList []error
	if page < 1 || size < 1 {
		errList = append(errList, errs.ErrInvalidPageOrSize)
		return nil, errList
	}
	return as.authRepo.GetAllUsersWithPagination(excludeUserID, page, size)
}

func (as *AuthenticationService) SearchUsers(excludeUserID uint, query string) ([]models.UserResponse, []error) {
	return as.authRepo.SearchUsers(excludeUserID, query)
}
