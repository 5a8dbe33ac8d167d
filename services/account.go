package services

import (
	"errors"
	"net/http"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dongeng-kita/dongeng_api/dto"
	"github.com/dongeng-kita/dongeng_api/model"
	"github.com/dongeng-kita/dongeng_api/services/repositories"
	"github.com/dongeng-kita/dongeng_api/shared"
)

// AccountService covers registration and login for parent accounts.
type AccountService struct {
	context.DefaultService

	sqlSvc *PostgresService
	jwtSvc *JWTService

	userRepo *repositories.UserRepository
}

const ACCOUNT_SVC = "account_svc"

func (svc AccountService) Id() string {
	return ACCOUNT_SVC
}

func (svc *AccountService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.userRepo = repositories.NewUserRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *AccountService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:          req.Email,
		Username:       req.Username,
		Password:       string(hashed),
		ChildBirthYear: req.ChildBirthYear,
		CreatedAt:      time.Now().UTC(),
	}

	if _, err := svc.userRepo.Create(user); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	log.WithField("user_id", user.ID).Info("Registered new account")

	return &dto.RegisterResponse{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	}, nil
}

func (svc *AccountService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewAppError(http.StatusUnauthorized, "invalid email or password")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, shared.NewAppError(http.StatusUnauthorized, "invalid email or password")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	if err := svc.userRepo.UpdateLastLogin(user.ID, time.Now().UTC()); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to update last login")
	}

	return &dto.LoginResponse{
		UserID:      user.ID,
		AccessToken: pair.AccessToken,
		ExpiresIn:   pair.ExpiresIn,
	}, nil
}

// GetUser is used by the analytic dashboard to derive the child age group.
func (svc *AccountService) GetUser(userID string) (*model.User, error) {
	user, err := svc.userRepo.GetByID(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return user, nil
}
