package service

import (
	"errors"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/repository"
	"github.com/sujan-mishra001/Hoteru-sub000/pkg/jwt"
)

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type AuthService interface {
	Login(email, password string) (*LoginResult, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}
	if !user.CheckPassword(password) {
		return nil, errors.New("invalid email or password")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, user.Role, user.BranchID, user.PrivilegeCodes())
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}
