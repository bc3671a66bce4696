package service

import (
	"WikiGo/internal/model"
	"WikiGo/internal/repo"
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrLoginTaken — логин уже занят.
	ErrLoginTaken = errors.New("login already taken")
	// ErrInvalidCredentials — пара логин/пароль не подошла.
	ErrInvalidCredentials = errors.New("invalid login or password")
)

// UserService — регистрация и аутентификация пользователей.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Register создаёт пользователя. Самый первый зарегистрированный
// становится администратором.
func (s *UserService) Register(ctx context.Context, login, password string) (*model.User, error) {
	if login == "" || password == "" {
		return nil, errors.New("login and password are required")
	}
	existing, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	u := &model.User{Login: login, PasswordHash: string(hash), Admin: n == 0}
	return s.repo.CreateUser(ctx, u)
}

// Authenticate проверяет пару логин/пароль.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*model.User, error) {
	u, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
