package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shinyyama/marketplace-backend/internal/model"
	"github.com/shinyyama/marketplace-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrUserExists    = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown username and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserService interface {
	Register(ctx context.Context, username, password, email string) error
	Authenticate(ctx context.Context, username, password string) (uint64, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Register(ctx context.Context, username, password, email string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return ErrMissingFields
	}

	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// The unique index catches registrations that raced past the
		// existence check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (uint64, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return 0, ErrMissingFields
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}
