package service

import (
	"barter/db"
	"barter/internal/auth"
	"barter/models"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type credentials struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register создает пользователя с уникальным именем
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	c := credentials{Username: strings.TrimSpace(username), Password: password}
	if err := s.validateStruct(&c); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(c.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, newValidationError("password", "must be at most 72 bytes")
	}
	if err != nil {
		return nil, err
	}

	u := &models.User{Username: c.Username, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, newValidationError("username", "a user with that username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user registered", zap.Int64("user_id", u.ID))
	return u, nil
}

// Authenticate проверяет имя и пароль
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
