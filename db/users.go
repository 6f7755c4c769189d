package db

import (
	"barter/models"
	"context"
)

func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	query := `
        INSERT INTO users (username, password_hash)
        VALUES ($1, $2)
        RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt)
	return mapError(err)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username=$1`
	if err := s.db.GetContext(ctx, u, query, username); err != nil {
		return nil, mapError(err)
	}
	return u, nil
}
