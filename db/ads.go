package db

import (
	"barter/models"
	"context"
)

const adColumns = "id, owner_id, title, description, image_url, category, condition, created_at"

func (s *Storage) CreateAd(ctx context.Context, a *models.Ad) error {
	query := `
        INSERT INTO ad
            (owner_id, title, description, image_url, category, condition)
        VALUES
            ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query,
		a.OwnerID, a.Title, a.Description, a.ImageURL, a.Category, a.Condition).
		Scan(&a.ID, &a.CreatedAt)
	return mapError(err)
}

func (s *Storage) GetAd(ctx context.Context, id int64) (*models.Ad, error) {
	a := &models.Ad{}
	query := `SELECT ` + adColumns + ` FROM ad WHERE id=$1`
	if err := s.db.GetContext(ctx, a, query, id); err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

// UpdateAd сохраняет изменяемые поля; owner_id и created_at не трогаются
func (s *Storage) UpdateAd(ctx context.Context, a *models.Ad) error {
	query := `
        UPDATE ad
        SET title=$1, description=$2, image_url=$3, category=$4, condition=$5
        WHERE id=$6`
	res, err := s.db.ExecContext(ctx, query,
		a.Title, a.Description, a.ImageURL, a.Category, a.Condition, a.ID)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

// DeleteAd удаляет объявление; предложения с ним удаляются каскадно
func (s *Storage) DeleteAd(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ad WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func adFilterWhere(f models.AdFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.Query != "" {
		p := containsPattern(f.Query)
		w.add(`(title ILIKE ? OR description ILIKE ?)`, p, p)
	}
	if f.Category != "" {
		w.add(`category ILIKE ?`, containsPattern(f.Category))
	}
	if f.Condition != "" {
		w.add(`condition = ?`, f.Condition)
	}
	return w
}

// ListAds возвращает страницу объявлений, новые первыми
func (s *Storage) ListAds(ctx context.Context, f models.AdFilter, limit, offset int) ([]models.Ad, error) {
	w := adFilterWhere(f)
	query := `SELECT ` + adColumns + ` FROM ad` + w.String() +
		` ORDER BY created_at DESC, id DESC` + w.page(limit, offset)

	ads := []models.Ad{}
	if err := s.db.SelectContext(ctx, &ads, query, w.args...); err != nil {
		return nil, mapError(err)
	}
	return ads, nil
}

func (s *Storage) CountAds(ctx context.Context, f models.AdFilter) (int, error) {
	w := adFilterWhere(f)
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM ad`+w.String(), w.args...)
	return count, mapError(err)
}

func (s *Storage) GetUserAds(ctx context.Context, ownerID int64) ([]models.Ad, error) {
	query := `
        SELECT ` + adColumns + ` FROM ad
        WHERE owner_id = $1
        ORDER BY created_at DESC, id DESC`
	ads := []models.Ad{}
	if err := s.db.SelectContext(ctx, &ads, query, ownerID); err != nil {
		return nil, mapError(err)
	}
	return ads, nil
}
