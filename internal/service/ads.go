package service

import (
	"barter/models"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// AdInput - поля нового объявления
type AdInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	ImageURL    string           `json:"imageUrl"`
	Category    string           `json:"category"`
	Condition   models.Condition `json:"condition"`
}

// AdPatch - частичное обновление объявления; nil означает "не менять"
type AdPatch struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	ImageURL    *string           `json:"imageUrl"`
	Category    *string           `json:"category"`
	Condition   *models.Condition `json:"condition"`
}

func (p AdPatch) apply(a *models.Ad) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Condition != nil {
		a.Condition = *p.Condition
	}
}

func normalizeAd(a *models.Ad) {
	a.Title = strings.TrimSpace(a.Title)
	a.Category = strings.TrimSpace(a.Category)
	a.ImageURL = strings.TrimSpace(a.ImageURL)
}

// ListAds возвращает страницу объявлений. Неизвестное состояние в фильтре
// игнорируется, размер страницы вне списка разрешенных заменяется на 4.
func (s *Service) ListAds(ctx context.Context, f models.AdFilter, page, pageSize int) (*models.AdPage, error) {
	f.Query = strings.TrimSpace(f.Query)
	f.Category = strings.TrimSpace(f.Category)
	if !f.Condition.Valid() {
		f.Condition = ""
	}
	pageSize = NormalizePageSize(pageSize)

	total, err := s.store.CountAds(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count ads: %w", err)
	}
	b := paginate(page, pageSize, total)

	ads, err := s.store.ListAds(ctx, f, pageSize, b.offset)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}

	return &models.AdPage{
		Items:       ads,
		Page:        b.page,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  b.totalPages,
		HasNext:     b.page < b.totalPages,
		HasPrevious: b.page > 1,
	}, nil
}

func (s *Service) GetAd(ctx context.Context, id int64) (*models.Ad, error) {
	ad, err := s.store.GetAd(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return ad, nil
}

// ListUserAds - объявления пользователя; из них выбирается отправитель предложения
func (s *Service) ListUserAds(ctx context.Context, requesterID int64) ([]models.Ad, error) {
	if err := requireActor(requesterID); err != nil {
		return nil, err
	}
	ads, err := s.store.GetUserAds(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list user ads: %w", err)
	}
	return ads, nil
}

func (s *Service) CreateAd(ctx context.Context, requesterID int64, in AdInput) (*models.Ad, error) {
	if err := requireActor(requesterID); err != nil {
		return nil, err
	}

	ad := &models.Ad{
		OwnerID:     requesterID,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Condition:   in.Condition,
	}
	normalizeAd(ad)
	if err := s.validateStruct(ad); err != nil {
		return nil, err
	}

	if err := s.store.CreateAd(ctx, ad); err != nil {
		return nil, fmt.Errorf("create ad: %w", err)
	}
	s.logger.Info("ad created", zap.Int64("ad_id", ad.ID), zap.Int64("owner_id", requesterID))
	return ad, nil
}

// UpdateAd меняет поля объявления. Владелец и дата создания не меняются.
func (s *Service) UpdateAd(ctx context.Context, id, requesterID int64, patch AdPatch) (*models.Ad, error) {
	if err := requireActor(requesterID); err != nil {
		return nil, err
	}

	ad, err := s.store.GetAd(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if !CanEdit(requesterID, ad) {
		return nil, ErrForbidden
	}

	updated := *ad
	patch.apply(&updated)
	normalizeAd(&updated)
	if err := s.validateStruct(&updated); err != nil {
		return nil, err
	}

	if err := s.store.UpdateAd(ctx, &updated); err != nil {
		return nil, storeErr(err)
	}
	s.logger.Info("ad updated", zap.Int64("ad_id", id), zap.Int64("owner_id", requesterID))
	return &updated, nil
}

func (s *Service) DeleteAd(ctx context.Context, id, requesterID int64) error {
	if err := requireActor(requesterID); err != nil {
		return err
	}

	ad, err := s.store.GetAd(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if !CanEdit(requesterID, ad) {
		return ErrForbidden
	}

	if err := s.store.DeleteAd(ctx, id); err != nil {
		return storeErr(err)
	}
	s.logger.Info("ad deleted", zap.Int64("ad_id", id), zap.Int64("owner_id", requesterID))
	return nil
}
