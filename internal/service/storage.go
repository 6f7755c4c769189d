package service

import (
	"barter/models"
	"context"
)

// Storage - хранилище, которым пользуется сервис. Реализуется db.Storage.
type Storage interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	CreateAd(ctx context.Context, a *models.Ad) error
	GetAd(ctx context.Context, id int64) (*models.Ad, error)
	UpdateAd(ctx context.Context, a *models.Ad) error
	DeleteAd(ctx context.Context, id int64) error
	ListAds(ctx context.Context, f models.AdFilter, limit, offset int) ([]models.Ad, error)
	CountAds(ctx context.Context, f models.AdFilter) (int, error)
	GetUserAds(ctx context.Context, ownerID int64) ([]models.Ad, error)

	CreateProposal(ctx context.Context, p *models.ExchangeProposal) error
	GetProposal(ctx context.Context, id int64) (*models.ExchangeProposal, error)
	UpdateProposalStatus(ctx context.Context, id int64, status models.ProposalStatus) error
	ListUserProposals(ctx context.Context, userID int64, f models.ProposalFilter) ([]models.ExchangeProposal, error)
}
