package service

import (
	"barter/db"
	"barter/models"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ProposalInput - предложение обменять свое объявление AdSenderID на AdReceiverID
type ProposalInput struct {
	AdSenderID   int64  `json:"adSenderId"`
	AdReceiverID int64  `json:"adReceiverId"`
	Comment      string `json:"comment"`
}

// ProposeExchange создает предложение со статусом pending.
// Отправитель должен принадлежать requesterID, получатель - существовать
// и принадлежать другому пользователю.
func (s *Service) ProposeExchange(ctx context.Context, requesterID int64, in ProposalInput) (*models.ExchangeProposal, error) {
	if err := requireActor(requesterID); err != nil {
		return nil, err
	}

	p := &models.ExchangeProposal{
		AdSenderID:   in.AdSenderID,
		AdReceiverID: in.AdReceiverID,
		Comment:      strings.TrimSpace(in.Comment),
		Status:       models.StatusPending,
	}
	if err := s.validateStruct(p); err != nil {
		return nil, err
	}

	sender, err := s.store.GetAd(ctx, p.AdSenderID)
	switch {
	case errors.Is(storeErr(err), ErrNotFound):
		return nil, newValidationError("adSenderId", "ad does not exist")
	case err != nil:
		return nil, fmt.Errorf("get sender ad: %w", err)
	case sender.OwnerID != requesterID:
		return nil, newValidationError("adSenderId", "you can only offer your own ad")
	}

	receiver, err := s.store.GetAd(ctx, p.AdReceiverID)
	switch {
	case errors.Is(storeErr(err), ErrNotFound):
		return nil, newValidationError("adReceiverId", "ad does not exist")
	case err != nil:
		return nil, fmt.Errorf("get receiver ad: %w", err)
	case receiver.OwnerID == requesterID:
		return nil, newValidationError("adReceiverId", "cannot propose an exchange for your own ad")
	}

	// объявление могли удалить после проверки
	if err := s.store.CreateProposal(ctx, p); err != nil {
		if errors.Is(err, db.ErrForeignKey) {
			if db.Constraint(err) == db.ProposalSenderFK {
				return nil, newValidationError("adSenderId", "ad does not exist")
			}
			return nil, newValidationError("adReceiverId", "ad does not exist")
		}
		return nil, fmt.Errorf("create proposal: %w", err)
	}
	p.SenderTitle, p.SenderOwnerID = sender.Title, sender.OwnerID
	p.ReceiverTitle, p.ReceiverOwnerID = receiver.Title, receiver.OwnerID

	s.logger.Info("exchange proposed",
		zap.Int64("proposal_id", p.ID),
		zap.Int64("ad_sender_id", p.AdSenderID),
		zap.Int64("ad_receiver_id", p.AdReceiverID))
	return p, nil
}

// ListUserProposals - отправленные и полученные предложения пользователя.
// Статус сравнивается точно: неизвестное значение не совпадает ни с одним предложением.
func (s *Service) ListUserProposals(ctx context.Context, requesterID int64, f models.ProposalFilter) ([]models.ExchangeProposal, error) {
	if err := requireActor(requesterID); err != nil {
		return nil, err
	}
	f.SenderTitle = strings.TrimSpace(f.SenderTitle)
	f.ReceiverTitle = strings.TrimSpace(f.ReceiverTitle)
	f.Status = models.ProposalStatus(strings.TrimSpace(string(f.Status)))

	proposals, err := s.store.ListUserProposals(ctx, requesterID, f)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return proposals, nil
}

// GetProposal возвращает предложение, если пользователь его участник
func (s *Service) GetProposal(ctx context.Context, id, requesterID int64) (*models.ExchangeProposal, error) {
	if err := requireActor(requesterID); err != nil {
		return nil, err
	}
	p, err := s.store.GetProposal(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if !CanView(requesterID, p) {
		return nil, ErrForbidden
	}
	return p, nil
}

// UpdateProposalStatus меняет статус предложения. Разрешено только владельцу
// объявления-получателя. Переходы между статусами не ограничены.
func (s *Service) UpdateProposalStatus(ctx context.Context, id, requesterID int64, status models.ProposalStatus) (*models.ExchangeProposal, error) {
	if err := requireActor(requesterID); err != nil {
		return nil, err
	}

	p, err := s.store.GetProposal(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if !CanDecide(requesterID, p) {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, newValidationError("status", "must be one of: pending accepted rejected")
	}

	if err := s.store.UpdateProposalStatus(ctx, id, status); err != nil {
		return nil, storeErr(err)
	}
	s.logger.Info("proposal status changed",
		zap.Int64("proposal_id", id),
		zap.String("from", string(p.Status)),
		zap.String("to", string(status)))

	p.Status = status
	return p, nil
}
