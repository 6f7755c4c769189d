package db

import (
	"barter/models"
	"context"
)

// Предложение вместе с заголовками и владельцами обоих объявлений
const proposalSelect = `
        SELECT p.id, p.ad_sender_id, p.ad_receiver_id, p.comment, p.status, p.created_at,
               s.title AS sender_title, s.owner_id AS sender_owner_id,
               r.title AS receiver_title, r.owner_id AS receiver_owner_id
        FROM exchange_proposal p
        JOIN ad s ON s.id = p.ad_sender_id
        JOIN ad r ON r.id = p.ad_receiver_id`

func (s *Storage) CreateProposal(ctx context.Context, p *models.ExchangeProposal) error {
	query := `
        INSERT INTO exchange_proposal
            (ad_sender_id, ad_receiver_id, comment, status)
        VALUES
            ($1, $2, $3, $4)
        RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query,
		p.AdSenderID, p.AdReceiverID, p.Comment, p.Status).
		Scan(&p.ID, &p.CreatedAt)
	return mapError(err)
}

func (s *Storage) GetProposal(ctx context.Context, id int64) (*models.ExchangeProposal, error) {
	p := &models.ExchangeProposal{}
	if err := s.db.GetContext(ctx, p, proposalSelect+` WHERE p.id = $1`, id); err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (s *Storage) UpdateProposalStatus(ctx context.Context, id int64, status models.ProposalStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE exchange_proposal SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

// ListUserProposals возвращает предложения, где пользователь владеет
// объявлением-отправителем или объявлением-получателем
func (s *Storage) ListUserProposals(ctx context.Context, userID int64, f models.ProposalFilter) ([]models.ExchangeProposal, error) {
	w := &whereBuilder{}
	w.add(`(s.owner_id = ? OR r.owner_id = ?)`, userID, userID)
	if f.SenderTitle != "" {
		w.add(`s.title ILIKE ?`, containsPattern(f.SenderTitle))
	}
	if f.ReceiverTitle != "" {
		w.add(`r.title ILIKE ?`, containsPattern(f.ReceiverTitle))
	}
	if f.Status != "" {
		w.add(`p.status = ?`, f.Status)
	}

	query := proposalSelect + w.String() + ` ORDER BY p.created_at DESC, p.id DESC`
	proposals := []models.ExchangeProposal{}
	if err := s.db.SelectContext(ctx, &proposals, query, w.args...); err != nil {
		return nil, mapError(err)
	}
	return proposals, nil
}
