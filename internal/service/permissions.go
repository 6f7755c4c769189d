package service

import "barter/models"

// CanEdit - изменять и удалять объявление может только его владелец
func CanEdit(actorID int64, ad *models.Ad) bool {
	return actorID > 0 && ad != nil && ad.OwnerID == actorID
}

// CanDecide - менять статус предложения может только владелец объявления-получателя
func CanDecide(actorID int64, p *models.ExchangeProposal) bool {
	return actorID > 0 && p != nil && p.ReceiverOwnerID == actorID
}

// CanView - предложение видят владельцы обоих объявлений
func CanView(actorID int64, p *models.ExchangeProposal) bool {
	return actorID > 0 && p != nil && (p.SenderOwnerID == actorID || p.ReceiverOwnerID == actorID)
}
