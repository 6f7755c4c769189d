package models

import "time"

// Состояние вещи в объявлении
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// Valid сообщает, входит ли значение в перечисление
func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}

// Статус предложения обмена
type ProposalStatus string

const (
	StatusPending  ProposalStatus = "pending"
	StatusAccepted ProposalStatus = "accepted"
	StatusRejected ProposalStatus = "rejected"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Сущность Пользователя
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Сущность Объявления
type Ad struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     int64     `db:"owner_id" json:"ownerId"`
	Title       string    `db:"title" json:"title" validate:"required,max=200"`
	Description string    `db:"description" json:"description" validate:"required"`
	ImageURL    string    `db:"image_url" json:"imageUrl" validate:"omitempty,url,max=500"`
	Category    string    `db:"category" json:"category" validate:"required,max=100"`
	Condition   Condition `db:"condition" json:"condition" validate:"required,oneof=new used"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// AdSummary - публичное представление объявления для внешних потребителей
type AdSummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Condition   Condition `json:"condition"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *Ad) Summary() AdSummary {
	return AdSummary{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		Condition:   a.Condition,
		CreatedAt:   a.CreatedAt,
	}
}

// Сущность Предложения обмена.
// Поля Sender*/Receiver* заполняются только при чтении (JOIN с объявлениями).
type ExchangeProposal struct {
	ID           int64          `db:"id" json:"id"`
	AdSenderID   int64          `db:"ad_sender_id" json:"adSenderId" validate:"required"`
	AdReceiverID int64          `db:"ad_receiver_id" json:"adReceiverId" validate:"required"`
	Comment      string         `db:"comment" json:"comment" validate:"max=1000"`
	Status       ProposalStatus `db:"status" json:"status" validate:"required,oneof=pending accepted rejected"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`

	SenderTitle     string `db:"sender_title" json:"senderTitle,omitempty"`
	SenderOwnerID   int64  `db:"sender_owner_id" json:"senderOwnerId,omitempty"`
	ReceiverTitle   string `db:"receiver_title" json:"receiverTitle,omitempty"`
	ReceiverOwnerID int64  `db:"receiver_owner_id" json:"receiverOwnerId,omitempty"`
}

// AdFilter - фильтры списка объявлений. Пустое поле = без ограничения.
type AdFilter struct {
	Query     string
	Category  string
	Condition Condition
}

// ProposalFilter - фильтры списка предложений пользователя
type ProposalFilter struct {
	SenderTitle   string
	ReceiverTitle string
	Status        ProposalStatus
}

// AdPage - страница объявлений с метаданными пагинации
type AdPage struct {
	Items       []Ad `json:"items"`
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}
