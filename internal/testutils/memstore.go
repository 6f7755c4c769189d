package testutils

import (
	"barter/db"
	"barter/models"
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemStorage - хранилище в памяти с той же семантикой фильтров, что и db.Storage.
// Поле Err, если задано, возвращается из всех методов.
type MemStorage struct {
	mu        sync.Mutex
	users     map[int64]*models.User
	ads       map[int64]*models.Ad
	proposals map[int64]*models.ExchangeProposal
	lastID    int64
	clock     time.Time

	Err error
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:     map[int64]*models.User{},
		ads:       map[int64]*models.Ad{},
		proposals: map[int64]*models.ExchangeProposal{},
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// nextID выдает id и строго возрастающее время создания
func (m *MemStorage) nextID() (int64, time.Time) {
	m.lastID++
	m.clock = m.clock.Add(time.Second)
	return m.lastID, m.clock
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (m *MemStorage) CreateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return db.ErrDuplicate
		}
	}
	u.ID, u.CreatedAt = m.nextID()
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *MemStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *MemStorage) CreateAd(ctx context.Context, a *models.Ad) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	a.ID, a.CreatedAt = m.nextID()
	stored := *a
	m.ads[a.ID] = &stored
	return nil
}

func (m *MemStorage) GetAd(ctx context.Context, id int64) (*models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.ads[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	found := *a
	return &found, nil
}

func (m *MemStorage) UpdateAd(ctx context.Context, a *models.Ad) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	stored, ok := m.ads[a.ID]
	if !ok {
		return db.ErrNotFound
	}
	stored.Title = a.Title
	stored.Description = a.Description
	stored.ImageURL = a.ImageURL
	stored.Category = a.Category
	stored.Condition = a.Condition
	return nil
}

// DeleteAd удаляет объявление и каскадно его предложения
func (m *MemStorage) DeleteAd(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.ads[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.ads, id)
	for pid, p := range m.proposals {
		if p.AdSenderID == id || p.AdReceiverID == id {
			delete(m.proposals, pid)
		}
	}
	return nil
}

func (m *MemStorage) filterAds(f models.AdFilter) []models.Ad {
	var out []models.Ad
	for _, a := range m.ads {
		if f.Query != "" && !containsFold(a.Title, f.Query) && !containsFold(a.Description, f.Query) {
			continue
		}
		if f.Category != "" && !containsFold(a.Category, f.Category) {
			continue
		}
		if f.Condition != "" && a.Condition != f.Condition {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *MemStorage) ListAds(ctx context.Context, f models.AdFilter, limit, offset int) ([]models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	ads := m.filterAds(f)
	if offset >= len(ads) {
		return []models.Ad{}, nil
	}
	end := offset + limit
	if end > len(ads) {
		end = len(ads)
	}
	return ads[offset:end], nil
}

func (m *MemStorage) CountAds(ctx context.Context, f models.AdFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.filterAds(f)), nil
}

func (m *MemStorage) GetUserAds(ctx context.Context, ownerID int64) ([]models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	ads := []models.Ad{}
	for _, a := range m.filterAds(models.AdFilter{}) {
		if a.OwnerID == ownerID {
			ads = append(ads, a)
		}
	}
	return ads, nil
}

func (m *MemStorage) CreateProposal(ctx context.Context, p *models.ExchangeProposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.ads[p.AdSenderID] == nil {
		return &db.ConstraintError{Err: db.ErrForeignKey, Constraint: db.ProposalSenderFK}
	}
	if m.ads[p.AdReceiverID] == nil {
		return &db.ConstraintError{Err: db.ErrForeignKey, Constraint: db.ProposalReceiverFK}
	}
	p.ID, p.CreatedAt = m.nextID()
	stored := models.ExchangeProposal{
		ID:           p.ID,
		AdSenderID:   p.AdSenderID,
		AdReceiverID: p.AdReceiverID,
		Comment:      p.Comment,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}
	m.proposals[p.ID] = &stored
	return nil
}

// joined дополняет предложение данными объявлений, как JOIN в db.Storage
func (m *MemStorage) joined(p *models.ExchangeProposal) models.ExchangeProposal {
	out := *p
	if s := m.ads[p.AdSenderID]; s != nil {
		out.SenderTitle, out.SenderOwnerID = s.Title, s.OwnerID
	}
	if r := m.ads[p.AdReceiverID]; r != nil {
		out.ReceiverTitle, out.ReceiverOwnerID = r.Title, r.OwnerID
	}
	return out
}

func (m *MemStorage) GetProposal(ctx context.Context, id int64) (*models.ExchangeProposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.proposals[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	out := m.joined(p)
	return &out, nil
}

func (m *MemStorage) UpdateProposalStatus(ctx context.Context, id int64, status models.ProposalStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	p, ok := m.proposals[id]
	if !ok {
		return db.ErrNotFound
	}
	p.Status = status
	return nil
}

func (m *MemStorage) ListUserProposals(ctx context.Context, userID int64, f models.ProposalFilter) ([]models.ExchangeProposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.ExchangeProposal{}
	for _, stored := range m.proposals {
		p := m.joined(stored)
		if p.SenderOwnerID != userID && p.ReceiverOwnerID != userID {
			continue
		}
		if f.SenderTitle != "" && !containsFold(p.SenderTitle, f.SenderTitle) {
			continue
		}
		if f.ReceiverTitle != "" && !containsFold(p.ReceiverTitle, f.ReceiverTitle) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// AdCount - число объявлений в хранилище
func (m *MemStorage) AdCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ads)
}

// ProposalCount - число предложений в хранилище
func (m *MemStorage) ProposalCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.proposals)
}
