// internal/repository/memory/donation.go
package memory

import (
	"sort"
	"sync"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DonationRepository struct {
	mu        sync.Mutex
	campaigns map[uuid.UUID]model.DonationCampaign
	donations map[uuid.UUID]model.IndividualDonation
}

func NewDonationRepository() *DonationRepository {
	return &DonationRepository{
		campaigns: make(map[uuid.UUID]model.DonationCampaign),
		donations: make(map[uuid.UUID]model.IndividualDonation),
	}
}

func (r *DonationRepository) CreateCampaign(_ uow.Session, campaign *model.DonationCampaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&campaign.ID)
	r.campaigns[campaign.ID] = *campaign
	return nil
}

func (r *DonationRepository) FindCampaignByID(_ uow.Session, id uuid.UUID) (*model.DonationCampaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	campaign, ok := r.campaigns[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	return &campaign, nil
}

func (r *DonationRepository) FindCampaignByIDLocked(s uow.Session, id uuid.UUID) (*model.DonationCampaign, error) {
	return r.FindCampaignByID(s, id)
}

func (r *DonationRepository) UpdateCampaign(_ uow.Session, campaign *model.DonationCampaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[campaign.ID]; !ok {
		return domain.ErrCampaignNotFound
	}
	r.campaigns[campaign.ID] = *campaign
	return nil
}

func (r *DonationRepository) ListCampaigns(_ uow.Session, filter repository.CampaignFilter) ([]model.DonationCampaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var campaigns []model.DonationCampaign
	for _, campaign := range r.campaigns {
		if filter.OrganizationID != uuid.Nil && campaign.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.OnlyActive && !campaign.Active {
			continue
		}
		campaigns = append(campaigns, campaign)
	}
	sort.Slice(campaigns, func(i, j int) bool { return campaigns[i].Name < campaigns[j].Name })
	if filter.Offset >= len(campaigns) {
		return nil, nil
	}
	campaigns = campaigns[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(campaigns) {
		campaigns = campaigns[:filter.Limit]
	}
	return campaigns, nil
}

func (r *DonationRepository) CreateDonation(_ uow.Session, donation *model.IndividualDonation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&donation.ID)
	r.donations[donation.ID] = *donation
	return nil
}

func (r *DonationRepository) ListDonationsByCampaign(_ uow.Session, campaignID uuid.UUID, limit, offset int) ([]model.IndividualDonation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var donations []model.IndividualDonation
	for _, donation := range r.donations {
		if donation.CampaignID == campaignID {
			donations = append(donations, donation)
		}
	}
	sort.Slice(donations, func(i, j int) bool { return donations[i].CreatedAt.After(donations[j].CreatedAt) })
	if offset >= len(donations) {
		return nil, nil
	}
	donations = donations[offset:]
	if limit > 0 && limit < len(donations) {
		donations = donations[:limit]
	}
	return donations, nil
}

func (r *DonationRepository) SumNetByCampaign(_ uow.Session, campaignID uuid.UUID) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, donation := range r.donations {
		if donation.CampaignID == campaignID {
			total = total.Add(donation.Amount)
		}
	}
	return total, nil
}

type MpTransactionRepository struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]model.MpTransaction
}

func NewMpTransactionRepository() *MpTransactionRepository {
	return &MpTransactionRepository{transactions: make(map[uuid.UUID]model.MpTransaction)}
}

func (r *MpTransactionRepository) Create(_ uow.Session, tx *model.MpTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&tx.ID)
	r.transactions[tx.ID] = *tx
	return nil
}

func (r *MpTransactionRepository) FindByID(_ uow.Session, id uuid.UUID) (*model.MpTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tx, nil
}

// All returns every recorded transaction, newest last. Test helper.
func (r *MpTransactionRepository) All() []model.MpTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.MpTransaction, 0, len(r.transactions))
	for _, tx := range r.transactions {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
