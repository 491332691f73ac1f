// internal/repository/memory/organization.go
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

type OrganizationRepository struct {
	mu   sync.Mutex
	orgs map[uuid.UUID]model.Organization
}

func NewOrganizationRepository() *OrganizationRepository {
	return &OrganizationRepository{orgs: make(map[uuid.UUID]model.Organization)}
}

func (r *OrganizationRepository) Create(_ uow.Session, org *model.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&org.ID)
	r.orgs[org.ID] = *org
	return nil
}

func (r *OrganizationRepository) FindByID(_ uow.Session, id uuid.UUID) (*model.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	org, ok := r.orgs[id]
	if !ok {
		return nil, domain.ErrOrganizationNotFound
	}
	return &org, nil
}

func (r *OrganizationRepository) FindByName(_ uow.Session, name string) (*model.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, org := range r.orgs {
		if strings.EqualFold(org.Name, name) {
			found := org
			return &found, nil
		}
	}
	return nil, domain.ErrOrganizationNotFound
}

func (r *OrganizationRepository) Update(_ uow.Session, org *model.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orgs[org.ID]; !ok {
		return domain.ErrOrganizationNotFound
	}
	r.orgs[org.ID] = *org
	return nil
}

func (r *OrganizationRepository) List(_ uow.Session, limit, offset int) ([]model.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orgs := make([]model.Organization, 0, len(r.orgs))
	for _, org := range r.orgs {
		orgs = append(orgs, org)
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].Name < orgs[j].Name })
	if offset >= len(orgs) {
		return nil, nil
	}
	orgs = orgs[offset:]
	if limit > 0 && limit < len(orgs) {
		orgs = orgs[:limit]
	}
	return orgs, nil
}
