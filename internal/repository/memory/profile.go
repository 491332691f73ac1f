// internal/repository/memory/profile.go
package memory

import (
	"sort"
	"sync"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

type ProfileRepository struct {
	mu             sync.Mutex
	personal       map[uuid.UUID]model.PersonalProfile
	organizational map[uuid.UUID]model.OrganizationalProfile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		personal:       make(map[uuid.UUID]model.PersonalProfile),
		organizational: make(map[uuid.UUID]model.OrganizationalProfile),
	}
}

func (r *ProfileRepository) CreatePersonal(_ uow.Session, profile *model.PersonalProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&profile.ID)
	r.personal[profile.ID] = *profile
	return nil
}

func (r *ProfileRepository) CreateOrganizational(_ uow.Session, profile *model.OrganizationalProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&profile.ID)
	r.organizational[profile.ID] = *profile
	return nil
}

func (r *ProfileRepository) UpdatePersonal(_ uow.Session, profile *model.PersonalProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.personal[profile.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	r.personal[profile.ID] = *profile
	return nil
}

func (r *ProfileRepository) UpdateOrganizational(_ uow.Session, profile *model.OrganizationalProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.organizational[profile.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	r.organizational[profile.ID] = *profile
	return nil
}

func (r *ProfileRepository) FindByAccount(_ uow.Session, accountID uuid.UUID) (model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.personal {
		if p.AccountID == accountID {
			found := p
			return model.Profile{Personal: &found}, nil
		}
	}
	for _, o := range r.organizational {
		if o.AccountID == accountID {
			found := o
			return model.Profile{Organizational: &found}, nil
		}
	}
	return model.Profile{}, domain.ErrProfileNotFound
}

func (r *ProfileRepository) FindByID(_ uow.Session, id uuid.UUID) (model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.personal[id]; ok {
		return model.Profile{Personal: &p}, nil
	}
	if o, ok := r.organizational[id]; ok {
		return model.Profile{Organizational: &o}, nil
	}
	return model.Profile{}, domain.ErrProfileNotFound
}

func (r *ProfileRepository) FindByOrganization(_ uow.Session, orgID uuid.UUID, limit, offset int) ([]model.OrganizationalProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var members []model.OrganizationalProfile
	for _, o := range r.organizational {
		if o.OrganizationID == orgID {
			members = append(members, o)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Surname < members[j].Surname })
	if offset >= len(members) {
		return nil, nil
	}
	members = members[offset:]
	if limit > 0 && limit < len(members) {
		members = members[:limit]
	}
	return members, nil
}

func (r *ProfileRepository) CountByOrganization(_ uow.Session, orgID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, o := range r.organizational {
		if o.OrganizationID == orgID {
			count++
		}
	}
	return count, nil
}

func (r *ProfileRepository) FindAdminByOrganization(_ uow.Session, orgID uuid.UUID) (*model.OrganizationalProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.organizational {
		if o.OrganizationID == orgID && o.Role == model.RoleAdmin {
			found := o
			return &found, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}
