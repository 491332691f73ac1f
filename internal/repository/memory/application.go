// internal/repository/memory/application.go
package memory

import (
	"sort"
	"sync"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

type AdoptionApplicationRepository struct {
	mu           sync.Mutex
	applications map[uuid.UUID]model.AdoptionApplication
}

func NewAdoptionApplicationRepository() *AdoptionApplicationRepository {
	return &AdoptionApplicationRepository{applications: make(map[uuid.UUID]model.AdoptionApplication)}
}

func (r *AdoptionApplicationRepository) Create(_ uow.Session, application *model.AdoptionApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&application.ID)
	r.applications[application.ID] = *application
	return nil
}

func (r *AdoptionApplicationRepository) FindByID(_ uow.Session, id uuid.UUID) (*model.AdoptionApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return &application, nil
}

func (r *AdoptionApplicationRepository) Update(_ uow.Session, application *model.AdoptionApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.applications[application.ID]; !ok {
		return domain.ErrApplicationNotFound
	}
	r.applications[application.ID] = *application
	return nil
}

func (r *AdoptionApplicationRepository) FindByAnimal(_ uow.Session, animalID uuid.UUID) ([]model.AdoptionApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var applications []model.AdoptionApplication
	for _, application := range r.applications {
		if application.AnimalID == animalID {
			applications = append(applications, application)
		}
	}
	sort.Slice(applications, func(i, j int) bool {
		return applications[i].ApplicationDate.Before(applications[j].ApplicationDate)
	})
	return applications, nil
}

func (r *AdoptionApplicationRepository) FindByAdopter(_ uow.Session, adopterProfileID uuid.UUID, limit, offset int) ([]model.AdoptionApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var applications []model.AdoptionApplication
	for _, application := range r.applications {
		if application.AdopterProfileID == adopterProfileID {
			applications = append(applications, application)
		}
	}
	sort.Slice(applications, func(i, j int) bool {
		return applications[i].ApplicationDate.After(applications[j].ApplicationDate)
	})
	if offset >= len(applications) {
		return nil, nil
	}
	applications = applications[offset:]
	if limit > 0 && limit < len(applications) {
		applications = applications[:limit]
	}
	return applications, nil
}

func (r *AdoptionApplicationRepository) FindOpenByAdopterAndAnimal(_ uow.Session, adopterProfileID, animalID uuid.UUID) (*model.AdoptionApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, application := range r.applications {
		if application.AdopterProfileID == adopterProfileID &&
			application.AnimalID == animalID &&
			application.State != model.ApplicationRejected {
			found := application
			return &found, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

type AdoptionRepository struct {
	mu        sync.Mutex
	adoptions map[uuid.UUID]model.Adoption
}

func NewAdoptionRepository() *AdoptionRepository {
	return &AdoptionRepository{adoptions: make(map[uuid.UUID]model.Adoption)}
}

func (r *AdoptionRepository) Create(_ uow.Session, adoption *model.Adoption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.adoptions {
		if existing.AdoptionApplicationID == adoption.AdoptionApplicationID {
			return domain.ErrApplicationAlreadyClosed
		}
	}
	ensureID(&adoption.ID)
	r.adoptions[adoption.ID] = *adoption
	return nil
}

func (r *AdoptionRepository) FindByApplication(_ uow.Session, applicationID uuid.UUID) (*model.Adoption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, adoption := range r.adoptions {
		if adoption.AdoptionApplicationID == applicationID {
			found := adoption
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}
