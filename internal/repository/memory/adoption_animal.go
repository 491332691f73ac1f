// internal/repository/memory/adoption_animal.go
package memory

import (
	"sort"
	"sync"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

type AdoptionAnimalRepository struct {
	mu      sync.Mutex
	animals map[uuid.UUID]model.AdoptionAnimal
}

func NewAdoptionAnimalRepository() *AdoptionAnimalRepository {
	return &AdoptionAnimalRepository{animals: make(map[uuid.UUID]model.AdoptionAnimal)}
}

func (r *AdoptionAnimalRepository) Create(_ uow.Session, animal *model.AdoptionAnimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&animal.ID)
	r.animals[animal.ID] = *animal
	return nil
}

func (r *AdoptionAnimalRepository) FindByID(_ uow.Session, id uuid.UUID, includeDeleted bool) (*model.AdoptionAnimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	animal, ok := r.animals[id]
	if !ok || (animal.Deleted && !includeDeleted) {
		return nil, domain.ErrAnimalNotFound
	}
	return &animal, nil
}

// FindByIDLocked has no lock to take here; the fake serializes through
// its mutex.
func (r *AdoptionAnimalRepository) FindByIDLocked(s uow.Session, id uuid.UUID) (*model.AdoptionAnimal, error) {
	return r.FindByID(s, id, true)
}

func (r *AdoptionAnimalRepository) Update(_ uow.Session, animal *model.AdoptionAnimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.animals[animal.ID]; !ok {
		return domain.ErrAnimalNotFound
	}
	r.animals[animal.ID] = *animal
	return nil
}

func (r *AdoptionAnimalRepository) matches(animal model.AdoptionAnimal, filter repository.AnimalFilter) bool {
	if animal.Deleted && !filter.IncludeDeleted {
		return false
	}
	if filter.Species != "" && animal.Species != filter.Species {
		return false
	}
	if filter.OwnerProfileID != uuid.Nil && animal.OwnerProfileID != filter.OwnerProfileID {
		return false
	}
	if filter.OrganizationID != uuid.Nil &&
		(animal.OrganizationID == nil || *animal.OrganizationID != filter.OrganizationID) {
		return false
	}
	if filter.State != "" && animal.State != filter.State {
		return false
	}
	return true
}

func (r *AdoptionAnimalRepository) List(_ uow.Session, filter repository.AnimalFilter) ([]model.AdoptionAnimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var animals []model.AdoptionAnimal
	for _, animal := range r.animals {
		if r.matches(animal, filter) {
			animals = append(animals, animal)
		}
	}
	sort.Slice(animals, func(i, j int) bool {
		return animals[i].PublicationDate.After(animals[j].PublicationDate)
	})
	if filter.Offset >= len(animals) {
		return nil, nil
	}
	animals = animals[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(animals) {
		animals = animals[:filter.Limit]
	}
	return animals, nil
}

func (r *AdoptionAnimalRepository) Count(_ uow.Session, filter repository.AnimalFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, animal := range r.animals {
		if r.matches(animal, filter) {
			count++
		}
	}
	return count, nil
}
