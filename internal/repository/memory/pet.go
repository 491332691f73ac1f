// internal/repository/memory/pet.go
package memory

import (
	"sort"
	"sync"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

type PetRepository struct {
	mu   sync.Mutex
	pets map[uuid.UUID]model.Pet
}

func NewPetRepository() *PetRepository {
	return &PetRepository{pets: make(map[uuid.UUID]model.Pet)}
}

func (r *PetRepository) Create(_ uow.Session, pet *model.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&pet.ID)
	r.pets[pet.ID] = *pet
	return nil
}

func (r *PetRepository) FindByID(_ uow.Session, id uuid.UUID) (*model.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pet, ok := r.pets[id]
	if !ok {
		return nil, domain.ErrPetNotFound
	}
	return &pet, nil
}

func (r *PetRepository) FindByOwner(_ uow.Session, ownerProfileID uuid.UUID) ([]model.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pets []model.Pet
	for _, pet := range r.pets {
		if pet.OwnerProfileID == ownerProfileID {
			pets = append(pets, pet)
		}
	}
	sort.Slice(pets, func(i, j int) bool { return pets[i].Name < pets[j].Name })
	return pets, nil
}

func (r *PetRepository) FindByAdoptionAnimal(_ uow.Session, adoptionAnimalID uuid.UUID) (*model.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pet := range r.pets {
		if pet.AdoptionAnimalID != nil && *pet.AdoptionAnimalID == adoptionAnimalID {
			found := pet
			return &found, nil
		}
	}
	return nil, domain.ErrPetNotFound
}

func (r *PetRepository) Update(_ uow.Session, pet *model.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[pet.ID]; !ok {
		return domain.ErrPetNotFound
	}
	r.pets[pet.ID] = *pet
	return nil
}

func (r *PetRepository) Delete(_ uow.Session, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pets, id)
	return nil
}

type PetSightRepository struct {
	mu     sync.Mutex
	sights map[uuid.UUID]model.PetSight
}

func NewPetSightRepository() *PetSightRepository {
	return &PetSightRepository{sights: make(map[uuid.UUID]model.PetSight)}
}

func (r *PetSightRepository) Create(_ uow.Session, sight *model.PetSight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&sight.ID)
	r.sights[sight.ID] = *sight
	return nil
}

func (r *PetSightRepository) FindByPet(_ uow.Session, petID uuid.UUID, limit, offset int) ([]model.PetSight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sights []model.PetSight
	for _, sight := range r.sights {
		if sight.PetID == petID {
			sights = append(sights, sight)
		}
	}
	sort.Slice(sights, func(i, j int) bool { return sights[i].CreatedAt.Before(sights[j].CreatedAt) })
	if offset >= len(sights) {
		return nil, nil
	}
	sights = sights[offset:]
	if limit > 0 && limit < len(sights) {
		sights = sights[:limit]
	}
	return sights, nil
}

func (r *PetSightRepository) CountByPet(_ uow.Session, petID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, sight := range r.sights {
		if sight.PetID == petID {
			count++
		}
	}
	return count, nil
}

func (r *PetSightRepository) DeleteByPet(_ uow.Session, petID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, sight := range r.sights {
		if sight.PetID == petID {
			delete(r.sights, id)
		}
	}
	return nil
}
