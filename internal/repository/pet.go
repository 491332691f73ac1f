// internal/repository/pet.go
package repository

import (
	"errors"
	"fmt"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PetRepositoryIface interface {
	Create(s uow.Session, pet *model.Pet) error
	FindByID(s uow.Session, id uuid.UUID) (*model.Pet, error)
	FindByOwner(s uow.Session, ownerProfileID uuid.UUID) ([]model.Pet, error)
	FindByAdoptionAnimal(s uow.Session, adoptionAnimalID uuid.UUID) (*model.Pet, error)
	Update(s uow.Session, pet *model.Pet) error
	// Delete removes the pet row; sightings cascade at the store level.
	Delete(s uow.Session, id uuid.UUID) error
}

type PetRepository struct{}

func NewPetRepository() *PetRepository {
	return &PetRepository{}
}

func (r *PetRepository) Create(s uow.Session, pet *model.Pet) error {
	if err := s.DB().Create(pet).Error; err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

func (r *PetRepository) FindByID(s uow.Session, id uuid.UUID) (*model.Pet, error) {
	var pet model.Pet
	if err := s.DB().First(&pet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to find pet: %w", err)
	}
	return &pet, nil
}

func (r *PetRepository) FindByOwner(s uow.Session, ownerProfileID uuid.UUID) ([]model.Pet, error) {
	var pets []model.Pet
	err := s.DB().
		Where("owner_profile_id = ?", ownerProfileID).
		Order("name").
		Find(&pets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pets by owner: %w", err)
	}
	return pets, nil
}

func (r *PetRepository) FindByAdoptionAnimal(s uow.Session, adoptionAnimalID uuid.UUID) (*model.Pet, error) {
	var pet model.Pet
	err := s.DB().Where("adoption_animal_id = ?", adoptionAnimalID).First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to find pet by adoption animal: %w", err)
	}
	return &pet, nil
}

func (r *PetRepository) Update(s uow.Session, pet *model.Pet) error {
	if err := s.DB().Save(pet).Error; err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}
	return nil
}

func (r *PetRepository) Delete(s uow.Session, id uuid.UUID) error {
	if err := s.DB().Delete(&model.Pet{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
	}
	return nil
}

type PetSightRepositoryIface interface {
	Create(s uow.Session, sight *model.PetSight) error
	FindByPet(s uow.Session, petID uuid.UUID, limit, offset int) ([]model.PetSight, error)
	CountByPet(s uow.Session, petID uuid.UUID) (int64, error)
	DeleteByPet(s uow.Session, petID uuid.UUID) error
}

type PetSightRepository struct{}

func NewPetSightRepository() *PetSightRepository {
	return &PetSightRepository{}
}

func (r *PetSightRepository) Create(s uow.Session, sight *model.PetSight) error {
	if err := s.DB().Create(sight).Error; err != nil {
		return fmt.Errorf("failed to create pet sight: %w", err)
	}
	return nil
}

func (r *PetSightRepository) FindByPet(s uow.Session, petID uuid.UUID, limit, offset int) ([]model.PetSight, error) {
	var sights []model.PetSight
	q := s.DB().Where("pet_id = ?", petID).Order("created_at")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&sights).Error; err != nil {
		return nil, fmt.Errorf("failed to list pet sights: %w", err)
	}
	return sights, nil
}

func (r *PetSightRepository) CountByPet(s uow.Session, petID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB().Model(&model.PetSight{}).Where("pet_id = ?", petID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count pet sights: %w", err)
	}
	return count, nil
}

func (r *PetSightRepository) DeleteByPet(s uow.Session, petID uuid.UUID) error {
	if err := s.DB().Delete(&model.PetSight{}, "pet_id = ?", petID).Error; err != nil {
		return fmt.Errorf("failed to delete pet sights: %w", err)
	}
	return nil
}
