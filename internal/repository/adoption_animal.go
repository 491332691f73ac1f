// internal/repository/adoption_animal.go
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

// AnimalFilter narrows adoption-animal listings. Zero values mean "no
// filter". Soft-deleted rows are excluded unless IncludeDeleted is set.
type AnimalFilter struct {
	Species        model.Species
	OwnerProfileID uuid.UUID
	OrganizationID uuid.UUID
	State          model.AdoptionState
	IncludeDeleted bool
	Limit          int
	Offset         int
}

type AdoptionAnimalRepositoryIface interface {
	Create(s uow.Session, animal *model.AdoptionAnimal) error
	// FindByID excludes soft-deleted rows unless includeDeleted is set.
	FindByID(s uow.Session, id uuid.UUID, includeDeleted bool) (*model.AdoptionAnimal, error)
	// FindByIDLocked reads the row with a FOR UPDATE lock so concurrent
	// acceptance attempts serialize on the animal.
	FindByIDLocked(s uow.Session, id uuid.UUID) (*model.AdoptionAnimal, error)
	Update(s uow.Session, animal *model.AdoptionAnimal) error
	List(s uow.Session, filter AnimalFilter) ([]model.AdoptionAnimal, error)
	Count(s uow.Session, filter AnimalFilter) (int64, error)
}

type AdoptionAnimalRepository struct{}

func NewAdoptionAnimalRepository() *AdoptionAnimalRepository {
	return &AdoptionAnimalRepository{}
}

func (r *AdoptionAnimalRepository) Create(s uow.Session, animal *model.AdoptionAnimal) error {
	if err := s.DB().Create(animal).Error; err != nil {
		return fmt.Errorf("failed to create adoption animal: %w", err)
	}
	return nil
}

func (r *AdoptionAnimalRepository) FindByID(s uow.Session, id uuid.UUID, includeDeleted bool) (*model.AdoptionAnimal, error) {
	q := s.DB().Where("id = ?", id)
	if !includeDeleted {
		q = q.Where("deleted = false")
	}

	var animal model.AdoptionAnimal
	if err := q.First(&animal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAnimalNotFound
		}
		return nil, fmt.Errorf("failed to find adoption animal: %w", err)
	}
	return &animal, nil
}

func (r *AdoptionAnimalRepository) FindByIDLocked(s uow.Session, id uuid.UUID) (*model.AdoptionAnimal, error) {
	var animal model.AdoptionAnimal
	err := s.DB().
		Clauses(forUpdate()).
		Where("id = ? AND deleted = false", id).
		First(&animal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAnimalNotFound
		}
		return nil, fmt.Errorf("failed to lock adoption animal: %w", err)
	}
	return &animal, nil
}

func (r *AdoptionAnimalRepository) Update(s uow.Session, animal *model.AdoptionAnimal) error {
	if err := s.DB().Save(animal).Error; err != nil {
		return fmt.Errorf("failed to update adoption animal: %w", err)
	}
	return nil
}

func (r *AdoptionAnimalRepository) List(s uow.Session, filter AnimalFilter) ([]model.AdoptionAnimal, error) {
	var animals []model.AdoptionAnimal
	q := applyAnimalFilter(s.DB(), filter).Order("publication_date DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if err := q.Find(&animals).Error; err != nil {
		return nil, fmt.Errorf("failed to list adoption animals: %w", err)
	}
	return animals, nil
}

func (r *AdoptionAnimalRepository) Count(s uow.Session, filter AnimalFilter) (int64, error) {
	var count int64
	q := applyAnimalFilter(s.DB().Model(&model.AdoptionAnimal{}), filter)
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count adoption animals: %w", err)
	}
	return count, nil
}

func applyAnimalFilter(q *gorm.DB, filter AnimalFilter) *gorm.DB {
	if !filter.IncludeDeleted {
		q = q.Where("deleted = false")
	}
	if filter.Species != "" {
		q = q.Where("species = ?", filter.Species)
	}
	if filter.OwnerProfileID != uuid.Nil {
		q = q.Where("owner_profile_id = ?", filter.OwnerProfileID)
	}
	if filter.OrganizationID != uuid.Nil {
		q = q.Where("organization_id = ?", filter.OrganizationID)
	}
	if filter.State != "" {
		q = q.Where("state = ?", filter.State)
	}
	return q
}
