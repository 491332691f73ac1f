// internal/repository/application.go
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

type AdoptionApplicationRepositoryIface interface {
	Create(s uow.Session, application *model.AdoptionApplication) error
	FindByID(s uow.Session, id uuid.UUID) (*model.AdoptionApplication, error)
	Update(s uow.Session, application *model.AdoptionApplication) error
	FindByAnimal(s uow.Session, animalID uuid.UUID) ([]model.AdoptionApplication, error)
	FindByAdopter(s uow.Session, adopterProfileID uuid.UUID, limit, offset int) ([]model.AdoptionApplication, error)
	// FindOpenByAdopterAndAnimal returns the adopter's non-rejected
	// application for the animal, or ErrApplicationNotFound.
	FindOpenByAdopterAndAnimal(s uow.Session, adopterProfileID, animalID uuid.UUID) (*model.AdoptionApplication, error)
}

type AdoptionApplicationRepository struct{}

func NewAdoptionApplicationRepository() *AdoptionApplicationRepository {
	return &AdoptionApplicationRepository{}
}

func (r *AdoptionApplicationRepository) Create(s uow.Session, application *model.AdoptionApplication) error {
	if err := s.DB().Create(application).Error; err != nil {
		return fmt.Errorf("failed to create adoption application: %w", err)
	}
	return nil
}

func (r *AdoptionApplicationRepository) FindByID(s uow.Session, id uuid.UUID) (*model.AdoptionApplication, error) {
	var application model.AdoptionApplication
	if err := s.DB().First(&application, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find adoption application: %w", err)
	}
	return &application, nil
}

func (r *AdoptionApplicationRepository) Update(s uow.Session, application *model.AdoptionApplication) error {
	if err := s.DB().Save(application).Error; err != nil {
		return fmt.Errorf("failed to update adoption application: %w", err)
	}
	return nil
}

func (r *AdoptionApplicationRepository) FindByAnimal(s uow.Session, animalID uuid.UUID) ([]model.AdoptionApplication, error) {
	var applications []model.AdoptionApplication
	err := s.DB().
		Where("animal_id = ?", animalID).
		Order("application_date").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by animal: %w", err)
	}
	return applications, nil
}

func (r *AdoptionApplicationRepository) FindByAdopter(s uow.Session, adopterProfileID uuid.UUID, limit, offset int) ([]model.AdoptionApplication, error) {
	var applications []model.AdoptionApplication
	q := s.DB().
		Where("adopter_profile_id = ?", adopterProfileID).
		Order("application_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications by adopter: %w", err)
	}
	return applications, nil
}

func (r *AdoptionApplicationRepository) FindOpenByAdopterAndAnimal(s uow.Session, adopterProfileID, animalID uuid.UUID) (*model.AdoptionApplication, error) {
	var application model.AdoptionApplication
	err := s.DB().
		Where("adopter_profile_id = ? AND animal_id = ? AND state <> ?",
			adopterProfileID, animalID, model.ApplicationRejected).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find open application: %w", err)
	}
	return &application, nil
}

type AdoptionRepositoryIface interface {
	Create(s uow.Session, adoption *model.Adoption) error
	FindByApplication(s uow.Session, applicationID uuid.UUID) (*model.Adoption, error)
}

type AdoptionRepository struct{}

func NewAdoptionRepository() *AdoptionRepository {
	return &AdoptionRepository{}
}

func (r *AdoptionRepository) Create(s uow.Session, adoption *model.Adoption) error {
	if err := s.DB().Create(adoption).Error; err != nil {
		return fmt.Errorf("failed to create adoption: %w", err)
	}
	return nil
}

func (r *AdoptionRepository) FindByApplication(s uow.Session, applicationID uuid.UUID) (*model.Adoption, error) {
	var adoption model.Adoption
	err := s.DB().Where("adoption_application_id = ?", applicationID).First(&adoption).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find adoption: %w", err)
	}
	return &adoption, nil
}
