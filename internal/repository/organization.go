// internal/repository/organization.go
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

type OrganizationRepositoryIface interface {
	Create(s uow.Session, org *model.Organization) error
	FindByID(s uow.Session, id uuid.UUID) (*model.Organization, error)
	FindByName(s uow.Session, name string) (*model.Organization, error)
	Update(s uow.Session, org *model.Organization) error
	List(s uow.Session, limit, offset int) ([]model.Organization, error)
}

type OrganizationRepository struct{}

func NewOrganizationRepository() *OrganizationRepository {
	return &OrganizationRepository{}
}

func (r *OrganizationRepository) Create(s uow.Session, org *model.Organization) error {
	if err := s.DB().Create(org).Error; err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(s uow.Session, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	result := s.DB().First(&org, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", result.Error)
	}
	return &org, nil
}

func (r *OrganizationRepository) FindByName(s uow.Session, name string) (*model.Organization, error) {
	var org model.Organization
	result := s.DB().Where("name = ?", name).First(&org)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", result.Error)
	}
	return &org, nil
}

func (r *OrganizationRepository) Update(s uow.Session, org *model.Organization) error {
	if err := s.DB().Save(org).Error; err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) List(s uow.Session, limit, offset int) ([]model.Organization, error) {
	var orgs []model.Organization
	q := s.DB().Order("name")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}
