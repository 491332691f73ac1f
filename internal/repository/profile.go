// internal/repository/profile.go
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

type ProfileRepositoryIface interface {
	CreatePersonal(s uow.Session, profile *model.PersonalProfile) error
	CreateOrganizational(s uow.Session, profile *model.OrganizationalProfile) error
	UpdatePersonal(s uow.Session, profile *model.PersonalProfile) error
	UpdateOrganizational(s uow.Session, profile *model.OrganizationalProfile) error

	// FindByAccount and FindByID search both variants.
	FindByAccount(s uow.Session, accountID uuid.UUID) (model.Profile, error)
	FindByID(s uow.Session, id uuid.UUID) (model.Profile, error)

	FindByOrganization(s uow.Session, orgID uuid.UUID, limit, offset int) ([]model.OrganizationalProfile, error)
	CountByOrganization(s uow.Session, orgID uuid.UUID) (int64, error)
	FindAdminByOrganization(s uow.Session, orgID uuid.UUID) (*model.OrganizationalProfile, error)
}

type ProfileRepository struct{}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

func (r *ProfileRepository) CreatePersonal(s uow.Session, profile *model.PersonalProfile) error {
	if err := s.DB().Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create personal profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) CreateOrganizational(s uow.Session, profile *model.OrganizationalProfile) error {
	if err := s.DB().Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create organizational profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) UpdatePersonal(s uow.Session, profile *model.PersonalProfile) error {
	if err := s.DB().Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update personal profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) UpdateOrganizational(s uow.Session, profile *model.OrganizationalProfile) error {
	if err := s.DB().Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update organizational profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByAccount(s uow.Session, accountID uuid.UUID) (model.Profile, error) {
	var personal model.PersonalProfile
	err := s.DB().Where("account_id = ?", accountID).First(&personal).Error
	if err == nil {
		return model.Profile{Personal: &personal}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{}, fmt.Errorf("failed to find personal profile: %w", err)
	}

	var organizational model.OrganizationalProfile
	err = s.DB().Where("account_id = ?", accountID).First(&organizational).Error
	if err == nil {
		return model.Profile{Organizational: &organizational}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{}, fmt.Errorf("failed to find organizational profile: %w", err)
	}
	return model.Profile{}, domain.ErrProfileNotFound
}

func (r *ProfileRepository) FindByID(s uow.Session, id uuid.UUID) (model.Profile, error) {
	var personal model.PersonalProfile
	err := s.DB().First(&personal, "id = ?", id).Error
	if err == nil {
		return model.Profile{Personal: &personal}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{}, fmt.Errorf("failed to find personal profile: %w", err)
	}

	var organizational model.OrganizationalProfile
	err = s.DB().First(&organizational, "id = ?", id).Error
	if err == nil {
		return model.Profile{Organizational: &organizational}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{}, fmt.Errorf("failed to find organizational profile: %w", err)
	}
	return model.Profile{}, domain.ErrProfileNotFound
}

func (r *ProfileRepository) FindByOrganization(s uow.Session, orgID uuid.UUID, limit, offset int) ([]model.OrganizationalProfile, error) {
	var profiles []model.OrganizationalProfile
	q := s.DB().Where("organization_id = ?", orgID).Order("surname, first_name")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list organization profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) CountByOrganization(s uow.Session, orgID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB().Model(&model.OrganizationalProfile{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count organization profiles: %w", err)
	}
	return count, nil
}

func (r *ProfileRepository) FindAdminByOrganization(s uow.Session, orgID uuid.UUID) (*model.OrganizationalProfile, error) {
	var profile model.OrganizationalProfile
	err := s.DB().
		Where("organization_id = ? AND role = ?", orgID, model.RoleAdmin).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find organization admin: %w", err)
	}
	return &profile, nil
}
