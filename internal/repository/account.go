// internal/repository/account.go
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

type AccountRepositoryIface interface {
	Create(s uow.Session, account *model.Account) error
	FindByEmail(s uow.Session, email string) (*model.Account, error)
	FindByID(s uow.Session, id uuid.UUID) (*model.Account, error)
	Update(s uow.Session, account *model.Account) error
}

type AccountRepository struct{}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

func (r *AccountRepository) Create(s uow.Session, account *model.Account) error {
	if err := s.DB().Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByEmail(s uow.Session, email string) (*model.Account, error) {
	var account model.Account
	result := s.DB().Where("email = ?", email).First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", result.Error)
	}
	return &account, nil
}

func (r *AccountRepository) FindByID(s uow.Session, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	result := s.DB().First(&account, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", result.Error)
	}
	return &account, nil
}

func (r *AccountRepository) Update(s uow.Session, account *model.Account) error {
	if err := s.DB().Save(account).Error; err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}
