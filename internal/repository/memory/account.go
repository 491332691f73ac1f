// internal/repository/memory/account.go
package memory

import (
	"strings"
	"sync"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

type AccountRepository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]model.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[uuid.UUID]model.Account)}
}

func (r *AccountRepository) Create(_ uow.Session, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&account.ID)
	r.accounts[account.ID] = *account
	return nil
}

func (r *AccountRepository) FindByEmail(_ uow.Session, email string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if strings.EqualFold(account.Email, email) {
			found := account
			return &found, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *AccountRepository) FindByID(_ uow.Session, id uuid.UUID) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

func (r *AccountRepository) Update(_ uow.Session, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	r.accounts[account.ID] = *account
	return nil
}
