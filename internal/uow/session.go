// internal/uow/session.go
package uow

import (
	"context"

	"gorm.io/gorm"
)

// Session is the store handle a scope hands to repositories. One session
// per scope; a session never crosses goroutines.
type Session interface {
	// DB returns the transaction handle. Nil for the in-memory factory
	// used by tests.
	DB() *gorm.DB
	Commit() error
	Rollback() error
}

// SessionFactory opens store sessions for scopes.
type SessionFactory interface {
	Open(ctx context.Context) (Session, error)
}

type gormSession struct {
	tx *gorm.DB
}

func (s *gormSession) DB() *gorm.DB { return s.tx }

func (s *gormSession) Commit() error { return s.tx.Commit().Error }

func (s *gormSession) Rollback() error { return s.tx.Rollback().Error }

type gormSessionFactory struct {
	db *gorm.DB
}

// NewGormSessionFactory wraps a gorm connection; each Open begins a
// transaction.
func NewGormSessionFactory(db *gorm.DB) SessionFactory {
	return &gormSessionFactory{db: db}
}

func (f *gormSessionFactory) Open(ctx context.Context) (Session, error) {
	tx := f.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormSession{tx: tx}, nil
}

type memorySession struct{}

func (memorySession) DB() *gorm.DB   { return nil }
func (memorySession) Commit() error  { return nil }
func (memorySession) Rollback() error { return nil }

type memorySessionFactory struct{}

// NewMemorySessionFactory returns a factory whose sessions carry no
// store. In-memory repositories ignore the session argument.
func NewMemorySessionFactory() SessionFactory {
	return memorySessionFactory{}
}

func (memorySessionFactory) Open(ctx context.Context) (Session, error) {
	return memorySession{}, nil
}
