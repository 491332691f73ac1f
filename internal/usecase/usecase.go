// internal/usecase/usecase.go

// Package usecase holds the per-verb orchestrators. A use case owns the
// scope lifecycle: it opens one unit of work, delegates to domain
// services, and commits or rolls back. Services never open scopes.
package usecase

import (
	"context"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

// requireProfile resolves the acting profile for an account. An
// organizational profile must be verified by its organization before it
// can act.
func requireProfile(ctx context.Context, scope *uow.Scope, profiles *service.ProfileService, accountID uuid.UUID) (model.Profile, error) {
	profile, err := profiles.GetByAccount(ctx, scope, accountID)
	if err != nil {
		return model.Profile{}, err
	}
	if !profile.IsPersonal() && !profile.Organizational.VerifiedByOrg {
		return model.Profile{}, domain.ErrUnauthorized
	}
	return profile, nil
}
