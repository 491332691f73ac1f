// internal/service/service.go
package service

import (
	"fmt"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/google/uuid"
)

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id", domain.ErrInvalidInput)
	}
	return id, nil
}
