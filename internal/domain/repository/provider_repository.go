package repository

import (
	"context"

	"github.com/boundary-resolver/internal/domain"
)

// BoundaryProvider - транспорт к одному зеркалу провайдера границ
type BoundaryProvider interface {
	// Fetch выполняет запрос к зеркалу и возвращает разобранные границы.
	// Ошибки HTTP возвращаются как *errors.ProviderError.
	Fetch(ctx context.Context, mirror domain.Mirror, query domain.Query) ([]domain.BoundaryFeature, error)
}
