package usecase_test

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/usecase"
)

// MockBoundaryProvider is a mock of BoundaryProvider
type MockBoundaryProvider struct {
	mock.Mock
}

func (m *MockBoundaryProvider) Fetch(ctx context.Context, mirror domain.Mirror, q domain.Query) ([]domain.BoundaryFeature, error) {
	args := m.Called(ctx, mirror, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BoundaryFeature), args.Error(1)
}

// MockStatsCacheRepository is a mock of StatsCacheRepository
type MockStatsCacheRepository struct {
	mock.Mock
}

func (m *MockStatsCacheRepository) SetStats(ctx context.Context, instanceID string, stats *domain.RenderingStats, ttl time.Duration) error {
	args := m.Called(ctx, instanceID, stats, ttl)
	return args.Error(0)
}

func (m *MockStatsCacheRepository) GetStats(ctx context.Context, instanceID string) (*domain.RenderingStats, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RenderingStats), args.Error(1)
}

// recordingExecutor запоминает запросы и передает их настоящему исполнителю
type recordingExecutor struct {
	inner   usecase.QueryExecutor
	mu      sync.Mutex
	queries []domain.Query
}

func (r *recordingExecutor) Execute(ctx context.Context, q domain.Query) (*domain.QueryResult, error) {
	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.mu.Unlock()
	return r.inner.Execute(ctx, q)
}

func (r *recordingExecutor) Queries() []domain.Query {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Query, len(r.queries))
	copy(out, r.queries)
	return out
}

// ring - замкнутое кольцо из n точек по окружности
func ring(n int, cx, cy float64) domain.Ring {
	r := make(domain.Ring, 0, n)
	for i := 0; i < n-1; i++ {
		a := 2 * math.Pi * float64(i) / float64(n-1)
		r = append(r, domain.Coordinate{cx + math.Cos(a), cy + math.Sin(a)})
	}
	return append(r, r[0])
}

func feature(name, iso string, rings ...domain.Ring) domain.BoundaryFeature {
	geomType := domain.GeometryPolygon
	if len(rings) > 1 {
		geomType = domain.GeometryMultiPolygon
	}
	props := map[string]interface{}{"admin_level": int64(2)}
	if iso != "" {
		props["ISO3166-1"] = iso
	}
	return domain.BoundaryFeature{
		Name:             name,
		Kind:             domain.TierCountry,
		Geometry:         domain.Geometry{Type: geomType, Rings: rings},
		SourceProperties: props,
		Degradation:      domain.DegradationNone,
	}
}
