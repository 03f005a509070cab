package executor

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/config"
	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/domain/repository"
	"github.com/boundary-resolver/internal/metrics"
	"github.com/boundary-resolver/internal/pkg/clock"
	"github.com/boundary-resolver/internal/pkg/errors"
	"github.com/boundary-resolver/internal/pkg/utils"
)

// CircuitBreaker - то, что исполнителю нужно от монитора провайдеров.
// Allow используется при выборе зеркала, Acquire - уже в слоте, перед сетевым вызовом.
type CircuitBreaker interface {
	Allow(providerID string) bool
	Acquire(providerID string) bool
	Record(outcome domain.ProviderOutcome)
}

type attemptResult struct {
	features []domain.BoundaryFeature
	latency  time.Duration
	err      error
}

// Executor выполняет запросы к зеркалам провайдера: один запрос в полете на процесс,
// минимальная пауза между запросами, повторы с back-off и ротацией зеркал.
type Executor struct {
	cfg      config.ProviderConfig
	mirrors  []domain.Mirror
	provider repository.BoundaryProvider
	breaker  CircuitBreaker
	clock    clock.Clock
	logger   *zap.Logger

	// slot - единственный слот сетевого запроса
	slot chan struct{}

	mu           sync.Mutex
	cursor       int
	lastFinished time.Time
}

func New(
	cfg config.ProviderConfig,
	mirrors []domain.Mirror,
	provider repository.BoundaryProvider,
	breaker CircuitBreaker,
	clk clock.Clock,
	logger *zap.Logger,
) *Executor {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		cfg:      cfg,
		mirrors:  mirrors,
		provider: provider,
		breaker:  breaker,
		clock:    clk,
		logger:   logger,
		slot:     make(chan struct{}, 1),
	}
}

// MirrorsFromConfig переводит конфигурацию зеркал в доменные значения
func MirrorsFromConfig(mirrors []config.MirrorConfig) []domain.Mirror {
	result := make([]domain.Mirror, 0, len(mirrors))
	for _, m := range mirrors {
		result = append(result, domain.Mirror{ProviderID: m.ProviderID, URL: m.URL})
	}
	return result
}

// Execute выполняет запрос, делая не больше MaxRetries попыток.
// Если все семейства зеркал в состоянии Open, возвращает ErrCircuitOpen без сетевого вызова.
func (e *Executor) Execute(ctx context.Context, q domain.Query) (*domain.QueryResult, error) {
	if len(e.mirrors) == 0 {
		return nil, errors.ErrNoMirrors
	}

	attempts := e.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	rejected := 0
	rotated := false
	for attempt := 0; attempt < attempts; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mirror, ok := e.nextMirror()
		if !ok {
			return nil, circuitOpenError(lastErr)
		}

		if attempt > 0 && !rotated {
			delay := BackoffDelay(e.cfg, attempt-1)
			if errors.IsRateLimited(lastErr) {
				delay = e.cfg.MaxBackoff
			}
			if err := e.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		res, err := e.attempt(ctx, mirror, q)
		if stderrors.Is(err, errors.ErrCircuitOpen) {
			// семейство открылось, пока вызов ждал слот; сетевого вызова не было
			rejected++
			if rejected > len(e.mirrors) {
				return nil, circuitOpenError(lastErr)
			}
			rotated = true
			e.advance()
			e.logger.Debug("Circuit opened while waiting for request slot",
				zap.String("request_id", utils.RequestID(ctx)),
				zap.String("provider", mirror.ProviderID),
				zap.String("mirror", mirror.URL),
			)
			continue
		}
		rotated = false
		attempt++

		if err == nil {
			return &domain.QueryResult{
				Features: res.features,
				Provider: mirror.ProviderID,
				Mirror:   mirror.URL,
				Latency:  res.latency,
				Attempts: attempt,
			}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		e.advance()

		e.logger.Warn("Provider attempt failed",
			zap.String("request_id", utils.RequestID(ctx)),
			zap.String("provider", mirror.ProviderID),
			zap.String("mirror", mirror.URL),
			zap.String("tier", q.TierID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", errors.ErrRetriesExhausted, attempts, lastErr)
}

func circuitOpenError(lastErr error) error {
	if lastErr == nil {
		return errors.ErrCircuitOpen
	}
	return fmt.Errorf("%w: %v", errors.ErrCircuitOpen, lastErr)
}

// nextMirror возвращает первое зеркало начиная с курсора, чье семейство не в Open
func (e *Executor) nextMirror() (domain.Mirror, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.mirrors)
	for i := 0; i < n; i++ {
		idx := (e.cursor + i) % n
		m := e.mirrors[idx]
		if e.breaker == nil || e.breaker.Allow(m.ProviderID) {
			e.cursor = idx
			return m, true
		}
	}
	return domain.Mirror{}, false
}

func (e *Executor) advance() {
	e.mu.Lock()
	e.cursor = (e.cursor + 1) % len(e.mirrors)
	e.mu.Unlock()
}

func (e *Executor) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-e.clock.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// attempt занимает слот, выдерживает паузу и запускает сетевой вызов отдельно от ctx вызывающего:
// брошенный вызов все равно завершится и запишет исход.
func (e *Executor) attempt(ctx context.Context, mirror domain.Mirror, q domain.Query) (attemptResult, error) {
	select {
	case e.slot <- struct{}{}:
	case <-ctx.Done():
		return attemptResult{}, ctx.Err()
	}

	// пауза отсчитывается от конца предыдущего сетевого вызова
	var wait time.Duration
	e.mu.Lock()
	if !e.lastFinished.IsZero() {
		wait = e.lastFinished.Add(e.cfg.MinInterval).Sub(e.clock.Now())
	}
	e.mu.Unlock()
	if err := e.sleep(ctx, wait); err != nil {
		<-e.slot
		return attemptResult{}, err
	}

	// за время ожидания автомат мог открыться; в HalfOpen здесь же берется пробный запрос
	if e.breaker != nil && !e.breaker.Acquire(mirror.ProviderID) {
		<-e.slot
		return attemptResult{}, errors.ErrCircuitOpen
	}

	done := make(chan attemptResult, 1)
	requestID := utils.RequestID(ctx)
	detached := context.WithoutCancel(ctx)

	go func() {
		defer func() { <-e.slot }()

		callCtx := detached
		if e.cfg.RequestTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(detached, e.cfg.RequestTimeout)
			defer cancel()
		}

		start := e.clock.Now()
		features, err := e.provider.Fetch(callCtx, mirror, q)
		finished := e.clock.Now()

		e.mu.Lock()
		e.lastFinished = finished
		e.mu.Unlock()

		e.record(mirror, requestID, finished, finished.Sub(start), err)
		done <- attemptResult{features: features, latency: finished.Sub(start), err: err}
	}()

	select {
	case res := <-done:
		return res, res.err
	case <-ctx.Done():
		e.logger.Info("Caller abandoned provider request, finishing in background",
			zap.String("request_id", requestID),
			zap.String("mirror", mirror.URL),
		)
		return attemptResult{}, ctx.Err()
	}
}

func (e *Executor) record(mirror domain.Mirror, requestID string, at time.Time, latency time.Duration, err error) {
	outcome := domain.ProviderOutcome{
		ProviderID: mirror.ProviderID,
		Mirror:     mirror.URL,
		RequestID:  requestID,
		Timestamp:  at,
		Outcome:    domain.OutcomeSuccess,
		Latency:    latency,
	}
	switch {
	case err == nil:
	case errors.IsRateLimited(err):
		outcome.Outcome = domain.OutcomeRateLimited
		outcome.ErrorMessage = err.Error()
	default:
		outcome.Outcome = domain.OutcomeFailure
		outcome.ErrorMessage = err.Error()
	}

	if e.breaker != nil {
		e.breaker.Record(outcome)
	}
	metrics.ObserveOutcome(outcome)
}
