package circuit

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/config"
	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/metrics"
	"github.com/boundary-resolver/internal/pkg/clock"
)

type providerState struct {
	failures int
	status   domain.CircuitStatus
	openedAt time.Time
	history  []domain.ProviderOutcome
	// trial - пробный запрос HalfOpen уже выдан и еще не записан
	trial bool
}

// Monitor - circuit breaker по семействам провайдеров.
// Closed -> Open после threshold неудач подряд, Open -> HalfOpen по истечении cool-down
// (проверяется лениво), HalfOpen -> Closed на успехе и снова Open на неудаче.
type Monitor struct {
	mu          sync.Mutex
	clock       clock.Clock
	logger      *zap.Logger
	threshold   int
	cooldown    time.Duration
	historySize int
	providers   map[string]*providerState
}

func NewMonitor(cfg config.CircuitConfig, clk clock.Clock, logger *zap.Logger) *Monitor {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 10
	}
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		clock:       clk,
		logger:      logger,
		threshold:   cfg.FailureThreshold,
		cooldown:    cfg.Cooldown,
		historySize: cfg.HistorySize,
		providers:   make(map[string]*providerState),
	}
}

func (m *Monitor) state(providerID string) *providerState {
	st, ok := m.providers[providerID]
	if !ok {
		st = &providerState{status: domain.CircuitClosed}
		m.providers[providerID] = st
	}
	return st
}

// refresh переводит Open в HalfOpen, если cool-down истек. Вызывается под мьютексом.
func (m *Monitor) refresh(providerID string, st *providerState) {
	if st.status == domain.CircuitOpen && !m.clock.Now().Before(st.openedAt.Add(m.cooldown)) {
		m.setStatus(providerID, st, domain.CircuitHalfOpen)
	}
}

func (m *Monitor) setStatus(providerID string, st *providerState, status domain.CircuitStatus) {
	if st.status == status {
		return
	}
	m.logger.Info("Circuit state changed",
		zap.String("provider", providerID),
		zap.String("from", st.status.String()),
		zap.String("to", status.String()),
		zap.Int("consecutive_failures", st.failures),
	)
	st.status = status
	metrics.ObserveCircuit(providerID, status)
}

// Allow - можно ли отправлять запрос провайдеру. Ничего не резервирует;
// в HalfOpen ложь, пока пробный запрос в полете.
func (m *Monitor) Allow(providerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(providerID)
	m.refresh(providerID, st)
	return allows(st)
}

// Acquire - Allow непосредственно перед сетевым вызовом. В HalfOpen выдает
// единственный пробный запрос; следующий получит разрешение только после Record.
func (m *Monitor) Acquire(providerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(providerID)
	m.refresh(providerID, st)
	if !allows(st) {
		return false
	}
	if st.status == domain.CircuitHalfOpen {
		st.trial = true
	}
	return true
}

func allows(st *providerState) bool {
	switch st.status {
	case domain.CircuitOpen:
		return false
	case domain.CircuitHalfOpen:
		return !st.trial
	default:
		return true
	}
}

// Status возвращает текущее состояние с учетом истекшего cool-down
func (m *Monitor) Status(providerID string) domain.CircuitStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(providerID)
	m.refresh(providerID, st)
	return st.status
}

// Record фиксирует исход попытки и двигает автомат
func (m *Monitor) Record(outcome domain.ProviderOutcome) {
	if outcome.Timestamp.IsZero() {
		outcome.Timestamp = m.clock.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(outcome.ProviderID)
	st.trial = false
	st.history = append(st.history, outcome)
	if over := len(st.history) - m.historySize; over > 0 {
		st.history = append(st.history[:0:0], st.history[over:]...)
	}

	m.refresh(outcome.ProviderID, st)

	if outcome.Outcome == domain.OutcomeSuccess {
		st.failures = 0
		st.openedAt = time.Time{}
		m.setStatus(outcome.ProviderID, st, domain.CircuitClosed)
		return
	}

	st.failures++
	switch st.status {
	case domain.CircuitHalfOpen:
		st.openedAt = m.clock.Now()
		m.setStatus(outcome.ProviderID, st, domain.CircuitOpen)
	case domain.CircuitClosed:
		if st.failures >= m.threshold {
			st.openedAt = m.clock.Now()
			m.setStatus(outcome.ProviderID, st, domain.CircuitOpen)
		}
	}
}

// AverageLatency - средняя задержка по истории провайдера
func (m *Monitor) AverageLatency(providerID string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.providers[providerID]
	if !ok {
		return 0
	}
	return averageLatency(st.history)
}

func averageLatency(history []domain.ProviderOutcome) time.Duration {
	var total time.Duration
	n := 0
	for _, o := range history {
		if o.Latency > 0 {
			total += o.Latency
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}

// State возвращает снимок состояния провайдера
func (m *Monitor) State(providerID string) domain.CircuitState {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(providerID)
	m.refresh(providerID, st)
	return m.snapshot(providerID, st)
}

// States - снимки всех известных провайдеров, по возрастанию id
func (m *Monitor) States() []domain.CircuitState {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.providers))
	for id := range m.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]domain.CircuitState, 0, len(ids))
	for _, id := range ids {
		st := m.providers[id]
		m.refresh(id, st)
		result = append(result, m.snapshot(id, st))
	}
	return result
}

func (m *Monitor) snapshot(providerID string, st *providerState) domain.CircuitState {
	history := make([]domain.ProviderOutcome, len(st.history))
	copy(history, st.history)

	state := domain.CircuitState{
		ProviderID:          providerID,
		ConsecutiveFailures: st.failures,
		Status:              st.status,
		AverageLatency:      averageLatency(st.history),
		History:             history,
	}
	if !st.openedAt.IsZero() {
		openedAt := st.openedAt
		state.OpenedAt = &openedAt
	}
	return state
}

// Reset возвращает все автоматы в Closed и очищает историю
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.providers {
		metrics.ObserveCircuit(id, domain.CircuitClosed)
	}
	m.providers = make(map[string]*providerState)
}
