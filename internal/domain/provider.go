package domain

import (
	"strconv"
	"time"
)

// Mirror - одна из взаимозаменяемых точек доступа семейства провайдера
type Mirror struct {
	ProviderID string `json:"provider_id"`
	URL        string `json:"url"`
}

// ScopeKind - как запрос ограничен географически
type ScopeKind string

const (
	ScopeGlobal ScopeKind = "global"
	ScopeBBox   ScopeKind = "bbox"
	ScopeArea   ScopeKind = "area"
)

// QueryScope - ограничение запроса; для ScopeArea заполняется код ISO или имя
type QueryScope struct {
	Kind     ScopeKind    `json:"kind"`
	BBox     *BoundingBox `json:"bbox,omitempty"`
	AreaCode string       `json:"area_code,omitempty"`
	AreaName string       `json:"area_name,omitempty"`
}

// Key - ключ кеша области. Совпадает для областей, дающих одинаковый текст запроса:
// bbox берется с той точностью, с какой уходит провайдеру.
func (s QueryScope) Key() string {
	switch s.Kind {
	case ScopeBBox:
		if s.BBox == nil {
			return string(ScopeGlobal)
		}
		return "bbox:" + formatDeg(s.BBox.South) + "," + formatDeg(s.BBox.West) + "," +
			formatDeg(s.BBox.North) + "," + formatDeg(s.BBox.East)
	case ScopeArea:
		if s.AreaCode != "" {
			return "area:" + s.AreaCode
		}
		return "area:name:" + s.AreaName
	default:
		return string(ScopeGlobal)
	}
}

func formatDeg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Query - готовый к выполнению запрос к провайдеру
type Query struct {
	TierID     string     `json:"tier_id"`
	Kind       TierKind   `json:"kind"`
	Text       string     `json:"text"`
	Simplified bool       `json:"simplified"`
	Scope      QueryScope `json:"scope"`
}

// QueryResult - разобранный ответ провайдера
type QueryResult struct {
	Features []BoundaryFeature
	Provider string
	Mirror   string
	Latency  time.Duration
	Attempts int
}

// OutcomeKind - исход одной попытки запроса
type OutcomeKind string

const (
	OutcomeSuccess     OutcomeKind = "success"
	OutcomeFailure     OutcomeKind = "failure"
	OutcomeRateLimited OutcomeKind = "rate_limited"
)

// ProviderOutcome - запись в скользящей истории провайдера
type ProviderOutcome struct {
	ProviderID   string        `json:"provider_id"`
	Mirror       string        `json:"mirror,omitempty"`
	RequestID    string        `json:"request_id,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
	Outcome      OutcomeKind   `json:"outcome"`
	Latency      time.Duration `json:"latency,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// CircuitStatus - состояние автомата circuit breaker
type CircuitStatus int

const (
	CircuitClosed CircuitStatus = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitStatus) String() string {
	switch s {
	case CircuitClosed:
		return "CLOSED"
	case CircuitOpen:
		return "OPEN"
	case CircuitHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

func (s CircuitStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CircuitState - снимок состояния провайдера для наблюдаемости
type CircuitState struct {
	ProviderID          string            `json:"provider_id"`
	ConsecutiveFailures int               `json:"consecutive_failures"`
	Status              CircuitStatus     `json:"status"`
	OpenedAt            *time.Time        `json:"opened_at,omitempty"`
	AverageLatency      time.Duration     `json:"average_latency"`
	History             []ProviderOutcome `json:"history"`
}
