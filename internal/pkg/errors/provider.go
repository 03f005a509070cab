package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Ошибки провайдера поглощаются движком и не доходят до вызывающего кода
var (
	ErrCircuitOpen      = stderrors.New("provider circuit open")
	ErrRetriesExhausted = stderrors.New("provider retries exhausted")
	ErrMalformedPayload = stderrors.New("malformed provider payload")
	ErrNoMirrors        = stderrors.New("no provider mirrors configured")
)

// ProviderError описывает неуспешную попытку запроса к конкретному зеркалу
type ProviderError struct {
	Provider   string
	Mirror     string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s (%s): status %d: %v", e.Provider, e.Mirror, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %s (%s): %v", e.Provider, e.Mirror, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsRateLimited - провайдер ответил 429
func (e *ProviderError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsRateLimited проверяет всю цепочку ошибок на 429
func IsRateLimited(err error) bool {
	var pe *ProviderError
	if stderrors.As(err, &pe) {
		return pe.IsRateLimited()
	}
	return false
}
