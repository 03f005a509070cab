package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/config"
	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/domain/repository"
	"github.com/boundary-resolver/internal/pkg/errors"
)

const errorBodyLimit = 512

type client struct {
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// NewOverpassClient создает транспорт к Overpass-совместимым зеркалам.
// Таймаут попытки задает исполнитель через контекст.
func NewOverpassClient(cfg *config.ProviderConfig, logger *zap.Logger) repository.BoundaryProvider {
	return &client{
		httpClient: &http.Client{},
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}
}

// Fetch отправляет запрос Overpass QL на зеркало и разбирает ответ `out geom`
func (c *client) Fetch(ctx context.Context, mirror domain.Mirror, q domain.Query) ([]domain.BoundaryFeature, error) {
	form := url.Values{}
	form.Set("data", q.Text)

	c.logger.Debug("Calling Overpass API",
		zap.String("mirror", mirror.URL),
		zap.String("tier", q.TierID),
		zap.Bool("simplified", q.Simplified))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mirror.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, c.providerError(mirror, 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.providerError(mirror, 0, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		c.logger.Warn("Overpass API returned error",
			zap.String("mirror", mirror.URL),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, c.providerError(mirror, resp.StatusCode, fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))))
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, c.providerError(mirror, resp.StatusCode, fmt.Errorf("%w: %v", errors.ErrMalformedPayload, err))
	}

	// Overpass сообщает о таймауте и нехватке памяти в remark при статусе 200
	if len(payload.Elements) == 0 && isRuntimeError(payload.Remark) {
		return nil, c.providerError(mirror, resp.StatusCode, fmt.Errorf("overpass %s", payload.Remark))
	}

	features := toFeatures(payload.Elements, q.Kind)

	c.logger.Debug("Overpass API call successful",
		zap.String("mirror", mirror.URL),
		zap.Int("elements", len(payload.Elements)),
		zap.Int("features", len(features)))

	return features, nil
}

func (c *client) providerError(mirror domain.Mirror, status int, err error) error {
	return &errors.ProviderError{
		Provider:   mirror.ProviderID,
		Mirror:     mirror.URL,
		StatusCode: status,
		Err:        err,
	}
}

func isRuntimeError(remark string) bool {
	r := strings.ToLower(remark)
	return strings.Contains(r, "runtime error") || strings.Contains(r, "timed out") || strings.Contains(r, "out of memory")
}
