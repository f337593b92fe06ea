package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

// ErrLoading is returned while the startup fetch is still outstanding.
var ErrLoading = errors.New("catalog is loading")

// Status is the lifecycle phase of the catalog.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Loader fetches a catalog from endpoint.
type Loader interface {
	Load(ctx context.Context, endpoint string) (*entities.Catalog, error)
}

// Holder performs the one-shot startup load and hands the result to readers.
type Holder struct {
	loader   Loader
	endpoint string
	logger   *zap.Logger

	once sync.Once
	done chan struct{}

	mu      sync.RWMutex
	status  Status
	catalog *entities.Catalog
	err     error
}

// NewHolder creates a holder in the loading state.
func NewHolder(loader Loader, endpoint string, logger *zap.Logger) *Holder {
	return &Holder{
		loader:   loader,
		endpoint: endpoint,
		logger:   logger,
		done:     make(chan struct{}),
		status:   StatusLoading,
	}
}

// Start launches the fetch in the background. Calls after the first are no-ops.
func (h *Holder) Start(ctx context.Context) {
	h.once.Do(func() {
		go h.load(ctx)
	})
}

func (h *Holder) load(ctx context.Context) {
	defer close(h.done)

	h.logger.Info("loading station catalog", zap.String("endpoint", h.endpoint))

	c, err := h.loader.Load(ctx, h.endpoint)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err != nil {
		h.status = StatusFailed
		h.err = err
		h.logger.Error("failed to load station catalog",
			zap.String("endpoint", h.endpoint),
			zap.Error(err),
		)
		return
	}

	h.status = StatusReady
	h.catalog = c
	h.logger.Info("station catalog loaded", zap.Int("stations", c.Len()))
}

// Done is closed once the load has either succeeded or failed.
func (h *Holder) Done() <-chan struct{} {
	return h.done
}

// Status returns the current phase.
func (h *Holder) Status() Status {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// Catalog returns the loaded catalog, ErrLoading, or the terminal load error.
func (h *Holder) Catalog() (*entities.Catalog, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch h.status {
	case StatusReady:
		return h.catalog, nil
	case StatusFailed:
		return nil, h.err
	default:
		return nil, ErrLoading
	}
}
