package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

type blockingLoader struct {
	release chan struct{}
	calls   atomic.Int32
	catalog *entities.Catalog
	err     error
}

func (l *blockingLoader) Load(ctx context.Context, _ string) (*entities.Catalog, error) {
	l.calls.Add(1)
	select {
	case <-l.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return l.catalog, l.err
}

func waitDone(t *testing.T, h *Holder) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("catalog load did not settle")
	}
}

// TestHolderLoadingThenReady verifies readers see loading until the fetch succeeds.
func TestHolderLoadingThenReady(t *testing.T) {
	c, err := entities.NewCatalog([]entities.Station{{StationID: 1, Reading: "a", WrongReadings: []string{"b"}}})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	loader := &blockingLoader{release: make(chan struct{}), catalog: c}
	h := NewHolder(loader, "http://example.invalid", zap.NewNop())

	h.Start(context.Background())
	h.Start(context.Background())

	if _, err := h.Catalog(); !errors.Is(err, ErrLoading) {
		t.Fatalf("expected loading, got %v", err)
	}
	if h.Status() != StatusLoading {
		t.Fatalf("expected loading status, got %s", h.Status())
	}

	close(loader.release)
	waitDone(t, h)

	got, err := h.Catalog()
	if err != nil || got != c {
		t.Fatalf("expected loaded catalog, got %v, %v", got, err)
	}
	if h.Status() != StatusReady {
		t.Fatalf("expected ready status, got %s", h.Status())
	}
	if loader.calls.Load() != 1 {
		t.Fatalf("expected single load, got %d", loader.calls.Load())
	}
}

// TestHolderFailureIsTerminal verifies the fetch error is kept and not retried.
func TestHolderFailureIsTerminal(t *testing.T) {
	loader := &blockingLoader{release: make(chan struct{}), err: ErrFetch}
	close(loader.release)
	h := NewHolder(loader, "http://example.invalid", zap.NewNop())

	h.Start(context.Background())
	waitDone(t, h)

	for i := 0; i < 3; i++ {
		if _, err := h.Catalog(); !errors.Is(err, ErrFetch) {
			t.Fatalf("expected fetch error, got %v", err)
		}
	}
	if h.Status() != StatusFailed {
		t.Fatalf("expected failed status, got %s", h.Status())
	}
	if loader.calls.Load() != 1 {
		t.Fatalf("expected single load, got %d", loader.calls.Load())
	}
}
