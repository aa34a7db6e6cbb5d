package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/pkg/errors"
)

type BatchItem struct {
	Feature string          `json:"feature"`
	Profile json.RawMessage `json:"profile"`
}

// BatchResult holds either the envelope of one item or its input error.
type BatchResult struct {
	Feature  string           `json:"feature"`
	Envelope *domain.Envelope `json:"envelope,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// BatchRunner executes independent insight requests concurrently.
type BatchRunner struct {
	registry    *Registry
	concurrency int
	logger      *zap.Logger
}

func NewBatchRunner(registry *Registry, concurrency int, logger *zap.Logger) *BatchRunner {
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchRunner{
		registry:    registry,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run executes every item and returns the results in input order. A failing
// item does not affect the others.
func (b *BatchRunner) Run(ctx context.Context, items []BatchItem) ([]BatchResult, error) {
	if len(items) > constants.AIInputLimits.MaxBatchItems {
		return nil, errors.NewValidationError(
			fmt.Sprintf("batch must have at most %d items", constants.AIInputLimits.MaxBatchItems), "items", len(items))
	}

	results := make([]BatchResult, len(items))
	p := pool.New().WithMaxGoroutines(b.concurrency)

	for idx, item := range items {
		idx, item := idx, item
		p.Go(func() {
			results[idx] = b.runOne(ctx, item)
		})
	}

	p.Wait()

	b.logger.Debug("Batch completed", zap.Int("items", len(items)))
	return results, nil
}

func (b *BatchRunner) runOne(ctx context.Context, item BatchItem) BatchResult {
	result := BatchResult{Feature: item.Feature}

	envelope, err := b.registry.Execute(ctx, item.Feature, item.Profile)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Envelope = &envelope
	return result
}
