package ai

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/internal/schema"
	"github.com/kapu/sheos-insight-go/pkg/errors"
)

type fakeProvider struct {
	name    string
	text    string
	err     error
	delay   time.Duration
	healthy bool

	mu       sync.Mutex
	requests []Request
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(ctx context.Context, req Request) (ProviderResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ProviderResult{}, ctx.Err()
		}
	}
	if f.err != nil {
		return ProviderResult{}, f.err
	}
	return ProviderResult{Text: f.text, Model: f.name + "-model"}, nil
}

func (f *fakeProvider) Ping(context.Context) bool { return f.healthy }

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func threatSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, ok := schema.For(domain.FeatureThreat)
	require.True(t, ok)
	return s
}

func TestGenerate_ReturnsPrimaryText(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", text: `{"dangerLevel":8}`}
	mm := NewModelManagerWithProviders(primary, nil, ManagerOptions{}, zap.NewNop())

	s := threatSchema(t)
	text, meta, err := mm.Generate(context.Background(), "prompt", s, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"dangerLevel":8}`, text)
	assert.Equal(t, "Gemini", meta.Provider)
	assert.Equal(t, "Gemini-model", meta.Model)
	assert.False(t, meta.UsedFailover)

	require.Equal(t, 1, primary.calls())
	assert.Same(t, s, primary.requests[0].Schema)
	assert.Equal(t, "prompt", primary.requests[0].Prompt)
}

func TestGenerate_SingleAttemptWithoutFailover(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", err: fmt.Errorf("Error 503, Message: overloaded")}
	mm := NewModelManagerWithProviders(primary, nil, ManagerOptions{}, zap.NewNop())

	_, meta, err := mm.Generate(context.Background(), "prompt", nil, nil)
	require.Error(t, err)
	assert.Equal(t, errors.KindTransport, errors.KindOf(err))
	assert.Equal(t, "Gemini", meta.Provider)
	assert.Equal(t, 1, primary.calls())
}

func TestGenerate_AuthErrorsAreClassified(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", err: fmt.Errorf(`{"error": {"code": 403, "message": "API key not valid"}}`)}
	mm := NewModelManagerWithProviders(primary, nil, ManagerOptions{}, zap.NewNop())

	_, _, err := mm.Generate(context.Background(), "prompt", nil, nil)
	require.Error(t, err)
	assert.Equal(t, errors.KindAuth, errors.KindOf(err))

	var insightErr *errors.InsightError
	require.True(t, stderrors.As(err, &insightErr))
	assert.Equal(t, 403, insightErr.StatusCode)
}

func TestGenerate_EmptyPayloadKindSurvives(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", err: errors.NewEmptyPayloadError("Gemini")}
	mm := NewModelManagerWithProviders(primary, nil, ManagerOptions{}, zap.NewNop())

	_, _, err := mm.Generate(context.Background(), "prompt", nil, nil)
	assert.Equal(t, errors.KindEmptyPayload, errors.KindOf(err))
}

func TestGenerate_Failover(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", err: fmt.Errorf("500 internal")}
	failover := &fakeProvider{name: "OpenAI", text: "hello"}
	mm := NewModelManagerWithProviders(primary, failover, ManagerOptions{}, zap.NewNop())

	text, meta, err := mm.Generate(context.Background(), "prompt", nil, &GenerateOptions{Preset: PresetCreative})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, "OpenAI", meta.Provider)
	assert.True(t, meta.UsedFailover)
	assert.Equal(t, PresetCreative, failover.requests[0].Options.Preset)
}

func TestGenerate_FailoverAlsoFails(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", err: fmt.Errorf("500 internal")}
	failover := &fakeProvider{name: "OpenAI", err: fmt.Errorf("401 Unauthorized")}
	mm := NewModelManagerWithProviders(primary, failover, ManagerOptions{}, zap.NewNop())

	_, meta, err := mm.Generate(context.Background(), "prompt", nil, nil)
	require.Error(t, err)
	assert.Equal(t, errors.KindAuth, errors.KindOf(err))
	assert.Equal(t, "OpenAI", meta.Provider)
}

func TestGenerate_RequestTimeout(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", text: "late", delay: time.Second}
	mm := NewModelManagerWithProviders(primary, nil, ManagerOptions{RequestTimeout: 20 * time.Millisecond}, zap.NewNop())

	_, _, err := mm.Generate(context.Background(), "prompt", nil, nil)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, errors.KindTransport, errors.KindOf(err))
}

func TestGenerate_CircuitBreakerOpensAfterServiceFailures(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", err: fmt.Errorf("Error 503, Message: unavailable")}
	mm := NewModelManagerWithProviders(primary, nil, ManagerOptions{CircuitBreaker: true}, zap.NewNop())

	for i := 0; i < constants.CircuitBreakerConfig.FailureThreshold; i++ {
		_, _, err := mm.Generate(context.Background(), "prompt", nil, nil)
		require.Error(t, err)
	}

	_, _, err := mm.Generate(context.Background(), "prompt", nil, nil)
	assert.Equal(t, errors.KindCircuitOpen, errors.KindOf(err))
	assert.Equal(t, constants.CircuitBreakerConfig.FailureThreshold, primary.calls())

	status, ok := mm.CircuitStatus()
	require.True(t, ok)
	assert.Equal(t, "OPEN", status.State.String())

	mm.ResetCircuit()
	status, _ = mm.CircuitStatus()
	assert.Equal(t, "CLOSED", status.State.String())
}

func TestGenerate_FailedFailoverCountsOnce(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", err: fmt.Errorf("Error 503, Message: unavailable")}
	failover := &fakeProvider{name: "OpenAI", err: fmt.Errorf("Error 503, Message: unavailable")}
	mm := NewModelManagerWithProviders(primary, failover, ManagerOptions{CircuitBreaker: true}, zap.NewNop())
	threshold := constants.CircuitBreakerConfig.FailureThreshold

	for i := 0; i < threshold-1; i++ {
		_, _, err := mm.Generate(context.Background(), "prompt", nil, nil)
		require.Error(t, err)
	}

	status, ok := mm.CircuitStatus()
	require.True(t, ok)
	assert.Equal(t, "CLOSED", status.State.String())
	assert.Equal(t, threshold-1, status.FailureCount)

	_, _, err := mm.Generate(context.Background(), "prompt", nil, nil)
	require.Error(t, err)
	status, _ = mm.CircuitStatus()
	assert.Equal(t, "OPEN", status.State.String())
	assert.Equal(t, threshold, primary.calls())
	assert.Equal(t, threshold, failover.calls())
}

func TestGenerate_AuthFailuresDoNotTripBreaker(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", err: fmt.Errorf("401 Unauthorized")}
	mm := NewModelManagerWithProviders(primary, nil, ManagerOptions{CircuitBreaker: true}, zap.NewNop())

	for i := 0; i < constants.CircuitBreakerConfig.FailureThreshold+1; i++ {
		_, _, err := mm.Generate(context.Background(), "prompt", nil, nil)
		assert.Equal(t, errors.KindAuth, errors.KindOf(err))
	}
	assert.Equal(t, constants.CircuitBreakerConfig.FailureThreshold+1, primary.calls())
}

func TestCircuitStatus_DisabledByDefault(t *testing.T) {
	mm := NewModelManagerWithProviders(&fakeProvider{name: "Gemini"}, nil, ManagerOptions{}, nil)
	_, ok := mm.CircuitStatus()
	assert.False(t, ok)
	assert.Equal(t, "Gemini", mm.PrimaryProvider())
}

func TestStatusFromMessage(t *testing.T) {
	assert.Equal(t, 429, statusFromMessage(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`))
	assert.Equal(t, 401, statusFromMessage("401 Unauthorized"))
	assert.Equal(t, 503, statusFromMessage("Error 503, Message: overloaded"))
	assert.Equal(t, 0, statusFromMessage("connection refused"))
}

func TestIsServiceFailure(t *testing.T) {
	assert.True(t, isServiceFailure(errors.NewTransportError("Gemini", 502, nil)))
	assert.True(t, isServiceFailure(errors.NewTransportError("Gemini", 429, nil)))
	assert.True(t, isServiceFailure(context.DeadlineExceeded))
	assert.False(t, isServiceFailure(errors.NewAuthError("Gemini", 401, nil)))
	assert.False(t, isServiceFailure(errors.NewEmptyPayloadError("Gemini")))
	assert.False(t, isServiceFailure(nil))
}

func TestJSONInstructionEmbedsSchema(t *testing.T) {
	instruction, err := jsonInstruction(Request{Schema: threatSchema(t)})
	require.NoError(t, err)
	assert.Contains(t, instruction, "valid JSON only")
	assert.Contains(t, instruction, `"dangerLevel"`)
}

func TestRequestPreset(t *testing.T) {
	assert.Equal(t, PresetCreative, Request{}.preset())
	assert.Equal(t, PresetBalanced, Request{Schema: threatSchema(t)}.preset())
	assert.Equal(t, PresetPrecise, Request{Options: GenerateOptions{Preset: PresetPrecise}}.preset())
}
