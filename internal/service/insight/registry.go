package insight

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/pkg/errors"
)

// ErrUnknownFeature is returned when a feature is not registered.
var ErrUnknownFeature = stderrors.New("unknown feature")

// Handler decodes a JSON profile for one feature and runs it. Execute only
// fails on bad input; model failures are reported inside the envelope.
type Handler interface {
	Feature() domain.Feature
	Description() string
	Execute(ctx context.Context, payload []byte) (domain.Envelope, error)
}

type handler[P domain.Profile, R any] struct {
	feature     domain.Feature
	description string
	run         func(context.Context, P) domain.Result[R]
}

func (h handler[P, R]) Feature() domain.Feature { return h.feature }

func (h handler[P, R]) Description() string { return h.description }

func (h handler[P, R]) Execute(ctx context.Context, payload []byte) (domain.Envelope, error) {
	profile, err := DecodeProfile[P](payload)
	if err != nil {
		return domain.Envelope{}, err
	}
	return h.run(ctx, profile).Envelope(h.feature), nil
}

// DecodeProfile strictly decodes and validates a JSON profile.
func DecodeProfile[P domain.Profile](payload []byte) (P, error) {
	var profile P

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&profile); err != nil {
		return profile, errors.NewValidationError(fmt.Sprintf("invalid profile: %v", err), "profile", nil)
	}
	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		return profile, errors.NewValidationError("invalid profile: unexpected data after JSON object", "profile", nil)
	}
	if err := profile.Validate(); err != nil {
		return profile, err
	}
	return profile, nil
}

func newHandler[P domain.Profile, R any](feature domain.Feature, description string, run func(context.Context, P) domain.Result[R]) Handler {
	return handler[P, R]{feature: feature, description: description, run: run}
}

// Registry stores feature handlers keyed by their wire names.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// NewServiceRegistry registers every feature of svc.
func NewServiceRegistry(svc *Service) *Registry {
	r := NewRegistry()
	r.Register(newHandler(domain.FeatureThreat, "Rate how dangerous a described situation is", svc.AnalyzeThreat))
	r.Register(newHandler(domain.FeatureSentinel, "Fuse a sensor snapshot into a risk assessment", svc.AnalyzeSentinel))
	r.Register(newHandler(domain.FeatureHealth, "Interpret symptoms for a cycle day", svc.AnalyzeHealth))
	r.Register(newHandler(domain.FeatureHealthTwin, "Forecast health risks and a Body Sync Score", svc.AnalyzeHealthTwin))
	r.Register(newHandler(domain.FeatureFinanceAbuse, "Detect financial abuse in recent transactions", svc.AnalyzeFinances))
	r.Register(newHandler(domain.FeatureFinanceForecast, "Forecast financial stability and investments", svc.ForecastFinances))
	r.Register(newHandler(domain.FeatureMentor, "Two sentences of mentor encouragement", svc.MentorAdvice))
	r.Register(newHandler(domain.FeatureEducationRoadmap, "Build a personalized learning roadmap", svc.PlanEducation))
	r.Register(newHandler(domain.FeatureEmotionalMatch, "Match with peers on a similar path", svc.MatchPeers))
	r.Register(newHandler(domain.FeatureCommunityAlerts, "Community safety alerts for a city", svc.CommunityAlerts))
	r.Register(newHandler(domain.FeatureCompanion, "Chat with the SheOS companion", svc.Chat))
	return r
}

// Register adds a handler. Names are stored in lowercase.
func (r *Registry) Register(h Handler) {
	if h == nil {
		return
	}

	name := strings.ToLower(h.Feature().String())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Execute runs the handler registered for key.
func (r *Registry) Execute(ctx context.Context, key string, payload []byte) (domain.Envelope, error) {
	if r == nil {
		return domain.Envelope{}, fmt.Errorf("insight registry is nil")
	}

	h := r.Lookup(key)
	if h == nil {
		return domain.Envelope{}, fmt.Errorf("%w: %s", ErrUnknownFeature, key)
	}

	return h.Execute(ctx, payload)
}

// Lookup returns the handler for key, or nil.
func (r *Registry) Lookup(key string) Handler {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[key]
}

// Handlers returns the registered handlers in display order.
func (r *Registry) Handlers() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Handler, 0, len(r.handlers))
	seen := make(map[string]bool, len(r.handlers))
	for _, f := range domain.Features {
		if h, ok := r.handlers[f.String()]; ok {
			out = append(out, h)
			seen[f.String()] = true
		}
	}
	for name, h := range r.handlers {
		if !seen[name] {
			out = append(out, h)
		}
	}
	return out
}

// Count returns the number of registered handlers.
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
