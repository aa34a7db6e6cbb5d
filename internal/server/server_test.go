package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/internal/prompt"
	"github.com/kapu/sheos-insight-go/internal/schema"
	"github.com/kapu/sheos-insight-go/internal/service/ai"
	"github.com/kapu/sheos-insight-go/internal/service/insight"
	"github.com/kapu/sheos-insight-go/internal/service/state"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGenerator struct {
	mu      sync.Mutex
	release chan struct{}
	started chan struct{}
	text    string
	calls   int
}

func (g *stubGenerator) Generate(ctx context.Context, _ string, s *schema.Schema, _ *ai.GenerateOptions) (string, *ai.GenerateMetadata, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return "", &ai.GenerateMetadata{Provider: "Stub"}, ctx.Err()
		}
	}

	text := g.text
	if s != nil && text == "" {
		text = `{"dangerLevel":4,"advice":"Stay in a lit area","isEmergency":false,"contactsToNotify":false}`
	}
	return text, &ai.GenerateMetadata{Provider: "Stub", Model: "stub-1"}, nil
}

func newTestServer(gen *stubGenerator) (*Server, state.Store) {
	composer := prompt.NewComposer(prompt.NewPromptBuilder(), zap.NewNop())
	svc := insight.NewService(composer, gen, zap.NewNop())
	registry := insight.NewServiceRegistry(svc)
	store := state.NewMemoryStore(time.Minute)
	return New(":0", registry, insight.NewBatchRunner(registry, 2, zap.NewNop()), store, zap.NewNop()), store
}

func do(t *testing.T, h http.Handler, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(&stubGenerator{})
	rec := do(t, srv.Handler(), http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_ListFeatures(t *testing.T) {
	srv, _ := newTestServer(&stubGenerator{})
	rec := do(t, srv.Handler(), http.MethodGet, "/v1/features", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var features []featureInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &features))
	require.Len(t, features, len(domain.Features))
	assert.Equal(t, "threat", features[0].Name)
}

func TestServer_RunInsightLive(t *testing.T) {
	srv, store := newTestServer(&stubGenerator{})
	rec := do(t, srv.Handler(), http.MethodPost, "/v1/insights/threat", "s1", `{"situation":"Someone is following me"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope domain.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Live)
	assert.Equal(t, "Stub", envelope.Provider)

	var last domain.Envelope
	found, err := store.Last(context.Background(), state.Key{Session: "s1", Feature: domain.FeatureThreat}, &last)
	require.NoError(t, err)
	assert.True(t, found)

	rec = do(t, srv.Handler(), http.MethodGet, "/v1/insights/threat/last", "s1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv.Handler(), http.MethodGet, "/v1/insights/threat/last", "other", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_RunInsightBadInput(t *testing.T) {
	gen := &stubGenerator{}
	srv, _ := newTestServer(gen)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown feature", "/v1/insights/horoscope", `{}`, http.StatusNotFound},
		{"malformed body", "/v1/insights/threat", `{"situation":`, http.StatusBadRequest},
		{"unknown field", "/v1/insights/threat", `{"situation":"x","extra":1}`, http.StatusBadRequest},
		{"blank situation", "/v1/insights/threat", `{"situation":"   "}`, http.StatusBadRequest},
		{"bad enum", "/v1/insights/sentinel", `{"heartRate":90,"motionType":"Flying","audioLevel":"Quiet","locationContext":"Home"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv.Handler(), http.MethodPost, tt.path, "bad", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	assert.Zero(t, gen.calls, "invalid input must never reach the model")

	rec := do(t, srv.Handler(), http.MethodPost, "/v1/insights/threat", "bad", `{"situation":"ok now"}`)
	assert.Equal(t, http.StatusOK, rec.Code, "a rejected request must not leave the screen loading")
}

func TestServer_SecondTriggerWhileLoadingIsRejected(t *testing.T) {
	gen := &stubGenerator{
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	srv, _ := newTestServer(gen)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- do(t, srv.Handler(), http.MethodPost, "/v1/insights/threat", "s1", `{"situation":"first"}`)
	}()
	<-gen.started

	rec := do(t, srv.Handler(), http.MethodPost, "/v1/insights/threat", "s1", `{"situation":"second"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(gen.release)
	first := <-done
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, gen.calls)
}

func TestServer_Batch(t *testing.T) {
	srv, _ := newTestServer(&stubGenerator{})
	body := `[
		{"feature":"threat","profile":{"situation":"dark alley"}},
		{"feature":"nope","profile":{}}
	]`
	rec := do(t, srv.Handler(), http.MethodPost, "/v1/insights/batch", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var results []insight.BatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 2)
	require.NotNil(t, results[0].Envelope)
	assert.True(t, results[0].Envelope.Live)
	assert.Contains(t, results[1].Error, "unknown feature")
}

func TestServer_BatchTooLarge(t *testing.T) {
	srv, _ := newTestServer(&stubGenerator{})

	items := make([]insight.BatchItem, 11)
	for i := range items {
		items[i] = insight.BatchItem{Feature: "threat", Profile: json.RawMessage(`{"situation":"x"}`)}
	}
	body, err := json.Marshal(items)
	require.NoError(t, err)

	rec := do(t, srv.Handler(), http.MethodPost, "/v1/insights/batch", "", string(body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Metrics(t *testing.T) {
	srv, _ := newTestServer(&stubGenerator{})
	do(t, srv.Handler(), http.MethodPost, "/v1/insights/threat", "m", `{"situation":"metrics"}`)

	rec := do(t, srv.Handler(), http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sheos_insight_requests_total")
}

func TestServer_CompanionSocket(t *testing.T) {
	srv, _ := newTestServer(&stubGenerator{text: "I'm here with you."})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/ws/companion"
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"X-Session-ID": []string{"ws"}})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"message":"I feel lonely","language":"English"}`)))

	var envelope domain.Envelope
	require.NoError(t, conn.ReadJSON(&envelope))
	assert.True(t, envelope.Live)
	assert.Equal(t, domain.FeatureCompanion, envelope.Feature)
	reply, ok := envelope.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "I'm here with you.", reply["reply"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"message":""}`)))
	var socketErr socketError
	require.NoError(t, conn.ReadJSON(&socketErr))
	assert.Equal(t, "message", socketErr.Field)
}

func TestServer_Shutdown(t *testing.T) {
	srv, _ := newTestServer(&stubGenerator{})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-errCh)
}

func TestWriteInputErrorBody(t *testing.T) {
	srv, _ := newTestServer(&stubGenerator{})
	rec := do(t, srv.Handler(), http.MethodPost, "/v1/insights/health", "", `{"cycleDay":0,"symptoms":"cramps"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&body))
	assert.Equal(t, "cycleDay", body["field"])
	assert.NotEmpty(t, body["request_id"])
}

func TestServer_CancelledRequestKeepsDisplayedResult(t *testing.T) {
	gen := &stubGenerator{
		release: make(chan struct{}),
		started: make(chan struct{}, 2),
	}
	srv, store := newTestServer(gen)
	key := state.Key{Session: "s1", Feature: domain.FeatureThreat}

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- do(t, srv.Handler(), http.MethodPost, "/v1/insights/threat", "s1", `{"situation":"first"}`)
	}()
	<-gen.started
	gen.release <- struct{}{}
	require.Equal(t, http.StatusOK, (<-done).Code)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/v1/insights/threat", strings.NewReader(`{"situation":"second"}`)).WithContext(ctx)
	req.Header.Set("X-Session-ID", "s1")
	cancelled := make(chan struct{})
	go func() {
		defer close(cancelled)
		srv.Handler().ServeHTTP(httptest.NewRecorder(), req)
	}()
	<-gen.started
	cancel()
	<-cancelled

	var last domain.Envelope
	found, err := store.Last(context.Background(), key, &last)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, last.Live)
	assert.Empty(t, last.Reason)

	ok, err := store.TryBegin(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok, "a cancelled request must release the screen")
}

func TestServer_OversizedBodyIsRejected(t *testing.T) {
	gen := &stubGenerator{}
	srv, _ := newTestServer(gen)

	body := `{"situation":"` + strings.Repeat("a", int(constants.AIInputLimits.MaxBodyBytes)) + `"}`
	rec := do(t, srv.Handler(), http.MethodPost, "/v1/insights/threat", "big", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, gen.calls)
}
