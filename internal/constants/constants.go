package constants

import "time"

var ModelDefaults = struct {
	GeminiModel string
	OpenAIModel string
	Language    string
}{
	GeminiModel: "gemini-2.5-flash",
	OpenAIModel: "gpt-4.1-mini",
	Language:    "English",
}

var AIInputLimits = struct {
	MaxTextLength   int
	MaxListItems    int
	MaxBatchItems   int
	LogPreviewRunes int
	MaxBodyBytes    int64
}{
	MaxTextLength:   2000,
	MaxListItems:    20,
	MaxBatchItems:   10,
	LogPreviewRunes: 200,
	MaxBodyBytes:    64 << 10,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	FailureThreshold:    3,                // consecutive failures before OPEN
	ResetTimeout:        30 * time.Second, // default wait before HALF_OPEN
	RateLimitTimeout:    10 * time.Minute, // 429 / quota exhaustion
	HealthCheckInterval: 2 * time.Minute,
	HealthCheckTimeout:  10 * time.Second,
}

var StateConfig = struct {
	KeyPrefix    string
	PendingTTL   time.Duration
	ResultTTL    time.Duration
	WriteTimeout time.Duration
}{
	KeyPrefix:    "sheos:screen:",
	PendingTTL:   2 * time.Minute,
	ResultTTL:    24 * time.Hour,
	WriteTimeout: 3 * time.Second,
}

var ServerConfig = struct {
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	SessionHeader     string
	RequestIDHeader   string
	DefaultSession    string
}{
	ReadHeaderTimeout: 10 * time.Second,
	ShutdownTimeout:   10 * time.Second,
	SessionHeader:     "X-Session-ID",
	RequestIDHeader:   "X-Request-ID",
	DefaultSession:    "anonymous",
}
