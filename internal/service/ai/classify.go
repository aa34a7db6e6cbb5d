package ai

import (
	"context"
	stderrors "errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/kapu/sheos-insight-go/pkg/errors"
)

var (
	errNotInitialized = stderrors.New("client not initialized")

	statusRegex       = regexp.MustCompile(`\b([45]\d{2})\b`)
	geminiCodeRegex   = regexp.MustCompile(`"code":\s*(\d{3})`)
	openaiStatusRegex = regexp.MustCompile(`^(\d{3})\s`)
)

// classify turns a provider SDK error into an InsightError. 401 and 403 are
// auth failures; everything else is transport.
func classify(provider string, err error) *errors.InsightError {
	var insightErr *errors.InsightError
	if stderrors.As(err, &insightErr) {
		return insightErr
	}

	status := statusCode(err)
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return errors.NewAuthError(provider, status, err)
	}
	return errors.NewTransportError(provider, status, err)
}

func statusCode(err error) int {
	var geminiErr genai.APIError
	if stderrors.As(err, &geminiErr) && geminiErr.Code > 0 {
		return geminiErr.Code
	}

	var openaiErr *openai.Error
	if stderrors.As(err, &openaiErr) && openaiErr.StatusCode > 0 {
		return openaiErr.StatusCode
	}

	return statusFromMessage(err.Error())
}

func statusFromMessage(msg string) int {
	for _, re := range []*regexp.Regexp{geminiCodeRegex, openaiStatusRegex, statusRegex} {
		if matches := re.FindStringSubmatch(msg); len(matches) > 1 {
			if code, err := strconv.Atoi(matches[1]); err == nil {
				return code
			}
		}
	}
	return 0
}

// isServiceFailure reports whether err means the provider itself is
// unhealthy (5xx, rate limiting, timeouts), as opposed to a bad request or
// bad credentials.
func isServiceFailure(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if isRateLimitError(err) {
		return true
	}

	var insightErr *errors.InsightError
	if stderrors.As(err, &insightErr) && insightErr.StatusCode >= 500 && insightErr.StatusCode < 600 {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "ETIMEDOUT")
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	var insightErr *errors.InsightError
	if stderrors.As(err, &insightErr) && insightErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "Rate limit") || strings.Contains(msg, "quota")
}
