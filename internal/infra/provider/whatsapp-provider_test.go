package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hrbot-connector/internal/infra/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *MetaWhatsAppProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("GRAPH_API_URL", server.URL)
	t.Setenv("PHONE_NUMBER_ID", "123456")
	t.Setenv("WHATSAPP_TOKEN", "test-token")

	log := logger.NewLogger(context.Background(), false)
	return NewMetaWhatsAppProvider(log, server.Client())
}

func TestSendTextMessageSucceeds(t *testing.T) {
	var attempts atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		assert.Equal(t, "/123456/messages", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	})

	err := p.SendTextMessage("5511987654321", "olá")

	require.NoError(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestSendRetriesOnceWithBackoff(t *testing.T) {
	var attempts atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, `{"error":{"message":"boom","code":1}}`, http.StatusInternalServerError)
	})

	start := time.Now()
	err := p.SendTextMessage("5511987654321", "olá")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Equal(t, int32(2), attempts.Load(), "a failing send gets exactly one retry")
	assert.GreaterOrEqual(t, elapsed, retryBackoff, "the retry waits the fixed backoff")
}

func TestSecondAttemptCanRecover(t *testing.T) {
	var attempts atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			http.Error(w, `{"error":{"message":"transient","code":2}}`, http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	err := p.SendTextMessage("5511987654321", "olá")

	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestPairRateLimitIsDetected(t *testing.T) {
	var attempts atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, `{"error":{"message":"(#%d) pair rate limit hit","type":"OAuthException","code":%d}}`,
			PairRateLimitCode, PairRateLimitCode)
	})

	err := p.SendTextMessage("5511987654321", "olá")

	require.Error(t, err)
	assert.Equal(t, int32(2), attempts.Load())
	assert.True(t, IsPairRateLimit(err))

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, PairRateLimitCode, apiErr.Code)
	assert.Contains(t, apiErr.Message, "pair rate limit")
}

func TestOtherGraphErrorsAreNotPairRateLimit(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid recipient","code":131026}}`, http.StatusBadRequest)
	})

	err := p.SendTextMessage("5511987654321", "olá")

	require.Error(t, err)
	assert.False(t, IsPairRateLimit(err))
	assert.False(t, IsPairRateLimit(fmt.Errorf("plain error")))
}

func TestNonJSONErrorBodyIsCarriedVerbatim(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
	})

	err := p.SendTextMessage("5511987654321", "olá")

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, 0, apiErr.Code)
	assert.Contains(t, apiErr.Message, "Bad Gateway")
}

func TestSendRejectsEmptyArguments(t *testing.T) {
	log := logger.NewLogger(context.Background(), false)
	p := NewMetaWhatsAppProvider(log, http.DefaultClient)

	assert.Error(t, p.SendTextMessage("", "olá"))
	assert.Error(t, p.SendTextMessage("5511987654321", ""))
	assert.Error(t, p.SendTemplateMessage("", "hello_world"))
	assert.Error(t, p.SendTemplateMessage("5511987654321", ""))
}
