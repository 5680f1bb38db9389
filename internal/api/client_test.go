package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbmo4ers/coinpulse/internal/logger"
	"github.com/cbmo4ers/coinpulse/internal/types"
	"github.com/cbmo4ers/coinpulse/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "3.0.0", 5*time.Second, logger.NewNop())
	require.NoError(t, err)

	return client, server
}

func componentHandler(envelope types.ComponentEnvelope) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(ComponentGainers3Min, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(envelope)
	})

	return router
}

func TestNewClient(t *testing.T) {
	client, err := NewClient("http://localhost:5001/", "3.0.0", time.Second, nil)
	require.NoError(t, err)
	// Trailing slash is normalized away.
	assert.Equal(t, "http://localhost:5001", client.BaseURL())
}

func TestNewClientInvalidArgs(t *testing.T) {
	_, err := NewClient("", "3.0.0", time.Second, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingParameter))

	_, err = NewClient("http://localhost:5001", "not-a-version", time.Second, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidVersion))
}

func TestGetComponent(t *testing.T) {
	envelope := types.ComponentEnvelope{
		Component: "gainers_table",
		Data: []types.MarketTick{
			{Rank: 1, Symbol: "BTC-USD", CurrentPrice: 67234.5, Change3Min: 5.23},
			{Rank: 2, Symbol: "ETH-USD", CurrentPrice: 3421.8, Change3Min: 3.1},
		},
		Count: 2,
	}
	client, _ := newTestClient(t, componentHandler(envelope))

	got, err := client.GetComponent(context.Background(), ComponentGainers3Min)
	require.NoError(t, err)

	assert.Equal(t, "gainers_table", got.Component)
	require.Len(t, got.Data, 2)
	assert.Equal(t, "BTC-USD", got.Data[0].Symbol)
}

func TestGetComponentRequestIDHeader(t *testing.T) {
	var first, second string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first == "" {
			first = r.Header.Get("X-Request-ID")
		} else {
			second = r.Header.Get("X-Request-ID")
		}

		_ = json.NewEncoder(w).Encode(types.ComponentEnvelope{
			Data: []types.MarketTick{{Symbol: "BTC-USD"}},
		})
	}))

	_, err := client.GetComponent(context.Background(), ComponentGainers3Min)
	require.NoError(t, err)
	_, err = client.GetComponent(context.Background(), ComponentGainers3Min)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestGetComponentEmptyData(t *testing.T) {
	client, _ := newTestClient(t, componentHandler(types.ComponentEnvelope{Component: "gainers_table"}))

	_, err := client.GetComponent(context.Background(), ComponentGainers3Min)
	assert.True(t, errors.HasCode(err, errors.ErrCodeEmptyPayload))
}

func TestGetComponentBadStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "No data available"}`, http.StatusServiceUnavailable)
	}))

	_, err := client.GetComponent(context.Background(), ComponentGainers3Min)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnexpectedStatus))
	assert.True(t, errors.IsStatusError(err))
}

func TestGetComponentMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))

	_, err := client.GetComponent(context.Background(), ComponentGainers3Min)
	assert.True(t, errors.HasCode(err, errors.ErrCodeFeedParseFailed))
}

func TestGetComponentUnreachableBackend(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1", "3.0.0", 500*time.Millisecond, logger.NewNop())
	require.NoError(t, err)

	_, err = client.GetComponent(context.Background(), ComponentGainers3Min)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRequestFailed))
}

func TestGetComponentContextCancel(t *testing.T) {
	started := make(chan struct{})

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.GetComponent(ctx, ComponentGainers3Min)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.ServiceInfo{
			Service: "coinpulse-mockapi",
			Status:  "running",
			Version: "3.0.0",
		})
	}))

	info, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "running", info.Status)
	assert.Equal(t, "3.0.0", info.Version)
}

func TestHealthVersionTooOld(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.ServiceInfo{Status: "running", Version: "2.1.0"})
	}))

	info, err := client.Health(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeVersionTooOld))
	// The payload is still returned so the UI can show what it talked to.
	require.NotNil(t, info)
	assert.Equal(t, "2.1.0", info.Version)
}

func TestHealthUndecodableBodyStillAlive(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))

	info, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "running", info.Status)
}

func TestHealthDown(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.Health(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeBackendUnavailable))
}
