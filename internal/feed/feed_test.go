package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbmo4ers/coinpulse/internal/api"
	"github.com/cbmo4ers/coinpulse/internal/logger"
	"github.com/cbmo4ers/coinpulse/internal/types"
	"github.com/cbmo4ers/coinpulse/pkg/errors"
)

// fetchFunc adapts a function to the Fetcher interface.
type fetchFunc func(ctx context.Context, path string) (*types.ComponentEnvelope, error)

func (f fetchFunc) GetComponent(ctx context.Context, path string) (*types.ComponentEnvelope, error) {
	return f(ctx, path)
}

func gainersConfig() Config {
	return Config{
		Name:     NameGainers3Min,
		Path:     api.ComponentGainers3Min,
		Window:   Window3Min,
		Limit:    20,
		Fallback: FallbackGainers3Min,
	}
}

func TestRowsBeforeFirstFetchServesFallback(t *testing.T) {
	f := New(gainersConfig(), fetchFunc(func(ctx context.Context, path string) (*types.ComponentEnvelope, error) {
		return nil, errors.New(errors.ErrCodeRequestFailed, "unreachable")
	}), logger.NewNop())

	rows := f.Rows()
	assert.Equal(t, FallbackGainers3Min, rows)
	assert.False(t, f.Live())
}

func TestRefreshSuccess(t *testing.T) {
	f := New(gainersConfig(), fetchFunc(func(ctx context.Context, path string) (*types.ComponentEnvelope, error) {
		assert.Equal(t, api.ComponentGainers3Min, path)

		return &types.ComponentEnvelope{
			Data: []types.MarketTick{
				{Rank: 1, Symbol: "BTC-USD", CurrentPrice: 67234.5, Change3Min: 5.23},
				{Symbol: "ETH-USD", CurrentPrice: 3421.8, Change3Min: 2.0},
				{Symbol: "", CurrentPrice: 0, Change3Min: 0.4},
			},
		}, nil
	}), logger.NewNop())

	rows, err := f.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Quote suffix is stripped for display.
	assert.Equal(t, "BTC", rows[0].Symbol)
	assert.Equal(t, types.BadgeStrongHigh, rows[0].Badge)

	// Missing rank falls back to position.
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, types.BadgeStrong, rows[1].Badge)

	// Missing symbol gets the placeholder, missing numerics stay zero.
	assert.Equal(t, "N/A", rows[2].Symbol)
	assert.Equal(t, 0.0, rows[2].Price)
	assert.Equal(t, types.BadgeModerate, rows[2].Badge)

	assert.True(t, f.Live())
	assert.NoError(t, f.LastError())
}

func TestRefreshAppliesLimit(t *testing.T) {
	cfg := gainersConfig()
	cfg.Limit = 2

	f := New(cfg, fetchFunc(func(ctx context.Context, path string) (*types.ComponentEnvelope, error) {
		return &types.ComponentEnvelope{
			Data: []types.MarketTick{
				{Symbol: "BTC-USD"}, {Symbol: "ETH-USD"}, {Symbol: "SOL-USD"},
			},
		}, nil
	}), logger.NewNop())

	rows, err := f.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestVolumeClassification(t *testing.T) {
	cfg := Config{
		Name:     NameBottomBanner,
		Path:     api.ComponentBottomBanner,
		Window:   Window1Hour,
		ByVolume: true,
		Limit:    20,
		Fallback: FallbackBottomBanner,
	}

	f := New(cfg, fetchFunc(func(ctx context.Context, path string) (*types.ComponentEnvelope, error) {
		return &types.ComponentEnvelope{
			Data: []types.MarketTick{
				{Symbol: "BTC-USD", Change1Hour: 0.2, Volume24Hour: 28_400_000},
				{Symbol: "ALGO-USD", Change1Hour: 9.9, Volume24Hour: 42_000},
			},
		}, nil
	}), logger.NewNop())

	rows, err := f.Refresh(context.Background())
	require.NoError(t, err)

	// Volume feeds badge by volume regardless of change magnitude.
	assert.Equal(t, types.BadgeHighVol, rows[0].Badge)
	assert.Equal(t, types.BadgeLowVol, rows[1].Badge)
	assert.Equal(t, 0.2, rows[0].Change)
}

func TestFailedRefreshBeforeFirstSuccessKeepsFallback(t *testing.T) {
	f := New(gainersConfig(), fetchFunc(func(ctx context.Context, path string) (*types.ComponentEnvelope, error) {
		return nil, errors.New(errors.ErrCodeRequestFailed, "unreachable")
	}), logger.NewNop())

	rows, err := f.Refresh(context.Background())
	assert.Error(t, err)
	// The widget still renders its demo rows, never an empty view.
	assert.Equal(t, FallbackGainers3Min, rows)
	assert.Equal(t, FallbackGainers3Min, f.Rows())
	assert.False(t, f.Live())
}

func TestFailedRefreshAfterSuccessKeepsLastGoodRows(t *testing.T) {
	var calls int

	f := New(gainersConfig(), fetchFunc(func(ctx context.Context, path string) (*types.ComponentEnvelope, error) {
		calls++
		if calls == 1 {
			return &types.ComponentEnvelope{
				Data: []types.MarketTick{{Rank: 1, Symbol: "BTC-USD", CurrentPrice: 67234.5, Change3Min: 5.23}},
			}, nil
		}

		return nil, errors.New(errors.ErrCodeEmptyPayload, "empty data array")
	}), logger.NewNop())

	first, err := f.Refresh(context.Background())
	require.NoError(t, err)

	second, err := f.Refresh(context.Background())
	assert.Error(t, err)

	// No flicker back to empty or fallback: rows are unchanged.
	assert.Equal(t, first, second)
	assert.Equal(t, first, f.Rows())
	assert.True(t, f.Live())
	assert.Error(t, f.LastError())
}

func TestRefreshCancelAndReplace(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)

	f := New(gainersConfig(), fetchFunc(func(ctx context.Context, path string) (*types.ComponentEnvelope, error) {
		mu.Lock()
		calls++
		call := calls
		mu.Unlock()

		if call == 1 {
			// Simulate a slow response that only finishes once cancelled.
			<-ctx.Done()

			return nil, ctx.Err()
		}

		return &types.ComponentEnvelope{
			Data: []types.MarketTick{{Rank: 1, Symbol: "ETH-USD", CurrentPrice: 3421.8, Change3Min: 2.5}},
		}, nil
	}), logger.NewNop())

	type result struct {
		rows []types.MarketRow
		err  error
	}

	firstDone := make(chan result, 1)
	go func() {
		rows, err := f.Refresh(context.Background())
		firstDone <- result{rows: rows, err: err}
	}()

	// Wait until the first fetch is in flight.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return calls == 1
	}, time.Second, 5*time.Millisecond)

	rows, err := f.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ETH", rows[0].Symbol)

	// The superseded cycle reports itself stale and leaves state alone.
	first := <-firstDone
	assert.True(t, errors.HasCode(first.err, errors.ErrCodeFeedStopped))
	assert.Equal(t, rows, f.Rows())

	// It still returns the current display rows, so a caller rendering
	// its result cannot blank the widget.
	assert.Equal(t, rows, first.rows)
}

func TestSupersededRefreshKeepsFallbackVisible(t *testing.T) {
	started := make(chan struct{})

	f := New(gainersConfig(), fetchFunc(func(ctx context.Context, path string) (*types.ComponentEnvelope, error) {
		close(started)
		<-ctx.Done()

		return nil, ctx.Err()
	}), logger.NewNop())

	done := make(chan []types.MarketRow, 1)
	go func() {
		rows, _ := f.Refresh(context.Background())
		done <- rows
	}()

	<-started
	f.Stop()

	// Before any success the superseded cycle still carries the demo
	// rows, never an empty slice.
	assert.Equal(t, FallbackGainers3Min, <-done)
}

func TestStopSuppressesInFlightResult(t *testing.T) {
	started := make(chan struct{})

	f := New(gainersConfig(), fetchFunc(func(ctx context.Context, path string) (*types.ComponentEnvelope, error) {
		close(started)
		<-ctx.Done()

		return nil, ctx.Err()
	}), logger.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := f.Refresh(context.Background())
		done <- err
	}()

	<-started
	f.Stop()

	err := <-done
	assert.True(t, errors.HasCode(err, errors.ErrCodeFeedStopped))
	// No state update happened after teardown.
	assert.False(t, f.Live())
	assert.Equal(t, FallbackGainers3Min, f.Rows())
}

func TestDefaultConfigs(t *testing.T) {
	configs := DefaultConfigs(20)
	require.Len(t, configs, 5)

	byName := map[string]Config{}
	for _, cfg := range configs {
		byName[cfg.Name] = cfg
		assert.Equal(t, 20, cfg.Limit)
		assert.NotEmpty(t, cfg.Path)
		assert.NotEmpty(t, cfg.Fallback)
	}

	assert.Equal(t, Window3Min, byName[NameGainers3Min].Window)
	assert.Equal(t, Window1Min, byName[NameGainers1Min].Window)
	assert.Equal(t, Window1Hour, byName[NameTopBanner].Window)
	assert.True(t, byName[NameBottomBanner].ByVolume)
	assert.False(t, byName[NameTopBanner].ByVolume)
}

// End-to-end through the real API client against a mux test server.
func TestFeedAgainstHTTPBackend(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc(api.ComponentGainers3Min, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.ComponentEnvelope{
			Component: "gainers_table",
			Data: []types.MarketTick{
				{Rank: 1, Symbol: "BTC-USD", CurrentPrice: 67234.5, Change3Min: 5.23},
			},
		})
	})

	server := httptest.NewServer(router)
	defer server.Close()

	client, err := api.NewClient(server.URL, "3.0.0", 5*time.Second, logger.NewNop())
	require.NoError(t, err)

	f := New(gainersConfig(), client, logger.NewNop())

	rows, err := f.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "BTC", rows[0].Symbol)
	assert.True(t, f.Live())
}
