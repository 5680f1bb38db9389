// Package feed implements the shared data lifecycle behind every
// dashboard widget: poll one backend endpoint, normalize the payload
// into ranked display rows, and degrade to last-good or fallback rows
// when the backend misbehaves.
package feed

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/cbmo4ers/coinpulse/internal/format"
	"github.com/cbmo4ers/coinpulse/internal/logger"
	"github.com/cbmo4ers/coinpulse/internal/types"
	"github.com/cbmo4ers/coinpulse/pkg/errors"
)

// placeholderSymbol stands in for a tick that arrived without a symbol.
const placeholderSymbol = "N/A"

// Window selects which change field of a tick a feed reads.
type Window int

const (
	// Window3Min reads price_change_percentage_3min.
	Window3Min Window = iota
	// Window1Min reads price_change_percentage_1min.
	Window1Min
	// Window1Hour reads price_change_1h.
	Window1Hour
)

// Change returns the tick's change value for this window.
func (w Window) Change(tick types.MarketTick) float64 {
	switch w {
	case Window1Min:
		return tick.Change1Min
	case Window1Hour:
		return tick.Change1Hour
	default:
		return tick.Change3Min
	}
}

// Fetcher is the part of the API client a feed needs.
type Fetcher interface {
	GetComponent(ctx context.Context, path string) (*types.ComponentEnvelope, error)
}

// Config parameterizes one feed. The five dashboard widgets differ only
// in these fields.
type Config struct {
	// Name identifies the feed in logs and the UI.
	Name string
	// Path is the backend component endpoint.
	Path string
	// Window selects the change field to display.
	Window Window
	// ByVolume switches badge classification from change to traded volume.
	ByVolume bool
	// Limit caps how many rows the feed retains per cycle.
	Limit int
	// Fallback is shown until the first successful fetch.
	Fallback []types.MarketRow
}

// Feed owns the rows of one widget. Fetches are serialized: starting a
// new one cancels the previous in-flight request, so a slow response can
// never overwrite a newer one.
type Feed struct {
	cfg     Config
	fetcher Fetcher
	logger  *logger.Logger

	mu      sync.Mutex
	rows    []types.MarketRow
	live    bool
	lastErr error
	gen     uint64
	cancel  context.CancelFunc
}

// New creates a feed. Rows returns the fallback set until the first
// successful Refresh.
func New(cfg Config, fetcher Fetcher, log *logger.Logger) *Feed {
	if log == nil {
		log = logger.NewNop()
	}

	return &Feed{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  log.Named("feed").With(zap.String("feed", cfg.Name)),
	}
}

// Name returns the feed's configured name.
func (f *Feed) Name() string {
	return f.cfg.Name
}

// Rows returns the rows to display right now: the last successful fetch,
// or the fallback set when no fetch has ever succeeded. The returned
// slice is a copy.
func (f *Feed) Rows() []types.MarketRow {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.live {
		return append([]types.MarketRow(nil), f.cfg.Fallback...)
	}

	return append([]types.MarketRow(nil), f.rows...)
}

// Live reports whether the feed has ever fetched successfully.
func (f *Feed) Live() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.live
}

// LastError returns the error of the most recent cycle, nil after a
// successful one.
func (f *Feed) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.lastErr
}

// Refresh fetches the endpoint once and replaces the feed's rows on
// success. On failure the previous rows are kept untouched and the error
// is returned for logging; display state never regresses.
func (f *Feed) Refresh(ctx context.Context) ([]types.MarketRow, error) {
	f.mu.Lock()
	if f.cancel != nil {
		// Cancel-and-replace: abandon the in-flight request for real
		// instead of letting it race this one.
		f.cancel()
	}

	f.gen++
	gen := f.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	envelope, err := f.fetcher.GetComponent(fetchCtx, f.cfg.Path)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		// A newer Refresh or Stop superseded this cycle; its result no
		// longer matters. Still hand back the current display rows so a
		// caller that renders them cannot blank the widget.
		return f.displayLocked(), errors.Newf(errors.ErrCodeFeedStopped, "refresh superseded for feed %s", f.cfg.Name)
	}

	f.cancel = nil

	if err != nil {
		f.lastErr = err
		f.logger.Warn("fetch failed, keeping previous rows",
			zap.Bool("live", f.live),
			zap.Error(err))

		return f.displayLocked(), err
	}

	f.rows = f.normalize(envelope.Data)
	f.live = true
	f.lastErr = nil

	return append([]types.MarketRow(nil), f.rows...), nil
}

// Stop cancels any in-flight request and invalidates its result. A
// stopped feed still serves its last rows.
func (f *Feed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gen++

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Feed) displayLocked() []types.MarketRow {
	if !f.live {
		return append([]types.MarketRow(nil), f.cfg.Fallback...)
	}

	return append([]types.MarketRow(nil), f.rows...)
}

// normalize maps raw ticks to display rows: defaults missing numerics to
// zero, substitutes the symbol placeholder, assigns ranks and badges, and
// applies the retention limit.
func (f *Feed) normalize(ticks []types.MarketTick) []types.MarketRow {
	limit := f.cfg.Limit
	if limit <= 0 || limit > len(ticks) {
		limit = len(ticks)
	}

	rows := make([]types.MarketRow, 0, limit)

	for i, tick := range ticks[:limit] {
		symbol := format.BaseSymbol(tick.Symbol)
		if symbol == "" {
			symbol = placeholderSymbol
		}

		rank := tick.Rank
		if rank <= 0 {
			rank = i + 1
		}

		change := f.cfg.Window.Change(tick)

		badge := types.ChangeBadge(change)
		if f.cfg.ByVolume {
			badge = types.VolumeBadge(tick.Volume24Hour)
		}

		rows = append(rows, types.MarketRow{
			Rank:   rank,
			Symbol: symbol,
			Price:  tick.CurrentPrice,
			Change: change,
			Volume: tick.Volume24Hour,
			Badge:  badge,
		})
	}

	return rows
}
