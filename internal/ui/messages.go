package ui

import (
	"time"

	"github.com/cbmo4ers/coinpulse/internal/types"
)

// FeedRowsMsg carries freshly fetched rows for one feed.
type FeedRowsMsg struct {
	Feed string
	Rows []types.MarketRow
}

// FeedErrorMsg reports a failed fetch cycle. Rows holds what the feed
// still displays (last-good or fallback), so the view never goes blank.
type FeedErrorMsg struct {
	Feed string
	Rows []types.MarketRow
	Err  error
}

// HealthMsg reports the result of a backend liveness check.
type HealthMsg struct {
	Connected bool
	Info      *types.ServiceInfo
}

// CountdownMsg reports seconds remaining until the next automatic refresh.
type CountdownMsg struct {
	Remaining int
}

// RefreshMsg tells the dashboard to refetch every feed now.
type RefreshMsg struct {
	Remaining int
}

// bannerTickMsg advances the scrolling banners by one step.
type bannerTickMsg time.Time
