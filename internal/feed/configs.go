package feed

import "github.com/cbmo4ers/coinpulse/internal/api"

// Canonical feed names, shared between the catalog and the UI.
const (
	NameGainers3Min  = "gainers-3min"
	NameLosers3Min   = "losers-3min"
	NameGainers1Min  = "gainers-1min"
	NameTopBanner    = "top-banner-1h"
	NameBottomBanner = "bottom-banner-1h"
)

// DefaultConfigs returns the five widget configurations of the dashboard.
// limit caps retained rows per feed; the backend serves at most 20.
func DefaultConfigs(limit int) []Config {
	return []Config{
		{
			Name:     NameGainers3Min,
			Path:     api.ComponentGainers3Min,
			Window:   Window3Min,
			Limit:    limit,
			Fallback: FallbackGainers3Min,
		},
		{
			Name:     NameLosers3Min,
			Path:     api.ComponentLosers3Min,
			Window:   Window3Min,
			Limit:    limit,
			Fallback: FallbackLosers3Min,
		},
		{
			Name:     NameGainers1Min,
			Path:     api.ComponentGainers1Min,
			Window:   Window1Min,
			Limit:    limit,
			Fallback: FallbackGainers1Min,
		},
		{
			Name:     NameTopBanner,
			Path:     api.ComponentTopBanner,
			Window:   Window1Hour,
			Limit:    limit,
			Fallback: FallbackTopBanner,
		},
		{
			Name:     NameBottomBanner,
			Path:     api.ComponentBottomBanner,
			Window:   Window1Hour,
			ByVolume: true,
			Limit:    limit,
			Fallback: FallbackBottomBanner,
		},
	}
}
