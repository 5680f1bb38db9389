package types

// Badge is a coarse severity label derived from magnitude thresholds,
// used only for display styling.
type Badge string

const (
	// BadgeModerate marks an absolute change below the strong threshold.
	BadgeModerate Badge = "MODERATE"
	// BadgeStrong marks an absolute change of at least 2 percent.
	BadgeStrong Badge = "STRONG"
	// BadgeStrongHigh marks an absolute change of at least 5 percent.
	BadgeStrongHigh Badge = "STRONG HIGH"
	// BadgeLowVol marks traded volume below every volume tier.
	BadgeLowVol Badge = "LOW VOL"
	// BadgeHighVol marks traded volume of at least 10,000,000.
	BadgeHighVol Badge = "HIGH VOL"
)

// Change badge thresholds, boundary inclusive.
const (
	StrongChangeThreshold     = 2.0
	StrongHighChangeThreshold = 5.0
)

// Volume badge thresholds, boundary inclusive.
const (
	StrongVolumeThreshold   = 100_000.0
	ModerateVolumeThreshold = 1_000_000.0
	HighVolumeThreshold     = 10_000_000.0
)

// MarketRow is a single ranked display row. Rows are derived, never
// persisted: each fetch cycle recomputes the full set.
type MarketRow struct {
	// Rank is the 1-based position within the feed for this cycle.
	Rank int
	// Symbol is the exchange pair with the quote currency stripped, e.g. "BTC".
	Symbol string
	// Price is the current price in the quote currency.
	Price float64
	// Change is the signed percentage change over the feed's window.
	Change float64
	// Volume is the 24h traded volume, zero when the feed does not carry it.
	Volume float64
	// Badge classifies the row by change or volume magnitude.
	Badge Badge
}

// ChangeBadge classifies an absolute percentage change against the fixed
// thresholds. Boundaries belong to the higher tier.
func ChangeBadge(change float64) Badge {
	abs := change
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= StrongHighChangeThreshold:
		return BadgeStrongHigh
	case abs >= StrongChangeThreshold:
		return BadgeStrong
	default:
		return BadgeModerate
	}
}

// VolumeBadge classifies absolute traded volume against the three volume
// tiers used by the volume banner.
func VolumeBadge(volume float64) Badge {
	abs := volume
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= HighVolumeThreshold:
		return BadgeHighVol
	case abs >= ModerateVolumeThreshold:
		return BadgeModerate
	case abs >= StrongVolumeThreshold:
		return BadgeStrong
	default:
		return BadgeLowVol
	}
}

// ComponentEnvelope is the response shape shared by every component
// endpoint of the dashboard backend.
type ComponentEnvelope struct {
	Component   string       `json:"component"`
	Data        []MarketTick `json:"data"`
	Count       int          `json:"count"`
	TimeFrame   string       `json:"time_frame"`
	LastUpdated string       `json:"last_updated"`
}

// MarketTick is one raw item inside a component envelope. Field presence
// varies per endpoint; decoders default missing numerics to zero.
type MarketTick struct {
	Rank         int     `json:"rank"`
	Symbol       string  `json:"symbol"`
	CurrentPrice float64 `json:"current_price"`
	Change3Min   float64 `json:"price_change_percentage_3min"`
	Change1Min   float64 `json:"price_change_percentage_1min"`
	Change1Hour  float64 `json:"price_change_1h"`
	Volume24Hour float64 `json:"volume_24h"`
}

// ServiceInfo is the payload of the backend root liveness endpoint.
type ServiceInfo struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Version string `json:"version"`
}
