package feed

import "github.com/cbmo4ers/coinpulse/internal/types"

// Fallback fixtures shown before the first successful fetch. One set per
// widget, defined in a single place so the first-load and error paths can
// never drift apart.

// FallbackGainers3Min is the demo row set for the 3-minute gainers table.
var FallbackGainers3Min = []types.MarketRow{
	{Rank: 1, Symbol: "BTC", Price: 67234.50, Change: 5.23, Badge: types.BadgeStrongHigh},
	{Rank: 2, Symbol: "ETH", Price: 3421.80, Change: 4.87, Badge: types.BadgeStrong},
	{Rank: 3, Symbol: "SOL", Price: 142.35, Change: 3.94, Badge: types.BadgeStrong},
	{Rank: 4, Symbol: "AVAX", Price: 38.92, Change: 2.76, Badge: types.BadgeStrong},
	{Rank: 5, Symbol: "LINK", Price: 14.83, Change: 2.15, Badge: types.BadgeStrong},
	{Rank: 6, Symbol: "MATIC", Price: 0.8924, Change: 1.62, Badge: types.BadgeModerate},
	{Rank: 7, Symbol: "DOT", Price: 7.41, Change: 1.08, Badge: types.BadgeModerate},
	{Rank: 8, Symbol: "ADA", Price: 0.4562, Change: 0.73, Badge: types.BadgeModerate},
}

// FallbackLosers3Min is the demo row set for the 3-minute losers table.
var FallbackLosers3Min = []types.MarketRow{
	{Rank: 1, Symbol: "DOGE", Price: 0.1234, Change: -6.42, Badge: types.BadgeStrongHigh},
	{Rank: 2, Symbol: "SHIB", Price: 0.00002341, Change: -5.18, Badge: types.BadgeStrongHigh},
	{Rank: 3, Symbol: "XRP", Price: 0.5923, Change: -3.77, Badge: types.BadgeStrong},
	{Rank: 4, Symbol: "LTC", Price: 84.12, Change: -2.93, Badge: types.BadgeStrong},
	{Rank: 5, Symbol: "ATOM", Price: 9.87, Change: -2.24, Badge: types.BadgeStrong},
	{Rank: 6, Symbol: "UNI", Price: 6.45, Change: -1.56, Badge: types.BadgeModerate},
	{Rank: 7, Symbol: "ALGO", Price: 0.1876, Change: -0.94, Badge: types.BadgeModerate},
	{Rank: 8, Symbol: "XLM", Price: 0.1123, Change: -0.41, Badge: types.BadgeModerate},
}

// FallbackGainers1Min is the demo row set for the 1-minute gainers table.
var FallbackGainers1Min = []types.MarketRow{
	{Rank: 1, Symbol: "PEPE", Price: 0.00000996, Change: 3.12, Badge: types.BadgeStrong},
	{Rank: 2, Symbol: "BTC", Price: 67234.50, Change: 1.84, Badge: types.BadgeModerate},
	{Rank: 3, Symbol: "SOL", Price: 142.35, Change: 1.37, Badge: types.BadgeModerate},
	{Rank: 4, Symbol: "ETH", Price: 3421.80, Change: 0.92, Badge: types.BadgeModerate},
	{Rank: 5, Symbol: "INJ", Price: 24.67, Change: 0.58, Badge: types.BadgeModerate},
	{Rank: 6, Symbol: "ARB", Price: 1.12, Change: 0.34, Badge: types.BadgeModerate},
	{Rank: 7, Symbol: "OP", Price: 2.38, Change: 0.21, Badge: types.BadgeModerate},
}

// FallbackTopBanner is the demo row set for the 1-hour price banner.
var FallbackTopBanner = []types.MarketRow{
	{Rank: 1, Symbol: "BTC", Price: 67234.50, Change: 2.84, Badge: types.BadgeStrong},
	{Rank: 2, Symbol: "ETH", Price: 3421.80, Change: -1.92, Badge: types.BadgeModerate},
	{Rank: 3, Symbol: "SOL", Price: 142.35, Change: 6.41, Badge: types.BadgeStrongHigh},
	{Rank: 4, Symbol: "DOGE", Price: 0.1234, Change: -4.27, Badge: types.BadgeStrong},
	{Rank: 5, Symbol: "AVAX", Price: 38.92, Change: 1.53, Badge: types.BadgeModerate},
	{Rank: 6, Symbol: "LINK", Price: 14.83, Change: -0.68, Badge: types.BadgeModerate},
}

// FallbackBottomBanner is the demo row set for the 1-hour volume banner.
var FallbackBottomBanner = []types.MarketRow{
	{Rank: 1, Symbol: "BTC", Price: 67234.50, Change: 2.84, Volume: 28_400_000, Badge: types.BadgeHighVol},
	{Rank: 2, Symbol: "ETH", Price: 3421.80, Change: -1.92, Volume: 14_700_000, Badge: types.BadgeHighVol},
	{Rank: 3, Symbol: "SOL", Price: 142.35, Change: 6.41, Volume: 5_200_000, Badge: types.BadgeModerate},
	{Rank: 4, Symbol: "XRP", Price: 0.5923, Change: -3.77, Volume: 2_100_000, Badge: types.BadgeModerate},
	{Rank: 5, Symbol: "LTC", Price: 84.12, Change: -2.93, Volume: 640_000, Badge: types.BadgeStrong},
	{Rank: 6, Symbol: "ALGO", Price: 0.1876, Change: -0.94, Volume: 87_000, Badge: types.BadgeLowVol},
}
