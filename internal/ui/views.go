package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/cbmo4ers/coinpulse/internal/format"
	"github.com/cbmo4ers/coinpulse/internal/types"
)

// collapsedRowCount is how many ranked rows a table shows before the
// expand toggle reveals the remainder.
const collapsedRowCount = 7

// bannerSeparator joins banner items into one scrolling line.
const bannerSeparator = "   •   "

// NewMarketTable creates a ranked table for gainers or losers.
func NewMarketTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Symbol", Width: 8},
		{Title: "Price", Width: 16},
		{Title: "Change", Width: 12},
		{Title: "Badge", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(collapsedRowCount),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// MarketTableRows converts display rows for the table widget, truncating
// to the given visible limit. A non-positive limit shows everything.
func MarketTableRows(rows []types.MarketRow, limit int) []table.Row {
	visible := rows
	if limit > 0 && len(visible) > limit {
		visible = visible[:limit]
	}

	out := make([]table.Row, 0, len(visible))
	for _, row := range visible {
		out = append(out, table.Row{
			fmt.Sprintf("%d", row.Rank),
			row.Symbol,
			format.FormatPrice(row.Price),
			format.FormatPercentage(row.Change),
			string(row.Badge),
		})
	}

	return out
}

// BannerText renders rows as one long ticker line, duplicated
// back-to-back so the visible window can wrap around seamlessly.
func BannerText(rows []types.MarketRow, withVolume bool) string {
	if len(rows) == 0 {
		return ""
	}

	items := make([]string, 0, len(rows))

	for _, row := range rows {
		item := fmt.Sprintf("%s %s %s",
			row.Symbol,
			format.FormatPrice(row.Price),
			format.FormatPercentage(row.Change))
		if withVolume {
			item = fmt.Sprintf("%s vol %.0f", item, row.Volume)
		}

		item += " [" + string(row.Badge) + "]"
		items = append(items, item)
	}

	single := strings.Join(items, bannerSeparator) + bannerSeparator

	return single + single
}

// BannerWindow slices a fixed-width view out of the ticker line at the
// given offset, wrapping around the duplicated content.
func BannerWindow(text string, offset, width int) string {
	runes := []rune(text)
	if len(runes) == 0 || width <= 0 {
		return ""
	}

	// The text is its own double; wrap within the first half.
	half := len(runes) / 2
	if half == 0 {
		half = len(runes)
	}

	start := offset % half

	end := start + width
	if end > len(runes) {
		end = len(runes)
	}

	return string(runes[start:end])
}

func (m Model) headerView() string {
	indicator := DisconnectedStyle.Render("○ disconnected")
	if m.connected {
		indicator = ConnectedStyle.Render("● connected")
	}

	version := ""
	if m.backendVersion != "" {
		version = HelpStyle.Render(" backend v" + m.backendVersion)
	}

	title := TitleStyle.Render("coinpulse - crypto market dashboard")
	countdown := HelpStyle.Render(fmt.Sprintf("refresh in %2ds", m.countdown))

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ", indicator, version, "  ", countdown)
}

func legendView() string {
	tiers := []types.Badge{
		types.BadgeStrongHigh,
		types.BadgeStrong,
		types.BadgeModerate,
		types.BadgeHighVol,
		types.BadgeLowVol,
	}

	parts := make([]string, 0, len(tiers))
	for _, tier := range tiers {
		parts = append(parts, BadgeStyle(tier).Render(string(tier)))
	}

	return HelpStyle.Render("badges: ") + strings.Join(parts, HelpStyle.Render(" / "))
}

func (m Model) sectionCaption(title, feedName string) string {
	caption := SectionStyle.Render(title)
	if !m.feeds[feedName].Live() {
		caption += " " + FallbackStyle.Render("(demo data)")
	}

	return caption
}

func (m Model) bannerView(feedName string, withVolume bool) string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	text := BannerText(m.rows[feedName], withVolume)

	return BannerStyle.Render(BannerWindow(text, m.bannerOffset, width))
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(m.headerView())
	s.WriteString("\n")
	s.WriteString(legendView())
	s.WriteString("\n\n")

	s.WriteString(m.bannerView(topBannerFeed, false))
	s.WriteString("\n\n")

	s.WriteString(m.sectionCaption("Top Gainers (3 min)", gainersFeed))
	if m.focus == focusGainers {
		s.WriteString(HelpStyle.Render("  [focused]"))
	}

	s.WriteString("\n")
	s.WriteString(m.gainersTable.View())
	s.WriteString("\n\n")

	s.WriteString(m.sectionCaption("Top Losers (3 min)", losersFeed))
	if m.focus == focusLosers {
		s.WriteString(HelpStyle.Render("  [focused]"))
	}

	s.WriteString("\n")
	s.WriteString(m.losersTable.View())
	s.WriteString("\n\n")

	s.WriteString(m.sectionCaption("Fast Movers (1 min)", gainers1mFeed))
	if m.focus == focusGainers1m {
		s.WriteString(HelpStyle.Render("  [focused]"))
	}

	s.WriteString("\n")
	s.WriteString(m.gainers1mTable.View())
	s.WriteString("\n\n")

	s.WriteString(m.bannerView(bottomBannerFeed, true))
	s.WriteString("\n")

	expandHint := "e: expand"
	if m.expanded {
		expandHint = "e: collapse"
	}

	s.WriteString(HelpStyle.Render(
		fmt.Sprintf("r: refresh | %s | tab: focus | o: open exchange | q: quit", expandHint)))

	return s.String()
}
