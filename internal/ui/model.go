// Package ui is the Bubble Tea dashboard: ranked gainers/losers tables,
// scrolling ticker banners, and a countdown-driven refresh shared by
// every widget.
package ui

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cbmo4ers/coinpulse/internal/config"
	"github.com/cbmo4ers/coinpulse/internal/feed"
	"github.com/cbmo4ers/coinpulse/internal/format"
	"github.com/cbmo4ers/coinpulse/internal/logger"
	"github.com/cbmo4ers/coinpulse/internal/types"
)

// Feed name aliases used throughout the UI.
const (
	gainersFeed      = feed.NameGainers3Min
	losersFeed       = feed.NameLosers3Min
	gainers1mFeed    = feed.NameGainers1Min
	topBannerFeed    = feed.NameTopBanner
	bottomBannerFeed = feed.NameBottomBanner
)

// bannerTickInterval paces the ticker scroll animation.
const bannerTickInterval = 250 * time.Millisecond

// focusArea identifies which table receives navigation keys.
type focusArea int

const (
	focusGainers focusArea = iota
	focusLosers
	focusGainers1m
)

// Backend is the slice of the API client the dashboard needs.
type Backend interface {
	feed.Fetcher
	Health(ctx context.Context) (*types.ServiceInfo, error)
}

// Model is the main Bubble Tea model for the dashboard.
type Model struct {
	backend Backend
	feeds   map[string]*feed.Feed
	poller  *feed.Poller
	logger  *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	rows           map[string][]types.MarketRow
	gainersTable   table.Model
	losersTable    table.Model
	gainers1mTable table.Model

	connected      bool
	backendVersion string
	countdown      int
	refreshSeconds int
	tableLimit     int
	expanded       bool
	focus          focusArea
	bannerOffset   int
	width          int
	height         int

	openLink func(string) error
}

// NewModel creates the dashboard model. poller may be nil; manual
// refresh then drives the feeds directly.
func NewModel(cfg config.Config, backend Backend, poller *feed.Poller, log *logger.Logger) Model {
	if log == nil {
		log = logger.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	feeds := make(map[string]*feed.Feed)
	rows := make(map[string][]types.MarketRow)

	for _, feedCfg := range feed.DefaultConfigs(cfg.BannerLimit) {
		f := feed.New(feedCfg, backend, log)
		feeds[feedCfg.Name] = f
		rows[feedCfg.Name] = f.Rows()
	}

	m := Model{
		backend:        backend,
		feeds:          feeds,
		poller:         poller,
		logger:         log.Named("ui"),
		ctx:            ctx,
		cancel:         cancel,
		rows:           rows,
		gainersTable:   NewMarketTable(),
		losersTable:    NewMarketTable(),
		gainers1mTable: NewMarketTable(),
		countdown:      cfg.RefreshSeconds,
		refreshSeconds: cfg.RefreshSeconds,
		tableLimit:     cfg.TableLimit,
		openLink:       openBrowser,
	}

	m.gainersTable.Focus()
	m.syncTables()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshAll(), m.checkHealth(), scheduleBannerTick())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case FeedRowsMsg:
		m.rows[msg.Feed] = msg.Rows
		m.syncTables()

		return m, nil

	case FeedErrorMsg:
		// Silent degradation: the rows are the feed's last-good or
		// fallback set, the error itself is only a diagnostic.
		m.rows[msg.Feed] = msg.Rows
		m.syncTables()

		return m, nil

	case HealthMsg:
		m.connected = msg.Connected
		if msg.Info != nil {
			m.backendVersion = msg.Info.Version
		}

		return m, nil

	case CountdownMsg:
		m.countdown = msg.Remaining

		return m, nil

	case RefreshMsg:
		m.countdown = msg.Remaining
		if m.countdown <= 0 {
			m.countdown = m.refreshSeconds
		}

		return m, tea.Batch(m.refreshAll(), m.checkHealth())

	case bannerTickMsg:
		m.bannerOffset++

		return m, scheduleBannerTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.shutdown()

		return m, tea.Quit

	case "r":
		if m.poller != nil {
			// The poller broadcasts the refresh back as a RefreshMsg.
			m.poller.Refresh()

			return m, nil
		}

		m.countdown = m.refreshSeconds

		return m, tea.Batch(m.refreshAll(), m.checkHealth())

	case "e":
		m.expanded = !m.expanded
		m.syncTables()

		return m, nil

	case "tab":
		m.focus = (m.focus + 1) % 3
		m.syncFocus()

		return m, nil

	case "o":
		if url, ok := m.selectedLink(); ok {
			if err := m.openLink(url); err != nil {
				m.logger.Warn("failed to open exchange link", zap.String("url", url), zap.Error(err))
			}
		}

		return m, nil
	}

	var cmd tea.Cmd

	switch m.focus {
	case focusGainers:
		m.gainersTable, cmd = m.gainersTable.Update(msg)
	case focusLosers:
		m.losersTable, cmd = m.losersTable.Update(msg)
	case focusGainers1m:
		m.gainers1mTable, cmd = m.gainers1mTable.Update(msg)
	}

	return m, cmd
}

// refreshAll returns one command per feed; each fetches independently so
// a slow endpoint cannot hold up the others.
func (m Model) refreshAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.feeds))

	for name, f := range m.feeds {
		cmds = append(cmds, refreshFeed(m.ctx, name, f))
	}

	return tea.Batch(cmds...)
}

func refreshFeed(ctx context.Context, name string, f *feed.Feed) tea.Cmd {
	return func() tea.Msg {
		rows, err := f.Refresh(ctx)
		if err != nil {
			return FeedErrorMsg{Feed: name, Rows: rows, Err: err}
		}

		return FeedRowsMsg{Feed: name, Rows: rows}
	}
}

func (m Model) checkHealth() tea.Cmd {
	ctx := m.ctx
	backend := m.backend

	return func() tea.Msg {
		info, err := backend.Health(ctx)

		return HealthMsg{Connected: err == nil, Info: info}
	}
}

func scheduleBannerTick() tea.Cmd {
	return tea.Tick(bannerTickInterval, func(t time.Time) tea.Msg {
		return bannerTickMsg(t)
	})
}

// syncTables pushes the current rows into the three table widgets and
// adjusts their heights for the expand state.
func (m *Model) syncTables() {
	sync := func(t *table.Model, rows []types.MarketRow) {
		tableRows := MarketTableRows(rows, m.visibleLimit(len(rows)))
		t.SetRows(tableRows)

		height := len(tableRows)
		if height < 1 {
			height = 1
		}

		t.SetHeight(height)
	}

	sync(&m.gainersTable, m.rows[gainersFeed])
	sync(&m.losersTable, m.rows[losersFeed])
	sync(&m.gainers1mTable, m.rows[gainers1mFeed])
}

// visibleLimit returns how many rows a table shows right now.
func (m Model) visibleLimit(total int) int {
	if m.expanded {
		return total
	}

	limit := m.tableLimit
	if limit <= 0 {
		limit = collapsedRowCount
	}

	return limit
}

func (m *Model) syncFocus() {
	m.gainersTable.Blur()
	m.losersTable.Blur()
	m.gainers1mTable.Blur()

	switch m.focus {
	case focusGainers:
		m.gainersTable.Focus()
	case focusLosers:
		m.losersTable.Focus()
	case focusGainers1m:
		m.gainers1mTable.Focus()
	}
}

// selectedLink returns the exchange URL for the selected row of the
// focused table.
func (m Model) selectedLink() (string, bool) {
	var t table.Model

	switch m.focus {
	case focusLosers:
		t = m.losersTable
	case focusGainers1m:
		t = m.gainers1mTable
	default:
		t = m.gainersTable
	}

	row := t.SelectedRow()
	if len(row) < 2 || row[1] == "" {
		return "", false
	}

	return format.ExchangeURL(row[1]), true
}

// shutdown cancels in-flight requests and releases timers. Late results
// are discarded by the feeds themselves.
func (m Model) shutdown() {
	for _, f := range m.feeds {
		f.Stop()
	}

	if m.poller != nil {
		m.poller.Stop()
	}

	m.cancel()
}

// Connected reports the last known backend liveness, for tests.
func (m Model) Connected() bool {
	return m.connected
}

// openBrowser opens a URL in the system browser.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
