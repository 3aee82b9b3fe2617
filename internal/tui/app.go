// Package tui implements the dashboard: five tabs over the live chart
// payload, a drill-down overlay backed by DuckDB, and a history browser
// for past snapshots. The model follows the usual bubbletea shape; all
// state transitions happen in Update, so they are unit-testable without
// a terminal.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leapstack-labs/leapscope/internal/chart"
	"github.com/leapstack-labs/leapscope/internal/drilldown"
	"github.com/leapstack-labs/leapscope/internal/history"
)

const (
	pageStep     = 10
	wheelStep    = 3
	queryTimeout = 60 * time.Second
	defaultTick  = 100 * time.Millisecond
)

// QueryExecutor runs drill-down queries.
type QueryExecutor interface {
	Execute(ctx context.Context, query string) (*chart.ExplainData, error)
}

// HistoryStore lists, loads, and deletes chart snapshots.
type HistoryStore interface {
	List() ([]history.Entry, error)
	Load(path string) (*chart.Data, error)
	Delete(path string) error
}

// FeedSource reads and clears the live feed file. Updates arrive
// separately through DataMsg, injected by the watcher goroutine.
type FeedSource interface {
	Load() (*chart.Data, error)
	Clear() error
	Path() string
}

// Deps wires the model's collaborators.
type Deps struct {
	Executor QueryExecutor
	History  HistoryStore
	Feed     FeedSource
	Tick     time.Duration
	Logger   *slog.Logger
}

// Messages. DataMsg is exported so the watcher goroutine can inject
// payloads via Program.Send; the rest stay internal to Update.
type (
	// DataMsg delivers a new payload from the watcher or a history load.
	DataMsg struct{ Data *chart.Data }

	tickMsg time.Time

	historyMsg struct{ entries []history.Entry }

	drillDownResultMsg struct {
		gen  int
		data *chart.ExplainData
		err  error
	}
)

// Model is the dashboard state.
type Model struct {
	deps   Deps
	keys   keyMap
	help   help.Model
	logger *slog.Logger

	width  int
	height int
	frame  int

	data       *chart.Data
	queryLines []string

	tab           Tab
	scrollOffset  int // Query tab
	selectedPoint int // Data and Chart tabs
	historyCursor int
	entries       []history.Entry

	showHelp bool
	explain  explainState
	drillGen int
}

// New builds the initial model.
func New(deps Deps) Model {
	if deps.Tick <= 0 {
		deps.Tick = defaultTick
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return Model{
		deps:   deps,
		keys:   defaultKeyMap(),
		help:   help.New(),
		logger: logger,
		tab:    TabHome,
	}
}

// Init starts the animation tick and the first history listing.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.refreshHistory())
}

// Update applies one message. Messages arrive one at a time, whatever
// goroutine produced them, so no state here needs locking.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.frame++
		return m, m.tickCmd()

	case DataMsg:
		m.applyData(msg.Data)
		return m, nil

	case historyMsg:
		m.entries = msg.entries
		m.historyCursor = clamp(m.historyCursor, 0, maxScroll(len(m.entries)))
		return m, nil

	case drillDownResultMsg:
		m.applyDrillDownResult(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// applyData installs a payload: cursors reset, any overlay closes, and
// the dashboard lands on the Query tab like every fresh update.
func (m *Model) applyData(d *chart.Data) {
	m.data = d
	m.queryLines = highlightSQL(formatSQL(queryText(d)))
	m.selectedPoint = 0
	m.scrollOffset = 0
	m.explain = explainState{}
	m.tab = TabQuery
}

func queryText(d *chart.Data) string {
	if d == nil {
		return ""
	}
	return d.Query
}

// applyDrillDownResult installs a query result, unless the overlay was
// closed or superseded while the query ran.
func (m *Model) applyDrillDownResult(msg drillDownResultMsg) {
	if !m.explain.visible || !m.explain.loading || msg.gen != m.drillGen {
		m.logger.Debug("dropping stale drill-down result", "gen", msg.gen)
		return
	}
	if msg.err != nil {
		m.explain.loading = false
		m.explain.errText = msg.err.Error()
		return
	}
	m.explain.setResult(msg.data)
}

// triggerDrillDown opens the overlay for the selected row. Without a
// template the overlay opens straight in its error state and no query
// runs.
func (m Model) triggerDrillDown() (Model, tea.Cmd) {
	if m.data == nil || len(m.data.Rows) == 0 || m.selectedPoint >= len(m.data.Rows) {
		return m, nil
	}
	query, err := drilldown.BuildQuery(m.data, m.selectedPoint)
	if errors.Is(err, drilldown.ErrNoTemplate) {
		m.explain = explainState{visible: true, errText: noDrillDownText}
		return m, nil
	}
	if err != nil {
		return m, nil
	}
	m.drillGen++
	m.explain = explainState{visible: true, loading: true}
	m.logger.Debug("drill-down triggered", "row", m.selectedPoint, "gen", m.drillGen)
	return m, m.execDrillDown(m.drillGen, query)
}

// clearAll drops the dataset and returns to the Home tab. The feed file
// deletion and history refresh run as commands.
func (m *Model) clearAll() {
	m.data = nil
	m.queryLines = nil
	m.selectedPoint = 0
	m.scrollOffset = 0
	m.explain = explainState{}
	m.tab = TabHome
}

// Commands.

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.deps.Tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) execDrillDown(gen int, query string) tea.Cmd {
	exec := m.deps.Executor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		data, err := exec.Execute(ctx, query)
		return drillDownResultMsg{gen: gen, data: data, err: err}
	}
}

func (m Model) refreshHistory() tea.Cmd {
	store := m.deps.History
	logger := m.logger
	return func() tea.Msg {
		entries, err := store.List()
		if err != nil {
			logger.Warn("failed to list history", "error", err)
		}
		return historyMsg{entries: entries}
	}
}

func (m Model) reloadFeed() tea.Cmd {
	feed := m.deps.Feed
	logger := m.logger
	return func() tea.Msg {
		d, err := feed.Load()
		if err != nil {
			logger.Debug("refresh found no payload", "error", err)
			return nil
		}
		return DataMsg{Data: d}
	}
}

func (m Model) clearFeed() tea.Cmd {
	feed := m.deps.Feed
	logger := m.logger
	return func() tea.Msg {
		if err := feed.Clear(); err != nil {
			logger.Warn("failed to clear feed file", "error", err)
		}
		return nil
	}
}

func (m Model) loadHistoryEntry(path string) tea.Cmd {
	store := m.deps.History
	logger := m.logger
	return func() tea.Msg {
		d, err := store.Load(path)
		if err != nil {
			logger.Warn("failed to load snapshot", "path", path, "error", err)
			return nil
		}
		return DataMsg{Data: d}
	}
}

func (m Model) deleteHistoryEntry(path string) tea.Cmd {
	store := m.deps.History
	logger := m.logger
	return func() tea.Msg {
		if err := store.Delete(path); err != nil {
			logger.Warn("failed to delete snapshot", "path", path, "error", err)
		}
		entries, err := store.List()
		if err != nil {
			logger.Warn("failed to list history", "error", err)
		}
		return historyMsg{entries: entries}
	}
}
