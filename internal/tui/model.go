package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/jasperwreed/sidebar/internal/models"
	"github.com/jasperwreed/sidebar/internal/sidebar"
)

// chromeLines is the header, the help line and the pane border.
const chromeLines = 4

type snapshotMsg struct {
	snapshot *models.Snapshot
	ids      []string
	err      error
}

type frameMsg time.Time

// model is the windowing renderer. It owns the list position in rows and
// reports it to the adapter in row-height units.
type model struct {
	opts    Options
	cfg     *sidebar.Config
	keys    keyMap
	logger  *log.Logger
	adapter *sidebar.Adapter
	frames  *sidebar.FrameScheduler

	snapshot *models.Snapshot
	ids      []string
	mode     sidebar.Mode
	frame    sidebar.Frame

	top     int
	cursor  int
	visible []sidebar.RowViewModel

	width      int
	height     int
	ready      bool
	laidOut    bool
	positioned bool
	ticking    bool
	// scrolling hides the attention tooltip until the next frame.
	scrolling bool

	detail     viewport.Model
	showDetail bool
	err        error
}

func newModel(opts Options) *model {
	cfg := opts.Config
	if cfg == nil {
		cfg = sidebar.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	offsets := opts.Offsets
	if offsets == nil {
		offsets = sidebar.NewScrollOffsetStore()
	}
	mode := opts.Mode
	if mode == "" {
		mode = sidebar.ModeDefault
	}

	m := &model{
		opts:   opts,
		cfg:    cfg,
		keys:   defaultKeyMap(),
		logger: logger,
		frames: sidebar.NewFrameScheduler(),
		mode:   mode,
		detail: viewport.New(0, 0),
	}

	scroll := sidebar.NewScrollPositionController(offsets, m.frames, opts.Route, cfg.Platform)
	scroll.SetScrollHook(func() { m.scrolling = true })
	m.adapter = sidebar.NewAdapter(sidebar.AdapterOptions{
		Config:       cfg,
		Scroll:       scroll,
		OnFirstPaint: opts.OnFirstPaint,
		OnSelect:     m.openDetail,
		Logger:       logger,
	})
	m.adapter.Mount(m)
	return m
}

func (m *model) Init() tea.Cmd {
	return m.load()
}

func (m *model) load() tea.Cmd {
	src := m.opts.Source
	fixed := m.opts.IDs
	return func() tea.Msg {
		snap, err := src.LoadSnapshot()
		if err != nil {
			return snapshotMsg{err: fmt.Errorf("failed to load snapshot: %w", err)}
		}
		ids := fixed
		if len(ids) == 0 {
			ids, err = src.ListConversationIDs(0)
			if err != nil {
				return snapshotMsg{err: fmt.Errorf("failed to list conversations: %w", err)}
			}
		}
		return snapshotMsg{snapshot: snap, ids: ids}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			m.logger.Error("reload failed", "err", msg.err)
			return m, nil
		}
		m.err = nil
		m.snapshot = msg.snapshot
		m.ids = msg.ids
		m.render()
		if m.showDetail && m.cursor < len(m.ids) {
			m.detail.SetContent(renderDetail(m.adapter.RowByID(m.ids[m.cursor])))
		}

	case StoreChangedMsg:
		return m, m.load()

	case frameMsg:
		m.ticking = false
		m.scrolling = false
		m.frames.RunFrame()
		m.render()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeDetail()
		m.render()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.adapter.Unmount()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.showDetail = false
			m.resizeDetail()
			m.render()
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.PageDown):
			m.moveCursor(m.visibleCount())
		case key.Matches(msg, m.keys.PageUp):
			m.moveCursor(-m.visibleCount())
		case key.Matches(msg, m.keys.Top):
			m.moveCursor(-len(m.ids))
		case key.Matches(msg, m.keys.Bottom):
			m.moveCursor(len(m.ids))
		case key.Matches(msg, m.keys.Mode):
			if m.mode == sidebar.ModeCompact {
				m.mode = sidebar.ModeDefault
			} else {
				m.mode = sidebar.ModeCompact
			}
			m.render()
		case key.Matches(msg, m.keys.Reload):
			return m, m.load()
		case key.Matches(msg, m.keys.Select):
			if m.cursor < len(m.ids) {
				m.adapter.Select(m.ids[m.cursor])
			}
		default:
			if m.showDetail {
				var cmd tea.Cmd
				m.detail, cmd = m.detail.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case tea.MouseMsg:
		if m.showDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.tickIfPending())
	return m, tea.Batch(cmds...)
}

// render starts a pass on the adapter and lays out the visible window.
func (m *model) render() {
	if m.snapshot == nil {
		return
	}

	m.frame = m.adapter.Begin(sidebar.Pass{
		IDs:      m.ids,
		Snapshot: m.snapshot,
		Mode:     m.mode,
		Locale:   m.opts.Locale,
		Focused:  !m.showDetail,
	})
	if _, ok := m.adapter.RequestedOffset(); ok {
		m.cursor = 0
	}

	if m.ready && !m.laidOut {
		m.laidOut = true
		m.adapter.OnLayout()
	}
	if m.ready && !m.positioned && len(m.ids) > 0 {
		m.positioned = true
		if index, ok := m.adapter.InitialIndex(); ok {
			m.cursor = clamp(index, 0, len(m.ids)-1)
			m.top = m.cursor
		}
	}

	m.layout()
}

// layout clamps the window and joins the rows inside it.
func (m *model) layout() {
	m.visible = m.visible[:0]
	if !m.ready || len(m.ids) == 0 {
		m.top, m.cursor = 0, 0
		return
	}

	vc := m.visibleCount()
	m.cursor = clamp(m.cursor, 0, len(m.ids)-1)
	m.top = clamp(m.top, 0, m.maxTop())
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+vc {
		m.top = m.cursor - vc + 1
	}

	for i := m.top; i < m.top+vc; i++ {
		row, ok := m.adapter.Row(i)
		if !ok {
			break
		}
		m.visible = append(m.visible, row)
	}
	if len(m.visible) > 0 {
		m.adapter.OnRowLayout()
	}
}

func (m *model) moveCursor(delta int) {
	if len(m.ids) == 0 {
		return
	}
	before := m.top
	m.cursor = clamp(m.cursor+delta, 0, len(m.ids)-1)
	m.layout()
	if m.top != before {
		m.emitScroll()
	}
}

// ScrollToOffset moves the window so the row at offset is on top.
func (m *model) ScrollToOffset(offset float64) {
	rh := m.cfg.RowHeight(m.mode)
	top := 0
	if rh > 0 {
		top = int(offset / rh)
	}
	m.top = clamp(top, 0, m.maxTop())
	vc := m.visibleCount()
	if m.cursor < m.top || m.cursor >= m.top+vc {
		m.cursor = m.top
	}
	m.emitScroll()
}

func (m *model) emitScroll() {
	rh := m.cfg.RowHeight(m.mode)
	m.adapter.OnScroll(sidebar.ScrollEvent{
		Offset:         float64(m.top) * rh,
		ViewportHeight: float64(m.visibleCount()) * rh,
	})
}

func (m *model) visibleCount() int {
	if !m.ready {
		return 0
	}
	lines := m.height - chromeLines
	n := lines / RowLines(m.mode)
	if n < 1 {
		n = 1
	}
	return n
}

func (m *model) maxTop() int {
	top := len(m.ids) - m.visibleCount()
	if top < 0 {
		return 0
	}
	return top
}

func (m *model) tickIfPending() tea.Cmd {
	if m.ticking || (m.frames.Pending() == 0 && !m.scrolling) {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.cfg.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *model) openDetail(id string) {
	if m.opts.OnSelect != nil {
		m.opts.OnSelect(id)
	}
	m.showDetail = true
	m.resizeDetail()
	m.render()
	m.detail.SetContent(renderDetail(m.adapter.RowByID(id)))
	m.detail.GotoTop()
}

func (m *model) listWidth() int {
	if m.showDetail {
		return m.width / 3
	}
	return m.width
}

func (m *model) resizeDetail() {
	m.detail.Width = m.width - m.listWidth() - 4
	m.detail.Height = m.height - chromeLines
}

func (m *model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.err)
	}

	listWidth := m.listWidth()
	listHeight := m.height - chromeLines

	var body string
	if m.snapshot != nil && m.frame.Empty {
		empty := emptyTitleStyle.Render(sidebar.EmptyStateTitle(m.opts.Locale)) + "\n\n" +
			helpStyle.Render(sidebar.EmptyStateSubtitle(m.opts.Locale))
		body = lipgloss.Place(listWidth-2, listHeight, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Width(listWidth-6).Align(lipgloss.Center).Render(empty))
	} else {
		rows := make([]string, 0, len(m.visible))
		for i, row := range m.visible {
			if m.scrolling {
				row.ShouldShowAttentionTooltip = false
			}
			rows = append(rows, RenderRow(row, listWidth-2, m.top+i == m.cursor))
		}
		body = strings.Join(rows, "\n")
	}

	listView := paneStyle.
		Width(listWidth - 2).
		Height(listHeight).
		Render(body)

	view := listView
	if m.showDetail {
		contentView := paneStyle.
			Width(m.width - listWidth - 2).
			Height(listHeight).
			Render(m.detail.View())
		view = lipgloss.JoinHorizontal(lipgloss.Top, listView, contentView)
	}

	return m.header() + "\n" + view + "\n" + m.help()
}

func (m *model) header() string {
	count := humanize.Comma(int64(len(m.ids)))
	return titleStyle.Render(" Inbox") + metaStyle.Render(fmt.Sprintf("  %s conversations · %s", count, m.mode))
}

func (m *model) help() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return helpStyle.Render("  " + strings.Join(parts, " • "))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
