package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jasperwreed/sidebar/internal/models"
	"github.com/jasperwreed/sidebar/internal/sidebar"
)

// Source provides snapshots and the default row order.
type Source interface {
	LoadSnapshot() (*models.Snapshot, error)
	ListConversationIDs(limit int) ([]string, error)
}

// Options configures a Browser.
type Options struct {
	Source Source
	Config *sidebar.Config
	Mode   sidebar.Mode
	Locale string
	Route  string

	// IDs fixes the row order. When empty the source order is used.
	IDs []string

	// Offsets outlives a single browser so positions survive remounts.
	Offsets *sidebar.ScrollOffsetStore

	Logger       *log.Logger
	OnFirstPaint func()
	OnSelect     func(id string)
}

// StoreChangedMsg tells a running browser to reload its snapshot.
type StoreChangedMsg struct{}

type Browser struct {
	opts Options

	mu      sync.Mutex
	program *tea.Program
}

func NewBrowser(opts Options) *Browser {
	return &Browser{opts: opts}
}

func (b *Browser) Run() error {
	m := newModel(b.opts)
	defer m.adapter.Unmount()

	p := tea.NewProgram(m, tea.WithAltScreen())
	b.mu.Lock()
	b.program = p
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.program = nil
		b.mu.Unlock()
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// Notify asks the running browser to reload. It is safe to call from any
// goroutine and does nothing when the browser is not running.
func (b *Browser) Notify() {
	b.mu.Lock()
	p := b.program
	b.mu.Unlock()

	if p != nil {
		p.Send(StoreChangedMsg{})
	}
}
