package sidebar

import (
	"github.com/charmbracelet/log"

	"github.com/jasperwreed/sidebar/internal/models"
)

// Pass is the input of one render pass.
type Pass struct {
	IDs      []string
	Snapshot *models.Snapshot
	Mode     Mode
	Locale   string

	// Focused is false while another screen covers the list.
	Focused bool
	// SplitNavigatorLast is true when the conversation split view is the
	// top-most navigator.
	SplitNavigatorLast bool
}

// Fingerprint lists every value the row function closes over. When two
// passes have equal fingerprints, rows built in the first are reused.
type Fingerprint struct {
	Versions           models.Versions
	RowCount           int
	Mode               Mode
	Locale             string
	Offline            bool
	OverlayVisible     bool
	ActivePolicyID     string
	OnboardingChoice   string
	Focused            bool
	SplitNavigatorLast bool
}

// Frame describes the list the renderer should draw for a pass.
type Frame struct {
	Empty                   bool
	Count                   int
	RowHeight               float64
	EstimatedViewportHeight float64
	Attention               string
	ModeChanged             bool
	Fingerprint             Fingerprint
}

// AdapterOptions wires an Adapter to its collaborators.
type AdapterOptions struct {
	Config       *Config
	Joiner       *Joiner
	Scroll       *ScrollPositionController
	OnFirstPaint func()
	OnSelect     func(id string)
	Logger       *log.Logger
}

// Adapter hands rows to a windowing renderer. The renderer asks for rows by
// index as they come into view; only those rows are joined.
type Adapter struct {
	cfg        *Config
	joiner     *Joiner
	scroll     *ScrollPositionController
	firstPaint *FirstPaintSignal
	onSelect   func(id string)
	logger     *log.Logger
	scroller   Scroller

	pass        Pass
	frame       Frame
	started     bool
	cache       map[string]RowViewModel
	joins       int
	prevMode    Mode
	emptyLogged bool

	requestedOffset    float64
	hasRequestedOffset bool
}

func NewAdapter(opts AdapterOptions) *Adapter {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	joiner := opts.Joiner
	if joiner == nil {
		joiner = NewJoiner(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{
		cfg:        cfg,
		joiner:     joiner,
		scroll:     opts.Scroll,
		firstPaint: NewFirstPaintSignal(opts.OnFirstPaint),
		onSelect:   opts.OnSelect,
		logger:     logger,
		cache:      make(map[string]RowViewModel),
	}
}

// Mount attaches the renderer's scroll surface.
func (a *Adapter) Mount(scroller Scroller) {
	a.scroller = scroller
	if a.scroll != nil {
		a.scroll.Mount(scroller)
	}
}

// Unmount detaches the renderer. Pending restores and first-paint
// notifications become no-ops.
func (a *Adapter) Unmount() {
	a.scroller = nil
	if a.scroll != nil {
		a.scroll.Unmount()
	}
	a.firstPaint.Disarm()
}

// Begin starts a render pass.
func (a *Adapter) Begin(p Pass) Frame {
	fp := fingerprintOf(p)
	if !a.started || fp != a.frame.Fingerprint {
		a.cache = make(map[string]RowViewModel)
	}

	modeChanged := a.started && a.prevMode != p.Mode
	if modeChanged {
		// Row heights differ between modes, so the old position is meaningless.
		a.requestedOffset = 0
		a.hasRequestedOffset = true
		if a.scroller != nil {
			a.scroller.ScrollToOffset(0)
		}
	}
	a.prevMode = p.Mode
	a.started = true
	a.pass = p

	frame := Frame{
		Empty:                   len(p.IDs) == 0,
		Count:                   len(p.IDs),
		RowHeight:               a.cfg.RowHeight(p.Mode),
		EstimatedViewportHeight: a.cfg.EstimatedViewportHeight(p.Mode),
		ModeChanged:             modeChanged,
		Fingerprint:             fp,
	}

	if frame.Empty {
		if !a.emptyLogged || fp != a.frame.Fingerprint {
			a.logEmpty(p)
		}
		a.emptyLogged = true
	} else {
		a.emptyLogged = false
		dismissed := TooltipDismissed(p.Snapshot, a.cfg.AttentionTooltip)
		var attributes map[string]*models.Attributes
		if p.Snapshot != nil {
			attributes = p.Snapshot.Attributes
		}
		frame.Attention = SelectAttention(p.IDs, attributes, dismissed)
	}

	a.frame = frame
	return frame
}

func (a *Adapter) logEmpty(p Pass) {
	sizes := p.Snapshot.Sizes()
	route := ""
	if a.scroll != nil {
		route = a.scroll.Route()
	}
	a.logger.Info("Woohoo! All caught up. Was rendered",
		"reportsCount", sizes[models.CollectionConversation],
		"reportActionsCount", sizes[models.CollectionActions],
		"policyCount", sizes[models.CollectionPolicy],
		"personalDetailsCount", sizes[models.CollectionPersonal],
		"route", route,
		"rowCount", len(p.IDs),
	)
}

// Key returns the stable renderer key of a row identifier.
func (a *Adapter) Key(id string) string {
	return RowKey(id)
}

// Len returns the number of rows in the current pass.
func (a *Adapter) Len() int {
	return len(a.pass.IDs)
}

// Row returns the view-model for the row at index. It returns false when
// index is outside the sequence.
func (a *Adapter) Row(index int) (RowViewModel, bool) {
	if index < 0 || index >= len(a.pass.IDs) {
		return RowViewModel{}, false
	}
	return a.RowByID(a.pass.IDs[index]), true
}

// RowByID joins (or reuses) the view-model of one row.
func (a *Adapter) RowByID(id string) RowViewModel {
	row, ok := a.cache[id]
	if !ok {
		row = a.joiner.Build(id, JoinContext{
			Snapshot: a.pass.Snapshot,
			Mode:     a.pass.Mode,
			Locale:   a.pass.Locale,
			Focused:  a.pass.Focused,
		})
		a.joins++
		a.cache[id] = row
	}
	row.ShouldShowAttentionTooltip = a.frame.Attention != "" && a.frame.Attention == id
	return row
}

// OnRowLayout is called by the renderer whenever a row finishes layout.
func (a *Adapter) OnRowLayout() {
	a.firstPaint.Fire()
}

// FirstPainted reports whether a row has been laid out.
func (a *Adapter) FirstPainted() bool {
	return a.firstPaint.Fired()
}

// OnScroll forwards a renderer scroll event.
func (a *Adapter) OnScroll(ev ScrollEvent) bool {
	if a.scroll == nil {
		return false
	}
	return a.scroll.OnScroll(ev, a.cfg.RowHeight(a.pass.Mode))
}

// OnLayout is called when the list surface itself has been laid out.
func (a *Adapter) OnLayout() {
	if a.scroll != nil {
		a.scroll.OnLayout()
	}
}

// InitialIndex is the anchor row for index-positioned platforms.
func (a *Adapter) InitialIndex() (int, bool) {
	if a.scroll == nil {
		return 0, false
	}
	return a.scroll.InitialIndex()
}

// Select reports a row selection to the host.
func (a *Adapter) Select(id string) {
	if a.onSelect != nil {
		a.onSelect(id)
	}
}

// RequestedOffset returns the offset the adapter forced since the last
// call, if any.
func (a *Adapter) RequestedOffset() (float64, bool) {
	offset, ok := a.requestedOffset, a.hasRequestedOffset
	a.hasRequestedOffset = false
	return offset, ok
}

// Joins counts joiner invocations, for diagnostics.
func (a *Adapter) Joins() int {
	return a.joins
}

// Frame returns the frame of the current pass.
func (a *Adapter) Frame() Frame {
	return a.frame
}

func fingerprintOf(p Pass) Fingerprint {
	fp := Fingerprint{
		RowCount:           len(p.IDs),
		Mode:               p.Mode,
		Locale:             p.Locale,
		Focused:            p.Focused,
		SplitNavigatorLast: p.SplitNavigatorLast,
	}
	if s := p.Snapshot; s != nil {
		fp.Versions = s.Versions
		fp.Offline = s.Offline
		fp.OverlayVisible = s.OverlayVisible
		fp.ActivePolicyID = s.ActivePolicyID
		fp.OnboardingChoice = s.OnboardingChoice
	}
	return fp
}
