package sidebar

import (
	"math"
	"sync"
)

// ScrollOffsetStore remembers scroll positions per route for the lifetime
// of the process.
type ScrollOffsetStore struct {
	mu      sync.Mutex
	offsets map[string]float64
	indexes map[string]int
}

func NewScrollOffsetStore() *ScrollOffsetStore {
	return &ScrollOffsetStore{
		offsets: make(map[string]float64),
		indexes: make(map[string]int),
	}
}

func (s *ScrollOffsetStore) Save(route string, offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets[route] = offset
}

func (s *ScrollOffsetStore) Get(route string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offset, ok := s.offsets[route]
	return offset, ok
}

func (s *ScrollOffsetStore) SaveIndex(route string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexes[route] = index
}

func (s *ScrollOffsetStore) GetIndex(route string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.indexes[route]
	return index, ok
}

// ScrollEvent is what the renderer reports when the list scrolls.
type ScrollEvent struct {
	Offset         float64
	ViewportHeight float64
}

// Scroller is implemented by the renderer's list surface.
type Scroller interface {
	ScrollToOffset(offset float64)
}

// ScrollPositionController saves the list's position for one route and
// restores it when the list mounts again.
type ScrollPositionController struct {
	store    *ScrollOffsetStore
	frames   *FrameScheduler
	route    string
	platform Platform

	scroller Scroller
	mounted  bool
	pending  *FrameTask
	onScroll func()
}

func NewScrollPositionController(store *ScrollOffsetStore, frames *FrameScheduler, route string, platform Platform) *ScrollPositionController {
	return &ScrollPositionController{
		store:    store,
		frames:   frames,
		route:    route,
		platform: platform,
	}
}

// Mount attaches the renderer surface.
func (c *ScrollPositionController) Mount(scroller Scroller) {
	c.scroller = scroller
	c.mounted = true
}

// Unmount detaches the surface and drops any pending restore.
func (c *ScrollPositionController) Unmount() {
	c.mounted = false
	c.scroller = nil
	c.pending.Cancel()
	c.pending = nil
}

// SetScrollHook registers a callback run after every accepted scroll event.
func (c *ScrollPositionController) SetScrollHook(hook func()) {
	c.onScroll = hook
}

// OnScroll records the position. Events reporting a zero viewport height
// come from a list that is not laid out yet and are ignored.
func (c *ScrollPositionController) OnScroll(ev ScrollEvent, rowHeight float64) bool {
	if ev.ViewportHeight == 0 {
		return false
	}
	c.store.Save(c.route, ev.Offset)
	if c.platform.UsesIndexPositioning() && rowHeight > 0 {
		c.store.SaveIndex(c.route, int(math.Floor(ev.Offset/rowHeight)))
	}
	if c.onScroll != nil {
		c.onScroll()
	}
	return true
}

// OnLayout schedules the restore of a saved offset for the next frame.
// Index-positioned platforms use InitialIndex instead.
func (c *ScrollPositionController) OnLayout() {
	if c.platform.UsesIndexPositioning() || !c.mounted {
		return
	}
	offset, ok := c.store.Get(c.route)
	if !ok || offset == 0 {
		return
	}
	c.pending.Cancel()
	c.pending = c.frames.Schedule(func() {
		if !c.mounted || c.scroller == nil {
			return
		}
		c.scroller.ScrollToOffset(offset)
	})
}

// InitialIndex returns the row the list should start at, if any.
func (c *ScrollPositionController) InitialIndex() (int, bool) {
	if !c.platform.UsesIndexPositioning() {
		return 0, false
	}
	return c.store.GetIndex(c.route)
}

// Route returns the route key positions are stored under.
func (c *ScrollPositionController) Route() string {
	return c.route
}
