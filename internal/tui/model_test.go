package tui

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jasperwreed/sidebar/internal/models"
	"github.com/jasperwreed/sidebar/internal/sidebar"
)

type fakeSource struct {
	snapshot *models.Snapshot
	ids      []string
	loads    int
}

func (f *fakeSource) LoadSnapshot() (*models.Snapshot, error) {
	f.loads++
	return f.snapshot, nil
}

func (f *fakeSource) ListConversationIDs(limit int) ([]string, error) {
	return f.ids, nil
}

func newFakeSource(n int) *fakeSource {
	snap := models.NewSnapshot()
	snap.Versions.Conversations = 1
	ids := make([]string, 0, n)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("c%02d", i)
		snap.Conversations[id] = &models.Conversation{
			ID:                       id,
			Name:                     fmt.Sprintf("Chat %d", i),
			Type:                     models.ConversationTypeChat,
			LastMessageText:          "hello there",
			LastVisibleActionCreated: base.Add(-time.Duration(i) * time.Hour),
		}
		ids = append(ids, id)
	}
	return &fakeSource{snapshot: snap, ids: ids}
}

type testHarness struct {
	m       *model
	offsets *sidebar.ScrollOffsetStore
	painted int
}

func newHarness(t *testing.T, src *fakeSource, platform sidebar.Platform, offsets *sidebar.ScrollOffsetStore) *testHarness {
	t.Helper()
	cfg := sidebar.DefaultConfig()
	cfg.Platform = platform
	if offsets == nil {
		offsets = sidebar.NewScrollOffsetStore()
	}
	h := &testHarness{offsets: offsets}
	h.m = newModel(Options{
		Source:       src,
		Config:       cfg,
		Locale:       "en",
		Route:        "home",
		Offsets:      offsets,
		Logger:       log.New(io.Discard),
		OnFirstPaint: func() { h.painted++ },
	})
	return h
}

// send runs msg through Update and returns the follow-up command.
func (h *testHarness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.m.Update(msg)
	return cmd
}

func (h *testHarness) start(width, height int) {
	h.send(tea.WindowSizeMsg{Width: width, Height: height})
	h.send(h.m.Init()())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_EmptyState(t *testing.T) {
	h := newHarness(t, newFakeSource(0), sidebar.PlatformDesktop, nil)
	h.start(80, 20)

	if !h.m.frame.Empty {
		t.Fatal("frame should be empty")
	}
	view := h.m.View()
	if !strings.Contains(view, sidebar.EmptyStateTitle("en")) {
		t.Errorf("View() missing empty state title:\n%s", view)
	}
	if h.painted != 0 {
		t.Errorf("first paint fired %d times for an empty list", h.painted)
	}
}

func TestModel_JoinsOnlyVisibleRows(t *testing.T) {
	h := newHarness(t, newFakeSource(30), sidebar.PlatformDesktop, nil)
	h.start(80, 20)

	// 16 list lines at 2 lines per row.
	if got := len(h.m.visible); got != 8 {
		t.Fatalf("visible rows = %d, want 8", got)
	}
	if got := h.m.adapter.Joins(); got != 8 {
		t.Errorf("Joins() = %d, want 8", got)
	}
	if h.painted != 1 {
		t.Errorf("first paint fired %d times, want 1", h.painted)
	}

	view := h.m.View()
	if !strings.Contains(view, "Chat 0") || strings.Contains(view, "Chat 9") {
		t.Errorf("View() shows the wrong window:\n%s", view)
	}

	h.send(keyRunes("j"))
	if h.painted != 1 {
		t.Errorf("first paint fired again on navigation: %d", h.painted)
	}
}

func TestModel_ScrollSavesPosition(t *testing.T) {
	h := newHarness(t, newFakeSource(30), sidebar.PlatformDesktop, nil)
	h.start(80, 20)

	for i := 0; i < 10; i++ {
		h.send(keyRunes("j"))
	}
	if h.m.cursor != 10 || h.m.top != 3 {
		t.Fatalf("cursor=%d top=%d, want 10 and 3", h.m.cursor, h.m.top)
	}

	offset, ok := h.offsets.Get("home")
	if !ok || offset != 3*64 {
		t.Errorf("saved offset = %v (%v), want 192", offset, ok)
	}
	index, ok := h.offsets.GetIndex("home")
	if !ok || index != 3 {
		t.Errorf("saved index = %d (%v), want 3", index, ok)
	}
}

func TestModel_RestoresIndexOnDesktop(t *testing.T) {
	offsets := sidebar.NewScrollOffsetStore()
	offsets.SaveIndex("home", 5)

	h := newHarness(t, newFakeSource(30), sidebar.PlatformDesktop, offsets)
	h.start(80, 20)

	if h.m.top != 5 || h.m.cursor != 5 {
		t.Errorf("top=%d cursor=%d, want 5 and 5", h.m.top, h.m.cursor)
	}
	if h.m.frames.Pending() != 0 {
		t.Errorf("desktop should not schedule an offset restore")
	}
}

func TestModel_RestoresOffsetOnNextFrame(t *testing.T) {
	offsets := sidebar.NewScrollOffsetStore()
	offsets.Save("home", 128)

	h := newHarness(t, newFakeSource(30), sidebar.PlatformIOS, offsets)
	h.send(tea.WindowSizeMsg{Width: 80, Height: 20})
	cmd := h.send(h.m.Init()())

	if h.m.top != 0 {
		t.Fatalf("restore applied before the next frame: top=%d", h.m.top)
	}
	if cmd == nil {
		t.Fatal("expected a frame tick command")
	}

	h.send(frameMsg(time.Now()))
	if h.m.top != 2 {
		t.Errorf("top = %d after frame, want 2", h.m.top)
	}
	if h.m.frames.Pending() != 0 {
		t.Errorf("Pending() = %d after frame", h.m.frames.Pending())
	}
}

func TestModel_HidesTooltipWhileScrolling(t *testing.T) {
	src := newFakeSource(30)
	src.snapshot.Attributes["c02"] = &models.Attributes{RequiresAttention: true}
	h := newHarness(t, src, sidebar.PlatformDesktop, nil)
	h.start(80, 20)

	tooltip := sidebar.AttentionTooltipText("en")
	if !strings.Contains(h.m.View(), tooltip) {
		t.Fatalf("View() missing the attention tooltip:\n%s", h.m.View())
	}

	// Moving inside the window does not scroll.
	h.send(keyRunes("j"))
	if !strings.Contains(h.m.View(), tooltip) {
		t.Error("tooltip hidden without a scroll")
	}

	var cmd tea.Cmd
	for i := 0; i < 7; i++ {
		cmd = h.send(keyRunes("j"))
	}
	if h.m.top != 1 {
		t.Fatalf("top = %d, want 1", h.m.top)
	}
	if strings.Contains(h.m.View(), tooltip) {
		t.Error("tooltip still shown right after a scroll")
	}
	if cmd == nil {
		t.Fatal("expected a frame tick after scrolling")
	}

	h.send(frameMsg(time.Now()))
	if !strings.Contains(h.m.View(), tooltip) {
		t.Errorf("tooltip not shown again after the next frame:\n%s", h.m.View())
	}
}

func TestModel_ModeToggleResetsPosition(t *testing.T) {
	h := newHarness(t, newFakeSource(30), sidebar.PlatformDesktop, nil)
	h.start(80, 20)

	h.send(keyRunes("G"))
	if h.m.top == 0 {
		t.Fatal("expected to be scrolled down")
	}

	h.send(keyRunes("m"))
	if h.m.mode != sidebar.ModeCompact {
		t.Fatalf("mode = %s, want compact", h.m.mode)
	}
	if h.m.top != 0 || h.m.cursor != 0 {
		t.Errorf("top=%d cursor=%d after mode change, want 0", h.m.top, h.m.cursor)
	}
	if got := len(h.m.visible); got != 16 {
		t.Errorf("visible rows in compact mode = %d, want 16", got)
	}
}

func TestModel_SelectOpensDetail(t *testing.T) {
	var selected string
	src := newFakeSource(5)
	h := newHarness(t, src, sidebar.PlatformDesktop, nil)
	h.m.opts.OnSelect = func(id string) { selected = id }
	h.start(120, 20)

	h.send(keyRunes("j"))
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	if selected != "c01" {
		t.Errorf("selected = %q, want c01", selected)
	}
	if !h.m.showDetail {
		t.Fatal("detail pane not shown")
	}
	if !strings.Contains(h.m.detail.View(), "Chat 1") {
		t.Errorf("detail missing conversation name:\n%s", h.m.detail.View())
	}

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.showDetail {
		t.Error("esc should close the detail pane")
	}
}

func TestModel_StoreChangedReloads(t *testing.T) {
	src := newFakeSource(3)
	h := newHarness(t, src, sidebar.PlatformDesktop, nil)
	h.start(80, 20)

	next := models.NewSnapshot()
	next.Versions.Conversations = 2
	for id, conv := range src.snapshot.Conversations {
		copied := *conv
		next.Conversations[id] = &copied
	}
	next.Conversations["c00"].Name = "Renamed"
	src.snapshot = next

	cmd := h.send(StoreChangedMsg{})
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	h.send(cmd())

	if src.loads != 2 {
		t.Errorf("loads = %d, want 2", src.loads)
	}
	if !strings.Contains(h.m.View(), "Renamed") {
		t.Errorf("View() did not pick up the new snapshot")
	}
}

func TestModel_QuitUnmounts(t *testing.T) {
	offsets := sidebar.NewScrollOffsetStore()
	offsets.Save("home", 128)

	h := newHarness(t, newFakeSource(30), sidebar.PlatformAndroid, offsets)
	h.start(80, 20)
	if h.m.frames.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", h.m.frames.Pending())
	}

	h.send(keyRunes("q"))
	if ran := h.m.frames.RunFrame(); ran != 0 {
		t.Errorf("RunFrame() ran %d tasks after unmount", ran)
	}
	if h.m.top != 0 {
		t.Errorf("top = %d, restore ran after unmount", h.m.top)
	}
}
