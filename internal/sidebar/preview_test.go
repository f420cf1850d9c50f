package sidebar

import (
	"strings"
	"testing"

	"github.com/jasperwreed/sidebar/internal/models"
)

func TestLastMessageText(t *testing.T) {
	jane := &models.PersonalDetail{AccountID: 7, DisplayName: "Jane Doe", FirstName: "Jane"}
	room := &models.Conversation{ID: "r", Type: models.ConversationTypeChat, ChatType: "policyRoom", LastMessageText: "see  you\nthere"}
	dm := &models.Conversation{ID: "d", Type: models.ConversationTypeChat, LastMessageText: "hi there"}

	tests := []struct {
		name     string
		locale   string
		conv     *models.Conversation
		actor    *models.PersonalDetail
		action   *models.Action
		archived bool
		want     string
	}{
		{name: "nil conversation", conv: nil, want: ""},
		{name: "direct message", locale: "en", conv: dm, actor: jane, want: "hi there"},
		{name: "room prefixes author", locale: "en", conv: room, actor: jane, want: "Jane: see you there"},
		{name: "room without author", locale: "en", conv: room, want: "see you there"},
		{name: "archived", locale: "en", conv: dm, archived: true, want: "This chat is no longer active."},
		{name: "archived spanish", locale: "es-MX", conv: dm, archived: true, want: "Este chat ya no está activo."},
		{name: "pending deleted action", locale: "en", conv: dm, action: &models.Action{Deleted: true, PendingAction: models.PendingActionDelete}, want: "[Deleted message]"},
		{name: "unknown locale falls back", locale: "not a locale", conv: dm, archived: true, want: "This chat is no longer active."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastMessageText(tt.locale, tt.conv, tt.actor, tt.action, nil, nil, tt.archived)
			if got != tt.want {
				t.Errorf("LastMessageText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLastMessageText_MoneyRequest(t *testing.T) {
	conv := &models.Conversation{ID: "c", LastMessageText: "ignored"}
	actor := &models.PersonalDetail{DisplayName: "Sam"}
	action := &models.Action{Name: models.ActionIOU}
	tx := &models.Transaction{Amount: 1500, Currency: "USD"}

	got := LastMessageText("en", conv, actor, action, tx, nil, false)
	if !strings.HasPrefix(got, "Sam requested ") {
		t.Errorf("LastMessageText() = %q, want prefix %q", got, "Sam requested ")
	}
	if !strings.Contains(got, "15") {
		t.Errorf("LastMessageText() = %q, want amount 15", got)
	}
}

func TestIsValidDraftComment(t *testing.T) {
	tests := []struct {
		draft string
		want  bool
	}{
		{"", false},
		{" ", false},
		{"\t\n", false},
		{"a", true},
		{" ok ", true},
	}

	for _, tt := range tests {
		if got := IsValidDraftComment(tt.draft); got != tt.want {
			t.Errorf("IsValidDraftComment(%q) = %v, want %v", tt.draft, got, tt.want)
		}
	}
}

func TestTruncatePreview(t *testing.T) {
	if got := TruncatePreview("hello world", 0); got != "" {
		t.Errorf("TruncatePreview(width 0) = %q, want empty", got)
	}
	if got := TruncatePreview("short", 10); got != "short" {
		t.Errorf("TruncatePreview() = %q, want %q", got, "short")
	}
	got := TruncatePreview("a much longer preview line", 10)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("TruncatePreview() = %q, want ellipsis suffix", got)
	}
}

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en", "en"},
		{"es", "es"},
		{"es-MX", "es"},
		{"fr", "en"},
		{"", "en"},
	}

	for _, tt := range tests {
		if got := ResolveLocale(tt.locale).String(); got != tt.want {
			t.Errorf("ResolveLocale(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}
