package sidebar

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jasperwreed/sidebar/internal/models"
)

// IsValidDraftComment reports whether a stored draft holds real content.
func IsValidDraftComment(draft string) bool {
	return strings.TrimSpace(draft) != ""
}

// LastMessageText builds the one-line preview shown under a row's title.
func LastMessageText(locale string, conv *models.Conversation, lastActor *models.PersonalDetail, lastAction *models.Action, lastActionTx *models.Transaction, policy *models.Policy, archived bool) string {
	if conv == nil {
		return ""
	}
	if archived {
		return Translate(locale, msgArchived)
	}

	if lastAction != nil && lastAction.Deleted {
		return Translate(locale, msgDeleted)
	}

	if lastAction.IsMoneyRequest() && lastActionTx != nil && lastActor != nil {
		amount := FormatAmount(locale, lastActionTx.Amount, lastActionTx.Currency)
		return Translate(locale, msgRequested, lastActor.ShortName(), amount)
	}

	text := collapseWhitespace(conv.LastMessageText)
	if text == "" {
		return ""
	}

	// Rooms and workspace chats attribute the message to its author.
	if (conv.IsRoom() || policy != nil && conv.Type == models.ConversationTypeChat && conv.PolicyID != "") && lastActor != nil {
		if name := lastActor.ShortName(); name != "" {
			return Translate(locale, msgActorPrefix, name, text)
		}
	}
	return text
}

// TruncatePreview shortens s to fit width terminal cells.
func TruncatePreview(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
