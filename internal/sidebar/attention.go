package sidebar

import (
	"github.com/jasperwreed/sidebar/internal/models"
)

// SelectAttention picks the row that should carry the attention tooltip.
// Rows with errors win over rows that merely require attention, whatever
// their position. The whole sequence is scanned since the target may be
// off screen. Returns "" when no row qualifies or the tooltip was dismissed.
func SelectAttention(ids []string, attributes map[string]*models.Attributes, dismissed bool) string {
	if dismissed {
		return ""
	}
	firstAttention := ""
	for _, id := range ids {
		attr := attributes[id]
		if attr == nil {
			continue
		}
		if attr.HasErrors() {
			return id
		}
		if attr.RequiresAttention && firstAttention == "" {
			firstAttention = id
		}
	}
	return firstAttention
}

// TooltipDismissed reports whether the named tooltip has been dismissed.
// A store that has not loaded yet counts as not dismissed.
func TooltipDismissed(snap *models.Snapshot, name string) bool {
	if snap == nil || snap.Dismissed == nil {
		return false
	}
	_, ok := snap.Dismissed[name]
	return ok
}
