package sidebar

import (
	"sort"

	"github.com/jasperwreed/sidebar/internal/models"
)

// ActionOrderer filters a conversation's actions down to the displayable
// ones and orders them latest first.
type ActionOrderer interface {
	SortForDisplay(actions map[string]*models.Action, canWrite bool) []*models.Action
}

// DisplayOrder is the default ActionOrderer.
type DisplayOrder struct{}

func (DisplayOrder) SortForDisplay(actions map[string]*models.Action, canWrite bool) []*models.Action {
	sorted := make([]*models.Action, 0, len(actions))
	for _, action := range actions {
		if !isDisplayable(action, canWrite) {
			continue
		}
		sorted = append(sorted, action)
	}

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Created.Equal(b.Created) {
			return a.Created.After(b.Created)
		}
		return a.ID > b.ID
	})
	return sorted
}

func isDisplayable(action *models.Action, canWrite bool) bool {
	if action == nil {
		return false
	}
	// Deleted actions stay visible while the deletion is still pending.
	if action.Deleted && action.PendingAction != models.PendingActionDelete {
		return false
	}
	if action.Name == models.ActionClosed {
		return false
	}
	if action.Name == models.ActionActionableWhisper && !canWrite {
		return false
	}
	return true
}
