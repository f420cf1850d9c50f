package sidebar

import (
	"github.com/jasperwreed/sidebar/internal/models"
)

// RowViewModel is the render-ready data for one row. It is rebuilt from a
// snapshot on every pass and never stored.
type RowViewModel struct {
	ID        string
	Key       string
	Available bool

	Conversation         *models.Conversation
	Parent               *models.Conversation
	Chat                 *models.Conversation
	OneTransactionThread *models.Conversation
	ParentAction         *models.Action

	Policy                *models.Policy
	InvoiceReceiverPolicy *models.Policy

	// Transaction belongs to the money request that spawned this thread.
	Transaction *models.Transaction

	LastAction            *models.Action
	LastActionTransaction *models.Transaction
	IOUActions            []*models.Action
	LastActor             *models.PersonalDetail

	LastMessageText string
	IsArchived      bool
	HasDraftComment bool
	Attributes      *models.Attributes
	Violations      []models.Violation

	ShouldShowAttentionTooltip bool

	Mode    Mode
	Locale  string
	Focused bool
}

// HasErrors reports whether the row carries error attributes.
func (r RowViewModel) HasErrors() bool {
	return r.Attributes.HasErrors()
}

// RequiresAttention reports whether the row wants the user's attention.
func (r RowViewModel) RequiresAttention() bool {
	return r.Attributes != nil && r.Attributes.RequiresAttention
}

// JoinContext carries everything a row depends on besides its identifier.
type JoinContext struct {
	Snapshot *models.Snapshot
	Mode     Mode
	Locale   string
	Focused  bool
}

// Joiner builds row view-models from store snapshots.
type Joiner struct {
	orderer ActionOrderer
}

// NewJoiner creates a joiner. A nil orderer selects DisplayOrder.
func NewJoiner(orderer ActionOrderer) *Joiner {
	if orderer == nil {
		orderer = DisplayOrder{}
	}
	return &Joiner{orderer: orderer}
}

// Build joins the stores for one row. Missing references leave the
// corresponding fields nil; a missing conversation yields a row with
// Available set to false.
func (j *Joiner) Build(id string, ctx JoinContext) RowViewModel {
	snap := ctx.Snapshot
	row := RowViewModel{
		ID:      id,
		Key:     RowKey(id),
		Mode:    ctx.Mode,
		Locale:  ctx.Locale,
		Focused: ctx.Focused,
	}

	conv := snap.Conversation(id)
	if conv == nil {
		return row
	}
	row.Available = true
	row.Conversation = conv

	row.Parent = snap.Conversation(conv.ParentID)
	row.Chat = snap.Conversation(conv.ChatID)
	if conv.ParentActionID != "" {
		row.ParentAction = snap.ActionsFor(conv.ParentID)[conv.ParentActionID]
	}

	actions := snap.ActionsFor(id)
	row.OneTransactionThread = snap.Conversation(oneTransactionThreadID(actions, snap != nil && snap.Offline))

	sorted := j.orderer.SortForDisplay(actions, conv.CanWrite())
	if len(sorted) > 0 {
		row.LastAction = sorted[0]
	}
	row.LastActionTransaction = snap.Transaction(row.LastAction.TransactionID())
	row.Transaction = snap.Transaction(row.ParentAction.TransactionID())

	if iouID := iouConversationOfLastAction(conv, row.LastAction); iouID != "" {
		row.IOUActions = j.orderer.SortForDisplay(snap.ActionsFor(iouID), true)
	}

	row.Policy = snap.Policy(conv.PolicyID)
	row.InvoiceReceiverPolicy = snap.Policy(invoiceReceiverPolicyID(conv, row.Parent))

	row.LastActor = lastActor(snap, conv, row.LastAction)
	row.IsArchived = snap.IsArchived(id)
	row.LastMessageText = LastMessageText(ctx.Locale, conv, row.LastActor, row.LastAction, row.LastActionTransaction, row.Policy, row.IsArchived)

	if snap != nil {
		row.HasDraftComment = IsValidDraftComment(snap.DraftComments[id])
		row.Violations = snap.Violations[id]
	}
	row.Attributes = snap.AttributesFor(id)

	return row
}

// invoiceReceiverPolicyID reads the row's own invoice receiver first and
// lets the parent's receiver override it.
func invoiceReceiverPolicyID(conv, parent *models.Conversation) string {
	id := ""
	if conv.InvoiceReceiver != nil && conv.InvoiceReceiver.PolicyID != "" {
		id = conv.InvoiceReceiver.PolicyID
	}
	if parent != nil && parent.InvoiceReceiver != nil && parent.InvoiceReceiver.PolicyID != "" {
		id = parent.InvoiceReceiver.PolicyID
	}
	return id
}

func lastActor(snap *models.Snapshot, conv *models.Conversation, last *models.Action) *models.PersonalDetail {
	if detail := snap.Contact(conv.LastActorAccountID); detail != nil {
		return detail
	}
	name := last.ActorName()
	if name == "" {
		return nil
	}
	return &models.PersonalDetail{
		AccountID:   conv.LastActorAccountID,
		DisplayName: name,
	}
}

// oneTransactionThreadID returns the child conversation of the only money
// request in actions, or "" when there is not exactly one.
func oneTransactionThreadID(actions map[string]*models.Action, offline bool) string {
	var found *models.Action
	count := 0
	for _, action := range actions {
		if !action.IsMoneyRequest() {
			continue
		}
		if action.OriginalMessage == nil {
			continue
		}
		switch action.OriginalMessage.Type {
		case models.IOUTypeCreate, models.IOUTypeTrack:
		default:
			continue
		}
		if action.Deleted && !(offline && action.PendingAction == models.PendingActionDelete) {
			continue
		}
		count++
		found = action
	}
	if count != 1 || found.ChildConversation == "" {
		return ""
	}
	return found.ChildConversation
}

func iouConversationOfLastAction(conv *models.Conversation, last *models.Action) string {
	if last == nil {
		return ""
	}
	if last.Name == models.ActionReportPreview && last.ChildConversation != "" {
		return last.ChildConversation
	}
	if last.IsMoneyRequest() && last.OriginalMessage != nil && last.OriginalMessage.IOUReportID != "" {
		return last.OriginalMessage.IOUReportID
	}
	return conv.LastIOUReportID
}

// RowKey maps a row identifier to the renderer's stable key.
func RowKey(id string) string {
	return "conversation_" + id
}
