package models

import (
	"time"
)

const (
	ActionAddComment        = "ADDCOMMENT"
	ActionIOU               = "IOU"
	ActionReportPreview     = "REPORTPREVIEW"
	ActionCreated           = "CREATED"
	ActionActionableWhisper = "ACTIONABLEWHISPER"
	ActionClosed            = "CLOSED"
)

const (
	IOUTypeCreate = "create"
	IOUTypeTrack  = "track"
	IOUTypeSplit  = "split"
	IOUTypePay    = "pay"
)

const PendingActionDelete = "delete"

type PersonFragment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type OriginalMessage struct {
	Type             string `json:"type,omitempty"`
	IOUTransactionID string `json:"IOUTransactionID,omitempty"`
	IOUReportID      string `json:"IOUReportID,omitempty"`
	Amount           int64  `json:"amount,omitempty"`
	Currency         string `json:"currency,omitempty"`
}

type Action struct {
	ID                string           `json:"reportActionID"`
	ConversationID    string           `json:"reportID"`
	Name              string           `json:"actionName"`
	Created           time.Time        `json:"created"`
	ActorAccountID    int64            `json:"actorAccountID,omitempty"`
	Person            []PersonFragment `json:"person,omitempty"`
	Message           string           `json:"message,omitempty"`
	OriginalMessage   *OriginalMessage `json:"originalMessage,omitempty"`
	ChildConversation string           `json:"childReportID,omitempty"`
	PendingAction     string           `json:"pendingAction,omitempty"`
	Deleted           bool             `json:"isDeleted,omitempty"`
	Whisper           bool             `json:"whisper,omitempty"`
}

// IsMoneyRequest reports whether the action records a money request.
func (a *Action) IsMoneyRequest() bool {
	return a != nil && a.Name == ActionIOU
}

// TransactionID returns the transaction referenced by a money request action.
func (a *Action) TransactionID() string {
	if !a.IsMoneyRequest() || a.OriginalMessage == nil {
		return ""
	}
	return a.OriginalMessage.IOUTransactionID
}

// ActorName is the display name embedded in the action's attribution.
func (a *Action) ActorName() string {
	if a == nil || len(a.Person) == 0 {
		return ""
	}
	return a.Person[0].Text
}
