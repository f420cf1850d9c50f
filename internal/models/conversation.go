package models

import (
	"time"
)

const (
	ConversationTypeChat    = "chat"
	ConversationTypeExpense = "expense"
	ConversationTypeIOU     = "iou"
	ConversationTypeInvoice = "invoice"
	ConversationTypeTask    = "task"
)

const (
	PermissionRead  = "read"
	PermissionWrite = "write"
)

type InvoiceReceiver struct {
	Type      string `json:"type"`
	PolicyID  string `json:"policyID,omitempty"`
	AccountID int64  `json:"accountID,omitempty"`
}

type Conversation struct {
	ID                       string           `json:"reportID"`
	Name                     string           `json:"reportName"`
	Type                     string           `json:"type"`
	ChatType                 string           `json:"chatType,omitempty"`
	ParentID                 string           `json:"parentReportID,omitempty"`
	ParentActionID           string           `json:"parentReportActionID,omitempty"`
	ChatID                   string           `json:"chatReportID,omitempty"`
	PolicyID                 string           `json:"policyID,omitempty"`
	InvoiceReceiver          *InvoiceReceiver `json:"invoiceReceiver,omitempty"`
	LastActorAccountID       int64            `json:"lastActorAccountID,omitempty"`
	LastMessageText          string           `json:"lastMessageText,omitempty"`
	LastVisibleActionCreated time.Time        `json:"lastVisibleActionCreated"`
	LastIOUReportID          string           `json:"iouReportID,omitempty"`
	Permissions              []string         `json:"permissions,omitempty"`
}

// CanWrite reports whether the current user may post to the conversation.
// Conversations without explicit permissions are writable.
func (c *Conversation) CanWrite() bool {
	if c == nil {
		return false
	}
	if len(c.Permissions) == 0 {
		return true
	}
	for _, p := range c.Permissions {
		if p == PermissionWrite {
			return true
		}
	}
	return false
}

// IsRoom reports whether several people can post in the conversation.
func (c *Conversation) IsRoom() bool {
	return c != nil && c.ChatType != ""
}

type Policy struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OwnerAccountID int64  `json:"ownerAccountID,omitempty"`
	Type           string `json:"type,omitempty"`
}

type PersonalDetail struct {
	AccountID   int64  `json:"accountID"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName,omitempty"`
	Login       string `json:"login,omitempty"`
}

// ShortName prefers the first name and falls back to the display name.
func (p *PersonalDetail) ShortName() string {
	if p == nil {
		return ""
	}
	if p.FirstName != "" {
		return p.FirstName
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Login
}

type Transaction struct {
	ID             string    `json:"transactionID"`
	ConversationID string    `json:"reportID,omitempty"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	Merchant       string    `json:"merchant,omitempty"`
	Created        time.Time `json:"created"`
}

type NameValuePairs struct {
	IsArchived bool `json:"private_isArchived,omitempty"`
}

// Attributes are computed per conversation by an external stage.
type Attributes struct {
	RequiresAttention bool              `json:"requiresAttention,omitempty"`
	Errors            map[string]string `json:"reportErrors,omitempty"`
}

func (a *Attributes) HasErrors() bool {
	return a != nil && len(a.Errors) > 0
}

type Violation struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type DismissedTooltip struct {
	Timestamp time.Time `json:"timestamp"`
}

type StoreStats struct {
	Collections map[string]int    `json:"collections"`
	Versions    map[string]uint64 `json:"versions"`
}
