package models

// Collection names of the entity stores.
const (
	CollectionConversation   = "report"
	CollectionActions        = "reportActions"
	CollectionPolicy         = "policy"
	CollectionPersonal       = "personalDetailsList"
	CollectionTransaction    = "transactions"
	CollectionNameValuePairs = "reportNameValuePairs"
	CollectionAttributes     = "reportAttributes"
	CollectionDraftComment   = "reportDraftComment"
	CollectionViolations     = "transactionViolations"
	CollectionDismissed      = "nvp_dismissedProductTraining"
	CollectionSettings       = "settings"
)

// Keys of the settings collection.
const (
	SettingActivePolicyID   = "activePolicyID"
	SettingOnboardingChoice = "introSelected"
	SettingOverlayVisible   = "fullscreenVisibility"
	SettingOffline          = "isOffline"
)

// Collections lists every collection in load order.
var Collections = []string{
	CollectionConversation,
	CollectionActions,
	CollectionPolicy,
	CollectionPersonal,
	CollectionTransaction,
	CollectionNameValuePairs,
	CollectionAttributes,
	CollectionDraftComment,
	CollectionViolations,
	CollectionDismissed,
	CollectionSettings,
}

// IsCollection reports whether name is a known collection.
func IsCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// Versions holds one change counter per collection.
type Versions struct {
	Conversations  uint64
	Actions        uint64
	Policies       uint64
	Contacts       uint64
	Transactions   uint64
	NameValuePairs uint64
	Attributes     uint64
	DraftComments  uint64
	Violations     uint64
	Dismissed      uint64
	Settings       uint64
}

// Set stores the version for the named collection.
func (v *Versions) Set(collection string, version uint64) {
	switch collection {
	case CollectionConversation:
		v.Conversations = version
	case CollectionActions:
		v.Actions = version
	case CollectionPolicy:
		v.Policies = version
	case CollectionPersonal:
		v.Contacts = version
	case CollectionTransaction:
		v.Transactions = version
	case CollectionNameValuePairs:
		v.NameValuePairs = version
	case CollectionAttributes:
		v.Attributes = version
	case CollectionDraftComment:
		v.DraftComments = version
	case CollectionViolations:
		v.Violations = version
	case CollectionDismissed:
		v.Dismissed = version
	case CollectionSettings:
		v.Settings = version
	}
}

// Snapshot is a read-only view of every entity store at one point in time.
// A snapshot must not be mutated once it has been handed to a render pass.
type Snapshot struct {
	Versions Versions

	Conversations  map[string]*Conversation
	Actions        map[string]map[string]*Action
	Policies       map[string]*Policy
	Contacts       map[int64]*PersonalDetail
	Transactions   map[string]*Transaction
	NameValuePairs map[string]*NameValuePairs
	Attributes     map[string]*Attributes
	DraftComments  map[string]string
	Violations     map[string][]Violation

	// Dismissed is nil while the dismissed-tooltip store has not loaded.
	Dismissed map[string]DismissedTooltip

	ActivePolicyID   string
	OnboardingChoice string
	OverlayVisible   bool
	Offline          bool
}

// NewSnapshot returns an empty snapshot with every collection allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Conversations:  make(map[string]*Conversation),
		Actions:        make(map[string]map[string]*Action),
		Policies:       make(map[string]*Policy),
		Contacts:       make(map[int64]*PersonalDetail),
		Transactions:   make(map[string]*Transaction),
		NameValuePairs: make(map[string]*NameValuePairs),
		Attributes:     make(map[string]*Attributes),
		DraftComments:  make(map[string]string),
		Violations:     make(map[string][]Violation),
	}
}

// Conversation returns the record for id, or nil. Safe on a nil snapshot.
func (s *Snapshot) Conversation(id string) *Conversation {
	if s == nil || id == "" {
		return nil
	}
	return s.Conversations[id]
}

func (s *Snapshot) Policy(id string) *Policy {
	if s == nil || id == "" {
		return nil
	}
	return s.Policies[id]
}

func (s *Snapshot) Transaction(id string) *Transaction {
	if s == nil || id == "" {
		return nil
	}
	return s.Transactions[id]
}

func (s *Snapshot) Contact(accountID int64) *PersonalDetail {
	if s == nil || accountID == 0 {
		return nil
	}
	return s.Contacts[accountID]
}

func (s *Snapshot) ActionsFor(conversationID string) map[string]*Action {
	if s == nil || conversationID == "" {
		return nil
	}
	return s.Actions[conversationID]
}

func (s *Snapshot) AttributesFor(conversationID string) *Attributes {
	if s == nil {
		return nil
	}
	return s.Attributes[conversationID]
}

// IsArchived reads the archived flag from the name/value-pair store.
func (s *Snapshot) IsArchived(conversationID string) bool {
	if s == nil {
		return false
	}
	nvp := s.NameValuePairs[conversationID]
	return nvp != nil && nvp.IsArchived
}

// Sizes returns the number of entries in the main stores, for diagnostics.
func (s *Snapshot) Sizes() map[string]int {
	if s == nil {
		return map[string]int{}
	}
	return map[string]int{
		CollectionConversation: len(s.Conversations),
		CollectionActions:      len(s.Actions),
		CollectionPolicy:       len(s.Policies),
		CollectionPersonal:     len(s.Contacts),
	}
}
