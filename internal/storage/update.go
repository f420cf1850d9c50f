package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jasperwreed/sidebar/internal/models"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidUpdate     = errors.New("invalid update")
)

// Op is the kind of change an Update makes.
type Op string

const (
	OpSet    Op = "set"
	OpMerge  Op = "merge"
	OpRemove Op = "remove"
)

// Update changes one entry of one collection. Actions are owned by their
// conversation and need Owner; every other collection leaves it empty.
type Update struct {
	Op         Op              `json:"op"`
	Collection string          `json:"collection"`
	Owner      string          `json:"owner,omitempty"`
	Key        string          `json:"key"`
	Value      json.RawMessage `json:"value,omitempty"`
}

// Validate checks the update's shape without touching the database.
func (u Update) Validate() error {
	if !models.IsCollection(u.Collection) {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, u.Collection)
	}
	if u.Key == "" {
		return fmt.Errorf("%w: empty key in %s", ErrInvalidUpdate, u.Collection)
	}
	if u.Collection == models.CollectionActions && u.Owner == "" {
		return fmt.Errorf("%w: %s/%s needs an owner conversation", ErrInvalidUpdate, u.Collection, u.Key)
	}
	if u.Collection != models.CollectionActions && u.Owner != "" {
		return fmt.Errorf("%w: %s entries have no owner", ErrInvalidUpdate, u.Collection)
	}
	if u.Collection == models.CollectionPersonal {
		if _, err := strconv.ParseInt(u.Key, 10, 64); err != nil {
			return fmt.Errorf("%w: personal details key %q is not an account id", ErrInvalidUpdate, u.Key)
		}
	}
	switch u.Op {
	case OpSet, OpMerge:
		if len(u.Value) == 0 || !json.Valid(u.Value) {
			return fmt.Errorf("%w: %s/%s has no valid JSON value", ErrInvalidUpdate, u.Collection, u.Key)
		}
	case OpRemove:
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidUpdate, u.Op)
	}
	return nil
}

// ParseUpdates decodes a JSON array of updates or newline-delimited updates.
func ParseUpdates(data []byte) ([]Update, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var updates []Update
		if err := json.Unmarshal(trimmed, &updates); err != nil {
			return nil, fmt.Errorf("failed to parse update array: %w", err)
		}
		for i, u := range updates {
			if err := u.Validate(); err != nil {
				return nil, fmt.Errorf("update %d: %w", i, err)
			}
		}
		return updates, nil
	}

	var updates []Update
	for i, line := range bytes.Split(trimmed, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		u, err := ParseUpdateLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		updates = append(updates, u)
	}
	return updates, nil
}

// ParseUpdateLine decodes and validates a single JSONL update.
func ParseUpdateLine(line []byte) (Update, error) {
	var u Update
	if err := json.Unmarshal(line, &u); err != nil {
		return Update{}, fmt.Errorf("failed to parse update: %w", err)
	}
	if err := u.Validate(); err != nil {
		return Update{}, err
	}
	return u, nil
}

// mergeValues applies patch on top of base. Objects merge one level deep and
// null fields delete the key; any other patch replaces base.
func mergeValues(base, patch []byte) ([]byte, error) {
	if len(base) == 0 {
		return patch, nil
	}
	var baseObj, patchObj map[string]json.RawMessage
	if err := json.Unmarshal(patch, &patchObj); err != nil || patchObj == nil {
		return patch, nil
	}
	if err := json.Unmarshal(base, &baseObj); err != nil || baseObj == nil {
		return patch, nil
	}
	for k, v := range patchObj {
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			delete(baseObj, k)
			continue
		}
		baseObj[k] = v
	}
	merged, err := json.Marshal(baseObj)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged value: %w", err)
	}
	return merged, nil
}

// decodeInto decodes a stored value into the snapshot.
func decodeInto(snap *models.Snapshot, collection, owner, key string, raw []byte) error {
	switch collection {
	case models.CollectionConversation:
		var v models.Conversation
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if v.ID == "" {
			v.ID = key
		}
		snap.Conversations[key] = &v
	case models.CollectionActions:
		var v models.Action
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if v.ID == "" {
			v.ID = key
		}
		if v.ConversationID == "" {
			v.ConversationID = owner
		}
		if snap.Actions[owner] == nil {
			snap.Actions[owner] = make(map[string]*models.Action)
		}
		snap.Actions[owner][key] = &v
	case models.CollectionPolicy:
		var v models.Policy
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if v.ID == "" {
			v.ID = key
		}
		snap.Policies[key] = &v
	case models.CollectionPersonal:
		accountID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return err
		}
		var v models.PersonalDetail
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		v.AccountID = accountID
		snap.Contacts[accountID] = &v
	case models.CollectionTransaction:
		var v models.Transaction
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if v.ID == "" {
			v.ID = key
		}
		snap.Transactions[key] = &v
	case models.CollectionNameValuePairs:
		var v models.NameValuePairs
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		snap.NameValuePairs[key] = &v
	case models.CollectionAttributes:
		var v models.Attributes
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		snap.Attributes[key] = &v
	case models.CollectionDraftComment:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		snap.DraftComments[key] = v
	case models.CollectionViolations:
		var v []models.Violation
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		snap.Violations[key] = v
	case models.CollectionDismissed:
		var v models.DismissedTooltip
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		snap.Dismissed[key] = v
	case models.CollectionSettings:
		return decodeSetting(snap, key, raw)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return nil
}

func decodeSetting(snap *models.Snapshot, key string, raw []byte) error {
	switch key {
	case models.SettingActivePolicyID:
		return json.Unmarshal(raw, &snap.ActivePolicyID)
	case models.SettingOnboardingChoice:
		var v struct {
			Choice string `json:"choice"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		snap.OnboardingChoice = v.Choice
	case models.SettingOverlayVisible:
		return json.Unmarshal(raw, &snap.OverlayVisible)
	case models.SettingOffline:
		return json.Unmarshal(raw, &snap.Offline)
	}
	// Settings the list does not read are kept but ignored.
	return nil
}
