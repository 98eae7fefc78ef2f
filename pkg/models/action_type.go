package models

import (
	"errors"
	"fmt"
	"strings"
)

// ActionType enumerates the step kinds the engine can execute.
type ActionType string

const (
	ActionTypeCreateTask       ActionType = "CreateTask"
	ActionTypeSendEmail        ActionType = "SendEmail"
	ActionTypeSendNotification ActionType = "SendNotification"
	ActionTypeUpdateField      ActionType = "UpdateField"
	ActionTypeWebhookCall      ActionType = "CallWebhook"
)

// ErrUnknownActionType is returned by ParseActionType for names outside the enumeration.
var ErrUnknownActionType = errors.New("unknown action type")

var actionTypeAliases = map[string]ActionType{
	"createtask":       ActionTypeCreateTask,
	"sendemail":        ActionTypeSendEmail,
	"sendnotification": ActionTypeSendNotification,
	"updatefield":      ActionTypeUpdateField,
	"callwebhook":      ActionTypeWebhookCall,
	"webhookcall":      ActionTypeWebhookCall,
	"webhook":          ActionTypeWebhookCall,
}

// ActionTypes lists every action type in a stable order.
func ActionTypes() []ActionType {
	return []ActionType{
		ActionTypeCreateTask,
		ActionTypeSendEmail,
		ActionTypeSendNotification,
		ActionTypeUpdateField,
		ActionTypeWebhookCall,
	}
}

// ParseActionType resolves a workflow definition's action name, ignoring case.
func ParseActionType(name string) (ActionType, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	actionType, ok := actionTypeAliases[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownActionType, name)
	}

	return actionType, nil
}

// Matches reports whether name designates this action type.
func (t ActionType) Matches(name string) bool {
	parsed, err := ParseActionType(name)

	return err == nil && parsed == t
}

func (t ActionType) String() string {
	return string(t)
}
