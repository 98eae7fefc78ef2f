// Package template substitutes {{Token}} placeholders in step configuration values.
package template

import (
	"strconv"
	"strings"
	"time"

	"github.com/dukex/crmflow/pkg/models"
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Built-in token names.
const (
	TokenWorkflowID      = "WorkflowId"
	TokenExecutionID     = "ExecutionId"
	TokenEntityID        = "EntityId"
	TokenEntityType      = "EntityType"
	TokenCurrentDate     = "CurrentDate"
	TokenCurrentTime     = "CurrentTime"
	TokenCurrentDateTime = "CurrentDateTime"
)

// Interpolate replaces built-in tokens and trigger data keys in tmpl using the
// local clock.
func Interpolate(tmpl string, actionCtx *models.WorkflowActionContext) string {
	return InterpolateAt(tmpl, actionCtx, time.Now())
}

// InterpolateAt is Interpolate with an explicit current time.
//
// Replacement is literal and single pass: substituted values are never
// scanned again, and a trigger key named like a built-in never shadows it.
func InterpolateAt(tmpl string, actionCtx *models.WorkflowActionContext, now time.Time) string {
	if tmpl == "" || actionCtx == nil || !strings.Contains(tmpl, "{{") {
		return tmpl
	}

	return newReplacer(actionCtx, now).Replace(tmpl)
}

func newReplacer(actionCtx *models.WorkflowActionContext, now time.Time) *strings.Replacer {
	local := now.Local()

	pairs := []string{
		token(TokenWorkflowID), strconv.FormatInt(actionCtx.WorkflowID, 10),
		token(TokenExecutionID), strconv.FormatInt(actionCtx.ExecutionID, 10),
		token(TokenEntityID), actionCtx.EntityID,
		token(TokenEntityType), actionCtx.EntityType,
		token(TokenCurrentDate), local.Format(DateLayout),
		token(TokenCurrentTime), local.Format(TimeLayout),
		token(TokenCurrentDateTime), local.Format(DateTimeLayout),
	}

	// strings.Replacer prefers the earliest pair for identical old strings,
	// so built-ins keep precedence over trigger keys with the same name.
	for _, key := range actionCtx.TriggerData.Keys() {
		pairs = append(pairs, token(key), actionCtx.TriggerData[key].String())
	}

	return strings.NewReplacer(pairs...)
}

func token(name string) string {
	return "{{" + name + "}}"
}
