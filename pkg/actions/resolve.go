package actions

import (
	"strings"

	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/template"
	"github.com/google/uuid"
)

// OwnerCandidateKeys lists the trigger keys that may carry a task owner, in priority order.
func OwnerCandidateKeys() []string {
	return []string{"OwnerId", "CreatedBy", "AssignedTo", "UserId", "WonBy"}
}

// UserCandidateKeys lists the trigger keys that may carry a notification recipient.
func UserCandidateKeys() []string {
	return []string{"UserId", "CreatedBy", "UpdatedBy", "OwnerId", "AssignedTo", "WonBy"}
}

func TenantCandidateKeys() []string {
	return []string{"TenantId"}
}

// ResolveID finds an identifier in priority order: the interpolated
// configValue, then the first candidate trigger key holding an identifier,
// then ambient. A configValue that does not parse falls through to trigger data.
func ResolveID(
	configValue string,
	actionCtx *models.WorkflowActionContext,
	candidateKeys []string,
	ambient *uuid.UUID,
) (uuid.UUID, bool) {
	if configValue = strings.TrimSpace(configValue); configValue != "" {
		if id, ok := models.StringValue(template.Interpolate(configValue, actionCtx)).AsID(); ok {
			return id, true
		}
	}

	for _, key := range candidateKeys {
		value, ok := actionCtx.Trigger(key)
		if !ok {
			continue
		}

		if id, ok := value.AsID(); ok {
			return id, true
		}
	}

	if ambient != nil && *ambient != uuid.Nil {
		return *ambient, true
	}

	return uuid.Nil, false
}

// ParseIDs keeps the entries of values that parse as identifiers after interpolation.
func ParseIDs(values []string, actionCtx *models.WorkflowActionContext) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(values))

	for _, value := range values {
		if id, ok := models.StringValue(template.Interpolate(value, actionCtx)).AsID(); ok {
			ids = append(ids, id)
		}
	}

	return ids
}
