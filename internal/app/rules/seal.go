package rules

import (
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
)

// Seal thresholds on the count of active issues.
const (
	SealSuspendThreshold = 5  // more than this while active suspends the seal
	SealRevokeThreshold  = 10 // more than this while active revokes the seal
)

// NextSealStatus applies the directional seal rules to the current seal state
// and the active issue count. The rules only fire in the stated direction:
// a suspended seal is not revoked by further issues, and a revoked seal never
// recovers automatically. changed is false when no rule applies.
func NextSealStatus(current model.SealStatus, activeIssues int) (next model.SealStatus, changed bool) {
	switch {
	case activeIssues > SealRevokeThreshold && current == model.SealActive:
		return model.SealRevoked, true
	case activeIssues > SealSuspendThreshold && activeIssues <= SealRevokeThreshold && current == model.SealActive:
		return model.SealSuspended, true
	case activeIssues == 0 && current == model.SealSuspended:
		return model.SealActive, true
	default:
		return current, false
	}
}
