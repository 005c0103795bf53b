// Package rules holds the static configuration of the certification program:
// the status transition graph, score thresholds, payment tiers, section
// weights and question catalogs. Pure data plus lookup helpers; no state.
package rules

import (
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
)

// statusTransitions is the adjacency list of allowed certification status
// transitions. Every state has at least one outgoing edge: the program
// always allows recovery or re-audit.
var statusTransitions = map[model.CompanyStatus][]model.CompanyStatus{
	model.StatusDraft: {
		model.StatusApplicationSubmitted,
	},
	model.StatusApplicationSubmitted: {
		model.StatusAuditInProgress,
		model.StatusDraft,
	},
	model.StatusAuditInProgress: {
		model.StatusVerified,
		model.StatusConditional,
		model.StatusDidNotPass,
		model.StatusUnderReview,
	},
	model.StatusVerified: {
		model.StatusUnderReview,
		model.StatusConditional,
	},
	model.StatusConditional: {
		model.StatusAuditInProgress,
		model.StatusVerified,
		model.StatusUnderReview,
		model.StatusDidNotPass,
	},
	model.StatusUnderReview: {
		model.StatusVerified,
		model.StatusConditional,
		model.StatusDidNotPass,
		model.StatusAuditInProgress,
	},
	model.StatusDidNotPass: {
		model.StatusApplicationSubmitted,
		model.StatusAuditInProgress,
	},
}

// CanTransition reports whether requested is a legal next status from current.
func CanTransition(current, requested model.CompanyStatus) bool {
	for _, next := range statusTransitions[current] {
		if next == requested {
			return true
		}
	}
	return false
}

// AllowedNext returns the allow-list for the given status.
func AllowedNext(current model.CompanyStatus) []model.CompanyStatus {
	next := statusTransitions[current]
	out := make([]model.CompanyStatus, len(next))
	copy(out, next)
	return out
}

// IsKnownStatus reports whether s appears in the transition graph.
func IsKnownStatus(s model.CompanyStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}
