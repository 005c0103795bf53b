package rules

import (
	"testing"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition_AllowedPaths(t *testing.T) {
	allowed := []struct {
		from model.CompanyStatus
		to   model.CompanyStatus
	}{
		{model.StatusDraft, model.StatusApplicationSubmitted},
		{model.StatusApplicationSubmitted, model.StatusAuditInProgress},
		{model.StatusAuditInProgress, model.StatusVerified},
		{model.StatusAuditInProgress, model.StatusConditional},
		{model.StatusAuditInProgress, model.StatusDidNotPass},
		{model.StatusVerified, model.StatusUnderReview},
		{model.StatusConditional, model.StatusAuditInProgress},
		{model.StatusConditional, model.StatusUnderReview},
		{model.StatusUnderReview, model.StatusVerified},
		{model.StatusUnderReview, model.StatusConditional},
		{model.StatusUnderReview, model.StatusDidNotPass},
		{model.StatusDidNotPass, model.StatusApplicationSubmitted},
	}

	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}
}

func TestCanTransition_RejectedPaths(t *testing.T) {
	rejected := []struct {
		from model.CompanyStatus
		to   model.CompanyStatus
	}{
		{model.StatusDraft, model.StatusVerified},
		{model.StatusDraft, model.StatusAuditInProgress},
		{model.StatusApplicationSubmitted, model.StatusVerified},
		{model.StatusVerified, model.StatusDraft},
		{model.StatusVerified, model.StatusVerified},
		{model.StatusDidNotPass, model.StatusVerified},
		{model.StatusUnderReview, model.StatusDraft},
	}

	for _, tc := range rejected {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(model.CompanyStatus("bogus"), model.StatusVerified))
	assert.False(t, CanTransition(model.StatusDraft, model.CompanyStatus("bogus")))
}

func TestAllowedNext(t *testing.T) {
	next := AllowedNext(model.StatusAuditInProgress)
	assert.ElementsMatch(t, []model.CompanyStatus{
		model.StatusVerified,
		model.StatusConditional,
		model.StatusDidNotPass,
		model.StatusUnderReview,
	}, next)

	assert.Empty(t, AllowedNext(model.CompanyStatus("bogus")))
}

func TestIsKnownStatus(t *testing.T) {
	for _, s := range []model.CompanyStatus{
		model.StatusDraft,
		model.StatusApplicationSubmitted,
		model.StatusAuditInProgress,
		model.StatusVerified,
		model.StatusConditional,
		model.StatusDidNotPass,
		model.StatusUnderReview,
	} {
		assert.True(t, IsKnownStatus(s), string(s))
	}
	assert.False(t, IsKnownStatus(model.CompanyStatus("published")))
}
