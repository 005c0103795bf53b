package rules

import (
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
)

// WeightedSection is one scored section and its fractional contribution to
// the overall 0-100 score. Weights for one context sum to 1.0.
type WeightedSection struct {
	ID     string
	Weight float64
}

// Applicant questionnaire sections. The bonus section contributes only when
// its gating answer is true.
const (
	BonusSectionID = "peaceInitiatives"
	BonusGateField = "supportsPeaceInitiatives"
)

var applicantSections = []WeightedSection{
	{ID: "governanceEthics", Weight: 0.09},
	{ID: "laborRights", Weight: 0.09},
	{ID: "supplyChainResponsibility", Weight: 0.09},
	{ID: "conflictZoneConduct", Weight: 0.09},
	{ID: "weaponsAndMilitaryTies", Weight: 0.09},
	{ID: "humanRightsDueDiligence", Weight: 0.09},
	{ID: "workplaceCulture", Weight: 0.06},
	{ID: "environmentalStewardship", Weight: 0.06},
	{ID: "communityEngagement", Weight: 0.06},
	{ID: "transparencyReporting", Weight: 0.06},
	{ID: "dataPrivacyEthics", Weight: 0.05},
	{ID: "politicalInfluence", Weight: 0.05},
	{ID: "stakeholderDialogue", Weight: 0.05},
	{ID: BonusSectionID, Weight: 0.07},
}

// ApplicantSections returns the ordered applicant questionnaire sections.
func ApplicantSections() []WeightedSection {
	out := make([]WeightedSection, len(applicantSections))
	copy(out, applicantSections)
	return out
}

// Stakeholder review sections per role.
var roleSections = map[model.ReviewerRole][]WeightedSection{
	model.ReviewerEmployee: {
		{ID: "employeeRightsWorkplaceCulture", Weight: 0.30},
		{ID: "fairCompensationJobSecurity", Weight: 0.25},
		{ID: "healthSafetyWellbeing", Weight: 0.25},
		{ID: "ethicalManagementConduct", Weight: 0.20},
	},
	model.ReviewerCustomer: {
		{ID: "productServiceIntegrity", Weight: 0.30},
		{ID: "honestMarketing", Weight: 0.25},
		{ID: "customerTreatment", Weight: 0.25},
		{ID: "ethicalSourcing", Weight: 0.20},
	},
	model.ReviewerInvestor: {
		{ID: "governanceTransparency", Weight: 0.35},
		{ID: "ethicalRiskManagement", Weight: 0.35},
		{ID: "longTermResponsibility", Weight: 0.30},
	},
	model.ReviewerSupplier: {
		{ID: "fairContracting", Weight: 0.35},
		{ID: "paymentPractices", Weight: 0.35},
		{ID: "partnershipConduct", Weight: 0.30},
	},
}

// SectionsForRole returns the ordered weighted sections for a stakeholder
// role; ok is false for an unknown role.
func SectionsForRole(role model.ReviewerRole) ([]WeightedSection, bool) {
	sections, ok := roleSections[role]
	if !ok {
		return nil, false
	}
	out := make([]WeightedSection, len(sections))
	copy(out, sections)
	return out, true
}
