package rules

import (
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
)

// roleQuestions lists, per role section, the ordered yes/no/na question ids
// that contribute to that section's sub-score.
var roleQuestions = map[model.ReviewerRole]map[string][]string{
	model.ReviewerEmployee: {
		"employeeRightsWorkplaceCulture": {
			"fairWagesBenefits",
			"hasDeiPrograms",
			"protectsFromHarassment",
			"hasMentalHealthSupport",
		},
		"fairCompensationJobSecurity": {
			"paysLivingWage",
			"providesStableContracts",
			"transparentPromotions",
		},
		"healthSafetyWellbeing": {
			"maintainsSafeWorkplace",
			"providesSafetyTraining",
			"respectsWorkingHours",
		},
		"ethicalManagementConduct": {
			"managementActsEthically",
			"handlesGrievancesFairly",
			"noRetaliationForReporting",
		},
	},
	model.ReviewerCustomer: {
		"productServiceIntegrity": {
			"deliversAsPromised",
			"productsSafeReliable",
			"handlesComplaintsFairly",
		},
		"honestMarketing": {
			"advertisingTruthful",
			"pricingTransparent",
		},
		"customerTreatment": {
			"treatsCustomersRespectfully",
			"protectsCustomerData",
		},
		"ethicalSourcing": {
			"sourcesResponsibly",
			"avoidsExploitativeSuppliers",
		},
	},
	model.ReviewerInvestor: {
		"governanceTransparency": {
			"reportsAccurately",
			"disclosesRisks",
			"independentBoardOversight",
		},
		"ethicalRiskManagement": {
			"screensEthicalRisks",
			"avoidsControversialHoldings",
		},
		"longTermResponsibility": {
			"prioritizesLongTermValue",
			"alignsExecutiveIncentives",
		},
	},
	model.ReviewerSupplier: {
		"fairContracting": {
			"contractTermsFair",
			"negotiatesInGoodFaith",
		},
		"paymentPractices": {
			"paysOnTime",
			"noUnilateralTermChanges",
		},
		"partnershipConduct": {
			"communicatesOpenly",
			"sharesComplianceExpectations",
			"respectsIntellectualProperty",
		},
	},
}

// QuestionsForSection returns the ordered question ids for one role section.
func QuestionsForSection(role model.ReviewerRole, sectionID string) []string {
	sections, ok := roleQuestions[role]
	if !ok {
		return nil
	}
	questions := sections[sectionID]
	out := make([]string, len(questions))
	copy(out, questions)
	return out
}
