package scoring

import (
	"math"
	"strings"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/rules"
)

// SubstantialTextMinLen is the minimum trimmed length for a free-text answer
// to earn its points. The sole content-quality heuristic, applied uniformly.
const SubstantialTextMinLen = 50

// sectionEvaluators awards 0-100 points per applicant section from fixed
// per-field point values.
var sectionEvaluators = map[string]func(model.AnswerMap) int{
	"governanceEthics":          scoreGovernanceEthics,
	"laborRights":               scoreLaborRights,
	"supplyChainResponsibility": scoreSupplyChain,
	"conflictZoneConduct":       scoreConflictZoneConduct,
	"weaponsAndMilitaryTies":    scoreWeaponsAndMilitaryTies,
	"humanRightsDueDiligence":   scoreHumanRightsDueDiligence,
	"workplaceCulture":          scoreWorkplaceCulture,
	"environmentalStewardship":  scoreEnvironmentalStewardship,
	"communityEngagement":       scoreCommunityEngagement,
	"transparencyReporting":     scoreTransparencyReporting,
	"dataPrivacyEthics":         scoreDataPrivacyEthics,
	"politicalInfluence":        scorePoliticalInfluence,
	"stakeholderDialogue":       scoreStakeholderDialogue,
	rules.BonusSectionID:        scorePeaceInitiatives,
}

// sectionFields lists the answer fields each section reads; used only for
// progress tracking, never for scoring.
var sectionFields = map[string][]string{
	"governanceEthics":          {"hasCodeOfEthics", "hasEthicsTraining", "ethicsGovernanceDescription", "hasWhistleblowerChannel"},
	"laborRights":               {"noChildOrForcedLabor", "respectsCollectiveBargaining", "laborPolicyDescription", "auditsLaborConditions"},
	"supplyChainResponsibility": {"mapsSupplyChain", "auditsSuppliers", "supplierCodeOfConduct", "supplyChainRisksDescription"},
	"conflictZoneConduct":       {"hasConflictZonePolicy", "conflictZoneDescription", "avoidsConflictMinerals"},
	"weaponsAndMilitaryTies":    {"noWeaponsManufacturing", "noMilitaryContracts", "militaryTiesDescription"},
	"humanRightsDueDiligence":   {"hasHumanRightsPolicy", "conductsHumanRightsAudits", "remediationProcessDescription", "publishesHumanRightsReport"},
	"workplaceCulture":          {"hasAntiHarassmentPolicy", "hasDeiProgram", "runsEngagementSurveys", "cultureDescription"},
	"environmentalStewardship":  {"measuresEmissions", "hasReductionTargets", "environmentalPolicyDescription", "hasEnvironmentalCertification"},
	"communityEngagement":       {"hasCommunityPrograms", "communityImpactDescription", "donatesLocally"},
	"transparencyReporting":     {"publishesAnnualReport", "disclosesOwnership", "reportingPracticesDescription"},
	"dataPrivacyEthics":         {"hasPrivacyPolicy", "minimizesDataCollection", "dataProtectionDescription"},
	"politicalInfluence":        {"disclosesLobbying", "noPartisanDonations", "politicalActivityDescription"},
	"stakeholderDialogue":       {"holdsStakeholderForums", "hasGrievanceMechanism", "stakeholderFeedbackDescription"},
	rules.BonusSectionID:        {rules.BonusGateField, "fundsPeacebuildingProjects", "peaceInitiativesDescription", "partnersWithPeaceOrgs"},
}

// ScoreQuestionnaire maps an applicant answer set to a 0-100 score. Each
// section's sub-score is weighted per the rule tables; the bonus section
// contributes only when its gating answer is true.
func ScoreQuestionnaire(answers model.AnswerMap) int {
	total := 0.0

	for _, section := range rules.ApplicantSections() {
		if section.ID == rules.BonusSectionID && !answerBool(answers, rules.BonusGateField) {
			continue
		}
		evaluate := sectionEvaluators[section.ID]
		total += float64(evaluate(answers)) * section.Weight
	}

	return clampScore(int(math.Round(total)))
}

// SectionScores returns the per-section sub-scores for advisor display.
func SectionScores(answers model.AnswerMap) model.ScoreMap {
	scores := make(model.ScoreMap, len(sectionEvaluators))
	for _, section := range rules.ApplicantSections() {
		if section.ID == rules.BonusSectionID && !answerBool(answers, rules.BonusGateField) {
			scores[section.ID] = 0
			continue
		}
		scores[section.ID] = sectionEvaluators[section.ID](answers)
	}
	return scores
}

// Progress returns the percentage of sections with at least one answered
// field, for the applicant's progress bar and the completion precondition.
func Progress(answers model.AnswerMap) int {
	if len(answers) == 0 {
		return 0
	}

	sections := rules.ApplicantSections()
	completed := 0
	for _, section := range sections {
		for _, field := range sectionFields[section.ID] {
			if answered(answers, field) {
				completed++
				break
			}
		}
	}
	return int(math.Round(float64(completed) / float64(len(sections)) * 100))
}

func scoreGovernanceEthics(a model.AnswerMap) int {
	return boolPoints(a, "hasCodeOfEthics", 25) +
		boolPoints(a, "hasEthicsTraining", 25) +
		textPoints(a, "ethicsGovernanceDescription", 25) +
		boolPoints(a, "hasWhistleblowerChannel", 25)
}

func scoreLaborRights(a model.AnswerMap) int {
	return boolPoints(a, "noChildOrForcedLabor", 30) +
		boolPoints(a, "respectsCollectiveBargaining", 25) +
		textPoints(a, "laborPolicyDescription", 25) +
		boolPoints(a, "auditsLaborConditions", 20)
}

func scoreSupplyChain(a model.AnswerMap) int {
	return boolPoints(a, "mapsSupplyChain", 25) +
		boolPoints(a, "auditsSuppliers", 25) +
		boolPoints(a, "supplierCodeOfConduct", 25) +
		textPoints(a, "supplyChainRisksDescription", 25)
}

func scoreConflictZoneConduct(a model.AnswerMap) int {
	return boolPoints(a, "hasConflictZonePolicy", 30) +
		textPoints(a, "conflictZoneDescription", 30) +
		boolPoints(a, "avoidsConflictMinerals", 40)
}

func scoreWeaponsAndMilitaryTies(a model.AnswerMap) int {
	return boolPoints(a, "noWeaponsManufacturing", 40) +
		boolPoints(a, "noMilitaryContracts", 30) +
		textPoints(a, "militaryTiesDescription", 30)
}

func scoreHumanRightsDueDiligence(a model.AnswerMap) int {
	return boolPoints(a, "hasHumanRightsPolicy", 25) +
		boolPoints(a, "conductsHumanRightsAudits", 25) +
		textPoints(a, "remediationProcessDescription", 25) +
		boolPoints(a, "publishesHumanRightsReport", 25)
}

func scoreWorkplaceCulture(a model.AnswerMap) int {
	return boolPoints(a, "hasAntiHarassmentPolicy", 25) +
		boolPoints(a, "hasDeiProgram", 25) +
		boolPoints(a, "runsEngagementSurveys", 25) +
		textPoints(a, "cultureDescription", 25)
}

func scoreEnvironmentalStewardship(a model.AnswerMap) int {
	return boolPoints(a, "measuresEmissions", 25) +
		boolPoints(a, "hasReductionTargets", 25) +
		textPoints(a, "environmentalPolicyDescription", 25) +
		boolPoints(a, "hasEnvironmentalCertification", 25)
}

func scoreCommunityEngagement(a model.AnswerMap) int {
	return boolPoints(a, "hasCommunityPrograms", 35) +
		textPoints(a, "communityImpactDescription", 35) +
		boolPoints(a, "donatesLocally", 30)
}

func scoreTransparencyReporting(a model.AnswerMap) int {
	return boolPoints(a, "publishesAnnualReport", 35) +
		boolPoints(a, "disclosesOwnership", 35) +
		textPoints(a, "reportingPracticesDescription", 30)
}

func scoreDataPrivacyEthics(a model.AnswerMap) int {
	return boolPoints(a, "hasPrivacyPolicy", 35) +
		boolPoints(a, "minimizesDataCollection", 30) +
		textPoints(a, "dataProtectionDescription", 35)
}

func scorePoliticalInfluence(a model.AnswerMap) int {
	return boolPoints(a, "disclosesLobbying", 40) +
		boolPoints(a, "noPartisanDonations", 30) +
		textPoints(a, "politicalActivityDescription", 30)
}

func scoreStakeholderDialogue(a model.AnswerMap) int {
	return boolPoints(a, "holdsStakeholderForums", 35) +
		boolPoints(a, "hasGrievanceMechanism", 35) +
		textPoints(a, "stakeholderFeedbackDescription", 30)
}

func scorePeaceInitiatives(a model.AnswerMap) int {
	return boolPoints(a, "fundsPeacebuildingProjects", 40) +
		textPoints(a, "peaceInitiativesDescription", 35) +
		boolPoints(a, "partnersWithPeaceOrgs", 25)
}

// boolPoints awards the full point value for an affirmative answer.
func boolPoints(a model.AnswerMap, field string, points int) int {
	if answerBool(a, field) {
		return points
	}
	return 0
}

// textPoints awards the full point value only for substantial free text.
func textPoints(a model.AnswerMap, field string, points int) int {
	if len(strings.TrimSpace(answerText(a, field))) >= SubstantialTextMinLen {
		return points
	}
	return 0
}

func answerBool(a model.AnswerMap, field string) bool {
	switch v := a[field].(type) {
	case bool:
		return v
	case string:
		return v == "yes" || v == "true"
	}
	return false
}

func answerText(a model.AnswerMap, field string) string {
	if s, ok := a[field].(string); ok {
		return s
	}
	return ""
}

func answered(a model.AnswerMap, field string) bool {
	v, ok := a[field]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}
