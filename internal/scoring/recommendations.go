package scoring

import "neuroscreen/internal/models"

// recommendationTable is the fixed per-domain, per-risk-tier recommendation
// text. Selection is deterministic; narrative alternatives come from the
// insight service and never replace this table as the fallback.
var recommendationTable = map[models.Domain]map[models.RiskLevel][]string{
	models.DomainCognitive: {
		models.RiskLow: {
			"Cognitive performance is within the expected range.",
			"Keep up regular mental activity such as reading and puzzles.",
		},
		models.RiskModerate: {
			"Some cognitive indicators fall below the expected range.",
			"Consider repeating the screening in four weeks to track any change.",
			"Regular sleep and physical exercise can support cognitive function.",
		},
		models.RiskHigh: {
			"Several cognitive indicators fall well below the expected range.",
			"Share these results with a healthcare professional for a formal evaluation.",
			"This screening is not a diagnosis; only a clinician can provide one.",
		},
	},
	models.DomainMotor: {
		models.RiskLow: {
			"Motor control indicators are within the expected range.",
			"Continue regular physical activity to maintain coordination.",
		},
		models.RiskModerate: {
			"Some motor indicators, such as steadiness or tapping rhythm, are reduced.",
			"Consider repeating the screening and noting any tremor during daily tasks.",
		},
		models.RiskHigh: {
			"Motor indicators such as tremor or coordination are markedly reduced.",
			"Discuss these results with a healthcare professional, ideally a neurologist.",
			"This screening is not a diagnosis; only a clinician can provide one.",
		},
	},
	models.DomainSpeech: {
		models.RiskLow: {
			"Speech clarity and fluency are within the expected range.",
		},
		models.RiskModerate: {
			"Speech clarity or fluency is somewhat reduced.",
			"Repeat the screening in a quiet environment to rule out recording issues.",
		},
		models.RiskHigh: {
			"Speech clarity and fluency are markedly reduced.",
			"Consider an evaluation by a speech-language professional.",
			"This screening is not a diagnosis; only a clinician can provide one.",
		},
	},
	models.DomainBehavioral: {
		models.RiskLow: {
			"Reported mood and behavior are within the expected range.",
		},
		models.RiskModerate: {
			"Some reported symptoms may be affecting daily life.",
			"Consider tracking mood over the coming weeks and repeating the screening.",
		},
		models.RiskHigh: {
			"Reported symptoms suggest a significant impact on daily life.",
			"Please consider talking to a mental-health professional.",
			"If you are in crisis, contact a local emergency or crisis line immediately.",
		},
	},
}

// Recommendations returns the fixed recommendation set for a domain and
// risk tier.
func Recommendations(domain models.Domain, risk models.RiskLevel) []string {
	tiers, ok := recommendationTable[domain]
	if !ok {
		return nil
	}
	recs := tiers[risk]
	out := make([]string, len(recs))
	copy(out, recs)
	return out
}
