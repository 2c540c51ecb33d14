package domain

var attackCatalog = []AttackType{
	{
		ID:            StrategyExhaustive,
		Name:          "Brute Force",
		Description:   "Systematically tries every possible password combination",
		EstimatedTime: "2-5 min",
		RiskLevel:     RiskHigh,
	},
	{
		ID:            StrategyDictionary,
		Name:          "Dictionary Attack",
		Description:   "Uses a wordlist of common passwords and variations",
		EstimatedTime: "30-60 sec",
		RiskLevel:     RiskMedium,
	},
	{
		ID:            StrategyHybrid,
		Name:          "Hybrid Attack",
		Description:   "Combines dictionary words with common patterns and mutations",
		EstimatedTime: "1-3 min",
		RiskLevel:     RiskHigh,
	},
	{
		ID:            StrategyReplayList,
		Name:          "Credential Stuffing",
		Description:   "Tests leaked credentials from data breaches",
		EstimatedTime: "15-30 sec",
		RiskLevel:     RiskCritical,
	},
	{
		ID:            StrategyTimingProbe,
		Name:          "Timing Attack",
		Description:   "Analyzes response time differences to infer valid credentials",
		EstimatedTime: "3-5 min",
		RiskLevel:     RiskLow,
	},
}

// AttackTypes returns a copy of the attack catalog in display order.
func AttackTypes() []AttackType {
	out := make([]AttackType, len(attackCatalog))
	copy(out, attackCatalog)
	return out
}

func LookupAttack(id Strategy) (AttackType, bool) {
	for _, a := range attackCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return AttackType{}, false
}
