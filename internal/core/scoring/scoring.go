// Package scoring turns a run outcome into a 0-100 risk score.
package scoring

import "attackSimBackend/internal/core/domain"

const (
	matchBase       = 90
	matchFast       = 100
	matchModerate   = 85
	fastSeconds     = 5
	moderateSeconds = 30

	noMatchBase     = 20
	controlDiscount = 5
	twoFactorCredit = 10
)

// Score rates a run. IPBlocking and PasswordHashing do not contribute.
func Score(result domain.RunResult, elapsedSeconds float64, cfg domain.DefenseConfig) int {
	if result.MatchFound {
		switch {
		case elapsedSeconds < fastSeconds:
			return matchFast
		case elapsedSeconds < moderateSeconds:
			return matchModerate
		default:
			return matchBase
		}
	}

	score := noMatchBase
	if cfg.RateLimiting {
		score -= controlDiscount
	}
	if cfg.Captcha {
		score -= controlDiscount
	}
	if cfg.AccountLockout {
		score -= controlDiscount
	}
	if cfg.TwoFactorAuth {
		score -= twoFactorCredit
	}
	return max(score, 0)
}

func Level(score int) domain.RiskLevel {
	switch {
	case score >= 75:
		return domain.RiskCritical
	case score >= 50:
		return domain.RiskHigh
	case score >= 25:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
