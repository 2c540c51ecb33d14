package scoring

import (
	"attackSimBackend/internal/core/domain"
	"math"
	"unicode"
)

// guessesPerSecond is the offline rate assumed for the crack-time label.
const guessesPerSecond = 1e10

// AnalyzePassword grades a recovered value the way the results view explains it.
func AnalyzePassword(password string) domain.PasswordAnalysis {
	a := domain.PasswordAnalysis{Length: len([]rune(password))}

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			a.HasUppercase = true
		case unicode.IsLower(r):
			a.HasLowercase = true
		case unicode.IsDigit(r):
			a.HasNumbers = true
		default:
			a.HasSpecial = true
		}
	}

	a.Entropy = entropy(a)
	a.Strength = strength(a)
	a.CrackTime = crackTime(a.Entropy)
	a.RiskLevel = Level(100 - a.Strength)
	a.Suggestions = suggestions(a)
	return a
}

func poolSize(a domain.PasswordAnalysis) int {
	pool := 0
	if a.HasLowercase {
		pool += 26
	}
	if a.HasUppercase {
		pool += 26
	}
	if a.HasNumbers {
		pool += 10
	}
	if a.HasSpecial {
		pool += 32
	}
	return pool
}

func entropy(a domain.PasswordAnalysis) float64 {
	pool := poolSize(a)
	if pool == 0 || a.Length == 0 {
		return 0
	}
	return math.Round(float64(a.Length)*math.Log2(float64(pool))*100) / 100
}

func strength(a domain.PasswordAnalysis) int {
	score := min(a.Length*4, 40)
	for _, has := range []bool{a.HasUppercase, a.HasLowercase, a.HasNumbers, a.HasSpecial} {
		if has {
			score += 15
		}
	}
	return min(score, 100)
}

func crackTime(bits float64) string {
	seconds := math.Pow(2, bits) / guessesPerSecond
	switch {
	case seconds < 1:
		return "instant"
	case seconds < 60:
		return "seconds"
	case seconds < 3600:
		return "minutes"
	case seconds < 86400:
		return "hours"
	case seconds < 86400*365:
		return "days"
	case seconds < 86400*365*100:
		return "years"
	default:
		return "centuries"
	}
}

func suggestions(a domain.PasswordAnalysis) []string {
	var out []string
	if a.Length < 12 {
		out = append(out, "Use at least 12 characters")
	}
	if !a.HasUppercase {
		out = append(out, "Add uppercase letters")
	}
	if !a.HasNumbers {
		out = append(out, "Add numbers")
	}
	if !a.HasSpecial {
		out = append(out, "Add special characters")
	}
	out = append(out, "Avoid dictionary words and common mutations")
	return out
}
