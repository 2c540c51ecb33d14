package domain

type Strategy string
type LogKind string
type RunStatus string
type HashAlgorithm string
type RiskLevel string

const (
	// Attack strategies
	StrategyExhaustive  Strategy = "brute-force"
	StrategyDictionary  Strategy = "dictionary"
	StrategyHybrid      Strategy = "hybrid"
	StrategyReplayList  Strategy = "credential-stuffing"
	StrategyTimingProbe Strategy = "timing"

	// Log event kinds
	LogInfo    LogKind = "info"
	LogAttempt LogKind = "attempt"
	LogSuccess LogKind = "success"
	LogFailure LogKind = "failure"
	LogWarning LogKind = "warning"

	// Run status
	StatusIdle      RunStatus = "IDLE"
	StatusRunning   RunStatus = "RUNNING"
	StatusSucceeded RunStatus = "SUCCEEDED"
	StatusExhausted RunStatus = "EXHAUSTED"
	StatusBlocked   RunStatus = "BLOCKED"
	StatusCancelled RunStatus = "CANCELLED"

	// Password hashing selectors. Cosmetic only.
	HashBcrypt HashAlgorithm = "bcrypt"
	HashSHA256 HashAlgorithm = "sha256"
	HashArgon2 HashAlgorithm = "argon2"

	// Risk levels
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var (
	CharsetLower  = "abcdefghijklmnopqrstuvwxyz"
	CharsetUpper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	CharsetDigits = "0123456789"
	// CharsetExhaustive is the alphabet of the random brute-force prefix.
	CharsetExhaustive = CharsetLower + CharsetDigits
)

// Terminal reports whether no further transitions are possible from s.
func (s RunStatus) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusExhausted, StatusBlocked, StatusCancelled:
		return true
	default:
		return false
	}
}

func (h HashAlgorithm) Valid() bool {
	switch h {
	case HashBcrypt, HashSHA256, HashArgon2:
		return true
	default:
		return false
	}
}

// RejectionReason is returned synchronously by StartRun when a run cannot begin.
type RejectionReason string

const (
	ErrNoTarget       RejectionReason = "NO_TARGET"
	ErrNoStrategy     RejectionReason = "NO_STRATEGY"
	ErrEmptyWordlist  RejectionReason = "EMPTY_WORDLIST"
	ErrAlreadyRunning RejectionReason = "ALREADY_RUNNING"
)

func (e RejectionReason) Error() string {
	return string(e)
}

// Hint is a short operator-facing explanation of the rejection.
func (e RejectionReason) Hint() string {
	switch e {
	case ErrNoTarget:
		return "select an active target account"
	case ErrNoStrategy:
		return "select a known attack strategy"
	case ErrEmptyWordlist:
		return "load a wordlist with at least one entry"
	case ErrAlreadyRunning:
		return "stop the active simulation before starting another"
	default:
		return ""
	}
}

type SimulationError string

const (
	ErrRunNotFound  SimulationError = "RUN_NOT_FOUND"
	ErrUnknownRule  SimulationError = "UNKNOWN_MUTATION_RULE"
	ErrInvalidInput SimulationError = "INVALID_INPUT"
)

func (e SimulationError) Error() string {
	return string(e)
}
