package domain

import "time"

// Target is the credential a run guesses against. Immutable for the run.
type Target struct {
	Username string
	Secret   string
}

type TargetAccount struct {
	ID       string `json:"id" yaml:"id" toml:"id"`
	Username string `json:"username" yaml:"username" toml:"username"`
	Secret   string `json:"-" yaml:"secret" toml:"secret"`
	IsActive bool   `json:"isActive" yaml:"active" toml:"active"`
}

func (a TargetAccount) Target() Target {
	return Target{Username: a.Username, Secret: a.Secret}
}

type AttackType struct {
	ID            Strategy  `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	EstimatedTime string    `json:"estimatedTime"`
	RiskLevel     RiskLevel `json:"riskLevel"`
	// MutationRules only applies to StrategyHybrid; empty means the default set.
	MutationRules []string `json:"mutationRules,omitempty"`
}

// DefenseConfig is copied by value into a run at start.
type DefenseConfig struct {
	RateLimiting    bool          `json:"rateLimiting" yaml:"rate_limiting" toml:"rate_limiting"`
	Captcha         bool          `json:"captcha" yaml:"captcha" toml:"captcha"`
	AccountLockout  bool          `json:"accountLockout" yaml:"account_lockout" toml:"account_lockout"`
	TwoFactorAuth   bool          `json:"twoFactorAuth" yaml:"two_factor_auth" toml:"two_factor_auth"`
	IPBlocking      bool          `json:"ipBlocking" yaml:"ip_blocking" toml:"ip_blocking"`
	PasswordHashing HashAlgorithm `json:"passwordHashing" yaml:"password_hashing" toml:"password_hashing"`
}

// ActiveDefenses lists the enabled toggles by display name, in a fixed order.
func (c DefenseConfig) ActiveDefenses() []string {
	var active []string
	if c.RateLimiting {
		active = append(active, "Rate Limiting")
	}
	if c.Captcha {
		active = append(active, "CAPTCHA")
	}
	if c.AccountLockout {
		active = append(active, "Account Lockout")
	}
	if c.TwoFactorAuth {
		active = append(active, "2FA")
	}
	if c.IPBlocking {
		active = append(active, "IP Blocking")
	}
	return active
}

// RunState is owned and mutated only by the runner executing the run.
type RunState struct {
	AttemptsMade      int
	LockoutStrikes    int
	LockoutsTriggered int
	StartedAt         time.Time
	Cancelled         bool
}

type LogEvent struct {
	SequenceID uint64    `json:"sequenceId"`
	Timestamp  time.Time `json:"timestamp"`
	Kind       LogKind   `json:"kind"`
	Message    string    `json:"message"`
}

// EventDraft is a log event before the run's event log assigns sequence and time.
type EventDraft struct {
	Kind    LogKind
	Message string
}

type DefenseDecision struct {
	// BaselineMultiplier scales the per-attempt baseline delay. Always >= 1.
	BaselineMultiplier int
	ExtraDelay         time.Duration
	ShouldBlock        bool
	BlockPause         time.Duration
	// ResetStreak tells the runner to zero RunState.LockoutStrikes.
	ResetStreak bool
	Events      []EventDraft
}

type RunResult struct {
	RunID              string            `json:"runId"`
	Strategy           Strategy          `json:"strategy"`
	StrategyName       string            `json:"strategyName"`
	TargetUsername     string            `json:"targetUsername"`
	Status             RunStatus         `json:"status"`
	TotalAttempts      int               `json:"totalAttempts"`
	Lockouts           int               `json:"lockouts"`
	SuccessfulAttempts int               `json:"successfulAttempts"`
	MatchFound         bool              `json:"matchFound"`
	FoundValue         string            `json:"foundValue,omitempty"`
	ElapsedSeconds     float64           `json:"elapsedSeconds"`
	RiskScore          int               `json:"riskScore"`
	RiskLevel          RiskLevel         `json:"riskLevel"`
	Analysis           *PasswordAnalysis `json:"analysis,omitempty"`
}

type PasswordAnalysis struct {
	Strength     int       `json:"strength"`
	Entropy      float64   `json:"entropy"`
	Length       int       `json:"length"`
	HasUppercase bool      `json:"hasUppercase"`
	HasLowercase bool      `json:"hasLowercase"`
	HasNumbers   bool      `json:"hasNumbers"`
	HasSpecial   bool      `json:"hasSpecial"`
	CrackTime    string    `json:"crackTime"`
	RiskLevel    RiskLevel `json:"riskLevel"`
	Suggestions  []string  `json:"suggestions"`
}

type RunMetrics struct {
	RunID          string          `json:"runId"`
	EventCounts    map[LogKind]int `json:"eventCounts"`
	Blocks         int             `json:"blocks"`
	TotalAttempts  int             `json:"totalAttempts"`
	AttemptsPerSec float64         `json:"attemptsPerSec"`
	ElapsedSeconds float64         `json:"elapsedSeconds"`
	CPUUsage       float64         `json:"cpuUsage"`
	MemoryUsageMB  int64           `json:"memoryUsageMb"`
	SystemMemory   float64         `json:"systemMemoryPercent"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}
