package cli

import (
	"attackSimBackend/internal/core/domain"
	"fmt"

	"github.com/spf13/cobra"
)

// defenseFlags override the configured defense toggles only when set.
type defenseFlags struct {
	rateLimiting   bool
	captcha        bool
	accountLockout bool
	twoFactorAuth  bool
	ipBlocking     bool
	hashing        string
}

func (f *defenseFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.rateLimiting, "rate-limit", false, "enable rate limiting")
	cmd.Flags().BoolVar(&f.captcha, "captcha", false, "enable CAPTCHA challenges")
	cmd.Flags().BoolVar(&f.accountLockout, "lockout", false, "enable account lockout")
	cmd.Flags().BoolVar(&f.twoFactorAuth, "2fa", false, "enable two-factor authentication")
	cmd.Flags().BoolVar(&f.ipBlocking, "ip-block", false, "enable IP blocking")
	cmd.Flags().StringVar(&f.hashing, "hashing", "", "password storage algorithm: bcrypt, sha256 or argon2")
}

func (f *defenseFlags) apply(cmd *cobra.Command, base domain.DefenseConfig) (domain.DefenseConfig, error) {
	flags := cmd.Flags()
	if flags.Changed("rate-limit") {
		base.RateLimiting = f.rateLimiting
	}
	if flags.Changed("captcha") {
		base.Captcha = f.captcha
	}
	if flags.Changed("lockout") {
		base.AccountLockout = f.accountLockout
	}
	if flags.Changed("2fa") {
		base.TwoFactorAuth = f.twoFactorAuth
	}
	if flags.Changed("ip-block") {
		base.IPBlocking = f.ipBlocking
	}
	if flags.Changed("hashing") {
		h := domain.HashAlgorithm(f.hashing)
		if !h.Valid() {
			return base, fmt.Errorf("%w: unknown hashing %q", domain.ErrInvalidInput, f.hashing)
		}
		base.PasswordHashing = h
	}
	return base, nil
}
