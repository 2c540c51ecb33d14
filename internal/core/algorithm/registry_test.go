package algorithm

import (
	"attackSimBackend/internal/core/domain"
	"errors"
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	for _, attack := range domain.AttackTypes() {
		t.Run(string(attack.ID), func(t *testing.T) {
			gen, err := New(attack, Options{Seed: 1, PrefixLimit: MaxRandomPrefix})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if gen.Name() != attack.ID {
				t.Errorf("Name() = %v, want %v", gen.Name(), attack.ID)
			}

			candidates := slices.Collect(gen.Generate([]string{"admin"}))
			if len(candidates) == 0 {
				t.Error("non-empty wordlist produced no candidates")
			}
			if len(slices.Collect(gen.Generate(nil))) != 0 {
				t.Error("empty wordlist produced candidates")
			}
		})
	}
}

func TestNew_UnknownStrategy(t *testing.T) {
	_, err := New(domain.AttackType{ID: "rainbow"}, Options{})
	if !errors.Is(err, domain.ErrNoStrategy) {
		t.Errorf("New() error = %v, want %v", err, domain.ErrNoStrategy)
	}
}

func TestNew_HybridCustomRules(t *testing.T) {
	attack, _ := domain.LookupAttack(domain.StrategyHybrid)
	attack.MutationRules = []string{RuleUppercase}

	gen, err := New(attack, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got := slices.Collect(gen.Generate([]string{"abc"}))
	if !slices.Equal(got, []string{"abc", "ABC"}) {
		t.Errorf("Generate() = %v", got)
	}
}
