package algorithm

import (
	"attackSimBackend/internal/core/domain"
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	RuleAppend123  = "append_123"
	RuleAppendBang = "append_bang"
	RuleAppend1    = "append_1"
	RuleUppercase  = "uppercase"
	RuleCapitalize = "capitalize"
	RuleLeet       = "leet"
	RuleReverse    = "reverse"
	RuleAppendYear = "append_year"
)

// DefaultMutationRules is the fixed mutation set applied after each source word.
var DefaultMutationRules = []string{
	RuleAppend123,
	RuleAppendBang,
	RuleAppend1,
	RuleUppercase,
	RuleCapitalize,
	RuleLeet,
}

var leetReplacer = strings.NewReplacer("a", "@", "e", "3", "i", "1", "o", "0")

// Hybrid emits each wordlist entry followed by one variant per mutation rule.
// Variants are not deduplicated: every source word yields 1+len(rules) candidates.
type Hybrid struct {
	rules []string
}

func NewHybrid(rules []string) (*Hybrid, error) {
	if len(rules) == 0 {
		rules = DefaultMutationRules
	}
	for _, rule := range rules {
		if !knownRule(rule) {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRule, rule)
		}
	}

	owned := make([]string, len(rules))
	copy(owned, rules)
	return &Hybrid{rules: owned}, nil
}

func (h *Hybrid) Generate(wordlist []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, word := range wordlist {
			if !yield(word) {
				return
			}
			for _, rule := range h.rules {
				if !yield(applyRule(word, rule)) {
					return
				}
			}
		}
	}
}

func (h *Hybrid) Size(wordlist []string) int {
	return len(wordlist) * (1 + len(h.rules))
}

func (h *Hybrid) Name() domain.Strategy {
	return domain.StrategyHybrid
}

func (h *Hybrid) Rules() []string {
	out := make([]string, len(h.rules))
	copy(out, h.rules)
	return out
}

func knownRule(rule string) bool {
	switch rule {
	case RuleAppend123, RuleAppendBang, RuleAppend1, RuleUppercase,
		RuleCapitalize, RuleLeet, RuleReverse, RuleAppendYear:
		return true
	default:
		return false
	}
}

func applyRule(word, rule string) string {
	switch rule {
	case RuleAppend123:
		return word + "123"
	case RuleAppendBang:
		return word + "!"
	case RuleAppend1:
		return word + "1"
	case RuleUppercase:
		return strings.ToUpper(word)
	case RuleCapitalize:
		return capitalize(word)
	case RuleLeet:
		return leetReplacer.Replace(word)
	case RuleReverse:
		runes := []rune(word)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes)
	case RuleAppendYear:
		return word + "2024"
	default:
		return word
	}
}

func capitalize(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(first)) + word[size:]
}
