package challenges

import (
	"fmt"
	"slices"
	"strings"
)

// validateChallenges performs all structural checks on the definitions
// and the answer table. Returns a combined error describing all problems
// found, or nil if valid.
func validateChallenges(defs []Challenge, answers map[string]Matcher) error {
	var errs []string

	ids := make(map[string]bool)
	claim := func(id, owner string) {
		if ids[id] {
			errs = append(errs, fmt.Sprintf("duplicate challenge ID: %q (in %s)", id, owner))
		}
		ids[id] = true
	}

	categories := AllCategories()

	for _, c := range defs {
		if !validID(c.ID) {
			errs = append(errs, fmt.Sprintf("invalid challenge ID: %q", c.ID))
		}
		claim(c.ID, c.ID)

		prefix := fmt.Sprintf("challenge %q", c.ID)
		if strings.TrimSpace(c.Title) == "" {
			errs = append(errs, prefix+": empty title")
		}
		if strings.TrimSpace(c.Prompt) == "" {
			errs = append(errs, prefix+": empty prompt")
		}
		if c.Level < MinLevel || c.Level > MaxLevel {
			errs = append(errs, fmt.Sprintf("%s: level must be in [%d, %d], got %d", prefix, MinLevel, MaxLevel, c.Level))
		}
		if !slices.Contains(categories, c.Category) {
			errs = append(errs, fmt.Sprintf("%s: unknown category %q", prefix, c.Category))
		}
		if c.XPReward <= 0 {
			errs = append(errs, fmt.Sprintf("%s: XPReward must be > 0, got %d", prefix, c.XPReward))
		}
		if c.SanityCost < 0 || c.SanityCost > 100 {
			errs = append(errs, fmt.Sprintf("%s: SanityCost must be in [0, 100], got %d", prefix, c.SanityCost))
		}
		if len(c.Hints) == 0 {
			errs = append(errs, prefix+": no hints")
		}
		if c.Solution == "" {
			errs = append(errs, prefix+": no solution")
		}
		if c.Difficulty != "" && c.Difficulty != DifficultyStandard {
			errs = append(errs, fmt.Sprintf("%s: base challenge must be standard, got %q", prefix, c.Difficulty))
		}
		if _, ok := answers[c.ID]; !ok {
			errs = append(errs, prefix+": no answer matcher")
		}

		seen := make(map[Difficulty]bool)
		for _, v := range c.Variants {
			vp := fmt.Sprintf("%s variant %q", prefix, v.ID)
			if !validID(v.ID) {
				errs = append(errs, fmt.Sprintf("%s: invalid variant ID", vp))
			}
			claim(v.ID, c.ID)
			if _, ok := ParseDifficulty(string(v.Difficulty)); !ok || v.Difficulty == DifficultyStandard {
				errs = append(errs, fmt.Sprintf("%s: invalid difficulty %q", vp, v.Difficulty))
			}
			if seen[v.Difficulty] {
				errs = append(errs, fmt.Sprintf("%s: duplicate difficulty %q", vp, v.Difficulty))
			}
			seen[v.Difficulty] = true
			if v.XPMultiplier < 0 || v.SanityMultiplier < 0 {
				errs = append(errs, fmt.Sprintf("%s: multipliers must be >= 0", vp))
			}
			if v.Hints != nil && len(v.Hints) == 0 {
				errs = append(errs, fmt.Sprintf("%s: empty hint override", vp))
			}
		}
	}

	for id, m := range answers {
		if !ids[id] {
			errs = append(errs, fmt.Sprintf("answer matcher for unknown ID %q", id))
		}
		if len(m.Rules) == 0 {
			errs = append(errs, fmt.Sprintf("answer matcher %q has no rules", id))
		}
		for i, r := range m.Rules {
			if r.Kind < RuleExact || r.Kind > RulePrefix {
				errs = append(errs, fmt.Sprintf("answer matcher %q rule %d: unknown kind %d", id, i, r.Kind))
			}
			if len(r.Values) == 0 {
				errs = append(errs, fmt.Sprintf("answer matcher %q rule %d: no values", id, i))
			}
			for _, v := range r.Values {
				if _, ok := normalize(v, m.Norm); !ok {
					errs = append(errs, fmt.Sprintf("answer matcher %q rule %d: value %q normalizes to empty", id, i, v))
				}
			}
		}
	}

	if len(errs) > 0 {
		slices.Sort(errs)
		return fmt.Errorf("challenge catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// validID reports whether id is a non-empty token of [a-z0-9_].
func validID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_') {
			return false
		}
	}
	return true
}
