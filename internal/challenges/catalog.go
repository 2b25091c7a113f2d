package challenges

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrNotFound is returned for unknown challenge ids.
var ErrNotFound = errors.New("challenge not found")

// catalog holds the challenge definitions with precomputed indices.
type catalog struct {
	challenges []Challenge
	byID       map[string]Challenge // base and materialized variants
	byLevel    map[Level][]int      // indices into challenges
	levels     []Level
	matchers   map[string]Matcher // compiled, keyed by base and variant id
}

// cat is the package-level catalog, set by init() in seed.go.
var cat *catalog

// buildCatalog validates the definitions and answer table and constructs
// all indices.
func buildCatalog(defs []Challenge, answers map[string]Matcher) (*catalog, error) {
	if err := validateChallenges(defs, answers); err != nil {
		return nil, err
	}

	ct := &catalog{
		challenges: make([]Challenge, 0, len(defs)),
		byID:       make(map[string]Challenge, len(defs)),
		byLevel:    make(map[Level][]int),
		matchers:   make(map[string]Matcher, len(answers)),
	}

	for _, def := range defs {
		base := def.clone()
		idx := len(ct.challenges)
		ct.challenges = append(ct.challenges, base)
		ct.byID[base.ID] = base
		if _, seen := ct.byLevel[base.Level]; !seen {
			ct.levels = append(ct.levels, base.Level)
		}
		ct.byLevel[base.Level] = append(ct.byLevel[base.Level], idx)

		baseMatcher := answers[base.ID].compile()
		ct.matchers[base.ID] = baseMatcher

		for _, v := range base.Variants {
			vc, _ := base.Variant(v.Difficulty)
			ct.byID[vc.ID] = vc
			// Variants without their own answer accept the concept's answers.
			if m, ok := answers[vc.ID]; ok {
				ct.matchers[vc.ID] = m.compile()
			} else {
				ct.matchers[vc.ID] = baseMatcher
			}
		}
	}
	slices.Sort(ct.levels)

	return ct, nil
}

// Lookup returns a challenge or variant by id.
func Lookup(id string) (Challenge, error) {
	ch, ok := cat.byID[id]
	if !ok {
		return Challenge{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return ch.clone(), nil
}

// Hints returns the ordered hint list for a challenge or variant id.
func Hints(id string) ([]string, error) {
	ch, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return ch.Hints, nil
}

// All yields every base challenge in catalog order. The sequence can be
// ranged over any number of times.
func All() iter.Seq[Challenge] {
	return func(yield func(Challenge) bool) {
		for _, ch := range cat.challenges {
			if !yield(ch.clone()) {
				return
			}
		}
	}
}

// ByLevel yields the base challenges of one level in catalog order.
func ByLevel(level Level) iter.Seq[Challenge] {
	return func(yield func(Challenge) bool) {
		for _, idx := range cat.byLevel[level] {
			if !yield(cat.challenges[idx].clone()) {
				return
			}
		}
	}
}

// List yields the challenges of *level, or every challenge when level is nil.
func List(level *Level) iter.Seq[Challenge] {
	if level == nil {
		return All()
	}
	return ByLevel(*level)
}

// Levels returns the populated levels in ascending order.
func Levels() []Level {
	return slices.Clone(cat.levels)
}

// Count returns the number of base challenges.
func Count() int {
	return len(cat.challenges)
}

// ByCategory returns the base challenges in a category, in catalog order.
func ByCategory(category Category) []Challenge {
	var out []Challenge
	for _, ch := range cat.challenges {
		if ch.Category == category {
			out = append(out, ch.clone())
		}
	}
	return out
}
